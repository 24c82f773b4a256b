package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/utils"
)

type RankingsHandler struct {
	ranking       *services.RankingService
	defaultSeason int
}

func NewRankingsHandler(ranking *services.RankingService, defaultSeason int) *RankingsHandler {
	return &RankingsHandler{
		ranking:       ranking,
		defaultSeason: defaultSeason,
	}
}

// GetRankings returns the full ordered ranking for a season.
func (h *RankingsHandler) GetRankings(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	entries, err := h.ranking.Rankings(c.Request.Context(), season)
	if err != nil {
		utils.SendInternalError(c, "Failed to compute rankings")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season":   season,
		"count":    len(entries),
		"rankings": entries,
	})
}

// GetTeamDetail returns a team's ranking entry plus its scored wins.
func (h *RankingsHandler) GetTeamDetail(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)
	team := c.Param("team")

	entry, wins, ok, err := h.ranking.TeamDetail(c.Request.Context(), season, team)
	if err != nil {
		utils.SendInternalError(c, "Failed to compute team detail")
		return
	}
	if !ok {
		utils.SendNotFound(c, "Team has no record this season")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"entry":  entry,
		"wins":   wins,
	})
}

// GetTeamRecord returns the raw season aggregate for a team.
func (h *RankingsHandler) GetTeamRecord(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)
	team := c.Param("team")

	record, err := h.ranking.Record(c.Request.Context(), season, team)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Team has no record this season")
		} else {
			utils.SendInternalError(c, "Failed to fetch team record")
		}
		return
	}

	utils.SendSuccess(c, record)
}
