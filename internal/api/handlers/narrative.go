package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/utils"
)

type NarrativeHandler struct {
	ranking       *services.RankingService
	narrative     *services.NarrativeService
	defaultSeason int
}

func NewNarrativeHandler(ranking *services.RankingService, narrative *services.NarrativeService, defaultSeason int) *NarrativeHandler {
	return &NarrativeHandler{
		ranking:       ranking,
		narrative:     narrative,
		defaultSeason: defaultSeason,
	}
}

// GetRankingsNarrative returns commentary for the current rankings. The
// narrative collaborator only ever sees already-computed entries.
func (h *NarrativeHandler) GetRankingsNarrative(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	entries, err := h.ranking.Rankings(c.Request.Context(), season)
	if err != nil {
		utils.SendInternalError(c, "Failed to compute rankings")
		return
	}

	// Most games played across the field stands in for the week number.
	week := 0
	for _, entry := range entries {
		if entry.Wins+entry.Losses > week {
			week = entry.Wins + entry.Losses
		}
	}

	text := h.narrative.RankingsNarrative(c.Request.Context(), season, week, entries)
	utils.SendSuccess(c, gin.H{
		"season":    season,
		"narrative": text,
	})
}

// GetBracketNarrative returns commentary for the projected bracket.
func (h *NarrativeHandler) GetBracketNarrative(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	bracket, err := h.ranking.Bracket(c.Request.Context(), season)
	if err != nil {
		utils.SendInternalError(c, "Failed to generate bracket")
		return
	}

	text := h.narrative.BracketNarrative(c.Request.Context(), season, 0, bracket)
	utils.SendSuccess(c, gin.H{
		"season":    season,
		"narrative": text,
	})
}
