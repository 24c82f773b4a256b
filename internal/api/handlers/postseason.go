package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gridironhq/cfb-ranker/internal/services"
	"github.com/gridironhq/cfb-ranker/pkg/utils"
)

type PostseasonHandler struct {
	ranking       *services.RankingService
	defaultSeason int
}

func NewPostseasonHandler(ranking *services.RankingService, defaultSeason int) *PostseasonHandler {
	return &PostseasonHandler{
		ranking:       ranking,
		defaultSeason: defaultSeason,
	}
}

// GetBracket returns the projected 12-team playoff bracket. Generation
// never fails; an internal error shows up as an empty bracket.
func (h *PostseasonHandler) GetBracket(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	bracket, err := h.ranking.Bracket(c.Request.Context(), season)
	if err != nil {
		utils.SendInternalError(c, "Failed to load rankings for bracket")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season":  season,
		"bracket": bracket,
	})
}

// GetBowls returns the projected bowl slate beneath the playoff field.
func (h *PostseasonHandler) GetBowls(c *gin.Context) {
	season := seasonParam(c, h.defaultSeason)

	projection, err := h.ranking.Bowls(c.Request.Context(), season)
	if err != nil {
		utils.SendInternalError(c, "Failed to load rankings for bowl projection")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season":     season,
		"projection": projection,
	})
}
