package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// seasonParam reads the season query parameter, falling back to the
// configured current season.
func seasonParam(c *gin.Context, defaultSeason int) int {
	raw := c.Query("season")
	if raw == "" {
		return defaultSeason
	}
	season, err := strconv.Atoi(raw)
	if err != nil || season < 1900 {
		return defaultSeason
	}
	return season
}
