package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	stats *usecase.StatsService
}

func NewStatsHandler(stats *usecase.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) GetOverview(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	stats, err := h.stats.Overview(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Server error while fetching statistics")
		return
	}

	utils.Success(c, gin.H{"stats": stats})
}

func (h *StatsHandler) GetBreakdown(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	breakdown, err := h.stats.Breakdown(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Server error while fetching breakdown stats")
		return
	}

	utils.Success(c, gin.H{"breakdown": breakdown})
}

func (h *StatsHandler) GetTrend(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	days := parsePositiveInt(c.Query("days"), usecase.DefaultTrendDays)

	trend, err := h.stats.Trend(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, err, "Server error while fetching trend stats")
		return
	}

	utils.Success(c, gin.H{"trend": trend})
}
