package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-enrollments-api/pkg/response"
)

// StatsHandler exposes the record-count summary.
type StatsHandler struct {
	stats StatsProvider
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(stats StatsProvider) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get returns current table counts.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
