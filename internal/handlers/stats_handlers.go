package handlers

import (
	"net/http"

	"toy_store_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the aggregate sales reports.
type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// GetSalesPerDay handles GET /stats/sales-per-day/ and returns
// {"YYYY-MM-DD": "total", ...} in ascending date order.
func (h *StatsHandler) GetSalesPerDay(c *gin.Context) {
	days, err := h.statsService.SalesPerDay(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetSalesPerDay")
		return
	}
	c.JSON(http.StatusOK, days)
}

// GetClientRankings handles GET /stats/clients/.
func (h *StatsHandler) GetClientRankings(c *gin.Context) {
	rankings, err := h.statsService.ClientRankings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetClientRankings")
		return
	}
	c.JSON(http.StatusOK, rankings)
}
