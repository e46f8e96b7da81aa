package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// rangeDays maps the supported trend ranges to day counts.
func rangeDays(timeRange string) (int, bool) {
	switch timeRange {
	case "7d":
		return 7, true
	case "", "30d":
		return 30, true
	case "90d":
		return 90, true
	default:
		return 0, false
	}
}

func (s *Server) dashboardMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Metrics(30, 5))
}

func (s *Server) usageTrends(c *gin.Context) {
	timeRange := c.Query("range")
	days, ok := rangeDays(timeRange)
	if !ok {
		respondDetail(c, http.StatusUnprocessableEntity, "range must be one of 7d, 30d, 90d")
		return
	}
	if timeRange == "" {
		timeRange = "30d"
	}
	c.JSON(http.StatusOK, s.store.UsageTrends(timeRange, days))
}

func (s *Server) customerDistribution(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.CustomerDistribution())
}

func (s *Server) maintenanceTrends(c *gin.Context) {
	timeRange := c.Query("range")
	days, ok := rangeDays(timeRange)
	if !ok {
		respondDetail(c, http.StatusUnprocessableEntity, "range must be one of 7d, 30d, 90d")
		return
	}
	if timeRange == "" {
		timeRange = "30d"
	}
	c.JSON(http.StatusOK, s.store.MaintenanceTrends(timeRange, days))
}
