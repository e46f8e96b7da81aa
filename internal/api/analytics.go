package api

import (
	"net/url"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// DashboardMetrics fetches the headline dashboard numbers.
func (c *Client) DashboardMetrics() (*models.DashboardMetrics, error) {
	var metrics models.DashboardMetrics
	if err := c.get("/analytics/metrics", nil, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// UsageTrends fetches movement counts bucketed over the given range
// (e.g. "7d", "30d", "90d").
func (c *Client) UsageTrends(timeRange string) (*models.UsageTrends, error) {
	query := url.Values{}
	query.Set("range", timeRange)

	var trends models.UsageTrends
	if err := c.get("/analytics/usage-trends", query, &trends); err != nil {
		return nil, err
	}
	return &trends, nil
}

// CustomerDistribution fetches the customer breakdown by business type.
func (c *Client) CustomerDistribution() ([]models.CustomerDistribution, error) {
	var dist []models.CustomerDistribution
	if err := c.get("/analytics/customer-distribution", nil, &dist); err != nil {
		return nil, err
	}
	return dist, nil
}

// MaintenanceTrends fetches maintenance statistics over the given range.
func (c *Client) MaintenanceTrends(timeRange string) (*models.MaintenanceTrends, error) {
	query := url.Values{}
	query.Set("range", timeRange)

	var trends models.MaintenanceTrends
	if err := c.get("/analytics/maintenance-trends", query, &trends); err != nil {
		return nil, err
	}
	return &trends, nil
}
