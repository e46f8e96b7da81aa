package api

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// CreateMaintenanceRequest is the body of POST /maintenance.
type CreateMaintenanceRequest struct {
	CylinderID      string                 `json:"cylinder_id" validate:"required"`
	MaintenanceType models.MaintenanceType `json:"maintenance_type" validate:"required,oneof=inspection hydrostatic_test repair replacement cleaning"`
	ScheduledDate   time.Time              `json:"scheduled_date" validate:"required"`
	Notes           string                 `json:"notes,omitempty"`
	Cost            *float64               `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

// UpdateMaintenanceRequest is the body of PUT /maintenance/{id}.
// Nil fields are left unchanged.
type UpdateMaintenanceRequest struct {
	Status                 *models.MaintenanceStatus `json:"status,omitempty" validate:"omitempty,oneof=scheduled in_progress completed cancelled failed"`
	CompletedDate          *time.Time                `json:"completed_date,omitempty"`
	PressureTestResult     *float64                  `json:"pressure_test_result,omitempty"`
	VisualInspectionResult *bool                     `json:"visual_inspection_result,omitempty"`
	LeakTestResult         *bool                     `json:"leak_test_result,omitempty"`
	Notes                  *string                   `json:"notes,omitempty"`
	Cost                   *float64                  `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

// CreateScheduleRequest is the body of POST /maintenance/schedule/{cylinderID}.
type CreateScheduleRequest struct {
	MaintenanceType models.MaintenanceType `json:"maintenance_type" validate:"required,oneof=inspection hydrostatic_test repair replacement cleaning"`
	FrequencyDays   int                    `json:"frequency_days" validate:"required,gt=0"`
}

// ListMaintenance returns all maintenance records.
func (c *Client) ListMaintenance() ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	if err := c.get("/maintenance", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetMaintenance returns a single maintenance record by ID.
func (c *Client) GetMaintenance(id string) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	if err := c.get(fmt.Sprintf("/maintenance/%s", id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateMaintenance schedules a maintenance event.
func (c *Client) CreateMaintenance(req CreateMaintenanceRequest) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	if err := c.postJSON("/maintenance", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateMaintenance updates a maintenance record.
func (c *Client) UpdateMaintenance(id string, req UpdateMaintenanceRequest) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	if err := c.putJSON(fmt.Sprintf("/maintenance/%s", id), req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// MaintenanceByCylinder returns the maintenance history of one cylinder.
func (c *Client) MaintenanceByCylinder(cylinderID string) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	if err := c.get(fmt.Sprintf("/maintenance/cylinder/%s", cylinderID), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpcomingMaintenance returns records scheduled within the next N days.
func (c *Client) UpcomingMaintenance(days int) ([]models.MaintenanceRecord, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var records []models.MaintenanceRecord
	if err := c.get("/maintenance/upcoming", query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// OverdueMaintenance returns records past their scheduled date.
func (c *Client) OverdueMaintenance() ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	if err := c.get("/maintenance/overdue", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateMaintenanceSchedule creates a recurring maintenance plan for a cylinder.
func (c *Client) CreateMaintenanceSchedule(cylinderID string, req CreateScheduleRequest) (*models.MaintenanceSchedule, error) {
	var schedule models.MaintenanceSchedule
	if err := c.postJSON(fmt.Sprintf("/maintenance/schedule/%s", cylinderID), req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}
