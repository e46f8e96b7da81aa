package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gastrack-dev/gastrack/internal/models"
)

type createMaintenanceRequest struct {
	CylinderID      string                 `json:"cylinder_id" binding:"required"`
	MaintenanceType models.MaintenanceType `json:"maintenance_type" binding:"required,oneof=inspection hydrostatic_test repair replacement cleaning"`
	ScheduledDate   time.Time              `json:"scheduled_date" binding:"required"`
	Notes           string                 `json:"notes"`
	Cost            *float64               `json:"cost" binding:"omitempty,gte=0"`
}

type updateMaintenanceRequest struct {
	Status                 *models.MaintenanceStatus `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled failed"`
	CompletedDate          *time.Time                `json:"completed_date"`
	PressureTestResult     *float64                  `json:"pressure_test_result"`
	VisualInspectionResult *bool                     `json:"visual_inspection_result"`
	LeakTestResult         *bool                     `json:"leak_test_result"`
	Notes                  *string                   `json:"notes"`
	Cost                   *float64                  `json:"cost" binding:"omitempty,gte=0"`
}

type createScheduleRequest struct {
	MaintenanceType models.MaintenanceType `json:"maintenance_type" binding:"required,oneof=inspection hydrostatic_test repair replacement cleaning"`
	FrequencyDays   int                    `json:"frequency_days" binding:"required,gt=0"`
}

func (s *Server) listMaintenance(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListMaintenance())
}

func (s *Server) getMaintenance(c *gin.Context) {
	record, err := s.store.GetMaintenance(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Maintenance record not found")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) createMaintenance(c *gin.Context) {
	var req createMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	claims, _ := GetClaims(c)

	record, err := s.store.CreateMaintenance(models.MaintenanceRecord{
		CylinderID:      req.CylinderID,
		MaintenanceType: req.MaintenanceType,
		ScheduledDate:   req.ScheduledDate,
		PerformedBy:     claims.UserID,
		Notes:           req.Notes,
		Cost:            req.Cost,
	})
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Cylinder not found")
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (s *Server) updateMaintenance(c *gin.Context) {
	var req updateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	record, err := s.store.UpdateMaintenance(c.Param("id"), func(r *models.MaintenanceRecord) {
		if req.Status != nil {
			r.Status = *req.Status
		}
		if req.CompletedDate != nil {
			r.CompletedDate = req.CompletedDate
		}
		if req.PressureTestResult != nil {
			r.PressureTestResult = req.PressureTestResult
		}
		if req.VisualInspectionResult != nil {
			r.VisualInspectionResult = req.VisualInspectionResult
		}
		if req.LeakTestResult != nil {
			r.LeakTestResult = req.LeakTestResult
		}
		if req.Notes != nil {
			r.Notes = *req.Notes
		}
		if req.Cost != nil {
			r.Cost = req.Cost
		}
	})
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Maintenance record not found")
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) maintenanceByCylinder(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.MaintenanceByCylinder(c.Param("cylinderID")))
}

func (s *Server) upcomingMaintenance(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondDetail(c, http.StatusUnprocessableEntity, "days must be a positive integer")
			return
		}
		days = parsed
	}
	c.JSON(http.StatusOK, s.store.UpcomingMaintenance(days))
}

func (s *Server) overdueMaintenance(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.OverdueMaintenance())
}

func (s *Server) createSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	schedule, err := s.store.CreateSchedule(c.Param("cylinderID"), req.MaintenanceType, req.FrequencyDays)
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Cylinder not found")
		return
	}

	c.JSON(http.StatusCreated, schedule)
}
