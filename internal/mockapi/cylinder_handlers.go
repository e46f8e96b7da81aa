package mockapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gastrack-dev/gastrack/internal/models"
)

type createCylinderRequest struct {
	SerialNumber   string              `json:"serial_number" binding:"required"`
	Barcode        string              `json:"barcode"`
	Type           models.CylinderType `json:"type" binding:"required,oneof=oxygen nitrogen argon co2 acetylene helium"`
	Capacity       float64             `json:"capacity" binding:"required,gt=0"`
	PressureRating float64             `json:"pressure_rating" binding:"required,gt=0"`
	TareWeight     float64             `json:"tare_weight" binding:"gte=0"`
}

type updateCylinderRequest struct {
	Status         *models.CylinderStatus `json:"status" binding:"omitempty,oneof=available in_use maintenance lost scrapped"`
	Barcode        *string                `json:"barcode"`
	Capacity       *float64               `json:"capacity" binding:"omitempty,gt=0"`
	PressureRating *float64               `json:"pressure_rating" binding:"omitempty,gt=0"`
	TareWeight     *float64               `json:"tare_weight" binding:"omitempty,gte=0"`
	LastInspection *time.Time             `json:"last_inspection"`
	NextInspection *time.Time             `json:"next_inspection"`
}

func (s *Server) listCylinders(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListCylinders())
}

func (s *Server) getCylinder(c *gin.Context) {
	cylinder, err := s.store.GetCylinder(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Cylinder not found")
		return
	}
	c.JSON(http.StatusOK, cylinder)
}

func (s *Server) createCylinder(c *gin.Context) {
	var req createCylinderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	cylinder, err := s.store.CreateCylinder(models.Cylinder{
		SerialNumber:   req.SerialNumber,
		Barcode:        req.Barcode,
		Type:           req.Type,
		Capacity:       req.Capacity,
		PressureRating: req.PressureRating,
		TareWeight:     req.TareWeight,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			respondDetail(c, http.StatusBadRequest, "Serial number already registered")
			return
		}
		respondDetail(c, http.StatusInternalServerError, "Failed to create cylinder")
		return
	}

	c.JSON(http.StatusCreated, cylinder)
}

func (s *Server) updateCylinder(c *gin.Context) {
	var req updateCylinderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	cylinder, err := s.store.UpdateCylinder(c.Param("id"), func(cyl *models.Cylinder) {
		if req.Status != nil {
			cyl.Status = *req.Status
		}
		if req.Barcode != nil {
			cyl.Barcode = *req.Barcode
		}
		if req.Capacity != nil {
			cyl.Capacity = *req.Capacity
		}
		if req.PressureRating != nil {
			cyl.PressureRating = *req.PressureRating
		}
		if req.TareWeight != nil {
			cyl.TareWeight = *req.TareWeight
		}
		if req.LastInspection != nil {
			cyl.LastInspection = req.LastInspection
		}
		if req.NextInspection != nil {
			cyl.NextInspection = req.NextInspection
		}
	})
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Cylinder not found")
		return
	}

	c.JSON(http.StatusOK, cylinder)
}

func (s *Server) deleteCylinder(c *gin.Context) {
	if err := s.store.DeleteCylinder(c.Param("id")); err != nil {
		respondDetail(c, http.StatusNotFound, "Cylinder not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) searchCylinder(c *gin.Context) {
	cylinder, err := s.store.FindCylinder(c.Param("identifier"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Cylinder not found")
		return
	}
	c.JSON(http.StatusOK, cylinder)
}

func (s *Server) getCylinderQRCode(c *gin.Context) {
	cylinder, err := s.store.GetCylinder(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Cylinder not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cylinder_id": cylinder.ID,
		"qr_code":     cylinder.QRCode,
	})
}
