package api

import (
	"fmt"
	"time"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// CreateCylinderRequest is the body of POST /cylinders.
type CreateCylinderRequest struct {
	SerialNumber   string              `json:"serial_number" validate:"required"`
	Type           models.CylinderType `json:"type" validate:"required,oneof=oxygen nitrogen argon co2 acetylene helium"`
	Capacity       float64             `json:"capacity" validate:"required,gt=0"`
	PressureRating float64             `json:"pressure_rating" validate:"required,gt=0"`
	TareWeight     float64             `json:"tare_weight" validate:"required,gt=0"`
}

// UpdateCylinderRequest is the body of PUT /cylinders/{id}.
// Nil fields are left unchanged.
type UpdateCylinderRequest struct {
	Status         *models.CylinderStatus `json:"status,omitempty" validate:"omitempty,oneof=available in_use maintenance lost scrapped"`
	LastInspection *time.Time             `json:"last_inspection,omitempty"`
	NextInspection *time.Time             `json:"next_inspection,omitempty"`
}

// QRCodeResponse is the body of GET /cylinders/{id}/qr-code.
type QRCodeResponse struct {
	CylinderID string `json:"cylinder_id"`
	QRCode     string `json:"qr_code"` // base64-encoded PNG
}

// ListCylinders returns all cylinders.
func (c *Client) ListCylinders() ([]models.Cylinder, error) {
	var cylinders []models.Cylinder
	if err := c.get("/cylinders", nil, &cylinders); err != nil {
		return nil, err
	}
	return cylinders, nil
}

// GetCylinder returns a single cylinder by ID.
func (c *Client) GetCylinder(id string) (*models.Cylinder, error) {
	var cylinder models.Cylinder
	if err := c.get(fmt.Sprintf("/cylinders/%s", id), nil, &cylinder); err != nil {
		return nil, err
	}
	return &cylinder, nil
}

// CreateCylinder registers a new cylinder.
func (c *Client) CreateCylinder(req CreateCylinderRequest) (*models.Cylinder, error) {
	var cylinder models.Cylinder
	if err := c.postJSON("/cylinders", req, &cylinder); err != nil {
		return nil, err
	}
	return &cylinder, nil
}

// UpdateCylinder updates a cylinder.
func (c *Client) UpdateCylinder(id string, req UpdateCylinderRequest) (*models.Cylinder, error) {
	var cylinder models.Cylinder
	if err := c.putJSON(fmt.Sprintf("/cylinders/%s", id), req, &cylinder); err != nil {
		return nil, err
	}
	return &cylinder, nil
}

// DeleteCylinder removes a cylinder.
func (c *Client) DeleteCylinder(id string) error {
	return c.delete(fmt.Sprintf("/cylinders/%s", id))
}

// SearchCylinder looks a cylinder up by serial number or barcode.
func (c *Client) SearchCylinder(identifier string) (*models.Cylinder, error) {
	var cylinder models.Cylinder
	if err := c.get(fmt.Sprintf("/cylinders/search/%s", identifier), nil, &cylinder); err != nil {
		return nil, err
	}
	return &cylinder, nil
}

// CylinderQRCode fetches the QR code image for a cylinder.
func (c *Client) CylinderQRCode(id string) (*QRCodeResponse, error) {
	var qr QRCodeResponse
	if err := c.get(fmt.Sprintf("/cylinders/%s/qr-code", id), nil, &qr); err != nil {
		return nil, err
	}
	return &qr, nil
}
