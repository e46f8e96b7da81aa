package api

import (
	"fmt"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// CreateMovementRequest is the body of POST /movements/cylinder.
type CreateMovementRequest struct {
	CylinderID     string              `json:"cylinder_id" validate:"required"`
	MovementType   models.MovementType `json:"movement_type" validate:"required,oneof=delivery pickup transfer maintenance return"`
	FromLocationID string              `json:"from_location_id" validate:"required"`
	ToLocationID   string              `json:"to_location_id" validate:"required"`
	Notes          string              `json:"notes,omitempty"`
	Latitude       *float64            `json:"latitude,omitempty"`
	Longitude      *float64            `json:"longitude,omitempty"`
}

// TransactionItemRequest is one line of a transaction creation request.
type TransactionItemRequest struct {
	CylinderID string  `json:"cylinder_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" validate:"gte=0"`
}

// CreateTransactionRequest is the body of POST /movements/transaction.
type CreateTransactionRequest struct {
	CustomerID      string                   `json:"customer_id" validate:"required"`
	TransactionType models.MovementType      `json:"transaction_type" validate:"required,oneof=delivery pickup transfer maintenance return"`
	Notes           string                   `json:"notes,omitempty"`
	Items           []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ListMovements returns all cylinder movements.
func (c *Client) ListMovements() ([]models.CylinderMovement, error) {
	var movements []models.CylinderMovement
	if err := c.get("/movements/cylinder", nil, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

// GetMovement returns a single cylinder movement by ID.
func (c *Client) GetMovement(id string) (*models.CylinderMovement, error) {
	var movement models.CylinderMovement
	if err := c.get(fmt.Sprintf("/movements/cylinder/%s", id), nil, &movement); err != nil {
		return nil, err
	}
	return &movement, nil
}

// CreateMovement records a cylinder movement.
func (c *Client) CreateMovement(req CreateMovementRequest) (*models.CylinderMovement, error) {
	var movement models.CylinderMovement
	if err := c.postJSON("/movements/cylinder", req, &movement); err != nil {
		return nil, err
	}
	return &movement, nil
}

// ListTransactions returns all transactions.
func (c *Client) ListTransactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := c.get("/movements/transaction", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetTransaction returns a single transaction by ID.
func (c *Client) GetTransaction(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := c.get(fmt.Sprintf("/movements/transaction/%s", id), nil, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// CreateTransaction opens a new pending transaction.
func (c *Client) CreateTransaction(req CreateTransactionRequest) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := c.postJSON("/movements/transaction", req, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// CompleteTransaction marks a pending transaction as completed.
func (c *Client) CompleteTransaction(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := c.put(fmt.Sprintf("/movements/transaction/%s/complete", id), &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}
