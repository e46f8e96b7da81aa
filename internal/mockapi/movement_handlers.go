package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastrack-dev/gastrack/internal/models"
)

type createMovementRequest struct {
	CylinderID     string              `json:"cylinder_id" binding:"required"`
	MovementType   models.MovementType `json:"movement_type" binding:"required,oneof=delivery pickup transfer maintenance return"`
	FromLocationID string              `json:"from_location_id"`
	ToLocationID   string              `json:"to_location_id"`
	Notes          string              `json:"notes"`
	Latitude       *float64            `json:"latitude"`
	Longitude      *float64            `json:"longitude"`
}

type transactionItemRequest struct {
	CylinderID string  `json:"cylinder_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
}

type createTransactionRequest struct {
	CustomerID      string                   `json:"customer_id" binding:"required"`
	TransactionType models.MovementType      `json:"transaction_type" binding:"required,oneof=delivery pickup transfer maintenance return"`
	Notes           string                   `json:"notes"`
	Items           []transactionItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (s *Server) listMovements(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListMovements())
}

func (s *Server) getMovement(c *gin.Context) {
	movement, err := s.store.GetMovement(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Movement not found")
		return
	}
	c.JSON(http.StatusOK, movement)
}

func (s *Server) createMovement(c *gin.Context) {
	var req createMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	claims, _ := GetClaims(c)

	movement, err := s.store.CreateMovement(models.CylinderMovement{
		CylinderID:     req.CylinderID,
		MovementType:   req.MovementType,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		PerformedBy:    claims.UserID,
		Notes:          req.Notes,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Cylinder not found")
		return
	}

	c.JSON(http.StatusCreated, movement)
}

func (s *Server) listTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListTransactions())
}

func (s *Server) getTransaction(c *gin.Context) {
	transaction, err := s.store.GetTransaction(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (s *Server) createTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	items := make([]models.TransactionItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.TransactionItem{
			CylinderID: item.CylinderID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	transaction, err := s.store.CreateTransaction(models.Transaction{
		CustomerID:      req.CustomerID,
		TransactionType: req.TransactionType,
		Notes:           req.Notes,
		Items:           items,
	})
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (s *Server) completeTransaction(c *gin.Context) {
	transaction, err := s.store.CompleteTransaction(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			respondDetail(c, http.StatusBadRequest, "Transaction is not pending")
			return
		}
		respondDetail(c, http.StatusNotFound, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, transaction)
}
