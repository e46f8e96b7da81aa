package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastrack-dev/gastrack/internal/models"
)

type createCustomerRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	ZipCode      string  `json:"zip_code" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	BusinessType string  `json:"business_type" binding:"required"`
	TaxID        string  `json:"tax_id"`
	CreditLimit  float64 `json:"credit_limit" binding:"gte=0"`
	PaymentTerms string  `json:"payment_terms"`
}

type updateCustomerRequest struct {
	Name         *string  `json:"name"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	Phone        *string  `json:"phone"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	ZipCode      *string  `json:"zip_code"`
	Country      *string  `json:"country"`
	BusinessType *string  `json:"business_type"`
	TaxID        *string  `json:"tax_id"`
	CreditLimit  *float64 `json:"credit_limit" binding:"omitempty,gte=0"`
	PaymentTerms *string  `json:"payment_terms"`
	IsActive     *bool    `json:"is_active"`
}

type createLocationRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zip_code" binding:"required"`
	Country   string `json:"country" binding:"required"`
	IsPrimary bool   `json:"is_primary"`
}

func (s *Server) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListCustomers())
}

func (s *Server) getCustomer(c *gin.Context) {
	customer, err := s.store.GetCustomer(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (s *Server) createCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	paymentTerms := req.PaymentTerms
	if paymentTerms == "" {
		paymentTerms = "net30"
	}

	customer, err := s.store.CreateCustomer(models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		BusinessType: req.BusinessType,
		TaxID:        req.TaxID,
		CreditLimit:  req.CreditLimit,
		PaymentTerms: paymentTerms,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			respondDetail(c, http.StatusBadRequest, "Customer email already registered")
			return
		}
		respondDetail(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (s *Server) updateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	customer, err := s.store.UpdateCustomer(c.Param("id"), func(cust *models.Customer) {
		if req.Name != nil {
			cust.Name = *req.Name
		}
		if req.Email != nil {
			cust.Email = *req.Email
		}
		if req.Phone != nil {
			cust.Phone = *req.Phone
		}
		if req.Address != nil {
			cust.Address = *req.Address
		}
		if req.City != nil {
			cust.City = *req.City
		}
		if req.State != nil {
			cust.State = *req.State
		}
		if req.ZipCode != nil {
			cust.ZipCode = *req.ZipCode
		}
		if req.Country != nil {
			cust.Country = *req.Country
		}
		if req.BusinessType != nil {
			cust.BusinessType = *req.BusinessType
		}
		if req.TaxID != nil {
			cust.TaxID = *req.TaxID
		}
		if req.CreditLimit != nil {
			cust.CreditLimit = *req.CreditLimit
		}
		if req.PaymentTerms != nil {
			cust.PaymentTerms = *req.PaymentTerms
		}
		if req.IsActive != nil {
			cust.IsActive = *req.IsActive
		}
	})
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (s *Server) deleteCustomer(c *gin.Context) {
	if err := s.store.DeleteCustomer(c.Param("id")); err != nil {
		respondDetail(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listLocations(c *gin.Context) {
	locations, err := s.store.ListLocations(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (s *Server) createLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	location, err := s.store.CreateLocation(c.Param("id"), models.Location{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		IsPrimary: req.IsPrimary,
	})
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusCreated, location)
}

func (s *Server) deleteLocation(c *gin.Context) {
	if err := s.store.DeleteLocation(c.Param("id"), c.Param("locationID")); err != nil {
		respondDetail(c, http.StatusNotFound, "Location not found")
		return
	}
	c.Status(http.StatusNoContent)
}
