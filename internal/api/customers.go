package api

import (
	"fmt"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// CreateCustomerRequest is the body of POST /customers.
type CreateCustomerRequest struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	City         string  `json:"city" validate:"required"`
	State        string  `json:"state" validate:"required"`
	ZipCode      string  `json:"zip_code" validate:"required"`
	Country      string  `json:"country" validate:"required"`
	BusinessType string  `json:"business_type" validate:"required"`
	TaxID        string  `json:"tax_id" validate:"required"`
	CreditLimit  float64 `json:"credit_limit" validate:"gte=0"`
	PaymentTerms string  `json:"payment_terms" validate:"required"`
}

// UpdateCustomerRequest is the body of PUT /customers/{id}.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name         *string  `json:"name,omitempty"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string  `json:"phone,omitempty"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	ZipCode      *string  `json:"zip_code,omitempty"`
	Country      *string  `json:"country,omitempty"`
	BusinessType *string  `json:"business_type,omitempty"`
	TaxID        *string  `json:"tax_id,omitempty"`
	CreditLimit  *float64 `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	PaymentTerms *string  `json:"payment_terms,omitempty"`
}

// CreateLocationRequest is the body of POST /customers/{id}/locations.
type CreateLocationRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Country   string `json:"country" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

// ListCustomers returns all customers.
func (c *Client) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.get("/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer returns a single customer by ID.
func (c *Client) GetCustomer(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := c.get(fmt.Sprintf("/customers/%s", id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer registers a new customer.
func (c *Client) CreateCustomer(req CreateCustomerRequest) (*models.Customer, error) {
	var customer models.Customer
	if err := c.postJSON("/customers", req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer updates a customer.
func (c *Client) UpdateCustomer(id string, req UpdateCustomerRequest) (*models.Customer, error) {
	var customer models.Customer
	if err := c.putJSON(fmt.Sprintf("/customers/%s", id), req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(id string) error {
	return c.delete(fmt.Sprintf("/customers/%s", id))
}

// ListLocations returns the delivery locations of a customer.
func (c *Client) ListLocations(customerID string) ([]models.Location, error) {
	var locations []models.Location
	if err := c.get(fmt.Sprintf("/customers/%s/locations", customerID), nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// CreateLocation adds a delivery location to a customer.
func (c *Client) CreateLocation(customerID string, req CreateLocationRequest) (*models.Location, error) {
	var location models.Location
	if err := c.postJSON(fmt.Sprintf("/customers/%s/locations", customerID), req, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// DeleteLocation removes a delivery location from a customer.
func (c *Client) DeleteLocation(customerID, locationID string) error {
	return c.delete(fmt.Sprintf("/customers/%s/locations/%s", customerID, locationID))
}
