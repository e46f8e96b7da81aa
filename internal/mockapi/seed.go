package mockapi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// seedFile is the YAML fixture format consumed by Seed.
type seedFile struct {
	Users []struct {
		Email       string `yaml:"email"`
		Password    string `yaml:"password"`
		FullName    string `yaml:"full_name"`
		Role        string `yaml:"role"`
		PhoneNumber string `yaml:"phone_number"`
		Address     string `yaml:"address"`
	} `yaml:"users"`

	Cylinders []struct {
		SerialNumber   string  `yaml:"serial_number"`
		Barcode        string  `yaml:"barcode"`
		Type           string  `yaml:"type"`
		Capacity       float64 `yaml:"capacity"`
		PressureRating float64 `yaml:"pressure_rating"`
		TareWeight     float64 `yaml:"tare_weight"`
	} `yaml:"cylinders"`

	Customers []struct {
		Name         string  `yaml:"name"`
		Email        string  `yaml:"email"`
		Phone        string  `yaml:"phone"`
		Address      string  `yaml:"address"`
		City         string  `yaml:"city"`
		State        string  `yaml:"state"`
		ZipCode      string  `yaml:"zip_code"`
		Country      string  `yaml:"country"`
		BusinessType string  `yaml:"business_type"`
		CreditLimit  float64 `yaml:"credit_limit"`
		PaymentTerms string  `yaml:"payment_terms"`
	} `yaml:"customers"`
}

// Seed loads YAML fixtures into the store.
func Seed(store *Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, u := range file.Users {
		role := models.ParseRole(u.Role)
		if _, err := store.CreateUser(u.Email, u.Password, u.FullName, u.PhoneNumber, u.Address, role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for _, cyl := range file.Cylinders {
		_, err := store.CreateCylinder(models.Cylinder{
			SerialNumber:   cyl.SerialNumber,
			Barcode:        cyl.Barcode,
			Type:           models.CylinderType(cyl.Type),
			Capacity:       cyl.Capacity,
			PressureRating: cyl.PressureRating,
			TareWeight:     cyl.TareWeight,
		})
		if err != nil {
			return fmt.Errorf("seed cylinder %s: %w", cyl.SerialNumber, err)
		}
	}

	for _, cust := range file.Customers {
		paymentTerms := cust.PaymentTerms
		if paymentTerms == "" {
			paymentTerms = "net30"
		}
		_, err := store.CreateCustomer(models.Customer{
			Name:         cust.Name,
			Email:        cust.Email,
			Phone:        cust.Phone,
			Address:      cust.Address,
			City:         cust.City,
			State:        cust.State,
			ZipCode:      cust.ZipCode,
			Country:      cust.Country,
			BusinessType: cust.BusinessType,
			CreditLimit:  cust.CreditLimit,
			PaymentTerms: paymentTerms,
		})
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", cust.Name, err)
		}
	}

	return nil
}
