package api

import (
	"io"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// BulkUploadCustomers submits a customers import file as multipart form data.
func (c *Client) BulkUploadCustomers(filename string, file io.Reader) (*models.BulkUploadResult, error) {
	var result models.BulkUploadResult
	if err := c.postMultipart("/bulk/customers", filename, file, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BulkUploadCylinders submits a cylinders import file as multipart form data.
func (c *Client) BulkUploadCylinders(filename string, file io.Reader) (*models.BulkUploadResult, error) {
	var result models.BulkUploadResult
	if err := c.postMultipart("/bulk/cylinders", filename, file, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
