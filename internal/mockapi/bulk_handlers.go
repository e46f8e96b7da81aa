package mockapi

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// openUpload pulls the uploaded CSV out of the multipart form.
func openUpload(c *gin.Context) (*csv.Reader, string, io.Closer, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", nil, err
	}

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	return reader, fileHeader.Filename, f, nil
}

// bulkUploadCustomers imports customers from a CSV with a header row of
// name,email,phone,address,city,state,zip_code,country,business_type.
func (s *Server) bulkUploadCustomers(c *gin.Context) {
	reader, filename, closer, err := openUpload(c)
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer closer.Close()

	result := models.BulkUploadResult{Filename: filename}

	// Skip header row.
	if _, err := reader.Read(); err != nil {
		respondDetail(c, http.StatusBadRequest, "Empty or unreadable CSV")
		return
	}

	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if len(record) < 9 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: expected 9 columns, got %d", line, len(record)))
			continue
		}

		_, err = s.store.CreateCustomer(models.Customer{
			Name:         record[0],
			Email:        record[1],
			Phone:        record[2],
			Address:      record[3],
			City:         record[4],
			State:        record[5],
			ZipCode:      record[6],
			Country:      record[7],
			BusinessType: record[8],
			PaymentTerms: "net30",
		})
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Created++
	}

	c.JSON(http.StatusOK, result)
}

// bulkUploadCylinders imports cylinders from a CSV with a header row of
// serial_number,type,capacity,pressure_rating,tare_weight.
func (s *Server) bulkUploadCylinders(c *gin.Context) {
	reader, filename, closer, err := openUpload(c)
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer closer.Close()

	result := models.BulkUploadResult{Filename: filename}

	if _, err := reader.Read(); err != nil {
		respondDetail(c, http.StatusBadRequest, "Empty or unreadable CSV")
		return
	}

	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if len(record) < 5 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: expected 5 columns, got %d", line, len(record)))
			continue
		}

		capacity, err1 := strconv.ParseFloat(record[2], 64)
		pressure, err2 := strconv.ParseFloat(record[3], 64)
		tare, err3 := strconv.ParseFloat(record[4], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: invalid numeric field", line))
			continue
		}

		_, err = s.store.CreateCylinder(models.Cylinder{
			SerialNumber:   record[0],
			Type:           models.CylinderType(record[1]),
			Capacity:       capacity,
			PressureRating: pressure,
			TareWeight:     tare,
		})
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Created++
	}

	c.JSON(http.StatusOK, result)
}
