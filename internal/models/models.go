package models

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles known to the client.
// Unknown values coming off the wire degrade to RoleUser.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleDriver     Role = "driver"
	RoleTechnician Role = "technician"
	RoleCustomer   Role = "customer"
)

// ParseRole maps a wire value to a known role, defaulting to RoleUser.
func ParseRole(s string) Role {
	r := Role(s)
	if r.Valid() {
		return r
	}
	return RoleUser
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleManager, RoleDriver, RoleTechnician, RoleCustomer:
		return true
	default:
		return false
	}
}

// User is the authenticated user profile returned by GET /users/me.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        Role       `json:"role"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Address     string     `json:"address,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

func (u *User) String() string {
	return fmt.Sprintf("%s <%s> (%s)", u.FullName, u.Email, u.Role)
}

// CylinderStatus enumerates the lifecycle states of a gas cylinder.
type CylinderStatus string

const (
	CylinderAvailable   CylinderStatus = "available"
	CylinderInUse       CylinderStatus = "in_use"
	CylinderMaintenance CylinderStatus = "maintenance"
	CylinderLost        CylinderStatus = "lost"
	CylinderScrapped    CylinderStatus = "scrapped"
)

// CylinderType enumerates the supported gas types.
type CylinderType string

const (
	GasOxygen    CylinderType = "oxygen"
	GasNitrogen  CylinderType = "nitrogen"
	GasArgon     CylinderType = "argon"
	GasCO2       CylinderType = "co2"
	GasAcetylene CylinderType = "acetylene"
	GasHelium    CylinderType = "helium"
)

// Cylinder is a tracked gas cylinder.
type Cylinder struct {
	ID             string         `json:"id"`
	SerialNumber   string         `json:"serial_number"`
	Barcode        string         `json:"barcode,omitempty"`
	QRCode         string         `json:"qr_code,omitempty"`
	Type           CylinderType   `json:"type"`
	Capacity       float64        `json:"capacity"`        // liters
	PressureRating float64        `json:"pressure_rating"` // PSI
	TareWeight     float64        `json:"tare_weight"`     // kg
	Status         CylinderStatus `json:"status"`
	LastInspection *time.Time     `json:"last_inspection,omitempty"`
	NextInspection *time.Time     `json:"next_inspection,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

// Location is a customer delivery site.
type Location struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	ZipCode    string    `json:"zip_code"`
	Country    string    `json:"country"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
}

// Customer is a business buying or leasing cylinders.
type Customer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	ZipCode      string     `json:"zip_code"`
	Country      string     `json:"country"`
	BusinessType string     `json:"business_type"`
	TaxID        string     `json:"tax_id"`
	CreditLimit  float64    `json:"credit_limit"`
	PaymentTerms string     `json:"payment_terms"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	Locations    []Location `json:"locations,omitempty"`
}

// MovementType enumerates cylinder movement kinds.
type MovementType string

const (
	MovementDelivery    MovementType = "delivery"
	MovementPickup      MovementType = "pickup"
	MovementTransfer    MovementType = "transfer"
	MovementMaintenance MovementType = "maintenance"
	MovementReturn      MovementType = "return"
)

// TransactionStatus enumerates delivery transaction states.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
	TransactionFailed    TransactionStatus = "failed"
)

// CylinderMovement records a single cylinder changing location.
type CylinderMovement struct {
	ID             string       `json:"id"`
	CylinderID     string       `json:"cylinder_id"`
	MovementType   MovementType `json:"movement_type"`
	FromLocationID string       `json:"from_location_id"`
	ToLocationID   string       `json:"to_location_id"`
	PerformedBy    string       `json:"performed_by"`
	Timestamp      time.Time    `json:"timestamp"`
	Notes          string       `json:"notes,omitempty"`
	Latitude       *float64     `json:"latitude,omitempty"`
	Longitude      *float64     `json:"longitude,omitempty"`
}

// TransactionItem is one cylinder line within a transaction.
type TransactionItem struct {
	ID            string  `json:"id"`
	TransactionID string  `json:"transaction_id"`
	CylinderID    string  `json:"cylinder_id"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	TotalPrice    float64 `json:"total_price"`
}

// Transaction groups cylinder deliveries/pickups for a customer.
type Transaction struct {
	ID              string            `json:"id"`
	CustomerID      string            `json:"customer_id"`
	TransactionType MovementType      `json:"transaction_type"`
	Status          TransactionStatus `json:"status"`
	TotalAmount     float64           `json:"total_amount"`
	CreatedAt       time.Time         `json:"created_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Items           []TransactionItem `json:"items,omitempty"`
}

// MaintenanceType enumerates maintenance work kinds.
type MaintenanceType string

const (
	MaintenanceInspection      MaintenanceType = "inspection"
	MaintenanceHydrostaticTest MaintenanceType = "hydrostatic_test"
	MaintenanceRepair          MaintenanceType = "repair"
	MaintenanceReplacement     MaintenanceType = "replacement"
	MaintenanceCleaning        MaintenanceType = "cleaning"
)

// MaintenanceStatus enumerates maintenance record states.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
	MaintenanceFailed     MaintenanceStatus = "failed"
)

// MaintenanceRecord is a scheduled or completed maintenance event.
type MaintenanceRecord struct {
	ID                     string            `json:"id"`
	CylinderID             string            `json:"cylinder_id"`
	MaintenanceType        MaintenanceType   `json:"maintenance_type"`
	Status                 MaintenanceStatus `json:"status"`
	ScheduledDate          time.Time         `json:"scheduled_date"`
	CompletedDate          *time.Time        `json:"completed_date,omitempty"`
	PerformedBy            string            `json:"performed_by,omitempty"`
	Notes                  string            `json:"notes,omitempty"`
	Cost                   *float64          `json:"cost,omitempty"`
	PressureTestResult     *float64          `json:"pressure_test_result,omitempty"`
	VisualInspectionResult *bool             `json:"visual_inspection_result,omitempty"`
	LeakTestResult         *bool             `json:"leak_test_result,omitempty"`
}

// MaintenanceSchedule is a recurring maintenance plan for a cylinder.
type MaintenanceSchedule struct {
	ID              string          `json:"id"`
	CylinderID      string          `json:"cylinder_id"`
	MaintenanceType MaintenanceType `json:"maintenance_type"`
	FrequencyDays   int             `json:"frequency_days"`
	LastMaintenance *time.Time      `json:"last_maintenance,omitempty"`
	NextMaintenance *time.Time      `json:"next_maintenance,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// DashboardMetrics is the headline analytics payload.
type DashboardMetrics struct {
	TotalCylinders      int                    `json:"total_cylinders"`
	CylindersByStatus   map[CylinderStatus]int `json:"cylinders_by_status"`
	TotalCustomers      int                    `json:"total_customers"`
	RecentTransactions  []Transaction          `json:"recent_transactions"`
	UpcomingMaintenance []MaintenanceRecord    `json:"upcoming_maintenance"`
}

// TrendPoint is one bucket of a time-series trend.
type TrendPoint struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// UsageTrends is the response of GET /analytics/usage-trends.
type UsageTrends struct {
	Range     string                        `json:"range"`
	Movements map[MovementType][]TrendPoint `json:"movements"`
}

// CustomerDistribution is one business-type bucket of the customer breakdown.
type CustomerDistribution struct {
	BusinessType string `json:"business_type"`
	Count        int    `json:"count"`
}

// MaintenanceTrends is the response of GET /analytics/maintenance-trends.
type MaintenanceTrends struct {
	Range          string                  `json:"range"`
	ByType         map[MaintenanceType]int `json:"by_type"`
	CompletionRate float64                 `json:"completion_rate"`
}

// BulkUploadResult summarizes a bulk import request.
type BulkUploadResult struct {
	Filename string   `json:"filename"`
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
