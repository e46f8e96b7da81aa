package mockapi

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/cli/auth"
	"github.com/gastrack-dev/gastrack/internal/models"
)

// newTestClient spins up a server and returns a client talking to it through
// the real HTTP stack.
func newTestClient(t *testing.T) (*api.Client, *auth.MemoryTokenStore, *Server) {
	t.Helper()

	srv, err := New(Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tokens := auth.NewMemoryTokenStore()
	client := api.New(ts.URL + "/api/v1")
	client.UseBearerAuth(tokens)

	return client, tokens, srv
}

// loginTestUser registers and authenticates a user, storing the bearer token.
func loginTestUser(t *testing.T, client *api.Client, tokens *auth.MemoryTokenStore) *models.User {
	t.Helper()

	user, err := client.Register(api.RegisterRequest{
		Email:    "ops@example.com",
		Password: "secret123",
		FullName: "Ops User",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := client.Login("ops@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token.TokenType != "bearer" {
		t.Errorf("token type = %q, want bearer", token.TokenType)
	}
	if err := tokens.SaveToken(token.AccessToken); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	return user
}

func apiError(t *testing.T, err error) *api.Error {
	t.Helper()

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an *api.Error", err)
	}
	return apiErr
}

func TestRegisterAndLogin(t *testing.T) {
	client, tokens, _ := newTestClient(t)

	user := loginTestUser(t, client, tokens)
	if user.Role != models.RoleUser {
		t.Errorf("registered role = %q, want user", user.Role)
	}

	me, err := client.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if me.Email != "ops@example.com" {
		t.Errorf("email = %q", me.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	_, err := client.Register(api.RegisterRequest{
		Email:    "ops@example.com",
		Password: "secret123",
		FullName: "Second Account",
	})
	apiErr := apiError(t, err)
	if apiErr.StatusCode != 400 || apiErr.Detail != "Email already registered" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	_, err := client.Login("ops@example.com", "wrongpass")
	apiErr := apiError(t, err)
	if apiErr.StatusCode != 400 || apiErr.Detail != "Incorrect email or password" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	tokens.SaveToken("not-a-jwt")

	_, err := client.CurrentUser()
	apiErr := apiError(t, err)
	if apiErr.StatusCode != 401 || apiErr.Detail != "Could not validate credentials" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestMissingTokenRejected(t *testing.T) {
	client, _, _ := newTestClient(t)

	_, err := client.ListCylinders()
	apiErr := apiError(t, err)
	if apiErr.StatusCode != 401 {
		t.Errorf("status = %d, want 401", apiErr.StatusCode)
	}
}

func TestCylinderLifecycle(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	created, err := client.CreateCylinder(api.CreateCylinderRequest{
		SerialNumber:   "CYL-0001",
		Type:           models.GasOxygen,
		Capacity:       50,
		PressureRating: 200,
		TareWeight:     62.5,
	})
	if err != nil {
		t.Fatalf("CreateCylinder: %v", err)
	}
	if created.Status != models.CylinderAvailable {
		t.Errorf("status = %q, want available", created.Status)
	}

	// Duplicate serial numbers are rejected.
	_, err = client.CreateCylinder(api.CreateCylinderRequest{
		SerialNumber:   "CYL-0001",
		Type:           models.GasOxygen,
		Capacity:       50,
		PressureRating: 200,
		TareWeight:     62.5,
	})
	if apiErr := apiError(t, err); apiErr.Detail != "Serial number already registered" {
		t.Errorf("error = %+v", apiErr)
	}

	found, err := client.SearchCylinder("CYL-0001")
	if err != nil {
		t.Fatalf("SearchCylinder: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("search returned %q, want %q", found.ID, created.ID)
	}

	status := models.CylinderMaintenance
	updated, err := client.UpdateCylinder(created.ID, api.UpdateCylinderRequest{Status: &status})
	if err != nil {
		t.Fatalf("UpdateCylinder: %v", err)
	}
	if updated.Status != models.CylinderMaintenance {
		t.Errorf("status = %q, want maintenance", updated.Status)
	}

	qr, err := client.CylinderQRCode(created.ID)
	if err != nil {
		t.Fatalf("CylinderQRCode: %v", err)
	}
	if qr.CylinderID != created.ID || qr.QRCode == "" {
		t.Errorf("qr = %+v", qr)
	}

	if err := client.DeleteCylinder(created.ID); err != nil {
		t.Fatalf("DeleteCylinder: %v", err)
	}
	_, err = client.GetCylinder(created.ID)
	if apiErr := apiError(t, err); apiErr.StatusCode != 404 || apiErr.Detail != "Cylinder not found" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestCustomerAndLocations(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	customer, err := client.CreateCustomer(api.CreateCustomerRequest{
		Name:         "Acme Welding",
		Email:        "billing@acme.test",
		Phone:        "555-0100",
		Address:      "1 Factory Rd",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
		Country:      "US",
		BusinessType: "industrial",
		TaxID:        "99-1234567",
		CreditLimit:  5000,
		PaymentTerms: "net30",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	first, err := client.CreateLocation(customer.ID, api.CreateLocationRequest{
		Name: "Main plant", Address: "1 Factory Rd", City: "Springfield",
		State: "IL", ZipCode: "62701", Country: "US", IsPrimary: true,
	})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	second, err := client.CreateLocation(customer.ID, api.CreateLocationRequest{
		Name: "Warehouse", Address: "9 Depot St", City: "Springfield",
		State: "IL", ZipCode: "62702", Country: "US", IsPrimary: true,
	})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}

	// Marking the second location primary demotes the first.
	locations, err := client.ListLocations(customer.ID)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("got %d locations, want 2", len(locations))
	}
	for _, loc := range locations {
		wantPrimary := loc.ID == second.ID
		if loc.IsPrimary != wantPrimary {
			t.Errorf("location %s primary = %v, want %v", loc.Name, loc.IsPrimary, wantPrimary)
		}
	}

	if err := client.DeleteLocation(customer.ID, first.ID); err != nil {
		t.Fatalf("DeleteLocation: %v", err)
	}
	if err := client.DeleteCustomer(customer.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
}

func TestMovementFlipsCylinderStatus(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	cyl, err := client.CreateCylinder(api.CreateCylinderRequest{
		SerialNumber:   "CYL-0002",
		Type:           models.GasNitrogen,
		Capacity:       40,
		PressureRating: 180,
		TareWeight:     55,
	})
	if err != nil {
		t.Fatalf("CreateCylinder: %v", err)
	}

	_, err = client.CreateMovement(api.CreateMovementRequest{
		CylinderID:     cyl.ID,
		MovementType:   models.MovementDelivery,
		FromLocationID: "warehouse",
		ToLocationID:   "site-a",
	})
	if err != nil {
		t.Fatalf("CreateMovement: %v", err)
	}

	after, err := client.GetCylinder(cyl.ID)
	if err != nil {
		t.Fatalf("GetCylinder: %v", err)
	}
	if after.Status != models.CylinderInUse {
		t.Errorf("status after delivery = %q, want in_use", after.Status)
	}

	_, err = client.CreateMovement(api.CreateMovementRequest{
		CylinderID:     cyl.ID,
		MovementType:   models.MovementReturn,
		FromLocationID: "site-a",
		ToLocationID:   "warehouse",
	})
	if err != nil {
		t.Fatalf("CreateMovement: %v", err)
	}

	after, err = client.GetCylinder(cyl.ID)
	if err != nil {
		t.Fatalf("GetCylinder: %v", err)
	}
	if after.Status != models.CylinderAvailable {
		t.Errorf("status after return = %q, want available", after.Status)
	}
}

func TestTransactionCompletion(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	customer, err := client.CreateCustomer(api.CreateCustomerRequest{
		Name: "Acme Welding", Email: "billing@acme.test", Phone: "555-0100",
		Address: "1 Factory Rd", City: "Springfield", State: "IL",
		ZipCode: "62701", Country: "US", BusinessType: "industrial",
		TaxID: "99-1234567", PaymentTerms: "net30",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	cyl, err := client.CreateCylinder(api.CreateCylinderRequest{
		SerialNumber: "CYL-0003", Type: models.GasArgon,
		Capacity: 40, PressureRating: 180, TareWeight: 55,
	})
	if err != nil {
		t.Fatalf("CreateCylinder: %v", err)
	}

	tx, err := client.CreateTransaction(api.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: models.MovementDelivery,
		Items: []api.TransactionItemRequest{
			{CylinderID: cyl.ID, Quantity: 2, UnitPrice: 40},
		},
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.Status != models.TransactionPending {
		t.Errorf("status = %q, want pending", tx.Status)
	}
	if tx.TotalAmount != 80 {
		t.Errorf("total = %v, want 80", tx.TotalAmount)
	}

	done, err := client.CompleteTransaction(tx.ID)
	if err != nil {
		t.Fatalf("CompleteTransaction: %v", err)
	}
	if done.Status != models.TransactionCompleted {
		t.Errorf("status = %q, want completed", done.Status)
	}

	_, err = client.CompleteTransaction(tx.ID)
	if apiErr := apiError(t, err); apiErr.Detail != "Transaction is not pending" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestMaintenanceUpcomingAndComplete(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	cyl, err := client.CreateCylinder(api.CreateCylinderRequest{
		SerialNumber: "CYL-0004", Type: models.GasCO2,
		Capacity: 30, PressureRating: 150, TareWeight: 45,
	})
	if err != nil {
		t.Fatalf("CreateCylinder: %v", err)
	}

	record, err := client.CreateMaintenance(api.CreateMaintenanceRequest{
		CylinderID:      cyl.ID,
		MaintenanceType: models.MaintenanceInspection,
		ScheduledDate:   time.Now().AddDate(0, 0, 7),
	})
	if err != nil {
		t.Fatalf("CreateMaintenance: %v", err)
	}

	upcoming, err := client.UpcomingMaintenance(30)
	if err != nil {
		t.Fatalf("UpcomingMaintenance: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != record.ID {
		t.Errorf("upcoming = %+v, want the created record", upcoming)
	}

	// A window shorter than the scheduled date excludes it.
	upcoming, err = client.UpcomingMaintenance(3)
	if err != nil {
		t.Fatalf("UpcomingMaintenance: %v", err)
	}
	if len(upcoming) != 0 {
		t.Errorf("upcoming within 3 days = %+v, want none", upcoming)
	}

	status := models.MaintenanceCompleted
	now := time.Now()
	completed, err := client.UpdateMaintenance(record.ID, api.UpdateMaintenanceRequest{
		Status:        &status,
		CompletedDate: &now,
	})
	if err != nil {
		t.Fatalf("UpdateMaintenance: %v", err)
	}
	if completed.Status != models.MaintenanceCompleted {
		t.Errorf("status = %q, want completed", completed.Status)
	}

	// Completing an inspection stamps the cylinder's inspection dates.
	after, err := client.GetCylinder(cyl.ID)
	if err != nil {
		t.Fatalf("GetCylinder: %v", err)
	}
	if after.LastInspection == nil || after.NextInspection == nil {
		t.Errorf("inspection dates not stamped: %+v", after)
	}
}

func TestAnalyticsRangeValidation(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	if _, err := client.UsageTrends("30d"); err != nil {
		t.Fatalf("UsageTrends: %v", err)
	}

	_, err := client.UsageTrends("45d")
	if apiErr := apiError(t, err); apiErr.StatusCode != 422 {
		t.Errorf("error = %+v, want 422", apiErr)
	}
}

func TestBulkUploadCustomers(t *testing.T) {
	client, tokens, _ := newTestClient(t)
	loginTestUser(t, client, tokens)

	csv := strings.Join([]string{
		"name,email,phone,address,city,state,zip_code,country,business_type",
		"Acme Welding,billing@acme.test,555-0100,1 Factory Rd,Springfield,IL,62701,US,industrial",
		"broken row with,too few columns",
		"Beta Gas,ops@beta.test,555-0200,2 Plant Ave,Shelbyville,IL,62565,US,medical",
	}, "\n")

	result, err := client.BulkUploadCustomers("customers.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("BulkUploadCustomers: %v", err)
	}

	if result.Created != 2 {
		t.Errorf("created = %d, want 2", result.Created)
	}
	if result.Skipped != 1 || len(result.Errors) != 1 {
		t.Errorf("skipped = %d errors = %v, want 1 each", result.Skipped, result.Errors)
	}

	customers, err := client.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if len(customers) != 2 {
		t.Errorf("stored %d customers, want 2", len(customers))
	}
}
