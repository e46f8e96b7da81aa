package mockapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrack-dev/gastrack/internal/models"
)

func TestStoreAuthenticate(t *testing.T) {
	store := NewStore()

	created, err := store.CreateUser("a@b.com", "secret123", "Alice Brand", "", "", models.RoleManager)
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.LastLogin)

	user, err := store.Authenticate("A@B.COM", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotNil(t, user.LastLogin)

	_, err = store.Authenticate("a@b.com", "wrongpass")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = store.Authenticate("nobody@b.com", "secret123")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = store.CreateUser("A@B.com", "secret123", "Duplicate", "", "", models.RoleUser)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStoreCylinderOrderingAndIsolation(t *testing.T) {
	store := NewStore()

	first, err := store.CreateCylinder(models.Cylinder{SerialNumber: "S1", Type: models.GasOxygen})
	require.NoError(t, err)
	second, err := store.CreateCylinder(models.Cylinder{SerialNumber: "S2", Type: models.GasArgon})
	require.NoError(t, err)

	// ULIDs sort by creation time, so listing follows insertion order.
	list := store.ListCylinders()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	// Returned values are copies; mutating them must not touch the store.
	list[0].SerialNumber = "mutated"
	got, err := store.GetCylinder(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "S1", got.SerialNumber)
}

func TestStoreSinglePrimaryLocation(t *testing.T) {
	store := NewStore()

	customer, err := store.CreateCustomer(models.Customer{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)

	first, err := store.CreateLocation(customer.ID, models.Location{Name: "Plant", IsPrimary: true})
	require.NoError(t, err)
	_, err = store.CreateLocation(customer.ID, models.Location{Name: "Depot", IsPrimary: true})
	require.NoError(t, err)

	locations, err := store.ListLocations(customer.ID)
	require.NoError(t, err)
	require.Len(t, locations, 2)

	primaries := 0
	for _, l := range locations {
		if l.IsPrimary {
			primaries++
			assert.Equal(t, "Depot", l.Name)
		}
	}
	assert.Equal(t, 1, primaries)

	// Deleting the customer sweeps its locations.
	require.NoError(t, store.DeleteCustomer(customer.ID))
	_, err = store.ListLocations(customer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteLocation(customer.ID, first.ID), ErrNotFound)
}

func TestStoreTransactionTotals(t *testing.T) {
	store := NewStore()

	customer, err := store.CreateCustomer(models.Customer{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)

	tx, err := store.CreateTransaction(models.Transaction{
		CustomerID:      customer.ID,
		TransactionType: models.MovementDelivery,
		Items: []models.TransactionItem{
			{CylinderID: "c1", Quantity: 2, UnitPrice: 40},
			{CylinderID: "c2", Quantity: 1, UnitPrice: 25},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionPending, tx.Status)
	assert.Equal(t, 105.0, tx.TotalAmount)
	assert.Equal(t, 80.0, tx.Items[0].TotalPrice)

	done, err := store.CompleteTransaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	_, err = store.CompleteTransaction(tx.ID)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStoreMaintenanceWindows(t *testing.T) {
	store := NewStore()

	cyl, err := store.CreateCylinder(models.Cylinder{SerialNumber: "S1", Type: models.GasCO2})
	require.NoError(t, err)

	soon, err := store.CreateMaintenance(models.MaintenanceRecord{
		CylinderID:      cyl.ID,
		MaintenanceType: models.MaintenanceInspection,
		ScheduledDate:   time.Now().UTC().AddDate(0, 0, 5),
	})
	require.NoError(t, err)
	past, err := store.CreateMaintenance(models.MaintenanceRecord{
		CylinderID:      cyl.ID,
		MaintenanceType: models.MaintenanceRepair,
		ScheduledDate:   time.Now().UTC().AddDate(0, 0, -5),
	})
	require.NoError(t, err)

	upcoming := store.UpcomingMaintenance(30)
	require.Len(t, upcoming, 1)
	assert.Equal(t, soon.ID, upcoming[0].ID)

	overdue := store.OverdueMaintenance()
	require.Len(t, overdue, 1)
	assert.Equal(t, past.ID, overdue[0].ID)

	// Completed records drop out of both windows.
	_, err = store.UpdateMaintenance(past.ID, func(r *models.MaintenanceRecord) {
		r.Status = models.MaintenanceCompleted
	})
	require.NoError(t, err)
	assert.Empty(t, store.OverdueMaintenance())
}

func TestStoreMetrics(t *testing.T) {
	store := NewStore()

	cyl, err := store.CreateCylinder(models.Cylinder{SerialNumber: "S1", Type: models.GasOxygen})
	require.NoError(t, err)
	_, err = store.CreateMovement(models.CylinderMovement{
		CylinderID:   cyl.ID,
		MovementType: models.MovementDelivery,
	})
	require.NoError(t, err)

	metrics := store.Metrics(30, 5)
	assert.Equal(t, 1, metrics.TotalCylinders)
	assert.Equal(t, 1, metrics.CylindersByStatus[models.CylinderInUse])

	trends := store.UsageTrends("30d", 30)
	require.Len(t, trends.Movements[models.MovementDelivery], 1)
	assert.Equal(t, 1, trends.Movements[models.MovementDelivery][0].Count)
}
