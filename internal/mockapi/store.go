package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/gastrack-dev/gastrack/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("already exists")
	ErrBadCredentials = errors.New("incorrect email or password")
)

// Store is an in-memory data store backing the development API server.
// Everything is lost on restart; that is the point.
type Store struct {
	mu sync.RWMutex

	users        map[string]*userRecord
	cylinders    map[string]*models.Cylinder
	customers    map[string]*models.Customer
	locations    map[string]*models.Location
	movements    map[string]*models.CylinderMovement
	transactions map[string]*models.Transaction
	maintenance  map[string]*models.MaintenanceRecord
	schedules    map[string]*models.MaintenanceSchedule
}

type userRecord struct {
	models.User
	PasswordHash string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*userRecord),
		cylinders:    make(map[string]*models.Cylinder),
		customers:    make(map[string]*models.Customer),
		locations:    make(map[string]*models.Location),
		movements:    make(map[string]*models.CylinderMovement),
		transactions: make(map[string]*models.Transaction),
		maintenance:  make(map[string]*models.MaintenanceRecord),
		schedules:    make(map[string]*models.MaintenanceSchedule),
	}
}

func newID() string {
	return ulid.Make().String()
}

// --- Users ---

// CreateUser registers a user with a bcrypt-hashed password.
func (s *Store) CreateUser(email, password, fullName, phone, address string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, ErrDuplicate
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rec := &userRecord{
		User: models.User{
			ID:          newID(),
			Email:       email,
			FullName:    fullName,
			Role:        role,
			PhoneNumber: phone,
			Address:     address,
			IsActive:    true,
			CreatedAt:   time.Now().UTC(),
		},
		PasswordHash: string(hash),
	}
	s.users[rec.ID] = rec

	user := rec.User
	return &user, nil
}

// Authenticate verifies credentials and records the login time.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
				return nil, ErrBadCredentials
			}
			now := time.Now().UTC()
			u.LastLogin = &now
			user := u.User
			return &user, nil
		}
	}
	return nil, ErrBadCredentials
}

// UserByID returns a user by ID.
func (s *Store) UserByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := rec.User
	return &user, nil
}

// --- Cylinders ---

func (s *Store) ListCylinders() []models.Cylinder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Cylinder, 0, len(s.cylinders))
	for _, c := range s.cylinders {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetCylinder(id string) (*models.Cylinder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cylinders[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *Store) CreateCylinder(c models.Cylinder) (*models.Cylinder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.cylinders {
		if existing.SerialNumber == c.SerialNumber {
			return nil, ErrDuplicate
		}
	}

	c.ID = newID()
	c.QRCode = "GASTRACK:" + c.ID
	if c.Status == "" {
		c.Status = models.CylinderAvailable
	}
	c.CreatedAt = time.Now().UTC()
	s.cylinders[c.ID] = &c

	out := c
	return &out, nil
}

// UpdateCylinder applies the mutation fn to the cylinder under lock.
func (s *Store) UpdateCylinder(id string, fn func(*models.Cylinder)) (*models.Cylinder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cylinders[id]
	if !ok {
		return nil, ErrNotFound
	}
	fn(c)
	now := time.Now().UTC()
	c.UpdatedAt = &now

	out := *c
	return &out, nil
}

func (s *Store) DeleteCylinder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cylinders[id]; !ok {
		return ErrNotFound
	}
	delete(s.cylinders, id)
	return nil
}

// FindCylinder looks a cylinder up by serial number or barcode.
func (s *Store) FindCylinder(identifier string) (*models.Cylinder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cylinders {
		if c.SerialNumber == identifier || (c.Barcode != "" && c.Barcode == identifier) {
			out := *c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// --- Customers & locations ---

func (s *Store) ListCustomers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, s.customerWithLocations(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetCustomer(id string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.customerWithLocations(c)
	return &out, nil
}

// customerWithLocations must be called with the lock held.
func (s *Store) customerWithLocations(c *models.Customer) models.Customer {
	out := *c
	out.Locations = nil
	for _, l := range s.locations {
		if l.CustomerID == c.ID {
			out.Locations = append(out.Locations, *l)
		}
	}
	sort.Slice(out.Locations, func(i, j int) bool { return out.Locations[i].ID < out.Locations[j].ID })
	return out
}

func (s *Store) CreateCustomer(c models.Customer) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return nil, ErrDuplicate
		}
	}

	c.ID = newID()
	c.IsActive = true
	c.CreatedAt = time.Now().UTC()
	c.Locations = nil
	s.customers[c.ID] = &c

	out := c
	return &out, nil
}

func (s *Store) UpdateCustomer(id string, fn func(*models.Customer)) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	fn(c)
	now := time.Now().UTC()
	c.UpdatedAt = &now

	out := s.customerWithLocations(c)
	return &out, nil
}

func (s *Store) DeleteCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return ErrNotFound
	}
	delete(s.customers, id)
	for lid, l := range s.locations {
		if l.CustomerID == id {
			delete(s.locations, lid)
		}
	}
	return nil
}

func (s *Store) ListLocations(customerID string) ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.customers[customerID]; !ok {
		return nil, ErrNotFound
	}
	var out []models.Location
	for _, l := range s.locations {
		if l.CustomerID == customerID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateLocation(customerID string, l models.Location) (*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return nil, ErrNotFound
	}

	l.ID = newID()
	l.CustomerID = customerID
	l.CreatedAt = time.Now().UTC()

	// Only one primary location per customer.
	if l.IsPrimary {
		for _, other := range s.locations {
			if other.CustomerID == customerID {
				other.IsPrimary = false
			}
		}
	}
	s.locations[l.ID] = &l

	out := l
	return &out, nil
}

func (s *Store) DeleteLocation(customerID, locationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locations[locationID]
	if !ok || l.CustomerID != customerID {
		return ErrNotFound
	}
	delete(s.locations, locationID)
	return nil
}

// --- Movements & transactions ---

func (s *Store) ListMovements() []models.CylinderMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CylinderMovement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func (s *Store) GetMovement(id string) (*models.CylinderMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movements[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *m
	return &out, nil
}

// CreateMovement records a movement and flips the cylinder status for
// deliveries, returns and maintenance moves.
func (s *Store) CreateMovement(m models.CylinderMovement) (*models.CylinderMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cylinders[m.CylinderID]
	if !ok {
		return nil, ErrNotFound
	}

	m.ID = newID()
	m.Timestamp = time.Now().UTC()
	s.movements[m.ID] = &m

	switch m.MovementType {
	case models.MovementDelivery:
		c.Status = models.CylinderInUse
	case models.MovementReturn, models.MovementPickup:
		c.Status = models.CylinderAvailable
	case models.MovementMaintenance:
		c.Status = models.CylinderMaintenance
	}

	out := m
	return &out, nil
}

func (s *Store) ListTransactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) GetTransaction(id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *t
	return &out, nil
}

func (s *Store) CreateTransaction(t models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[t.CustomerID]; !ok {
		return nil, ErrNotFound
	}

	t.ID = newID()
	t.Status = models.TransactionPending
	t.CreatedAt = time.Now().UTC()
	t.TotalAmount = 0
	for i := range t.Items {
		t.Items[i].ID = newID()
		t.Items[i].TransactionID = t.ID
		t.Items[i].TotalPrice = float64(t.Items[i].Quantity) * t.Items[i].UnitPrice
		t.TotalAmount += t.Items[i].TotalPrice
	}
	s.transactions[t.ID] = &t

	out := t
	return &out, nil
}

// CompleteTransaction marks a pending transaction completed.
func (s *Store) CompleteTransaction(id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if t.Status != models.TransactionPending {
		return nil, ErrDuplicate
	}
	now := time.Now().UTC()
	t.Status = models.TransactionCompleted
	t.CompletedAt = &now

	out := *t
	return &out, nil
}

// --- Maintenance ---

func (s *Store) ListMaintenance() []models.MaintenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MaintenanceRecord, 0, len(s.maintenance))
	for _, r := range s.maintenance {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

func (s *Store) GetMaintenance(id string) (*models.MaintenanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.maintenance[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r
	return &out, nil
}

func (s *Store) CreateMaintenance(r models.MaintenanceRecord) (*models.MaintenanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cylinders[r.CylinderID]; !ok {
		return nil, ErrNotFound
	}

	r.ID = newID()
	r.Status = models.MaintenanceScheduled
	s.maintenance[r.ID] = &r

	out := r
	return &out, nil
}

func (s *Store) UpdateMaintenance(id string, fn func(*models.MaintenanceRecord)) (*models.MaintenanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.maintenance[id]
	if !ok {
		return nil, ErrNotFound
	}
	fn(r)

	// A completed inspection bumps the cylinder's inspection dates.
	if r.Status == models.MaintenanceCompleted && r.MaintenanceType == models.MaintenanceInspection {
		if c, ok := s.cylinders[r.CylinderID]; ok {
			completed := time.Now().UTC()
			if r.CompletedDate != nil {
				completed = *r.CompletedDate
			}
			next := completed.AddDate(1, 0, 0)
			c.LastInspection = &completed
			c.NextInspection = &next
		}
	}

	out := *r
	return &out, nil
}

func (s *Store) MaintenanceByCylinder(cylinderID string) []models.MaintenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MaintenanceRecord
	for _, r := range s.maintenance {
		if r.CylinderID == cylinderID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

// UpcomingMaintenance returns scheduled records due within the window.
func (s *Store) UpcomingMaintenance(days int) []models.MaintenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, days)

	var out []models.MaintenanceRecord
	for _, r := range s.maintenance {
		if r.Status == models.MaintenanceScheduled && !r.ScheduledDate.Before(now) && r.ScheduledDate.Before(cutoff) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

// OverdueMaintenance returns scheduled records past their date.
func (s *Store) OverdueMaintenance() []models.MaintenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now().UTC()

	var out []models.MaintenanceRecord
	for _, r := range s.maintenance {
		if r.Status == models.MaintenanceScheduled && r.ScheduledDate.Before(now) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

func (s *Store) CreateSchedule(cylinderID string, maintenanceType models.MaintenanceType, frequencyDays int) (*models.MaintenanceSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cylinders[cylinderID]; !ok {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	next := now.AddDate(0, 0, frequencyDays)
	sched := &models.MaintenanceSchedule{
		ID:              newID(),
		CylinderID:      cylinderID,
		MaintenanceType: maintenanceType,
		FrequencyDays:   frequencyDays,
		NextMaintenance: &next,
		IsActive:        true,
		CreatedAt:       now,
	}
	s.schedules[sched.ID] = sched

	out := *sched
	return &out, nil
}

// --- Analytics ---

func (s *Store) Metrics(upcomingDays, recentLimit int) models.DashboardMetrics {
	upcoming := s.UpcomingMaintenance(upcomingDays)
	transactions := s.ListTransactions()

	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := make(map[models.CylinderStatus]int)
	for _, c := range s.cylinders {
		byStatus[c.Status]++
	}

	// Most recent first.
	for i, j := 0, len(transactions)-1; i < j; i, j = i+1, j-1 {
		transactions[i], transactions[j] = transactions[j], transactions[i]
	}
	if len(transactions) > recentLimit {
		transactions = transactions[:recentLimit]
	}

	return models.DashboardMetrics{
		TotalCylinders:      len(s.cylinders),
		CylindersByStatus:   byStatus,
		TotalCustomers:      len(s.customers),
		RecentTransactions:  transactions,
		UpcomingMaintenance: upcoming,
	}
}

// UsageTrends buckets movements per day over the window.
func (s *Store) UsageTrends(timeRange string, days int) models.UsageTrends {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	buckets := make(map[models.MovementType]map[string]int)
	for _, m := range s.movements {
		if m.Timestamp.Before(cutoff) {
			continue
		}
		day := m.Timestamp.Format("2006-01-02")
		if buckets[m.MovementType] == nil {
			buckets[m.MovementType] = make(map[string]int)
		}
		buckets[m.MovementType][day]++
	}

	trends := models.UsageTrends{
		Range:     timeRange,
		Movements: make(map[models.MovementType][]models.TrendPoint),
	}
	for movementType, byDay := range buckets {
		keys := make([]string, 0, len(byDay))
		for day := range byDay {
			keys = append(keys, day)
		}
		sort.Strings(keys)
		points := make([]models.TrendPoint, 0, len(keys))
		for _, day := range keys {
			points = append(points, models.TrendPoint{Period: day, Count: byDay[day]})
		}
		trends.Movements[movementType] = points
	}
	return trends
}

func (s *Store) CustomerDistribution() []models.CustomerDistribution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, c := range s.customers {
		counts[c.BusinessType]++
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	out := make([]models.CustomerDistribution, 0, len(types))
	for _, t := range types {
		out = append(out, models.CustomerDistribution{BusinessType: t, Count: counts[t]})
	}
	return out
}

func (s *Store) MaintenanceTrends(timeRange string, days int) models.MaintenanceTrends {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	byType := make(map[models.MaintenanceType]int)
	total, completed := 0, 0
	for _, r := range s.maintenance {
		if r.ScheduledDate.Before(cutoff) {
			continue
		}
		byType[r.MaintenanceType]++
		total++
		if r.Status == models.MaintenanceCompleted {
			completed++
		}
	}

	trends := models.MaintenanceTrends{
		Range:  timeRange,
		ByType: byType,
	}
	if total > 0 {
		trends.CompletionRate = float64(completed) / float64(total)
	}
	return trends
}
