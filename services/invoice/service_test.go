package invoice

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"stayease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*models.Invoice
	seq      int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*models.Invoice)}
}

func (r *fakeInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice %s not found", id)
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) List(filter bson.M, skip, limit int64) ([]models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Invoice
	for _, inv := range r.invoices {
		if userID, ok := filter["user_id"].(string); ok && inv.UserID != userID {
			continue
		}
		if status, ok := filter["status"].(string); ok && inv.Status != status {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) DueWithin(days int) ([]models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, days)
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.Status == models.InvoicePending && inv.DueDate.Before(cutoff) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) PaidSorted(limit int64) ([]models.Invoice, error) { return nil, nil }

func (r *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return fmt.Errorf("invoice %s not found", id)
	}
	if status, ok := updateDoc["status"].(string); ok {
		inv.Status = status
	}
	return nil
}

func (r *fakeInvoiceRepo) MarkOverdue(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, inv := range r.invoices {
		if inv.Status == models.InvoicePending && inv.DueDate.Before(now) {
			inv.Status = models.InvoiceOverdue
			n++
		}
	}
	return n, nil
}

func (r *fakeInvoiceRepo) NextInvoiceNumber() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return fmt.Sprintf("INV-%04d", r.seq), nil
}

func (r *fakeInvoiceRepo) CountByStatus() (map[string]int64, error) { return nil, nil }

func (r *fakeInvoiceRepo) RevenueSince(t time.Time) (float64, error) { return 0, nil }

type fakeApartmentRepo struct {
	apartments map[string]*models.Apartment
}

func newFakeApartmentRepo(apartments ...*models.Apartment) *fakeApartmentRepo {
	r := &fakeApartmentRepo{apartments: make(map[string]*models.Apartment)}
	for _, apt := range apartments {
		r.apartments[apt.ID] = apt
	}
	return r
}

func (r *fakeApartmentRepo) GetByID(id string) (*models.Apartment, error) {
	apt, ok := r.apartments[id]
	if !ok {
		return nil, fmt.Errorf("apartment %s not found", id)
	}
	return apt, nil
}

func (r *fakeApartmentRepo) GetByCode(code string) (*models.Apartment, error) { return nil, nil }

func (r *fakeApartmentRepo) List(filter bson.M, skip, limit int64) ([]models.Apartment, error) {
	return nil, nil
}

func (r *fakeApartmentRepo) Create(apartment *models.Apartment) error { return nil }

func (r *fakeApartmentRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }

func (r *fakeApartmentRepo) AddResident(id, userID string) error { return nil }

func (r *fakeApartmentRepo) RemoveResident(id, userID string) error { return nil }

func (r *fakeApartmentRepo) Delete(id string) error { return nil }

func newTestService() (*DefaultInvoiceService, *fakeInvoiceRepo) {
	repo := newFakeInvoiceRepo()
	apartments := newFakeApartmentRepo(&models.Apartment{ID: "apt-1", Code: "A-101"})
	return &DefaultInvoiceService{Repo: repo, Apartments: apartments}, repo
}

func validInput() CreateInput {
	return CreateInput{
		UserID:      "user-1",
		ApartmentID: "apt-1",
		Type:        models.InvoiceTypeRent,
		Description: "Rent for September",
		Amount:      500000,
		DueDate:     time.Now().AddDate(0, 0, 14),
	}
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(validInput())
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", first.InvoiceNumber)
	assert.Equal(t, models.InvoicePending, first.Status)
	assert.False(t, first.IssueDate.IsZero())

	second, err := svc.Create(validInput())
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", second.InvoiceNumber)
}

func TestCreateRejectsUnknownApartment(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.ApartmentID = "apt-missing"
	_, err := svc.Create(in)
	assert.Error(t, err)
}

func TestCreateRejectsDueDateBeforeIssueDate(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.IssueDate = time.Now()
	in.DueDate = time.Now().AddDate(0, 0, -1)
	_, err := svc.Create(in)
	assert.Error(t, err)
}

func TestCancelSemantics(t *testing.T) {
	svc, repo := newTestService()

	inv, err := svc.Create(validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(inv.ID))
	stored, err := repo.GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceCancelled, stored.Status)

	// Cancelling twice is a no-op.
	assert.NoError(t, svc.Cancel(inv.ID))

	// A paid invoice cannot be cancelled.
	paid, err := svc.Create(validInput())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateSetDocument(paid.ID, bson.M{"status": models.InvoicePaid}))
	assert.Error(t, svc.Cancel(paid.ID))
}

func TestSweepOverdue(t *testing.T) {
	svc, repo := newTestService()

	in := validInput()
	in.IssueDate = time.Now().AddDate(0, 0, -30)
	in.DueDate = time.Now().AddDate(0, 0, -1)
	overdue, err := svc.Create(in)
	require.NoError(t, err)

	current, err := svc.Create(validInput())
	require.NoError(t, err)

	n, err := svc.SweepOverdue()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := repo.GetByID(overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceOverdue, stored.Status)

	stored, err = repo.GetByID(current.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePending, stored.Status)
}
