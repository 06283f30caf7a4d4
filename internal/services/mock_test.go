package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"imagique/internal/services/backend"
	"imagique/internal/session"
	"imagique/models"
)

// MockBackend stands in for *backend.Client in every service test.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) CreateEvent(ctx context.Context, p backend.EventPayload) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBackend) UpdateEvent(ctx context.Context, eventID int64, p backend.EventPayload) (int64, error) {
	args := m.Called(ctx, eventID, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBackend) AddSponsor(ctx context.Context, eventID int64, s models.SponsorDraft) error {
	return m.Called(ctx, eventID, s).Error(0)
}

func (m *MockBackend) AddTicketPrice(ctx context.Context, eventID int64, tp models.TicketPriceDraft) error {
	return m.Called(ctx, eventID, tp).Error(0)
}

func (m *MockBackend) SetVenue(ctx context.Context, eventID int64, v models.VenueDraft) error {
	return m.Called(ctx, eventID, v).Error(0)
}

func (m *MockBackend) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	return events(args.Get(0)), args.Error(1)
}

func (m *MockBackend) ListAllEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	return events(args.Get(0)), args.Error(1)
}

func (m *MockBackend) ListOrganizerEvents(ctx context.Context, userDetailsID int64) ([]models.Event, error) {
	args := m.Called(ctx, userDetailsID)
	return events(args.Get(0)), args.Error(1)
}

func events(v any) []models.Event {
	if v == nil {
		return nil
	}
	return v.([]models.Event)
}

func (m *MockBackend) EventDetails(ctx context.Context, eventID int64) (models.EventDetails, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(models.EventDetails), args.Error(1)
}

func (m *MockBackend) TicketPrices(ctx context.Context, eventID int64) ([]models.TicketPrice, error) {
	args := m.Called(ctx, eventID)
	prices, _ := args.Get(0).([]models.TicketPrice)
	return prices, args.Error(1)
}

func (m *MockBackend) DeleteEvent(ctx context.Context, eventID int64) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *MockBackend) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *MockBackend) CreateCategory(ctx context.Context, d models.CategoryDraft) (models.Category, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockBackend) UpdateCategory(ctx context.Context, d models.CategoryDraft) (models.Category, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockBackend) DeleteCategory(ctx context.Context, categoryID int64) error {
	return m.Called(ctx, categoryID).Error(0)
}

func (m *MockBackend) Book(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Booking), args.Error(1)
}

func (m *MockBackend) UserBookings(ctx context.Context, userDetailsID int64) ([]models.Booking, error) {
	args := m.Called(ctx, userDetailsID)
	bookings, _ := args.Get(0).([]models.Booking)
	return bookings, args.Error(1)
}

func (m *MockBackend) CancelBooking(ctx context.Context, bookingID int64) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *MockBackend) Revenue(ctx context.Context, eventID int64) (models.Revenue, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(models.Revenue), args.Error(1)
}

func (m *MockBackend) SignIn(ctx context.Context, req models.SignInRequest) (models.Session, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *MockBackend) SignUp(ctx context.Context, req models.SignUpRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockBackend) BecomeOrganizer(ctx context.Context, req models.OrganizerRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockBackend) UserDetails(ctx context.Context, userDetailsID int64) (models.UserDetails, error) {
	args := m.Called(ctx, userDetailsID)
	return args.Get(0).(models.UserDetails), args.Error(1)
}

func (m *MockBackend) UpdateProfile(ctx context.Context, p models.ProfileUpdate) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockBackend) ChangePassword(ctx context.Context, userDetailsID int64, currentPassword, newPassword string) error {
	return m.Called(ctx, userDetailsID, currentPassword, newPassword).Error(0)
}

func (m *MockBackend) AddToWallet(ctx context.Context, userDetailsID int64, amount decimal.Decimal) error {
	return m.Called(ctx, userDetailsID, amount).Error(0)
}

func (m *MockBackend) ListOrganizers(ctx context.Context) ([]models.Organizer, error) {
	args := m.Called(ctx)
	organizers, _ := args.Get(0).([]models.Organizer)
	return organizers, args.Error(1)
}

func (m *MockBackend) ApproveOrganizer(ctx context.Context, userDetailsID int64) error {
	return m.Called(ctx, userDetailsID).Error(0)
}

func (m *MockBackend) RejectOrganizer(ctx context.Context, userDetailsID int64) error {
	return m.Called(ctx, userDetailsID).Error(0)
}

func (m *MockBackend) BlockOrganizer(ctx context.Context, userDetailsID int64) error {
	return m.Called(ctx, userDetailsID).Error(0)
}

var (
	_ EventBackend   = (*MockBackend)(nil)
	_ CatalogBackend = (*MockBackend)(nil)
	_ BookingBackend = (*MockBackend)(nil)
	_ AccountBackend = (*MockBackend)(nil)
	_ AdminBackend   = (*MockBackend)(nil)
)

// MockNotifier records booking notifications.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, userDetailsID int64, b models.Booking) {
	m.Called(ctx, userDetailsID, b)
}

func (m *MockNotifier) BookingCancelled(ctx context.Context, userDetailsID int64, bookingID int64) {
	m.Called(ctx, userDetailsID, bookingID)
}

// newGate returns a gate backed by a temp file, signed in as s when s has a
// role.
func newGate(t *testing.T, s models.Session) *session.Gate {
	t.Helper()
	gate := session.NewGate(session.NewFileStore(filepath.Join(t.TempDir(), "session.json")))
	if s.Role != "" {
		require.NoError(t, gate.SignIn(context.Background(), s))
	}
	return gate
}

var (
	customer  = models.Session{Email: "jane@example.com", Role: models.RoleCustomer, UserDetailsID: 7}
	organizer = models.Session{Email: "org@example.com", Role: models.RoleOrganizer, UserDetailsID: 3}
	admin     = models.Session{Email: "admin@example.com", Role: models.RoleAdmin, UserDetailsID: 1}
)
