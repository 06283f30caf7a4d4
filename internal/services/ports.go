package services

import (
	"context"

	"github.com/shopspring/decimal"

	"imagique/internal/services/backend"
	"imagique/models"
)

// The services depend on these narrow views of the backend client so tests
// can substitute mocks. *backend.Client satisfies all of them.

type EventBackend interface {
	CreateEvent(ctx context.Context, p backend.EventPayload) (int64, error)
	UpdateEvent(ctx context.Context, eventID int64, p backend.EventPayload) (int64, error)
	AddSponsor(ctx context.Context, eventID int64, s models.SponsorDraft) error
	AddTicketPrice(ctx context.Context, eventID int64, tp models.TicketPriceDraft) error
	SetVenue(ctx context.Context, eventID int64, v models.VenueDraft) error
	ListAllEvents(ctx context.Context) ([]models.Event, error)
	ListOrganizerEvents(ctx context.Context, userDetailsID int64) ([]models.Event, error)
}

type CatalogBackend interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListAllEvents(ctx context.Context) ([]models.Event, error)
	ListOrganizerEvents(ctx context.Context, userDetailsID int64) ([]models.Event, error)
	EventDetails(ctx context.Context, eventID int64) (models.EventDetails, error)
	TicketPrices(ctx context.Context, eventID int64) ([]models.TicketPrice, error)
	DeleteEvent(ctx context.Context, eventID int64) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type BookingBackend interface {
	TicketPrices(ctx context.Context, eventID int64) ([]models.TicketPrice, error)
	EventDetails(ctx context.Context, eventID int64) (models.EventDetails, error)
	Book(ctx context.Context, req models.BookingRequest) (models.Booking, error)
	UserBookings(ctx context.Context, userDetailsID int64) ([]models.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) error
	Revenue(ctx context.Context, eventID int64) (models.Revenue, error)
}

type AccountBackend interface {
	SignIn(ctx context.Context, req models.SignInRequest) (models.Session, error)
	SignUp(ctx context.Context, req models.SignUpRequest) error
	BecomeOrganizer(ctx context.Context, req models.OrganizerRequest) error
	UserDetails(ctx context.Context, userDetailsID int64) (models.UserDetails, error)
	UpdateProfile(ctx context.Context, p models.ProfileUpdate) error
	ChangePassword(ctx context.Context, userDetailsID int64, currentPassword, newPassword string) error
	AddToWallet(ctx context.Context, userDetailsID int64, amount decimal.Decimal) error
}

type AdminBackend interface {
	ListOrganizers(ctx context.Context) ([]models.Organizer, error)
	ApproveOrganizer(ctx context.Context, userDetailsID int64) error
	RejectOrganizer(ctx context.Context, userDetailsID int64) error
	BlockOrganizer(ctx context.Context, userDetailsID int64) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, d models.CategoryDraft) (models.Category, error)
	UpdateCategory(ctx context.Context, d models.CategoryDraft) (models.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

var (
	_ EventBackend   = (*backend.Client)(nil)
	_ CatalogBackend = (*backend.Client)(nil)
	_ BookingBackend = (*backend.Client)(nil)
	_ AccountBackend = (*backend.Client)(nil)
	_ AdminBackend   = (*backend.Client)(nil)
)
