package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"imagique/internal/receipt"
	"imagique/internal/session"
	"imagique/internal/status"
	"imagique/models"
	"imagique/monitoring"
)

// BookingInput is a ticket selection made on an event.
type BookingInput struct {
	EventID         int64
	PriceCategory   string
	NumberOfTickets int
}

type BookingResult struct {
	Booking models.Booking
	Receipt []byte
	// SavedTo is set when receipts are also kept on disk.
	SavedTo string
}

type BookingService struct {
	backend    BookingBackend
	gate       *session.Gate
	renderer   *receipt.Renderer
	notifier   Notifier
	monitor    *monitoring.Monitor
	receiptDir string
}

// NewBookingService wires the booking flow. receiptDir may be empty, in which
// case receipts are only returned in memory.
func NewBookingService(b BookingBackend, gate *session.Gate, renderer *receipt.Renderer, notifier Notifier, monitor *monitoring.Monitor, receiptDir string) *BookingService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &BookingService{
		backend:    b,
		gate:       gate,
		renderer:   renderer,
		notifier:   notifier,
		monitor:    monitor,
		receiptDir: receiptDir,
	}
}

// customer returns the signed-in customer or the reason booking is refused.
func (s *BookingService) customer() (models.Session, error) {
	sess, ok := s.gate.Current()
	if !ok || sess.UserDetailsID == 0 {
		return models.Session{}, status.ErrLoginRequired
	}
	if sess.Role != models.RoleCustomer {
		return models.Session{}, status.ErrBookingNotAllowed
	}
	return sess, nil
}

// Book reserves tickets for the signed-in customer and renders the receipt.
func (s *BookingService) Book(ctx context.Context, in BookingInput) (BookingResult, error) {
	sess, err := s.customer()
	if err != nil {
		return BookingResult{}, err
	}
	if in.PriceCategory == "" || in.NumberOfTickets < 1 {
		return BookingResult{}, status.ErrTicketSelection
	}

	prices, err := s.backend.TicketPrices(ctx, in.EventID)
	if err != nil {
		return BookingResult{}, fmt.Errorf("book: ticket prices: %w", err)
	}
	price, ok := models.FindTicketPrice(prices, in.PriceCategory)
	if !ok {
		return BookingResult{}, status.ErrTicketSelection
	}

	event, err := s.backend.EventDetails(ctx, in.EventID)
	if err != nil {
		return BookingResult{}, fmt.Errorf("book: event details: %w", err)
	}

	booking, err := s.backend.Book(ctx, models.BookingRequest{
		UserID:          sess.UserDetailsID,
		EventID:         in.EventID,
		TicketPriceID:   price.TicketPriceID,
		NumberOfTickets: in.NumberOfTickets,
	})
	s.monitor.TrackBooking("book", monitoring.Outcome(err))
	if err != nil {
		slog.Error("booking failed", "event_id", in.EventID, "user", sess.UserDetailsID, "error", err)
		return BookingResult{}, fmt.Errorf("book: %w", err)
	}

	// the booking stands even if the receipt fails below
	s.notifier.BookingConfirmed(ctx, sess.UserDetailsID, booking)

	data := receiptData(booking, event)
	res := BookingResult{Booking: booking}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, data); err != nil {
		return res, fmt.Errorf("book: booking %d confirmed: %w", booking.BookingID, err)
	}
	res.Receipt = buf.Bytes()

	if s.receiptDir != "" {
		path, err := s.renderer.Save(s.receiptDir, data)
		if err != nil {
			slog.Warn("receipt not saved", "booking_id", booking.BookingID, "error", err)
		} else {
			res.SavedTo = path
		}
	}

	slog.Info("booking confirmed",
		"booking_id", booking.BookingID,
		"event_id", in.EventID,
		"tickets", booking.NoOfTickets,
	)
	return res, nil
}

// receiptData merges the booking reply with the event it was made on. The
// event name, date and time come from the event; the rest from the booking.
func receiptData(b models.Booking, e models.EventDetails) receipt.Data {
	location := b.Location
	if location == "" && e.Venue != nil {
		location = e.Venue.VenueLocation
	}
	name := e.EventName
	if name == "" {
		name = b.EventName
	}
	return receipt.Data{
		BookingID:       b.BookingID,
		FullName:        b.FullName,
		EventName:       name,
		Location:        location,
		Date:            e.Date,
		Time:            e.Time,
		NumberOfTickets: b.NoOfTickets,
		TotalPrice:      b.TotalPrice,
	}
}

// Bookings lists the signed-in user's bookings.
func (s *BookingService) Bookings(ctx context.Context) ([]models.Booking, error) {
	sess, ok := s.gate.Current()
	if !ok || sess.UserDetailsID == 0 {
		return nil, status.ErrLoginRequired
	}
	bookings, err := s.backend.UserBookings(ctx, sess.UserDetailsID)
	if err != nil {
		return nil, fmt.Errorf("bookings: %w", err)
	}
	return bookings, nil
}

// Cancel cancels a confirmed booking and returns it with its new status. A
// booking that is already cancelled is returned unchanged without a request.
func (s *BookingService) Cancel(ctx context.Context, b models.Booking) (models.Booking, error) {
	if !b.Cancellable() {
		return b, nil
	}
	err := s.backend.CancelBooking(ctx, b.BookingID)
	s.monitor.TrackBooking("cancel", monitoring.Outcome(err))
	if err != nil {
		slog.Error("cancel booking failed", "booking_id", b.BookingID, "error", err)
		return b, fmt.Errorf("cancel booking %d: %w", b.BookingID, err)
	}
	b.BookingStatus = models.BookingCancelled

	if sess, ok := s.gate.Current(); ok {
		s.notifier.BookingCancelled(ctx, sess.UserDetailsID, b.BookingID)
	}
	return b, nil
}

// CancelByID looks the booking up among the signed-in user's bookings and
// cancels it.
func (s *BookingService) CancelByID(ctx context.Context, bookingID int64) (models.Booking, error) {
	bookings, err := s.Bookings(ctx)
	if err != nil {
		return models.Booking{}, err
	}
	for _, b := range bookings {
		if b.BookingID == bookingID {
			return s.Cancel(ctx, b)
		}
	}
	return models.Booking{}, fmt.Errorf("cancel booking %d: %w", bookingID, status.ErrNotFound)
}
