package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"imagique/models"
)

// Book reserves tickets. All arguments travel as query parameters with an
// empty body.
func (c *Client) Book(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	q := url.Values{}
	q.Set("userId", itoa(req.UserID))
	q.Set("eventId", itoa(req.EventID))
	q.Set("ticketPriceId", itoa(req.TicketPriceID))
	q.Set("numberOfTickets", strconv.Itoa(req.NumberOfTickets))

	var booking models.Booking
	err := c.do(ctx, request{op: "bookings.book", method: http.MethodPost, path: "/api/bookings/book", query: q}, &booking)
	return booking, err
}

func (c *Client) UserBookings(ctx context.Context, userDetailsID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.getJSON(ctx, "bookings.user", "/api/bookings/user/"+itoa(userDetailsID), &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID int64) error {
	return c.do(ctx, request{op: "bookings.cancel", method: http.MethodPut, path: "/api/bookings/cancel/" + itoa(bookingID)}, nil)
}

// Revenue returns the event totals. Missing fields decode as zero.
func (c *Client) Revenue(ctx context.Context, eventID int64) (models.Revenue, error) {
	var rev models.Revenue
	err := c.getJSON(ctx, "bookings.revenue", "/api/bookings/revenue/"+itoa(eventID), &rev)
	return rev, err
}
