package backend

import (
	"context"
	"fmt"
	"net/http"

	"imagique/internal/status"
	"imagique/models"
)

// ListEvents returns the upcoming events shown on the landing page.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	return c.listEvents(ctx, "events.list", "/api/events")
}

// ListAllEvents returns every event, past ones included.
func (c *Client) ListAllEvents(ctx context.Context) ([]models.Event, error) {
	return c.listEvents(ctx, "events.list_all", "/api/events/getallevents")
}

func (c *Client) ListOrganizerEvents(ctx context.Context, userDetailsID int64) ([]models.Event, error) {
	return c.listEvents(ctx, "events.list_organizer", "/api/events/organizer/"+itoa(userDetailsID))
}

func (c *Client) listEvents(ctx context.Context, op, path string) ([]models.Event, error) {
	var events []models.Event
	if err := c.getJSON(ctx, op, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent posts the multipart event form and returns the new event id.
func (c *Client) CreateEvent(ctx context.Context, p EventPayload) (int64, error) {
	return c.saveEvent(ctx, "events.create", http.MethodPost, "/api/events", p)
}

// UpdateEvent replaces the event and returns the id the backend echoes back.
func (c *Client) UpdateEvent(ctx context.Context, eventID int64, p EventPayload) (int64, error) {
	return c.saveEvent(ctx, "events.update", http.MethodPut, "/api/events/"+itoa(eventID), p)
}

func (c *Client) saveEvent(ctx context.Context, op, method, path string, p EventPayload) (int64, error) {
	body, contentType, err := p.encode()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var reply struct {
		EventID int64 `json:"eventId"`
	}
	if err := c.do(ctx, request{op: op, method: method, path: path, body: body, contentType: contentType}, &reply); err != nil {
		return 0, err
	}
	if reply.EventID == 0 {
		return 0, fmt.Errorf("%s: %w", op, status.ErrEventIDMissing)
	}
	return reply.EventID, nil
}

func (c *Client) DeleteEvent(ctx context.Context, eventID int64) error {
	return c.do(ctx, request{op: "events.delete", method: http.MethodDelete, path: "/api/events/" + itoa(eventID)}, nil)
}

func (c *Client) EventDetails(ctx context.Context, eventID int64) (models.EventDetails, error) {
	var details models.EventDetails
	err := c.getJSON(ctx, "events.details", "/api/events/"+itoa(eventID)+"/details", &details)
	return details, err
}

func (c *Client) TicketPrices(ctx context.Context, eventID int64) ([]models.TicketPrice, error) {
	var prices []models.TicketPrice
	if err := c.getJSON(ctx, "events.ticket_prices", "/api/events/"+itoa(eventID)+"/ticketPrices", &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

func (c *Client) AddSponsor(ctx context.Context, eventID int64, s models.SponsorDraft) error {
	return c.sendJSON(ctx, "events.add_sponsor", http.MethodPost, "/api/events/"+itoa(eventID)+"/sponsors", s, nil)
}

func (c *Client) AddTicketPrice(ctx context.Context, eventID int64, tp models.TicketPriceDraft) error {
	return c.sendJSON(ctx, "events.add_ticket_price", http.MethodPost, "/api/events/"+itoa(eventID)+"/ticketPrices", tp, nil)
}

func (c *Client) SetVenue(ctx context.Context, eventID int64, v models.VenueDraft) error {
	return c.sendJSON(ctx, "events.set_venue", http.MethodPost, "/api/events/"+itoa(eventID)+"/venue", v, nil)
}
