package services

import (
	"context"
	"fmt"

	"imagique/models"
)

// FestivalCategory is the category name behind the festival rail.
const FestivalCategory = "Festival"

// Catalog serves the read side of events: the public rails and the
// management lists.
type Catalog struct {
	backend CatalogBackend
}

func NewCatalog(b CatalogBackend) *Catalog {
	return &Catalog{backend: b}
}

func (c *Catalog) Upcoming(ctx context.Context) ([]models.Event, error) {
	events, err := c.backend.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: upcoming: %w", err)
	}
	return events, nil
}

func (c *Catalog) All(ctx context.Context) ([]models.Event, error) {
	return c.filtered(ctx, "all events", func(models.Event) bool { return true })
}

// ByCategory filters the full event list on categoryID.
func (c *Catalog) ByCategory(ctx context.Context, categoryID int64) ([]models.Event, error) {
	return c.filtered(ctx, "by category", func(e models.Event) bool {
		return e.CategoryID == categoryID
	})
}

func (c *Catalog) Festival(ctx context.Context) ([]models.Event, error) {
	return c.filtered(ctx, "festival", func(e models.Event) bool {
		return e.CategoryName == FestivalCategory
	})
}

func (c *Catalog) filtered(ctx context.Context, what string, keep func(models.Event) bool) ([]models.Event, error) {
	all, err := c.backend.ListAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", what, err)
	}
	out := make([]models.Event, 0, len(all))
	for _, e := range all {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *Catalog) Details(ctx context.Context, eventID int64) (models.EventDetails, error) {
	d, err := c.backend.EventDetails(ctx, eventID)
	if err != nil {
		return models.EventDetails{}, fmt.Errorf("catalog: details %d: %w", eventID, err)
	}
	return d, nil
}

func (c *Catalog) TicketPrices(ctx context.Context, eventID int64) ([]models.TicketPrice, error) {
	prices, err := c.backend.TicketPrices(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("catalog: ticket prices %d: %w", eventID, err)
	}
	return prices, nil
}

func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := c.backend.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: categories: %w", err)
	}
	return categories, nil
}

// Managed lists the events an actor may edit: an organizer's own events, or
// every event for an admin.
func (c *Catalog) Managed(ctx context.Context, actor models.Session) ([]models.Event, error) {
	var (
		events []models.Event
		err    error
	)
	if actor.Role == models.RoleOrganizer {
		events, err = c.backend.ListOrganizerEvents(ctx, actor.UserDetailsID)
	} else {
		events, err = c.backend.ListAllEvents(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: managed events: %w", err)
	}
	return events, nil
}

func (c *Catalog) Delete(ctx context.Context, eventID int64) error {
	if err := c.backend.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("catalog: delete %d: %w", eventID, err)
	}
	return nil
}
