package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"imagique/internal/form"
	"imagique/internal/services/backend"
	"imagique/internal/session"
	"imagique/internal/status"
	"imagique/models"
	"imagique/monitoring"
)

const (
	fanoutSponsor     = "sponsor"
	fanoutTicketPrice = "ticket_price"
	fanoutVenue       = "venue"
)

// SubmitResult is what a successful submission leaves behind.
type SubmitResult struct {
	EventID int64
	Mode    string // "create" or "update"
	// Events is the refreshed list for the actor; nil when the refresh failed.
	Events []models.Event
}

// EventSubmitter turns the wizard state into backend writes: the event
// itself first, then its sponsors, ticket prices and venue in parallel.
//
// There is no rollback and no idempotency key. When a sub-request fails the
// event and any sub-resources that did succeed stay on the backend, and
// submitting again creates them a second time.
type EventSubmitter struct {
	backend EventBackend
	form    *form.EventForm
	gate    *session.Gate
	monitor *monitoring.Monitor
}

func NewEventSubmitter(b EventBackend, f *form.EventForm, gate *session.Gate, monitor *monitoring.Monitor) *EventSubmitter {
	return &EventSubmitter{
		backend: b,
		form:    f,
		gate:    gate,
		monitor: monitor,
	}
}

// Submit sends the current form contents on behalf of userDetailsID. The
// form's validation report is not consulted; only empty required fields stop
// a submission.
func (s *EventSubmitter) Submit(ctx context.Context, userDetailsID int64) (SubmitResult, error) {
	snap := s.form.Snapshot()
	mode := "create"
	if snap.Draft.Editing() {
		mode = "update"
	}
	res := SubmitResult{Mode: mode}

	if !snap.Draft.Complete() {
		s.monitor.TrackSubmission(mode, "incomplete")
		return res, status.ErrIncompleteDraft
	}

	start := time.Now()
	eventID, err := s.save(ctx, userDetailsID, snap)
	if err != nil {
		s.monitor.TrackSubmission(mode, "failure")
		slog.Error("event save failed", "mode", mode, "event", snap.Draft.EventName, "error", err)
		return res, fmt.Errorf("submit event: %w", err)
	}
	res.EventID = eventID

	if err := s.fanout(ctx, eventID, snap); err != nil {
		s.monitor.TrackSubmission(mode, "partial")
		slog.Error("event sub-resources failed",
			"mode", mode,
			"event_id", eventID,
			"error", err,
		)
		return res, fmt.Errorf("submit event %d: %w", eventID, err)
	}

	s.monitor.TrackSubmission(mode, "success")
	slog.Info("event submitted",
		"mode", mode,
		"event_id", eventID,
		"sponsors", len(snap.FilledSponsors()),
		"ticket_prices", len(snap.FilledTicketPrices()),
		"took", time.Since(start),
	)

	s.form.Reset()

	events, err := s.refresh(ctx, userDetailsID)
	if err != nil {
		slog.Warn("event list refresh failed", "error", err)
		return res, nil
	}
	res.Events = events
	return res, nil
}

func (s *EventSubmitter) save(ctx context.Context, userDetailsID int64, snap form.Snapshot) (int64, error) {
	payload := backend.EventPayload{
		UserDetailsID: userDetailsID,
		Draft:         snap.Draft,
		Sponsors:      snap.Sponsors,
		TicketPrices:  snap.TicketPrices,
		Venue:         snap.Venue,
	}
	if snap.Draft.Editing() {
		return s.backend.UpdateEvent(ctx, snap.Draft.EventID, payload)
	}
	return s.backend.CreateEvent(ctx, payload)
}

// fanout issues one request per filled sponsor row, one per filled ticket
// price row and exactly one for the venue. Every request runs to completion;
// the first error is returned once all have finished.
func (s *EventSubmitter) fanout(ctx context.Context, eventID int64, snap form.Snapshot) error {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed int
	)

	run := func(kind string, call func() error) {
		g.Go(func() error {
			err := call()
			s.monitor.TrackFanout(kind, monitoring.Outcome(err))
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				return fmt.Errorf("%s: %w", kind, err)
			}
			return nil
		})
	}

	for _, sp := range snap.FilledSponsors() {
		sp := sp
		run(fanoutSponsor, func() error { return s.backend.AddSponsor(ctx, eventID, sp) })
	}
	for _, tp := range snap.FilledTicketPrices() {
		tp := tp
		run(fanoutTicketPrice, func() error { return s.backend.AddTicketPrice(ctx, eventID, tp) })
	}
	run(fanoutVenue, func() error { return s.backend.SetVenue(ctx, eventID, snap.Venue) })

	err := g.Wait()
	if failed > 1 {
		return fmt.Errorf("%d sub-requests failed, first: %w", failed, err)
	}
	return err
}

// refresh re-reads the list the actor manages: their own events for an
// organizer, every event otherwise.
func (s *EventSubmitter) refresh(ctx context.Context, userDetailsID int64) ([]models.Event, error) {
	if s.gate != nil && s.gate.Role() == models.RoleOrganizer {
		return s.backend.ListOrganizerEvents(ctx, userDetailsID)
	}
	return s.backend.ListAllEvents(ctx)
}
