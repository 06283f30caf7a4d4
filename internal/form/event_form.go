package form

import (
	"fmt"
	"strconv"
	"sync"

	"imagique/internal/validation"
	"imagique/models"
)

var eventRules = map[validation.Field]func(string) string{
	validation.FieldEventName:     validation.Required("Event name"),
	validation.FieldDescription:   validation.Required("Description"),
	validation.FieldDate:          validation.Required("Date"),
	validation.FieldTime:          validation.Required("Time"),
	validation.FieldCategoryID:    validation.Required("Category"),
	validation.FieldVenueLocation: validation.Required("Venue location"),
	validation.FieldMapsLink:      validation.Required("Maps link"),
	validation.FieldCapacity:      validation.Capacity,
	validation.FieldPrice:         validation.Price,
}

// Snapshot is an immutable copy of the wizard contents handed to the
// submission orchestrator.
type Snapshot struct {
	Draft        models.EventDraft
	Sponsors     []models.SponsorDraft
	TicketPrices []models.TicketPriceDraft
	Venue        models.VenueDraft
}

// FilledSponsors drops rows that are empty or only partly filled.
func (s Snapshot) FilledSponsors() []models.SponsorDraft {
	out := make([]models.SponsorDraft, 0, len(s.Sponsors))
	for _, sp := range s.Sponsors {
		if sp.Filled() {
			out = append(out, sp)
		}
	}
	return out
}

func (s Snapshot) FilledTicketPrices() []models.TicketPriceDraft {
	out := make([]models.TicketPriceDraft, 0, len(s.TicketPrices))
	for _, tp := range s.TicketPrices {
		if tp.Filled() {
			out = append(out, tp)
		}
	}
	return out
}

// EventForm is the state behind the add/edit event wizard.
type EventForm struct {
	mu sync.RWMutex

	draft        models.EventDraft
	sponsors     []models.SponsorDraft
	ticketPrices []models.TicketPriceDraft
	venue        models.VenueDraft

	// report keys event and venue fields by name, row fields by name and index.
	report validation.Report
	wizard Wizard
}

func NewEventForm() *EventForm {
	f := &EventForm{}
	f.reset()
	return f
}

// UpdateField writes one event or venue field and re-validates it.
func (f *EventForm) UpdateField(field validation.Field, value string) (validation.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case validation.FieldEventName:
		f.draft.EventName = value
	case validation.FieldDescription:
		f.draft.Description = value
	case validation.FieldDate:
		f.draft.Date = value
	case validation.FieldTime:
		f.draft.Time = value
	case validation.FieldCategoryID:
		f.draft.CategoryID = value
	case validation.FieldVenueLocation:
		f.venue.VenueLocation = value
	case validation.FieldMapsLink:
		f.venue.MapsLink = value
	case validation.FieldCapacity:
		f.venue.Capacity = value
	default:
		return validation.Outcome{}, fmt.Errorf("event form: unknown field %q", field)
	}

	outcome := validation.From(eventRules[field](value))
	f.report.Set(field, outcome)
	return outcome, nil
}

// UpdateVenue is UpdateField restricted to the venue step.
func (f *EventForm) UpdateVenue(field validation.Field, value string) (validation.Outcome, error) {
	switch field {
	case validation.FieldVenueLocation, validation.FieldMapsLink, validation.FieldCapacity:
		return f.UpdateField(field, value)
	}
	return validation.Outcome{}, fmt.Errorf("event form: unknown venue field %q", field)
}

func (f *EventForm) SetImage(img *models.ImageFile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Image = img
}

func (f *EventForm) AddSponsor() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sponsors = append(f.sponsors, models.SponsorDraft{})
	return len(f.sponsors) - 1
}

func (f *EventForm) UpdateSponsor(i int, field validation.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i < 0 || i >= len(f.sponsors) {
		return fmt.Errorf("event form: sponsor row %d out of range", i)
	}
	switch field {
	case validation.FieldSponsorName:
		f.sponsors[i].SponsorName = value
	case validation.FieldSponsorNumber, validation.FieldContactNumber:
		f.sponsors[i].ContactNumber = value
	default:
		return fmt.Errorf("event form: unknown sponsor field %q", field)
	}
	return nil
}

func (f *EventForm) AddTicketPrice() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticketPrices = append(f.ticketPrices, models.TicketPriceDraft{})
	return len(f.ticketPrices) - 1
}

// UpdateTicketPrice writes one row field. Prices are validated only once
// something is typed, since empty rows are allowed and dropped on submit.
func (f *EventForm) UpdateTicketPrice(i int, field validation.Field, value string) (validation.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i < 0 || i >= len(f.ticketPrices) {
		return validation.Outcome{}, fmt.Errorf("event form: ticket price row %d out of range", i)
	}
	outcome := validation.Valid()
	switch field {
	case validation.FieldPriceCategory:
		f.ticketPrices[i].PriceCategory = value
	case validation.FieldPrice:
		f.ticketPrices[i].Price = value
		if value != "" {
			outcome = validation.From(validation.Price(value))
		}
		f.report.Set(rowField(validation.FieldPrice, i), outcome)
	default:
		return validation.Outcome{}, fmt.Errorf("event form: unknown ticket price field %q", field)
	}
	return outcome, nil
}

func rowField(f validation.Field, i int) validation.Field {
	return validation.Field(string(f) + "[" + strconv.Itoa(i) + "]")
}

// Edit loads an existing event, switching the form to edit mode.
func (f *EventForm) Edit(e models.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reset()
	f.draft = models.EventDraft{
		EventID:     e.EventID,
		EventName:   e.EventName,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
	}
	if e.CategoryID != 0 {
		f.draft.CategoryID = strconv.FormatInt(e.CategoryID, 10)
	}
}

func (f *EventForm) Next() (Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Next()
}

func (f *EventForm) Back() (Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wizard.Back()
}

func (f *EventForm) Step() Step {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.wizard.Step()
}

// Reset clears every draft and rewinds the wizard to the details step.
func (f *EventForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *EventForm) reset() {
	f.draft = models.EventDraft{}
	f.sponsors = []models.SponsorDraft{{}}
	f.ticketPrices = []models.TicketPriceDraft{{}}
	f.venue = models.VenueDraft{}
	f.report = make(validation.Report)
	f.wizard.Reset()
}

// CanSubmit is advisory UI state. Submit does not consult it.
func (f *EventForm) CanSubmit() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return !f.report.HasErrors() && f.draft.Complete()
}

func (f *EventForm) Report() validation.Report {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(validation.Report, len(f.report))
	for k, v := range f.report {
		out[k] = v
	}
	return out
}

func (f *EventForm) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	s := Snapshot{
		Draft:        f.draft,
		Sponsors:     append([]models.SponsorDraft(nil), f.sponsors...),
		TicketPrices: append([]models.TicketPriceDraft(nil), f.ticketPrices...),
		Venue:        f.venue,
	}
	if f.draft.Image != nil {
		img := *f.draft.Image
		img.Content = append([]byte(nil), img.Content...)
		s.Draft.Image = &img
	}
	return s
}
