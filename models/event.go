package models

import "strings"

type Event struct {
	EventID       int64  `json:"eventId"`
	EventName     string `json:"eventName"`
	Description   string `json:"description"`
	Date          string `json:"date"` // yyyy-mm-dd
	Time          string `json:"time"` // HH:mm or HH:mm:ss
	CategoryID    int64  `json:"categoryId,omitempty"`
	CategoryName  string `json:"categoryName,omitempty"`
	ImagePath     string `json:"imagePath,omitempty"`
	UserDetailsID int64  `json:"userDetailsId,omitempty"`
}

type EventDetails struct {
	EventID       int64         `json:"eventId"`
	EventName     string        `json:"eventName"`
	Description   string        `json:"description"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	CategoryName  string        `json:"categoryName,omitempty"`
	ImagePath     string        `json:"imagePath,omitempty"`
	TotalCapacity int           `json:"totalCapacity"`
	Venue         *Venue        `json:"venue,omitempty"`
	Sponsors      []Sponsor     `json:"sponsors,omitempty"`
	TicketPrices  []TicketPrice `json:"ticketPrices,omitempty"`
}

// ImageFile is an uploaded image carried in a multipart request.
type ImageFile struct {
	Name    string
	Content []byte
}

// EventDraft is the unsaved event being edited in the wizard. A zero EventID
// means create mode.
type EventDraft struct {
	EventID     int64
	EventName   string
	Description string
	Date        string
	Time        string
	CategoryID  string
	Image       *ImageFile
}

// Editing reports whether the draft targets an existing event.
func (d EventDraft) Editing() bool {
	return d.EventID != 0
}

// Complete reports whether every required scalar field is filled.
func (d EventDraft) Complete() bool {
	for _, v := range []string{d.EventName, d.Description, d.Date, d.Time, d.CategoryID} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

type SponsorDraft struct {
	SponsorName   string `json:"sponsorName"`
	ContactNumber string `json:"contactNumber"`
}

// Filled reports whether every sub-field of the row is populated.
func (s SponsorDraft) Filled() bool {
	return s.SponsorName != "" && s.ContactNumber != ""
}

type TicketPriceDraft struct {
	PriceCategory string `json:"priceCategory"`
	Price         string `json:"price"`
}

func (t TicketPriceDraft) Filled() bool {
	return t.PriceCategory != "" && t.Price != ""
}

type VenueDraft struct {
	VenueLocation string `json:"venueLocation"`
	MapsLink      string `json:"mapsLink"`
	Capacity      string `json:"capacity"`
}
