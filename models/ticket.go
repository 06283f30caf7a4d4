package models

import (
	"github.com/shopspring/decimal"
)

type TicketPrice struct {
	TicketPriceID int64           `json:"ticketPriceId,omitempty"`
	PriceCategory string          `json:"priceCategory"`
	Price         decimal.Decimal `json:"price"`
}

type Sponsor struct {
	SponsorID     int64  `json:"sponsorId,omitempty"`
	SponsorName   string `json:"sponsorName"`
	ContactNumber string `json:"contactNumber"`
}

type Venue struct {
	VenueID       int64  `json:"venueId,omitempty"`
	VenueLocation string `json:"venueLocation"`
	MapsLink      string `json:"mapsLink"`
	Capacity      int    `json:"capacity"`
}

// FindTicketPrice returns the price row whose category matches, if any.
func FindTicketPrice(prices []TicketPrice, category string) (TicketPrice, bool) {
	for _, p := range prices {
		if p.PriceCategory == category {
			return p, true
		}
	}
	return TicketPrice{}, false
}
