package models

import (
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	BookingID     int64           `json:"bookingId"`
	FullName      string          `json:"fullName"`
	EventName     string          `json:"eventName"`
	Location      string          `json:"location,omitempty"`
	NoOfTickets   int             `json:"noOfTickets"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	BookingStatus BookingStatus   `json:"bookingStatus"`
}

// Cancellable reports whether a cancel action is offered for the booking.
func (b Booking) Cancellable() bool {
	return b.BookingStatus == BookingConfirmed
}

type BookingRequest struct {
	UserID          int64
	EventID         int64
	TicketPriceID   int64
	NumberOfTickets int
}

type Revenue struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalTicketsSold int             `json:"totalTicketsSold"`
}

type RevenueReport struct {
	EventName    string           `json:"eventName"`
	TicketsSold  int              `json:"ticketsSold"`
	TotalRevenue decimal.Decimal  `json:"totalRevenue"`
	Commission   *decimal.Decimal `json:"commission,omitempty"` // admin view only
}
