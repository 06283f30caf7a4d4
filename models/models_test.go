package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_JSON(t *testing.T) {
	raw := `{"bookingId":42,"fullName":"Jane Doe","eventName":"Jazz Night","noOfTickets":2,"totalPrice":99.9,"bookingStatus":"CONFIRMED"}`

	var b Booking
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, int64(42), b.BookingID)
	assert.True(t, b.TotalPrice.Equal(decimal.RequireFromString("99.9")))
	assert.True(t, b.Cancellable())

	b.BookingStatus = BookingCancelled
	assert.False(t, b.Cancellable())
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleOrganizer, RoleCustomer} {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("ADMIN").Valid())
	assert.False(t, Role("").Valid())
}

func TestOrganizer_Status(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name    string
		in      *bool
		status  ApprovalStatus
		actions []string
	}{
		{"pending", nil, ApprovalPending, []string{"approve", "reject"}},
		{"approved", &yes, ApprovalApproved, []string{"block"}},
		{"rejected", &no, ApprovalRejected, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Organizer{IsApproved: tt.in}
			assert.Equal(t, tt.status, o.Status())
			assert.Equal(t, tt.actions, o.Actions())
		})
	}
}

func TestEventDraft_Complete(t *testing.T) {
	d := EventDraft{EventName: "Jazz Night", Description: "Live", Date: "2026-11-20", Time: "19:30"}
	assert.False(t, d.Complete())

	d.CategoryID = "2"
	assert.True(t, d.Complete())

	d.Description = "   "
	assert.False(t, d.Complete())
	assert.False(t, d.Editing())
}

func TestDraftRowsFilled(t *testing.T) {
	assert.False(t, SponsorDraft{SponsorName: "Acme"}.Filled())
	assert.True(t, SponsorDraft{SponsorName: "Acme", ContactNumber: "9876543210"}.Filled())
	assert.False(t, TicketPriceDraft{Price: "50"}.Filled())
	assert.True(t, TicketPriceDraft{PriceCategory: "VIP", Price: "50"}.Filled())
}

func TestLookups(t *testing.T) {
	prices := []TicketPrice{
		{TicketPriceID: 1, PriceCategory: "Regular", Price: decimal.NewFromInt(20)},
		{TicketPriceID: 2, PriceCategory: "VIP", Price: decimal.NewFromInt(50)},
	}
	p, ok := FindTicketPrice(prices, "VIP")
	require.True(t, ok)
	assert.Equal(t, int64(2), p.TicketPriceID)
	_, ok = FindTicketPrice(prices, "vip")
	assert.False(t, ok)

	categories := []Category{{CategoryID: 2, CategoryName: "Music"}}
	assert.Equal(t, "Music", CategoryName(categories, 2))
	assert.Equal(t, "N/A", CategoryName(categories, 9))
}
