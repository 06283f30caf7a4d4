package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"imagique/internal/form"
	"imagique/internal/services/backend"
	"imagique/internal/status"
	"imagique/internal/validation"
	"imagique/models"
)

func filledForm(t *testing.T) *form.EventForm {
	t.Helper()
	f := form.NewEventForm()
	for field, v := range map[validation.Field]string{
		validation.FieldEventName:     "Jazz Night",
		validation.FieldDescription:   "Live jazz",
		validation.FieldDate:          "2025-06-01",
		validation.FieldTime:          "19:30",
		validation.FieldCategoryID:    "2",
		validation.FieldVenueLocation: "Blue Hall",
		validation.FieldMapsLink:      "https://maps.example.com/blue",
		validation.FieldCapacity:      "300",
	} {
		_, err := f.UpdateField(field, v)
		require.NoError(t, err)
	}

	// row 0 filled, row 1 filled, row 2 half filled and skipped
	require.NoError(t, f.UpdateSponsor(0, validation.FieldSponsorName, "Acme"))
	require.NoError(t, f.UpdateSponsor(0, validation.FieldSponsorNumber, "9876543210"))
	i := f.AddSponsor()
	require.NoError(t, f.UpdateSponsor(i, validation.FieldSponsorName, "Globex"))
	require.NoError(t, f.UpdateSponsor(i, validation.FieldSponsorNumber, "9123456780"))
	i = f.AddSponsor()
	require.NoError(t, f.UpdateSponsor(i, validation.FieldSponsorName, "Initech"))

	_, err := f.UpdateTicketPrice(0, validation.FieldPriceCategory, "VIP")
	require.NoError(t, err)
	_, err = f.UpdateTicketPrice(0, validation.FieldPrice, "1500")
	require.NoError(t, err)
	f.AddTicketPrice()
	return f
}

func expectFanout(b *MockBackend, eventID int64, sponsorErr error) {
	b.On("AddSponsor", mock.Anything, eventID, models.SponsorDraft{SponsorName: "Acme", ContactNumber: "9876543210"}).Return(sponsorErr).Once()
	b.On("AddSponsor", mock.Anything, eventID, models.SponsorDraft{SponsorName: "Globex", ContactNumber: "9123456780"}).Return(nil).Once()
	b.On("AddTicketPrice", mock.Anything, eventID, models.TicketPriceDraft{PriceCategory: "VIP", Price: "1500"}).Return(nil).Once()
	b.On("SetVenue", mock.Anything, eventID, models.VenueDraft{
		VenueLocation: "Blue Hall",
		MapsLink:      "https://maps.example.com/blue",
		Capacity:      "300",
	}).Return(nil).Once()
}

func TestSubmit_CreateFansOutAndResets(t *testing.T) {
	b := new(MockBackend)
	f := filledForm(t)
	s := NewEventSubmitter(b, f, newGate(t, organizer), nil)

	b.On("CreateEvent", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	expectFanout(b, 42, nil)
	listed := []models.Event{{EventID: 42, EventName: "Jazz Night"}}
	b.On("ListOrganizerEvents", mock.Anything, int64(3)).Return(listed, nil).Once()

	res, err := s.Submit(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.EventID)
	assert.Equal(t, "create", res.Mode)
	assert.Equal(t, listed, res.Events)

	snap := f.Snapshot()
	assert.Empty(t, snap.Draft.EventName)
	assert.Len(t, snap.Sponsors, 1)
	assert.Equal(t, form.StepDetails, f.Step())
	b.AssertExpectations(t)
	b.AssertNotCalled(t, "ListAllEvents", mock.Anything)
}

func TestSubmit_PayloadCarriesUserAndRows(t *testing.T) {
	b := new(MockBackend)
	f := filledForm(t)
	s := NewEventSubmitter(b, f, newGate(t, admin), nil)

	b.On("CreateEvent", mock.Anything, mock.Anything).Return(int64(5), nil).Once()
	expectFanout(b, 5, nil)
	b.On("ListAllEvents", mock.Anything).Return(nil, nil).Once()

	_, err := s.Submit(context.Background(), 1)
	require.NoError(t, err)

	payload, ok := b.Calls[0].Arguments.Get(1).(backend.EventPayload)
	require.True(t, ok)
	assert.Equal(t, int64(1), payload.UserDetailsID)
	assert.Equal(t, "Jazz Night", payload.Draft.EventName)
	assert.Len(t, payload.Sponsors, 3, "the multipart body carries every row")
	assert.Len(t, payload.TicketPrices, 2)
	assert.Equal(t, "300", payload.Venue.Capacity)
	b.AssertExpectations(t)
}

func TestSubmit_UpdateUsesEventID(t *testing.T) {
	b := new(MockBackend)
	f := filledForm(t)
	snapBefore := f.Snapshot()
	f.Edit(models.Event{EventID: 9, EventName: "Jazz Night", Description: "Live jazz", Date: "2025-06-01", Time: "19:30", CategoryID: 2})
	// Edit clears the rows, so fill the venue again.
	for field, v := range map[validation.Field]string{
		validation.FieldVenueLocation: snapBefore.Venue.VenueLocation,
		validation.FieldMapsLink:      snapBefore.Venue.MapsLink,
		validation.FieldCapacity:      snapBefore.Venue.Capacity,
	} {
		_, err := f.UpdateVenue(field, v)
		require.NoError(t, err)
	}

	s := NewEventSubmitter(b, f, newGate(t, admin), nil)
	b.On("UpdateEvent", mock.Anything, int64(9), mock.Anything).Return(int64(9), nil).Once()
	b.On("SetVenue", mock.Anything, int64(9), snapBefore.Venue).Return(nil).Once()
	b.On("ListAllEvents", mock.Anything).Return([]models.Event{{EventID: 9}}, nil).Once()

	res, err := s.Submit(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "update", res.Mode)
	assert.Equal(t, int64(9), res.EventID)
	b.AssertExpectations(t)
	b.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
	b.AssertNotCalled(t, "AddSponsor", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_IncompleteDraftSendsNothing(t *testing.T) {
	b := new(MockBackend)
	f := form.NewEventForm()
	_, err := f.UpdateField(validation.FieldEventName, "Only a name")
	require.NoError(t, err)

	_, err = NewEventSubmitter(b, f, newGate(t, organizer), nil).Submit(context.Background(), 3)
	assert.ErrorIs(t, err, status.ErrIncompleteDraft)
	assert.Empty(t, b.Calls)
}

func TestSubmit_InvalidFieldsDoNotBlock(t *testing.T) {
	b := new(MockBackend)
	f := filledForm(t)
	_, err := f.UpdateField(validation.FieldCapacity, "lots")
	require.NoError(t, err)
	require.False(t, f.CanSubmit())

	b.On("CreateEvent", mock.Anything, mock.Anything).Return(int64(8), nil).Once()
	b.On("AddSponsor", mock.Anything, int64(8), mock.Anything).Return(nil).Twice()
	b.On("AddTicketPrice", mock.Anything, int64(8), mock.Anything).Return(nil).Once()
	b.On("SetVenue", mock.Anything, int64(8), mock.Anything).Return(nil).Once()
	b.On("ListAllEvents", mock.Anything).Return(nil, nil).Once()

	_, err = NewEventSubmitter(b, f, newGate(t, admin), nil).Submit(context.Background(), 1)
	require.NoError(t, err)
	b.AssertExpectations(t)
}

func TestSubmit_SaveFailureSkipsFanout(t *testing.T) {
	b := new(MockBackend)
	f := filledForm(t)
	boom := errors.New("backend down")
	b.On("CreateEvent", mock.Anything, mock.Anything).Return(int64(0), boom).Once()

	_, err := NewEventSubmitter(b, f, newGate(t, organizer), nil).Submit(context.Background(), 3)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, b.Calls, 1)
	assert.Equal(t, "Jazz Night", f.Snapshot().Draft.EventName, "form is kept for a retry")
}

func TestSubmit_FanoutFailureRunsEverythingAndKeepsForm(t *testing.T) {
	b := new(MockBackend)
	f := filledForm(t)
	boom := errors.New("sponsor rejected")
	b.On("CreateEvent", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	expectFanout(b, 42, boom)

	res, err := NewEventSubmitter(b, f, newGate(t, organizer), nil).Submit(context.Background(), 3)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(42), res.EventID, "the event itself stays created")
	assert.Nil(t, res.Events)

	b.AssertExpectations(t)
	b.AssertNotCalled(t, "ListOrganizerEvents", mock.Anything, mock.Anything)
	assert.Equal(t, "Jazz Night", f.Snapshot().Draft.EventName)
}

func TestSubmit_RefreshFailureStillSucceeds(t *testing.T) {
	b := new(MockBackend)
	f := filledForm(t)
	b.On("CreateEvent", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	expectFanout(b, 42, nil)
	b.On("ListOrganizerEvents", mock.Anything, int64(3)).Return(nil, errors.New("timeout")).Once()

	res, err := NewEventSubmitter(b, f, newGate(t, organizer), nil).Submit(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, res.Events)
	assert.Empty(t, f.Snapshot().Draft.EventName)
}
