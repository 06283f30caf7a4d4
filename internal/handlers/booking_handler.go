package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"imagique/internal/i18n"
	"imagique/internal/services"
	"imagique/internal/session"
)

const receiptFilename = "booking-confirmation.pdf"

type BookingHandler struct {
	responder
	bookings *services.BookingService
	revenue  *services.RevenueService
	gate     *session.Gate
}

func NewBookingHandler(tr *i18n.Translator, bookings *services.BookingService, revenue *services.RevenueService, gate *session.Gate) *BookingHandler {
	return &BookingHandler{
		responder: responder{tr: tr},
		bookings:  bookings,
		revenue:   revenue,
		gate:      gate,
	}
}

type bookRequest struct {
	EventID         int64  `json:"eventId"`
	PriceCategory   string `json:"priceCategory"`
	NumberOfTickets int    `json:"numberOfTickets"`
}

// Book - Reserve tickets and download the PDF receipt
func (h *BookingHandler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := h.bookings.Book(c.Request().Context(), services.BookingInput{
		EventID:         req.EventID,
		PriceCategory:   req.PriceCategory,
		NumberOfTickets: req.NumberOfTickets,
	})
	if err != nil {
		if res.Booking.BookingID != 0 {
			// confirmed, only the receipt failed
			return c.JSON(http.StatusCreated, map[string]any{
				"booking": res.Booking,
				"error":   err.Error(),
			})
		}
		return h.fail(c, err, i18n.MsgBookingFailed)
	}

	c.Response().Header().Set("Content-Disposition", "attachment; filename="+receiptFilename)
	c.Response().Header().Set("X-Booking-ID", strconv.FormatInt(res.Booking.BookingID, 10))
	return c.Blob(http.StatusCreated, "application/pdf", res.Receipt)
}

func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.bookings.Bookings(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "bookingId")
	if err != nil {
		return badRequest(c, "Invalid booking id")
	}
	booking, err := h.bookings.CancelByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, i18n.MsgCancelFailed)
	}
	return h.ok(c, http.StatusOK, i18n.MsgBookingCancelled, map[string]any{"booking": booking})
}

// Revenue - Totals for one event; admins also see the commission
func (h *BookingHandler) Revenue(c echo.Context) error {
	id, err := pathID(c, "eventId")
	if err != nil {
		return badRequest(c, "Invalid event id")
	}
	report, err := h.revenue.Report(c.Request().Context(), id, c.QueryParam("eventName"), h.gate.Role())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, report)
}
