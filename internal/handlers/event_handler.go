package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"imagique/internal/form"
	"imagique/internal/i18n"
	"imagique/internal/services"
	"imagique/internal/session"
	"imagique/internal/status"
	"imagique/internal/validation"
	"imagique/models"
)

const maxImageSize = 5 << 20

type EventHandler struct {
	responder
	catalog   *services.Catalog
	submitter *services.EventSubmitter
	form      *form.EventForm
	gate      *session.Gate
}

func NewEventHandler(tr *i18n.Translator, catalog *services.Catalog, submitter *services.EventSubmitter, f *form.EventForm, gate *session.Gate) *EventHandler {
	return &EventHandler{
		responder: responder{tr: tr},
		catalog:   catalog,
		submitter: submitter,
		form:      f,
		gate:      gate,
	}
}

// Upcoming - Public upcoming events rail
func (h *EventHandler) Upcoming(c echo.Context) error {
	events, err := h.catalog.Upcoming(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, events)
}

// ListEvents - All events, optionally filtered by categoryId
func (h *EventHandler) ListEvents(c echo.Context) error {
	raw := c.QueryParam("categoryId")
	if raw == "" {
		events, err := h.catalog.All(c.Request().Context())
		if err != nil {
			return h.fail(c, err, "")
		}
		return c.JSON(http.StatusOK, events)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return badRequest(c, "Invalid categoryId")
	}
	events, err := h.catalog.ByCategory(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Festival(c echo.Context) error {
	events, err := h.catalog.Festival(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Details(c echo.Context) error {
	id, err := pathID(c, "eventId")
	if err != nil {
		return badRequest(c, "Invalid event id")
	}
	details, err := h.catalog.Details(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, details)
}

func (h *EventHandler) TicketPrices(c echo.Context) error {
	id, err := pathID(c, "eventId")
	if err != nil {
		return badRequest(c, "Invalid event id")
	}
	prices, err := h.catalog.TicketPrices(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, prices)
}

func (h *EventHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, categories)
}

// ManagedEvents - The events the signed-in organizer or admin may edit
func (h *EventHandler) ManagedEvents(c echo.Context) error {
	actor, _ := h.gate.Current()
	events, err := h.catalog.Managed(c.Request().Context(), actor)
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := pathID(c, "eventId")
	if err != nil {
		return badRequest(c, "Invalid event id")
	}
	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "")
	}
	return c.NoContent(http.StatusNoContent)
}

type wizardView struct {
	Step         string                    `json:"step"`
	EventID      int64                     `json:"eventId,omitempty"`
	Draft        map[string]string         `json:"draft"`
	Image        string                    `json:"image,omitempty"`
	Sponsors     []models.SponsorDraft     `json:"sponsors"`
	TicketPrices []models.TicketPriceDraft `json:"ticketPrices"`
	Venue        models.VenueDraft         `json:"venue"`
	Errors       map[string]string         `json:"errors"`
	CanSubmit    bool                      `json:"canSubmit"`
}

func (h *EventHandler) wizardState() wizardView {
	snap := h.form.Snapshot()
	v := wizardView{
		Step:    h.form.Step().String(),
		EventID: snap.Draft.EventID,
		Draft: map[string]string{
			string(validation.FieldEventName):   snap.Draft.EventName,
			string(validation.FieldDescription): snap.Draft.Description,
			string(validation.FieldDate):        snap.Draft.Date,
			string(validation.FieldTime):        snap.Draft.Time,
			string(validation.FieldCategoryID):  snap.Draft.CategoryID,
		},
		Sponsors:     snap.Sponsors,
		TicketPrices: snap.TicketPrices,
		Venue:        snap.Venue,
		Errors:       h.form.Report().Messages(),
		CanSubmit:    h.form.CanSubmit(),
	}
	if snap.Draft.Image != nil {
		v.Image = snap.Draft.Image.Name
	}
	return v
}

func (h *EventHandler) Wizard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.wizardState())
}

func outcomeJSON(field string, o validation.Outcome) map[string]any {
	return map[string]any{"field": field, "valid": o.OK(), "message": o.Message()}
}

// UpdateWizardField - Event and venue fields
func (h *EventHandler) UpdateWizardField(c echo.Context) error {
	var req fieldUpdate
	if err := c.Bind(&req); err != nil || req.Field == "" {
		return badRequest(c, "Invalid request body")
	}
	outcome, err := h.form.UpdateField(validation.Field(req.Field), req.Value)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, outcomeJSON(req.Field, outcome))
}

func (h *EventHandler) AddSponsor(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]int{"index": h.form.AddSponsor()})
}

func (h *EventHandler) UpdateSponsor(c echo.Context) error {
	i, err := strconv.Atoi(c.PathParam("index"))
	if err != nil {
		return badRequest(c, "Invalid row index")
	}
	var req fieldUpdate
	if err := c.Bind(&req); err != nil || req.Field == "" {
		return badRequest(c, "Invalid request body")
	}
	if err := h.form.UpdateSponsor(i, validation.Field(req.Field), req.Value); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, outcomeJSON(req.Field, validation.Valid()))
}

func (h *EventHandler) AddTicketPrice(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]int{"index": h.form.AddTicketPrice()})
}

func (h *EventHandler) UpdateTicketPrice(c echo.Context) error {
	i, err := strconv.Atoi(c.PathParam("index"))
	if err != nil {
		return badRequest(c, "Invalid row index")
	}
	var req fieldUpdate
	if err := c.Bind(&req); err != nil || req.Field == "" {
		return badRequest(c, "Invalid request body")
	}
	outcome, err := h.form.UpdateTicketPrice(i, validation.Field(req.Field), req.Value)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, outcomeJSON(req.Field, outcome))
}

// SetImage - Multipart upload of the event image (field "image")
func (h *EventHandler) SetImage(c echo.Context) error {
	img, err := readImage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	h.form.SetImage(img)
	return c.JSON(http.StatusOK, h.wizardState())
}

func readImage(c echo.Context) (*models.ImageFile, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("image file is required")
	}
	if fh.Size > maxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxImageSize))
	if err != nil {
		return nil, err
	}
	return &models.ImageFile{Name: fh.Filename, Content: content}, nil
}

func (h *EventHandler) Next(c echo.Context) error {
	if _, err := h.form.Next(); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, h.wizardState())
}

func (h *EventHandler) Back(c echo.Context) error {
	if _, err := h.form.Back(); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, h.wizardState())
}

func (h *EventHandler) Reset(c echo.Context) error {
	h.form.Reset()
	return c.JSON(http.StatusOK, h.wizardState())
}

// Edit - Load one of the actor's events into the wizard
func (h *EventHandler) Edit(c echo.Context) error {
	id, err := pathID(c, "eventId")
	if err != nil {
		return badRequest(c, "Invalid event id")
	}
	actor, _ := h.gate.Current()
	events, err := h.catalog.Managed(c.Request().Context(), actor)
	if err != nil {
		return h.fail(c, err, "")
	}
	for _, e := range events {
		if e.EventID == id {
			h.form.Edit(e)
			return c.JSON(http.StatusOK, h.wizardState())
		}
	}
	return h.fail(c, fmt.Errorf("event %d: %w", id, status.ErrNotFound), "")
}

// Submit - Save the wizard. Invalid fields block unless force=true; empty
// required fields always do.
func (h *EventHandler) Submit(c echo.Context) error {
	force, _ := strconv.ParseBool(c.QueryParam("force"))
	if !force && !h.form.CanSubmit() {
		if report := h.form.Report(); report.HasErrors() {
			return h.invalid(c, report, i18n.MsgFixErrors)
		}
		return h.fail(c, status.ErrInvalidDraft, i18n.MsgFixErrors)
	}

	actor, _ := h.gate.Current()
	name := h.form.Snapshot().Draft.EventName
	res, err := h.submitter.Submit(c.Request().Context(), actor.UserDetailsID)
	if err != nil {
		if errors.Is(err, status.ErrIncompleteDraft) {
			return h.fail(c, err, i18n.MsgFixErrors)
		}
		return c.JSON(http.StatusBadGateway, map[string]any{
			"message": h.t(c, i18n.MsgEventSaveFailed, map[string]any{"Name": name, "Reason": err.Error()}),
			"eventId": res.EventID,
			"error":   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": h.t(c, i18n.MsgEventSaved, map[string]any{"Name": name}),
		"eventId": res.EventID,
		"mode":    res.Mode,
		"events":  res.Events,
	})
}
