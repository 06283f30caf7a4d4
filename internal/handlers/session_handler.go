package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"imagique/internal/form"
	"imagique/internal/i18n"
	"imagique/internal/services"
	"imagique/internal/session"
	"imagique/internal/validation"
	"imagique/models"
)

type SessionHandler struct {
	responder
	account *services.AccountService
	gate    *session.Gate
	forms   map[string]*form.Form
}

func NewSessionHandler(tr *i18n.Translator, account *services.AccountService, gate *session.Gate) *SessionHandler {
	return &SessionHandler{
		responder: responder{tr: tr},
		account:   account,
		gate:      gate,
		forms: map[string]*form.Form{
			"signup":    form.SignUpForm(),
			"organizer": form.OrganizerForm(),
		},
	}
}

type sessionView struct {
	Authenticated bool           `json:"authenticated"`
	Session       models.Session `json:"session"`
	Nav           []session.Link `json:"nav"`
	Dashboard     []session.Link `json:"dashboard,omitempty"`
}

func (h *SessionHandler) view() sessionView {
	s, ok := h.gate.Current()
	return sessionView{
		Authenticated: ok,
		Session:       s,
		Nav:           h.gate.NavLinks(),
		Dashboard:     session.DashboardLinks(s.Role),
	}
}

// GetSession - Current identity and the links it unlocks
func (h *SessionHandler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view())
}

func (h *SessionHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if _, err := h.account.SignIn(c.Request().Context(), req.Email, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"message": h.t(c, i18n.MsgInvalidCredentials, nil),
		})
	}
	return c.JSON(http.StatusOK, h.view())
}

func (h *SessionHandler) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report, err := h.account.SignUp(c.Request().Context(), req)
	if report.HasErrors() {
		return h.invalid(c, report, i18n.MsgFixErrors)
	}
	if err != nil {
		return h.fail(c, err, "")
	}
	h.forms["signup"].Reset()
	return c.JSON(http.StatusCreated, h.view())
}

func (h *SessionHandler) SignOut(c echo.Context) error {
	if err := h.account.SignOut(c.Request().Context()); err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, h.view())
}

// BecomeOrganizer - Submit a pending organizer request
func (h *SessionHandler) BecomeOrganizer(c echo.Context) error {
	var req models.OrganizerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report, err := h.account.BecomeOrganizer(c.Request().Context(), req)
	if report.HasErrors() {
		return h.invalid(c, report, i18n.MsgFixErrors)
	}
	if err != nil {
		return h.fail(c, err, "")
	}
	h.forms["organizer"].Reset()
	return h.ok(c, http.StatusCreated, i18n.MsgRequestSubmitted, nil)
}

type fieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *SessionHandler) form(c echo.Context) (*form.Form, bool) {
	f, ok := h.forms[c.PathParam("form")]
	return f, ok
}

// UpdateFormField - Validate one field as it is typed
func (h *SessionHandler) UpdateFormField(c echo.Context) error {
	f, ok := h.form(c)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown form"})
	}
	var req fieldUpdate
	if err := c.Bind(&req); err != nil || req.Field == "" {
		return badRequest(c, "Invalid request body")
	}

	outcome := f.Update(validation.Field(req.Field), req.Value)
	return c.JSON(http.StatusOK, map[string]any{
		"field":     req.Field,
		"valid":     outcome.OK(),
		"message":   outcome.Message(),
		"canSubmit": f.CanSubmit(),
	})
}

func (h *SessionHandler) GetForm(c echo.Context) error {
	f, ok := h.form(c)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown form"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"values":    f.Values(),
		"errors":    f.Report().Messages(),
		"canSubmit": f.CanSubmit(),
	})
}

func (h *SessionHandler) ResetForm(c echo.Context) error {
	f, ok := h.form(c)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown form"})
	}
	f.Reset()
	return c.NoContent(http.StatusNoContent)
}
