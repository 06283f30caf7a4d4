package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"imagique/internal/i18n"
	"imagique/internal/services"
	"imagique/models"
)

type ProfileHandler struct {
	responder
	profile *services.ProfileService
}

func NewProfileHandler(tr *i18n.Translator, profile *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{responder: responder{tr: tr}, profile: profile}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	details, err := h.profile.Profile(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, details)
}

func (h *ProfileHandler) Update(c echo.Context) error {
	var req models.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report, err := h.profile.Update(c.Request().Context(), req)
	if report.HasErrors() {
		return h.invalid(c, report, i18n.MsgFixErrors)
	}
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, i18n.MsgDetailsUpdated, nil)
}

func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req models.PasswordChange
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report, err := h.profile.ChangePassword(c.Request().Context(), req)
	if report.HasErrors() {
		return h.invalid(c, report, i18n.MsgFixPasswordErrors)
	}
	if err != nil {
		return h.fail(c, err, i18n.MsgPasswordChangeFailed)
	}
	return h.ok(c, http.StatusOK, i18n.MsgPasswordChanged, nil)
}

// TopUp - Add money to the wallet
func (h *ProfileHandler) TopUp(c echo.Context) error {
	var req models.WalletTopUp
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report, err := h.profile.TopUp(c.Request().Context(), req)
	if report.HasErrors() {
		return h.invalid(c, report, i18n.MsgFixErrors)
	}
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, i18n.MsgMoneyAdded, nil)
}
