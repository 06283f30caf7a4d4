package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"imagique/internal/i18n"
	"imagique/internal/services"
	"imagique/internal/services/backend"
	"imagique/internal/status"
	"imagique/internal/validation"
)

// responder renders localized messages and maps errors to status codes.
type responder struct {
	tr *i18n.Translator
}

func (r responder) locale(c echo.Context) string {
	if lang := c.QueryParam("lang"); lang != "" {
		return lang
	}
	return c.Request().Header.Get("Accept-Language")
}

func (r responder) t(c echo.Context, key string, data map[string]any) string {
	return r.tr.T(r.locale(c), key, data)
}

// ok replies with a localized message and optional extra fields.
func (r responder) ok(c echo.Context, code int, key string, extra map[string]any) error {
	body := map[string]any{"message": r.t(c, key, nil)}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(code, body)
}

// fail maps err onto a reply. fallback is the message id used for errors that
// carry no alert of their own.
func (r responder) fail(c echo.Context, err error, fallback string) error {
	code, key := http.StatusInternalServerError, fallback
	body := map[string]any{}

	switch {
	case errors.Is(err, status.ErrLoginRequired):
		code, key = http.StatusUnauthorized, i18n.MsgLoginToBook
	case errors.Is(err, status.ErrNoSession):
		code = http.StatusUnauthorized
	case errors.Is(err, status.ErrBookingNotAllowed):
		code, key = http.StatusForbidden, i18n.MsgBookingNotAllowed
	case errors.Is(err, status.ErrTicketSelection):
		code, key = http.StatusBadRequest, i18n.MsgSelectTickets
	case errors.Is(err, status.ErrValidation),
		errors.Is(err, status.ErrIncompleteDraft),
		errors.Is(err, status.ErrInvalidDraft):
		code = http.StatusUnprocessableEntity
		if key == "" {
			key = i18n.MsgFixErrors
		}
	case errors.Is(err, services.ErrUnknownAction):
		code = http.StatusBadRequest
	case errors.Is(err, status.ErrNotFound):
		code = http.StatusNotFound
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			code = http.StatusBadGateway
			if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
				code = apiErr.StatusCode
			}
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	body["error"] = err.Error()
	if key != "" {
		body["message"] = r.t(c, key, map[string]any{"Reason": err.Error()})
	}
	return c.JSON(code, body)
}

// invalid replies 422 with the per-field messages of a validation report.
func (r responder) invalid(c echo.Context, report validation.Report, key string) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string]any{
		"message": r.t(c, key, nil),
		"fields":  report.Messages(),
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.PathParam(name), 10, 64)
}
