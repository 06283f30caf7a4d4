package i18n

import (
	"embed"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Message ids of the user-facing alerts.
const (
	MsgInvalidCredentials   = "invalid_credentials"
	MsgLoginToBook          = "login_to_book"
	MsgBookingNotAllowed    = "booking_not_allowed"
	MsgSelectTickets        = "select_tickets"
	MsgBookingFailed        = "booking_failed"
	MsgBookingCancelled     = "booking_cancelled"
	MsgCancelFailed         = "cancel_failed"
	MsgRequestSubmitted     = "request_submitted"
	MsgFixErrors            = "fix_errors"
	MsgFixPasswordErrors    = "fix_password_errors"
	MsgDetailsUpdated       = "details_updated"
	MsgPasswordChanged      = "password_changed"
	MsgPasswordChangeFailed = "password_change_failed"
	MsgMoneyAdded           = "money_added"
	MsgOrganizerApproved    = "organizer_approved"
	MsgOrganizerRejected    = "organizer_rejected"
	MsgOrganizerBlocked     = "organizer_blocked"
	MsgEventSaved           = "event_saved"
	MsgEventSaveFailed      = "event_save_failed"
)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewTranslator loads the embedded active.*.toml files. An unparseable
// defaultLocale falls back to English.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			slog.Warn("i18n: failed to load messages", "file", file, "error", err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

// T renders key for locale, falling back to the default locale, then English,
// then the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String(), language.English.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug("i18n: localize failed", "key", key, "locales", languages, "error", err)
		return key
	}
	return msg
}
