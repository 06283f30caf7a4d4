package handlers

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"imagique/internal/session"
	"imagique/models"
	"imagique/security"
	"imagique/utils"
)

// Deps is everything Register needs. Redis is optional; without it there is
// no rate limiting and /health does not check it.
type Deps struct {
	Gate    *session.Gate
	Session *SessionHandler
	Events  *EventHandler
	Booking *BookingHandler
	Profile *ProfileHandler
	Admin   *AdminHandler

	Redis              *redis.Client
	RateLimitPerMinute int
	EnableMetrics      bool
}

func Register(e *echo.Echo, d Deps) {
	e.Use(currentUser(d.Gate))
	if d.Redis != nil {
		limiter := security.NewRateLimiter(d.Redis, d.RateLimitPerMinute)
		e.Use(limiter.RateLimit())
		e.Use(limiter.AntiBotMiddleware(int64(d.RateLimitPerMinute)))
	}

	e.GET("/health", health(d.Redis))
	if d.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	api := e.Group("/api")

	api.GET("/session", d.Session.GetSession)
	api.POST("/session/signin", d.Session.SignIn)
	api.POST("/session/signup", d.Session.SignUp)
	api.POST("/session/signout", d.Session.SignOut)
	api.POST("/organizer-requests", d.Session.BecomeOrganizer)
	api.GET("/forms/:form", d.Session.GetForm)
	api.POST("/forms/:form/fields", d.Session.UpdateFormField)
	api.DELETE("/forms/:form", d.Session.ResetForm)

	api.GET("/events", d.Events.ListEvents)
	api.GET("/events/upcoming", d.Events.Upcoming)
	api.GET("/events/festival", d.Events.Festival)
	api.GET("/events/:eventId", d.Events.Details)
	api.GET("/events/:eventId/ticket-prices", d.Events.TicketPrices)
	api.GET("/categories", d.Events.Categories)

	// booking and profile guards live in the services so the replies carry
	// the right alert
	api.POST("/bookings", d.Booking.Book)
	api.GET("/bookings", d.Booking.List)
	api.POST("/bookings/:bookingId/cancel", d.Booking.Cancel)
	api.GET("/profile", d.Profile.Get)
	api.PUT("/profile", d.Profile.Update)
	api.PUT("/profile/password", d.Profile.ChangePassword)
	api.POST("/profile/wallet", d.Profile.TopUp)

	manage := api.Group("/manage", requireRole(d.Gate, models.RoleOrganizer, models.RoleAdmin))
	manage.GET("/events", d.Events.ManagedEvents)
	manage.DELETE("/events/:eventId", d.Events.DeleteEvent)
	manage.POST("/events/:eventId/edit", d.Events.Edit)
	manage.GET("/revenue/:eventId", d.Booking.Revenue)

	wizard := manage.Group("/wizard")
	wizard.GET("", d.Events.Wizard)
	wizard.DELETE("", d.Events.Reset)
	wizard.POST("/fields", d.Events.UpdateWizardField)
	wizard.POST("/image", d.Events.SetImage)
	wizard.POST("/sponsors", d.Events.AddSponsor)
	wizard.PUT("/sponsors/:index", d.Events.UpdateSponsor)
	wizard.POST("/ticket-prices", d.Events.AddTicketPrice)
	wizard.PUT("/ticket-prices/:index", d.Events.UpdateTicketPrice)
	wizard.POST("/next", d.Events.Next)
	wizard.POST("/back", d.Events.Back)
	wizard.POST("/submit", d.Events.Submit)

	admin := api.Group("/admin", requireRole(d.Gate, models.RoleAdmin))
	admin.GET("/organizers", d.Admin.GetOrganizers)
	admin.POST("/organizers/:id/:action", d.Admin.ModerateOrganizer)
	admin.GET("/categories", d.Admin.GetCategories)
	admin.POST("/categories", d.Admin.CreateCategory)
	admin.PUT("/categories/:categoryId", d.Admin.UpdateCategory)
	admin.DELETE("/categories/:categoryId", d.Admin.DeleteCategory)
}

// currentUser exposes the signed-in user's id to the rate limiter.
func currentUser(gate *session.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s, ok := gate.Current(); ok && s.UserDetailsID != 0 {
				c.Set(security.UserIDKey, s.UserDetailsID)
			}
			return next(c)
		}
	}
}

func requireRole(gate *session.Gate, roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := gate.Current()
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Sign in required"})
			}
			if !slices.Contains(roles, s.Role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
			}
			return next(c)
		}
	}
}

func health(rc *redis.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := map[string]string{"status": "ok"}
		if rc != nil {
			if err := utils.RedisHealthCheck(rc); err != nil {
				body["status"], body["redis"] = "degraded", err.Error()
				return c.JSON(http.StatusServiceUnavailable, body)
			}
			body["redis"] = "ok"
		}
		return c.JSON(http.StatusOK, body)
	}
}
