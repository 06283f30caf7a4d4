package security

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "ratelimit:"
	antiBotPrefix = "antibot:"
	window        = time.Minute
	redisTimeout  = time.Second
)

// UserIDKey is the echo context key under which the signed-in user's id is
// stored, when there is one.
const UserIDKey = "user_id"

type RateLimiter struct {
	redis     *redis.Client
	perMinute int64
}

// NewRateLimiter limits each client to perMinute requests per fixed one
// minute window, counted in redis.
func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RateLimiter{redis: redisClient, perMinute: int64(perMinute)}
}

// RateLimit is the echo middleware for the local API.
func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: &redisStore{redis: r.redis, limit: r.perMinute, prefix: keyPrefix},
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return identifier(c), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "Unable to identify client.",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// identifier keys signed-in users by id and everyone else by address.
func identifier(c echo.Context) string {
	if userID := c.Get(UserIDKey); userID != nil {
		return fmt.Sprintf("user:%v", userID)
	}
	return "ip:" + c.RealIP()
}

// redisStore implements middleware.RateLimiterStore with INCR and EXPIRE.
// When redis is unreachable requests are let through.
type redisStore struct {
	redis  *redis.Client
	limit  int64
	prefix string
}

func (s *redisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	count, err := hit(ctx, s.redis, s.prefix+identifier)
	if err != nil {
		slog.Warn("rate limiter unavailable", "identifier", identifier, "error", err)
		return true, nil
	}
	return count <= s.limit, nil
}

func hit(ctx context.Context, rc *redis.Client, key string) (int64, error) {
	count, err := rc.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := rc.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// AntiBotMiddleware rejects crawler user agents and caps each address at
// maxPerMinute requests regardless of who is signed in. A limit of zero or
// less falls back to the limiter's own per-minute limit.
func (r *RateLimiter) AntiBotMiddleware(maxPerMinute int64) echo.MiddlewareFunc {
	if maxPerMinute <= 0 {
		maxPerMinute = r.perMinute
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isSuspiciousUserAgent(c.Request().Header.Get("User-Agent")) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Access denied",
				})
			}

			count, err := hit(c.Request().Context(), r.redis, antiBotPrefix+c.RealIP())
			if err == nil && count > maxPerMinute {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests",
				})
			}

			return next(c)
		}
	}
}

func isSuspiciousUserAgent(ua string) bool {
	ua = strings.ToLower(ua)
	for _, pattern := range []string{"bot", "crawler", "spider", "scraper"} {
		if strings.Contains(ua, pattern) {
			return true
		}
	}
	return false
}
