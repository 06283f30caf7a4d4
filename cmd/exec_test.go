package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagique/config"
	"imagique/models"
)

func testConfig(t *testing.T, backendURL string) *config.Config {
	t.Helper()
	return &config.Config{
		BackendURL:          backendURL,
		BackendTimeout:      0,
		BreakerMaxRequests:  5,
		BreakerFailureRatio: 0.6,
		SessionBackend:      config.SessionBackendFile,
		SessionFile:         filepath.Join(t.TempDir(), "session.json"),
		Locale:              "en",
		RateLimitPerMinute:  60,
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLevel("warn", false))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR", true))
	assert.Equal(t, slog.LevelDebug, parseLevel("", false))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud", true))
}

func TestAppSessionRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signin", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"org@example.com","role":"ORGANIZER","userDetailsId":3}`))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	ctx := context.Background()

	a, err := newApp(ctx, cfg)
	require.NoError(t, err)
	_, err = a.account.SignIn(ctx, "org@example.com", "Secret#123")
	require.NoError(t, err)
	a.close()

	// a fresh process restores the persisted session
	b, err := newApp(ctx, cfg)
	require.NoError(t, err)
	defer b.close()

	var out bytes.Buffer
	require.NoError(t, printSession(&out, b))
	assert.Contains(t, out.String(), "org@example.com (organizer)")
	assert.Contains(t, out.String(), "Dashboard")
}

func TestPrintRevenue(t *testing.T) {
	commission := decimal.RequireFromString("123.45")
	var out bytes.Buffer
	require.NoError(t, printRevenue(&out, models.RevenueReport{
		EventName:    "Jazz Night",
		TicketsSold:  25,
		TotalRevenue: decimal.RequireFromString("1234.5"),
		Commission:   &commission,
	}))
	assert.Contains(t, out.String(), "1234.50")
	assert.Contains(t, out.String(), "123.45")

	out.Reset()
	require.NoError(t, printRevenue(&out, models.RevenueReport{EventName: "Jazz Night"}))
	assert.NotContains(t, out.String(), "Commission")
}

func TestRouterHealth(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(t, "http://localhost:1"))
	require.NoError(t, err)
	defer a.close()

	rec := httptest.NewRecorder()
	a.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
