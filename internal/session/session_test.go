package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagique/internal/status"
	"imagique/models"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "storage.json")
	fs := NewFileStore(path)

	_, err := fs.Load(ctx)
	assert.ErrorIs(t, err, status.ErrNoSession)

	s := models.Session{Email: "jane@example.com", Role: models.RoleCustomer, UserDetailsID: 9}
	require.NoError(t, fs.Save(ctx, s))

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"email":"jane@example.com","role":"customer","userDetailsId":9}}`, string(raw))

	require.NoError(t, fs.Clear(ctx))
	_, err = fs.Load(ctx)
	assert.ErrorIs(t, err, status.ErrNoSession)
}

func TestFileStore_KeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0o600))

	fs := NewFileStore(path)
	require.NoError(t, fs.Save(ctx, models.Session{Role: models.RoleCustomer}))
	require.NoError(t, fs.Clear(ctx))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(raw))
}

func TestFileStore_ClearWithoutFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.NoError(t, fs.Clear(context.Background()))
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	rs := NewRedisStore(db, "imagique:")

	s := models.Session{Email: "a@b.com", Role: models.RoleAdmin, UserDetailsID: 1}
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectSet("imagique:user", raw, 0).SetVal("OK")
	require.NoError(t, rs.Save(ctx, s))

	mock.ExpectGet("imagique:user").SetVal(string(raw))
	got, err := rs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	mock.ExpectDel("imagique:user").SetVal(1)
	require.NoError(t, rs.Clear(ctx))

	mock.ExpectGet("imagique:user").RedisNil()
	_, err = rs.Load(ctx)
	assert.ErrorIs(t, err, status.ErrNoSession)

	mock.ExpectGet("imagique:user").SetErr(errors.New("conn reset"))
	_, err = rs.Load(ctx)
	assert.ErrorContains(t, err, "conn reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

type memStore struct {
	s       *models.Session
	loadErr error
	cleared int
}

func (m *memStore) Load(context.Context) (models.Session, error) {
	if m.loadErr != nil {
		return models.Session{}, m.loadErr
	}
	if m.s == nil {
		return models.Session{}, status.ErrNoSession
	}
	return *m.s, nil
}

func (m *memStore) Save(_ context.Context, s models.Session) error {
	m.s = &s
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.s = nil
	m.cleared++
	return nil
}

func TestGate_RestoreAndSignOut(t *testing.T) {
	ctx := context.Background()
	store := &memStore{s: &models.Session{Email: "o@x.com", Role: models.RoleOrganizer, UserDetailsID: 4}}
	g := NewGate(store)

	assert.False(t, g.Authenticated())
	require.NoError(t, g.Restore(ctx))
	assert.True(t, g.Authenticated())
	assert.Equal(t, models.RoleOrganizer, g.Role())

	require.NoError(t, g.SignOut(ctx))
	assert.False(t, g.Authenticated())
	assert.Equal(t, models.Role(""), g.Role())
	assert.Nil(t, store.s)
}

func TestGate_RestoreDiscardsBadRecords(t *testing.T) {
	ctx := context.Background()

	store := &memStore{loadErr: errors.New("session: decode: bad json")}
	g := NewGate(store)
	require.NoError(t, g.Restore(ctx))
	assert.False(t, g.Authenticated())
	assert.Equal(t, 1, store.cleared)

	store = &memStore{s: &models.Session{Role: "root"}}
	g = NewGate(store)
	require.NoError(t, g.Restore(ctx))
	assert.False(t, g.Authenticated())
	assert.Equal(t, 1, store.cleared)
}

func TestGate_SignIn(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	g := NewGate(store)

	assert.Error(t, g.SignIn(ctx, models.Session{Role: "guest"}))
	assert.False(t, g.Authenticated())

	require.NoError(t, g.SignIn(ctx, models.Session{Role: models.RoleCustomer}))
	current, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, models.RoleCustomer, current.Role)
	assert.Zero(t, current.UserDetailsID)
	require.NotNil(t, store.s)
}

func TestGate_NavLinks(t *testing.T) {
	ctx := context.Background()
	labels := func(links []Link) []string {
		out := make([]string, 0, len(links))
		for _, l := range links {
			out = append(out, l.Label)
		}
		return out
	}

	g := NewGate(&memStore{})
	assert.Equal(t, []string{"Sign In", "Sign Up"}, labels(g.NavLinks()))

	tests := []struct {
		role models.Role
		want []string
	}{
		{models.RoleAdmin, []string{"Dashboard", "Sign Out"}},
		{models.RoleOrganizer, []string{"Dashboard", "Sign Out"}},
		{models.RoleCustomer, []string{"Profile", "Bookings", "Sign Out"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			require.NoError(t, g.SignIn(ctx, models.Session{Role: tt.role}))
			assert.Equal(t, tt.want, labels(g.NavLinks()))
		})
	}
}

func TestDashboardLinks(t *testing.T) {
	assert.Len(t, DashboardLinks(models.RoleAdmin), 5)
	assert.Equal(t, "/OrganizerRevenue", DashboardLinks(models.RoleOrganizer)[2].Path)
	assert.Nil(t, DashboardLinks(models.RoleCustomer))
	assert.Nil(t, DashboardLinks(""))
}
