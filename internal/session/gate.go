package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"imagique/internal/status"
	"imagique/models"
)

type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Gate owns the signed-in identity. Everything that needs the current role
// asks the gate; nothing reads the store directly. The links it hands out are
// presentation only, the backend still authorizes every call.
type Gate struct {
	mu      sync.RWMutex
	store   Store
	current *models.Session
}

func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// Restore loads the persisted session at start-up. A missing record leaves
// the gate signed out; an unreadable one is cleared.
func (g *Gate) Restore(ctx context.Context) error {
	s, err := g.store.Load(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case errors.Is(err, status.ErrNoSession):
		g.current = nil
		return nil
	case err != nil:
		slog.Warn("session: discarding unreadable record", "error", err)
		g.current = nil
		if cerr := g.store.Clear(ctx); cerr != nil {
			return fmt.Errorf("session: restore: %w", cerr)
		}
		return nil
	case !s.Role.Valid():
		slog.Warn("session: discarding record with unknown role", "role", s.Role)
		g.current = nil
		return g.store.Clear(ctx)
	}

	g.current = &s
	return nil
}

// SignIn persists s and makes it current.
func (g *Gate) SignIn(ctx context.Context, s models.Session) error {
	if !s.Role.Valid() {
		return fmt.Errorf("session: sign in: unknown role %q", s.Role)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Save(ctx, s); err != nil {
		return err
	}
	g.current = &s
	return nil
}

func (g *Gate) SignOut(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.current = nil
	return g.store.Clear(ctx)
}

func (g *Gate) Current() (models.Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current == nil {
		return models.Session{}, false
	}
	return *g.current, true
}

func (g *Gate) Authenticated() bool {
	_, ok := g.Current()
	return ok
}

// Role is empty when nobody is signed in.
func (g *Gate) Role() models.Role {
	s, _ := g.Current()
	return s.Role
}

// NavLinks returns the top navigation for the current role.
func (g *Gate) NavLinks() []Link {
	switch g.Role() {
	case models.RoleAdmin:
		return []Link{{"Dashboard", "/admin-dashboard"}, {"Sign Out", "/signout"}}
	case models.RoleOrganizer:
		return []Link{{"Dashboard", "/organizer-dashboard"}, {"Sign Out", "/signout"}}
	case models.RoleCustomer:
		return []Link{{"Profile", "/user-profile"}, {"Bookings", "/user-bookings"}, {"Sign Out", "/signout"}}
	}
	return []Link{{"Sign In", "/signin"}, {"Sign Up", "/signup"}}
}

// DashboardLinks is the sub-navigation inside a dashboard. Customers have no
// dashboard.
func DashboardLinks(role models.Role) []Link {
	switch role {
	case models.RoleAdmin:
		return []Link{
			{"Dashboard", "/admin-dashboard"},
			{"Categories", "/ManageCategories"},
			{"Organizers", "/ManageOrganizers"},
			{"Events", "/ManageEvents"},
			{"Revenue", "/ViewRevenue"},
		}
	case models.RoleOrganizer:
		return []Link{
			{"Dashboard", "/organizer-dashboard"},
			{"Events", "/OrganizerManageEvents"},
			{"Revenue", "/OrganizerRevenue"},
		}
	}
	return nil
}
