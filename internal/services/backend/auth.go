package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"imagique/models"
)

// SignIn exchanges credentials for the session record the client persists.
func (c *Client) SignIn(ctx context.Context, req models.SignInRequest) (models.Session, error) {
	var reply struct {
		Email         string `json:"email"`
		Role          string `json:"role"`
		UserDetailsID int64  `json:"userDetailsId"`
	}
	if err := c.sendJSON(ctx, "auth.signin", http.MethodPost, "/api/auth/signin", req, &reply); err != nil {
		return models.Session{}, err
	}

	role := models.Role(strings.ToLower(reply.Role))
	if !role.Valid() {
		return models.Session{}, fmt.Errorf("auth.signin: unknown role %q", reply.Role)
	}
	return models.Session{Email: reply.Email, Role: role, UserDetailsID: reply.UserDetailsID}, nil
}

func (c *Client) SignUp(ctx context.Context, req models.SignUpRequest) error {
	return c.sendJSON(ctx, "auth.signup", http.MethodPost, "/api/auth/signup", req, nil)
}

func (c *Client) BecomeOrganizer(ctx context.Context, req models.OrganizerRequest) error {
	return c.sendJSON(ctx, "auth.become_organizer", http.MethodPost, "/api/auth/become-organizer", req, nil)
}
