package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"imagique/internal/session"
	"imagique/internal/validation"
	"imagique/models"
)

const (
	organizerRole    = "Organizer"
	organizerPending = "pending"
)

// AccountService covers sign in, sign up, sign out and the request to become
// an organizer.
type AccountService struct {
	backend AccountBackend
	gate    *session.Gate
}

func NewAccountService(b AccountBackend, gate *session.Gate) *AccountService {
	return &AccountService{backend: b, gate: gate}
}

func (s *AccountService) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	sess, err := s.backend.SignIn(ctx, models.SignInRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		slog.Info("sign in rejected", "email", email, "error", err)
		return models.Session{}, fmt.Errorf("sign in: %w", err)
	}
	if err := s.gate.SignIn(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("sign in: %w", err)
	}
	slog.Info("signed in", "role", sess.Role, "user", sess.UserDetailsID)
	return sess, nil
}

// SignUp validates and registers a customer. The session written afterwards
// only carries the customer role; the account id becomes known at the next
// sign in.
func (s *AccountService) SignUp(ctx context.Context, req models.SignUpRequest) (validation.Report, error) {
	report := validation.ValidateSignUp(req)
	if err := report.Err(); err != nil {
		return report, err
	}
	if err := s.backend.SignUp(ctx, req); err != nil {
		return report, fmt.Errorf("sign up: %w", err)
	}
	if err := s.gate.SignIn(ctx, models.Session{Role: models.RoleCustomer}); err != nil {
		return report, fmt.Errorf("sign up: %w", err)
	}
	return report, nil
}

// BecomeOrganizer sends a pending organizer request once every field is
// filled and valid.
func (s *AccountService) BecomeOrganizer(ctx context.Context, req models.OrganizerRequest) (validation.Report, error) {
	report := validation.ValidateOrganizer(req)
	if err := report.Err(); err != nil {
		return report, err
	}
	req.Role = organizerRole
	req.IsApproved = organizerPending
	if err := s.backend.BecomeOrganizer(ctx, req); err != nil {
		return report, fmt.Errorf("become organizer: %w", err)
	}
	slog.Info("organizer request submitted", "email", req.Email)
	return report, nil
}

func (s *AccountService) SignOut(ctx context.Context) error {
	return s.gate.SignOut(ctx)
}
