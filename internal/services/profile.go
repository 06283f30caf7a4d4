package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"imagique/internal/session"
	"imagique/internal/status"
	"imagique/internal/validation"
	"imagique/models"
)

const (
	cardNumberDigits = 16
	cvvDigits        = 3
)

type ProfileService struct {
	backend AccountBackend
	gate    *session.Gate
}

func NewProfileService(b AccountBackend, gate *session.Gate) *ProfileService {
	return &ProfileService{backend: b, gate: gate}
}

func (s *ProfileService) userID() (int64, error) {
	sess, ok := s.gate.Current()
	if !ok || sess.UserDetailsID == 0 {
		return 0, status.ErrNoSession
	}
	return sess.UserDetailsID, nil
}

func (s *ProfileService) Profile(ctx context.Context) (models.UserDetails, error) {
	id, err := s.userID()
	if err != nil {
		return models.UserDetails{}, err
	}
	details, err := s.backend.UserDetails(ctx, id)
	if err != nil {
		return models.UserDetails{}, fmt.Errorf("profile: %w", err)
	}
	return details, nil
}

// Update validates and saves the editable profile fields for the signed-in
// user.
func (s *ProfileService) Update(ctx context.Context, p models.ProfileUpdate) (validation.Report, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}
	p.UserDetailsID = id

	report := validation.ValidateProfile(p)
	if err := report.Err(); err != nil {
		return report, err
	}
	if err := s.backend.UpdateProfile(ctx, p); err != nil {
		return report, fmt.Errorf("profile update: %w", err)
	}
	return report, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, p models.PasswordChange) (validation.Report, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	report := validation.ValidatePasswordChange(p)
	if err := report.Err(); err != nil {
		return report, err
	}
	if err := s.backend.ChangePassword(ctx, id, p.CurrentPassword, p.NewPassword); err != nil {
		return report, fmt.Errorf("change password: %w", err)
	}
	return report, nil
}

// TopUp adds money to the wallet. Card and CVV input are reduced to digits
// before validation; only the amount is sent.
func (s *ProfileService) TopUp(ctx context.Context, t models.WalletTopUp) (validation.Report, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	t.CardNumber = validation.DigitsOnly(t.CardNumber, cardNumberDigits)
	t.CVV = validation.DigitsOnly(t.CVV, cvvDigits)
	report := validation.ValidateTopUp(t)
	if err := report.Err(); err != nil {
		return report, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(t.Amount))
	if err != nil {
		return report, fmt.Errorf("wallet top up: %w", err)
	}
	if err := s.backend.AddToWallet(ctx, id, amount); err != nil {
		return report, fmt.Errorf("wallet top up: %w", err)
	}
	return report, nil
}
