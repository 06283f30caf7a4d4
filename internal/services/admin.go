package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"imagique/internal/status"
	"imagique/models"
)

type OrganizerFilter string

const (
	FilterAll       OrganizerFilter = "All"
	FilterRequested OrganizerFilter = "Requested"
	FilterApproved  OrganizerFilter = "Approved"
	FilterRejected  OrganizerFilter = "Rejected"
)

var ErrUnknownAction = errors.New("organizer: unknown moderation action")

// ParseOrganizerFilter is case-insensitive; an empty string means All.
func ParseOrganizerFilter(s string) (OrganizerFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, true
	case "requested":
		return FilterRequested, true
	case "approved":
		return FilterApproved, true
	case "rejected":
		return FilterRejected, true
	}
	return "", false
}

func (f OrganizerFilter) match(o models.Organizer) bool {
	switch f {
	case FilterRequested:
		return o.Status() == models.ApprovalPending
	case FilterApproved:
		return o.Status() == models.ApprovalApproved
	case FilterRejected:
		return o.Status() == models.ApprovalRejected
	}
	return true
}

// AdminService is organizer moderation and category management.
type AdminService struct {
	backend AdminBackend
}

func NewAdminService(b AdminBackend) *AdminService {
	return &AdminService{backend: b}
}

func (s *AdminService) Organizers(ctx context.Context, filter OrganizerFilter) ([]models.Organizer, error) {
	all, err := s.backend.ListOrganizers(ctx)
	if err != nil {
		return nil, fmt.Errorf("organizers: %w", err)
	}
	out := make([]models.Organizer, 0, len(all))
	for _, o := range all {
		if filter.match(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Moderate applies approve, reject or block to an organizer.
func (s *AdminService) Moderate(ctx context.Context, userDetailsID int64, action string) error {
	var call func(context.Context, int64) error
	switch action {
	case "approve":
		call = s.backend.ApproveOrganizer
	case "reject":
		call = s.backend.RejectOrganizer
	case "block":
		call = s.backend.BlockOrganizer
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if err := call(ctx, userDetailsID); err != nil {
		return fmt.Errorf("organizer %s %d: %w", action, userDetailsID, err)
	}
	slog.Info("organizer moderated", "action", action, "user", userDetailsID)
	return nil
}

func (s *AdminService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.backend.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return categories, nil
}

// SaveCategory creates the category when it has no id, otherwise updates it.
func (s *AdminService) SaveCategory(ctx context.Context, d models.CategoryDraft) (models.Category, error) {
	d.CategoryName = strings.TrimSpace(d.CategoryName)
	if d.CategoryName == "" {
		return models.Category{}, fmt.Errorf("%w: categoryName", status.ErrValidation)
	}

	var (
		c   models.Category
		err error
	)
	if d.CategoryID == 0 {
		c, err = s.backend.CreateCategory(ctx, d)
	} else {
		c, err = s.backend.UpdateCategory(ctx, d)
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("save category: %w", err)
	}
	return c, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, categoryID int64) error {
	if err := s.backend.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("delete category %d: %w", categoryID, err)
	}
	return nil
}
