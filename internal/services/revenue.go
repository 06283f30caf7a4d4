package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"imagique/models"
)

var commissionRate = decimal.RequireFromString("0.10")

type RevenueService struct {
	backend BookingBackend
}

func NewRevenueService(b BookingBackend) *RevenueService {
	return &RevenueService{backend: b}
}

// Report fetches the totals of one event. The admin view also carries the
// platform commission, 10% of total revenue rounded to two places.
func (s *RevenueService) Report(ctx context.Context, eventID int64, eventName string, view models.Role) (models.RevenueReport, error) {
	rev, err := s.backend.Revenue(ctx, eventID)
	if err != nil {
		return models.RevenueReport{}, fmt.Errorf("revenue %d: %w", eventID, err)
	}

	report := models.RevenueReport{
		EventName:    eventName,
		TicketsSold:  rev.TotalTicketsSold,
		TotalRevenue: rev.TotalRevenue,
	}
	if view == models.RoleAdmin {
		report.Commission = Commission(rev.TotalRevenue)
	}
	return report, nil
}

func Commission(total decimal.Decimal) *decimal.Decimal {
	c := total.Mul(commissionRate).Round(2)
	return &c
}
