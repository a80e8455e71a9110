package engine

import (
	"context"
	"time"

	"emvibook/internal/calendar"
)

// Schedule management passes through to the calendar store unchanged; the
// engine implements calendar.Service so the HTTP layer has one entry point.
// Deactivating a rule never touches existing confirmed bookings: they keep
// blocking their intervals until cancelled or completed.

func (s *Service) SetRule(ctx context.Context, artistID int64, req calendar.CreateRuleRequest) (*calendar.AvailabilityRule, error) {
	return s.rules.SetRule(ctx, artistID, req)
}

func (s *Service) RemoveRule(ctx context.Context, artistID int64, ruleID int) error {
	return s.rules.RemoveRule(ctx, artistID, ruleID)
}

func (s *Service) ListActiveRules(ctx context.Context, artistID int64) ([]calendar.AvailabilityRule, error) {
	return s.rules.ListActiveRules(ctx, artistID)
}

func (s *Service) ListRules(ctx context.Context, artistID int64) ([]calendar.AvailabilityRule, error) {
	return s.rules.ListRules(ctx, artistID)
}

func (s *Service) AddTimeOff(ctx context.Context, artistID int64, req calendar.CreateTimeOffRequest) (*calendar.TimeOffException, error) {
	return s.rules.AddTimeOff(ctx, artistID, req)
}

func (s *Service) RemoveTimeOff(ctx context.Context, artistID int64, exceptionID int) error {
	return s.rules.RemoveTimeOff(ctx, artistID, exceptionID)
}

func (s *Service) ListTimeOff(ctx context.Context, artistID int64, from, to time.Time) ([]calendar.TimeOffException, error) {
	return s.rules.ListTimeOff(ctx, artistID, from, to)
}
