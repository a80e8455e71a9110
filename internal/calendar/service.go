package calendar

import (
	"context"
	"errors"
	"time"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidWeekday    = errors.New("weekday must be between 0 and 6")
	ErrInvalidWindow     = errors.New("window start must be before end")
	ErrInvalidDateRange  = errors.New("invalid time off range")
	ErrRuleNotFound      = errors.New("availability rule not found")
	ErrExceptionNotFound = errors.New("time off exception not found")
)

type Service interface {
	SetRule(ctx context.Context, artistID int64, req CreateRuleRequest) (*AvailabilityRule, error)
	RemoveRule(ctx context.Context, artistID int64, ruleID int) error
	ListActiveRules(ctx context.Context, artistID int64) ([]AvailabilityRule, error)
	ListRules(ctx context.Context, artistID int64) ([]AvailabilityRule, error)
	AddTimeOff(ctx context.Context, artistID int64, req CreateTimeOffRequest) (*TimeOffException, error)
	RemoveTimeOff(ctx context.Context, artistID int64, exceptionID int) error
	ListTimeOff(ctx context.Context, artistID int64, from, to time.Time) ([]TimeOffException, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetRule(ctx context.Context, artistID int64, req CreateRuleRequest) (*AvailabilityRule, error) {
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	if req.StartMinute < 0 || req.EndMinute > minutesPerDay || req.StartMinute >= req.EndMinute {
		return nil, ErrInvalidWindow
	}

	return s.repo.CreateRule(ctx, artistID, req.Weekday, req.StartMinute, req.EndMinute)
}

func (s *service) RemoveRule(ctx context.Context, artistID int64, ruleID int) error {
	err := s.repo.DeactivateRule(ctx, artistID, ruleID)
	if err != nil {
		if errors.Is(err, ErrRuleNotFoundOrInactive) {
			return ErrRuleNotFound
		}
		return err
	}
	return nil
}

func (s *service) ListActiveRules(ctx context.Context, artistID int64) ([]AvailabilityRule, error) {
	return s.repo.ListActiveRules(ctx, artistID)
}

func (s *service) ListRules(ctx context.Context, artistID int64) ([]AvailabilityRule, error) {
	return s.repo.ListRules(ctx, artistID)
}

func (s *service) AddTimeOff(ctx context.Context, artistID int64, req CreateTimeOffRequest) (*TimeOffException, error) {
	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	if !startAt.Before(endAt) {
		return nil, ErrInvalidDateRange
	}

	return s.repo.AddException(ctx, artistID, startAt.UTC(), endAt.UTC(), req.Reason)
}

func (s *service) RemoveTimeOff(ctx context.Context, artistID int64, exceptionID int) error {
	err := s.repo.RemoveException(ctx, artistID, exceptionID)
	if err != nil {
		if errors.Is(err, ErrExceptionNotFoundRow) {
			return ErrExceptionNotFound
		}
		return err
	}
	return nil
}

func (s *service) ListTimeOff(ctx context.Context, artistID int64, from, to time.Time) ([]TimeOffException, error) {
	return s.repo.ListExceptions(ctx, artistID, from, to)
}
