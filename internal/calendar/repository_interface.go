package calendar

import (
	"context"
	"time"
)

type Repository interface {
	CreateRule(ctx context.Context, artistID int64, weekday, startMinute, endMinute int) (*AvailabilityRule, error)
	DeactivateRule(ctx context.Context, artistID int64, ruleID int) error
	ListActiveRules(ctx context.Context, artistID int64) ([]AvailabilityRule, error)
	ListRules(ctx context.Context, artistID int64) ([]AvailabilityRule, error)
	AddException(ctx context.Context, artistID int64, startAt, endAt time.Time, reason string) (*TimeOffException, error)
	RemoveException(ctx context.Context, artistID int64, exceptionID int) error
	ListExceptions(ctx context.Context, artistID int64, from, to time.Time) ([]TimeOffException, error)
}
