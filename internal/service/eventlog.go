package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"thermal_planner/internal/logger"
	"thermal_planner/internal/models"
	"thermal_planner/internal/repository"
)

var ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	return from, to, normalizeEventType(f.Type), nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.Event, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// eventRecorder appends best-effort audit events; failures are logged, never returned.
type eventRecorder struct {
	repo repository.EventRepo
	log  *logger.Logger
}

func (r eventRecorder) record(ctx context.Context, typ, description string, meta map[string]any) {
	if r.repo == nil {
		return
	}
	ev := models.Event{
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: description,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := r.repo.Append(ctx, ev); err != nil && r.log != nil {
		r.log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}
