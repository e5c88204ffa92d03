package presenter

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/model"
)

// ScheduleSource supplies the schedule snapshot a resolution works on.
// The station client is the real implementation.
type ScheduleSource interface {
	Schedule(ctx context.Context) ([]model.ScheduleEntry, error)
}

// Overrides lets studio staff force a presenter onto the banner regardless of
// the schedule. Lookup returns nil when no override is active.
type Overrides interface {
	ActiveOverride(ctx context.Context) (*model.LivePresenter, error)
}

const fetchTimeout = 10 * time.Second

// Service is the caller-facing entry point: fetch the schedule, apply any
// override, resolve. It never returns an error; every failure path degrades
// to the auto-DJ fallback.
type Service struct {
	source    ScheduleSource
	overrides Overrides
	resolver  *Resolver
}

func NewService(source ScheduleSource, overrides Overrides, resolver *Resolver) *Service {
	return &Service{source: source, overrides: overrides, resolver: resolver}
}

// Current resolves the presenter on air right now.
func (s *Service) Current(ctx context.Context) model.LivePresenter {
	return s.At(ctx, time.Now())
}

// At resolves the presenter on air at the given instant.
func (s *Service) At(ctx context.Context, now time.Time) model.LivePresenter {
	if s.overrides != nil {
		forced, err := s.overrides.ActiveOverride(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("override lookup failed, falling through to schedule")
		} else if forced != nil {
			return *forced
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	entries, err := s.source.Schedule(fetchCtx)
	if err != nil {
		log.Error().Err(err).Msg("schedule fetch failed, resolving to auto-DJ")
		return s.resolver.AutoDJ()
	}
	return s.resolver.Resolve(entries, now)
}
