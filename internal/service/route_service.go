package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"sidewalksafe/internal/adapter/directions"
	"sidewalksafe/internal/adapter/tts"
	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/observability"
	"sidewalksafe/internal/route"
	"sidewalksafe/pkg/e"
	"sidewalksafe/pkg/validator"
)

type RouteSvc struct {
	provider directions.Provider
	narrator tts.Narrator
	logger   *slog.Logger
	metrics  *observability.Metrics

	// newRNG seeds the per-request random source for the placeholder
	// classifier and reason draw; tests inject a fixed seed.
	newRNG func() *rand.Rand
}

func NewRouteService(provider directions.Provider, narrator tts.Narrator, logger *slog.Logger, metrics *observability.Metrics) *RouteSvc {
	return &RouteSvc{
		provider: provider,
		narrator: narrator,
		logger:   logger,
		metrics:  metrics,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetRNG overrides the random source factory. Test hook.
func (s *RouteSvc) SetRNG(newRNG func() *rand.Rand) {
	s.newRNG = newRNG
}

// PlanRoute fetches a walking route and overlays the synthetic
// accessibility classification. Provider failures stay recoverable: the
// caller gets e.ErrNoRoute or e.ErrExternalService, never a crash.
func (s *RouteSvc) PlanRoute(ctx context.Context, req domain.RouteRequest) (domain.AnnotatedRoute, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return domain.AnnotatedRoute{}, err
	}

	r, err := s.provider.WalkingRoute(ctx, req.Start, req.End)
	if err != nil {
		switch {
		case errors.Is(err, e.ErrNoRoute):
			s.metrics.RouteRequests.WithLabelValues("no_route").Inc()
		default:
			s.metrics.RouteRequests.WithLabelValues("error").Inc()
			s.metrics.ExternalServiceErrors.WithLabelValues("directions").Inc()
		}
		return domain.AnnotatedRoute{}, err
	}
	s.metrics.RouteRequests.WithLabelValues("success").Inc()

	rng := s.newRNG()
	points := route.Annotate(r.Points, route.RandomClassifier(rng), rng)

	return domain.AnnotatedRoute{
		Points:          points,
		Steps:           r.Steps,
		DurationSeconds: r.DurationSeconds,
		DurationText:    formatDuration(r.DurationSeconds),
	}, nil
}

func (s *RouteSvc) SuggestPlaces(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
	suggestions, err := s.provider.Suggest(ctx, input)
	if err != nil {
		// The adapter already degrades to empty on failure; this is a
		// second net for future providers.
		s.metrics.ExternalServiceErrors.WithLabelValues("places").Inc()
		s.logger.Warn("place suggestion failed", slog.Any("error", err))
		return []domain.PlaceSuggestion{}, nil
	}
	return suggestions, nil
}

// Narrate synthesizes audio for step text. Quota exhaustion surfaces as
// e.ErrQuotaExceeded so the handler can answer with a warning.
func (s *RouteSvc) Narrate(ctx context.Context, text string) ([]byte, error) {
	audio, err := s.narrator.Narrate(ctx, text)
	if err != nil {
		if !errors.Is(err, e.ErrInvalidInput) {
			s.metrics.ExternalServiceErrors.WithLabelValues("narration").Inc()
		}
		return nil, err
	}
	return audio, nil
}

// NarrationText assembles the spoken form of one step, pairing the i-th
// step with the i-th point's divergence reason when present.
func NarrationText(stepIndex int, step domain.RouteStep, reason string) string {
	text := fmt.Sprintf("Step %d: %s. Estimated distance is %s, and estimated time is %s.",
		stepIndex+1, tts.CleanText(step.Instructions), step.DistanceText, step.DurationText)
	if reason != "" {
		text += fmt.Sprintf(" The original route had an issue: %s This route is better for you.", reason)
	}
	return text
}

// formatDuration renders total seconds as H:MM:SS, the form shown next to
// "Estimated walking time".
func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
