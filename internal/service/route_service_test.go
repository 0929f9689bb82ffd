package service_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/observability"
	"sidewalksafe/internal/service"
	"sidewalksafe/pkg/e"
)

type stubProvider struct {
	route       domain.Route
	routeErr    error
	suggestions []domain.PlaceSuggestion
	suggestErr  error
}

func (p *stubProvider) WalkingRoute(_ context.Context, _, _ string) (domain.Route, error) {
	return p.route, p.routeErr
}

func (p *stubProvider) Suggest(_ context.Context, _ string) ([]domain.PlaceSuggestion, error) {
	return p.suggestions, p.suggestErr
}

type stubNarrator struct {
	audio []byte
	err   error
}

func (n *stubNarrator) Narrate(_ context.Context, _ string) ([]byte, error) {
	return n.audio, n.err
}

func fixedRNG() func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewSource(42)) }
}

func TestRouteService_PlanRoute(t *testing.T) {
	provider := &stubProvider{
		route: domain.Route{
			Points: []domain.RoutePoint{
				{Lat: 38.54, Lng: -121.74},
				{Lat: 38.55, Lng: -121.75},
				{Lat: 38.56, Lng: -121.76},
			},
			Steps: []domain.RouteStep{
				{Instructions: "Head <b>north</b>", DistanceText: "0.3 mi", DurationText: "6 mins"},
			},
			DurationSeconds: 3725,
		},
	}

	svc := service.NewRouteService(provider, &stubNarrator{}, testLogger(), observability.NewTestMetrics())
	svc.SetRNG(fixedRNG())

	annotated, err := svc.PlanRoute(context.Background(), domain.RouteRequest{Start: "a", End: "b"})
	require.NoError(t, err)

	require.Len(t, annotated.Points, 3)
	for i, p := range annotated.Points {
		assert.Equal(t, provider.route.Points[i], p.Point)
		assert.Equal(t, domain.AccessibilityColor[p.Accessibility], p.Color)
	}
	assert.Equal(t, provider.route.Steps, annotated.Steps)
	assert.Equal(t, 3725, annotated.DurationSeconds)
	assert.Equal(t, "1:02:05", annotated.DurationText)
}

func TestRouteService_PlanRoute_MissingEndpoint(t *testing.T) {
	svc := service.NewRouteService(&stubProvider{}, &stubNarrator{}, testLogger(), observability.NewTestMetrics())

	_, err := svc.PlanRoute(context.Background(), domain.RouteRequest{Start: "a"})
	assert.ErrorIs(t, err, e.ErrMissingField)
}

func TestRouteService_PlanRoute_NoRoute(t *testing.T) {
	svc := service.NewRouteService(&stubProvider{routeErr: e.ErrNoRoute}, &stubNarrator{}, testLogger(), observability.NewTestMetrics())

	_, err := svc.PlanRoute(context.Background(), domain.RouteRequest{Start: "a", End: "nowhere"})
	assert.ErrorIs(t, err, e.ErrNoRoute)
}

func TestRouteService_SuggestPlaces_DegradesToEmpty(t *testing.T) {
	svc := service.NewRouteService(&stubProvider{suggestErr: e.ErrExternalService}, &stubNarrator{}, testLogger(), observability.NewTestMetrics())

	got, err := svc.SuggestPlaces(context.Background(), "college")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRouteService_Narrate_QuotaPassthrough(t *testing.T) {
	svc := service.NewRouteService(&stubProvider{}, &stubNarrator{err: e.ErrQuotaExceeded}, testLogger(), observability.NewTestMetrics())

	_, err := svc.Narrate(context.Background(), "Step 1: Head north.")
	assert.ErrorIs(t, err, e.ErrQuotaExceeded)
}

func TestNarrationText(t *testing.T) {
	step := domain.RouteStep{
		Instructions: "Turn <b>left</b> onto Main St",
		DistanceText: "0.2 mi",
		DurationText: "4 mins",
	}

	got := service.NarrationText(0, step, "")
	assert.Equal(t, "Step 1: Turn left onto Main St. Estimated distance is 0.2 mi, and estimated time is 4 mins.", got)

	withReason := service.NarrationText(1, step, "Fallen tree blocking the path.")
	assert.Contains(t, withReason, "Step 2:")
	assert.Contains(t, withReason, "The original route had an issue: Fallen tree blocking the path. This route is better for you.")
}
