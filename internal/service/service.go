package service

import (
	"context"

	"sidewalksafe/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// HazardService owns the report lifecycle: validated submission, status
// management, and filtered views.
type HazardService interface {
	Submit(ctx context.Context, req domain.SubmitReportRequest) (domain.SubmitReportResponse, error)
	List(ctx context.Context) (domain.ListReportsResponse, error)
	Get(ctx context.Context, id int64) (domain.ReportView, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	FilterByStatus(ctx context.Context, statuses []domain.Status) (domain.ListReportsResponse, error)
}

// RouteService produces annotated walking routes and place suggestions.
type RouteService interface {
	PlanRoute(ctx context.Context, req domain.RouteRequest) (domain.AnnotatedRoute, error)
	SuggestPlaces(ctx context.Context, input string) ([]domain.PlaceSuggestion, error)
	Narrate(ctx context.Context, text string) ([]byte, error)
}

// PlanService generates remediation plans for stored hazards.
type PlanService interface {
	GeneratePlan(ctx context.Context, hazardID int64) (domain.RemediationPlan, error)
}

// Dependencies the services consume, defined here so storage and adapter
// packages stay swappable.

type HazardRepository interface {
	List(ctx context.Context) ([]domain.HazardReport, error)
	Insert(ctx context.Context, report *domain.HazardReport) error
	Get(ctx context.Context, id int64) (domain.HazardReport, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
}

type ImageSaver interface {
	Save(name string, data []byte) (string, error)
}

type ImageClassifier interface {
	Classify(ctx context.Context, image []byte) ([]domain.Prediction, error)
}

type ReportEnqueuer interface {
	Enqueue(ctx context.Context, event domain.ReportEvent) error
}

// ReportCache fronts List with a short-TTL copy of the table. Misses return
// e.ErrNotFound; writes invalidate.
type ReportCache interface {
	Get(ctx context.Context) ([]domain.HazardReport, error)
	Set(ctx context.Context, reports []domain.HazardReport) error
	Invalidate(ctx context.Context) error
}

type PlanGenerator interface {
	GeneratePlan(ctx context.Context, hazardDescription string) (string, error)
}

type Service struct {
	HazardService HazardService
	RouteService  RouteService
	PlanService   PlanService
}

func NewService(hazards HazardService, routes RouteService, plans PlanService) *Service {
	return &Service{
		HazardService: hazards,
		RouteService:  routes,
		PlanService:   plans,
	}
}
