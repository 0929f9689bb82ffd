package service

import (
	"context"
	"log/slog"

	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/observability"
)

type PlanSvc struct {
	repo      HazardRepository
	generator PlanGenerator
	logger    *slog.Logger
	metrics   *observability.Metrics
}

func NewPlanService(repo HazardRepository, generator PlanGenerator, logger *slog.Logger, metrics *observability.Metrics) *PlanSvc {
	return &PlanSvc{
		repo:      repo,
		generator: generator,
		logger:    logger,
		metrics:   metrics,
	}
}

// GeneratePlan asks the plan provider for a remediation plan for a stored
// hazard and opportunistically extracts the budget span. A missing budget
// phrase is not an error; an unknown hazard id is e.ErrNotFound.
func (s *PlanSvc) GeneratePlan(ctx context.Context, hazardID int64) (domain.RemediationPlan, error) {
	report, err := s.repo.Get(ctx, hazardID)
	if err != nil {
		return domain.RemediationPlan{}, err
	}

	text, err := s.generator.GeneratePlan(ctx, report.Description)
	if err != nil {
		s.metrics.ExternalServiceErrors.WithLabelValues("plan").Inc()
		return domain.RemediationPlan{}, err
	}
	s.metrics.PlansGenerated.Inc()

	plan := domain.RemediationPlan{
		HazardID: report.ID,
		Plan:     text,
	}
	if budget, ok := domain.ExtractBudget(text); ok {
		plan.EstimatedBudget = budget
	}

	s.logger.Info("remediation plan generated",
		slog.Int64("hazard_id", report.ID),
		slog.Bool("budget_found", plan.EstimatedBudget != ""),
	)
	return plan, nil
}
