package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/observability"
	"sidewalksafe/pkg/e"
	"sidewalksafe/pkg/validator"
)

type HazardSvc struct {
	repo       HazardRepository
	images     ImageSaver
	classifier ImageClassifier // nil when no classifier endpoint is configured
	queue      ReportEnqueuer  // nil when notifications are disabled
	cache      ReportCache     // nil when redis is not wired
	logger     *slog.Logger
	metrics    *observability.Metrics
}

func NewHazardService(
	repo HazardRepository,
	images ImageSaver,
	classifier ImageClassifier,
	queue ReportEnqueuer,
	cache ReportCache,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *HazardSvc {
	return &HazardSvc{
		repo:       repo,
		images:     images,
		classifier: classifier,
		queue:      queue,
		cache:      cache,
		logger:     logger,
		metrics:    metrics,
	}
}

// Submit validates a candidate report, rejects duplicates, persists the
// optional image, and appends the record with the next id and a fresh
// date/time stamp. Status always starts at Not Started.
func (s *HazardSvc) Submit(ctx context.Context, req domain.SubmitReportRequest) (domain.SubmitReportResponse, error) {
	const op = "service.Hazard.Submit"

	if err := validator.ValidateStruct(&req); err != nil {
		s.metrics.ValidationFailures.Inc()
		return domain.SubmitReportResponse{}, err
	}

	// Duplicate check happens before the image touches disk, so a rejected
	// submission leaves no side effects.
	existing, err := s.repo.List(ctx)
	if err != nil {
		return domain.SubmitReportResponse{}, e.Wrap(op, err)
	}
	for _, r := range existing {
		if r.Description == req.Description && r.Address == req.Address {
			s.metrics.DuplicatesRejected.Inc()
			return domain.SubmitReportResponse{}, fmt.Errorf("%s: %w", op, e.ErrDuplicate)
		}
	}

	var imagePath string
	var predictions []domain.Prediction
	if len(req.ImageBytes) > 0 {
		imagePath, err = s.images.Save(req.ImageName, req.ImageBytes)
		if err != nil {
			return domain.SubmitReportResponse{}, e.Wrap(op, err)
		}

		if s.classifier != nil {
			predictions, err = s.classifier.Classify(ctx, req.ImageBytes)
			if err != nil {
				// Classification is advisory; the report still goes in.
				s.metrics.ExternalServiceErrors.WithLabelValues("vision").Inc()
				s.logger.Warn("image classification failed", slog.Any("error", err))
				predictions = nil
			}
		}
	}

	date, tod := domain.StampNow()
	report := domain.HazardReport{
		Description:   req.Description,
		Severity:      req.Severity,
		Accessibility: req.Accessibility,
		Address:       req.Address,
		ImagePath:     imagePath,
		Date:          date,
		Time:          tod,
		Status:        domain.StatusNotStarted,
	}

	if err := s.repo.Insert(ctx, &report); err != nil {
		if errors.Is(err, e.ErrDuplicate) {
			s.metrics.DuplicatesRejected.Inc()
		}
		return domain.SubmitReportResponse{}, err
	}
	s.metrics.ReportsSubmitted.Inc()
	s.invalidateCache(ctx)

	s.logger.Info("hazard report submitted",
		slog.Int64("id", report.ID),
		slog.String("severity", string(report.Severity)),
		slog.String("address", report.Address),
	)

	if s.queue != nil {
		event := domain.ReportEvent{
			EventID:     uuid.NewString(),
			HazardID:    report.ID,
			Description: report.Description,
			Severity:    report.Severity,
			Address:     report.Address,
			ReportedAt:  domain.Clock().Now(),
		}
		if err := s.queue.Enqueue(ctx, event); err != nil {
			// Notification loss is tolerable; the report is already durable.
			s.logger.Warn("enqueue report event failed", slog.Any("error", err))
		}
	}

	return domain.SubmitReportResponse{
		Report:      domain.NewReportView(report),
		Predictions: predictions,
	}, nil
}

func (s *HazardSvc) List(ctx context.Context) (domain.ListReportsResponse, error) {
	reports, err := s.listReports(ctx)
	if err != nil {
		return domain.ListReportsResponse{}, err
	}
	return toListResponse(reports), nil
}

func (s *HazardSvc) Get(ctx context.Context, id int64) (domain.ReportView, error) {
	report, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.ReportView{}, err
	}
	return domain.NewReportView(report), nil
}

func (s *HazardSvc) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.metrics.StatusUpdates.Inc()
	s.invalidateCache(ctx)
	return nil
}

func (s *HazardSvc) FilterByStatus(ctx context.Context, statuses []domain.Status) (domain.ListReportsResponse, error) {
	reports, err := s.listReports(ctx)
	if err != nil {
		return domain.ListReportsResponse{}, err
	}
	return toListResponse(domain.FilterByStatus(reports, statuses...)), nil
}

// listReports serves reads through the cache when one is wired. The store
// stays authoritative; cache failures fall through to it silently.
func (s *HazardSvc) listReports(ctx context.Context) ([]domain.HazardReport, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil {
			return cached, nil
		}
	}

	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, reports); err != nil {
			s.logger.Warn("report cache set failed", slog.Any("error", err))
		}
	}
	return reports, nil
}

func (s *HazardSvc) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("report cache invalidate failed", slog.Any("error", err))
	}
}

func toListResponse(reports []domain.HazardReport) domain.ListReportsResponse {
	views := make([]domain.ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, domain.NewReportView(r))
	}
	return domain.ListReportsResponse{Reports: views, Total: len(views)}
}
