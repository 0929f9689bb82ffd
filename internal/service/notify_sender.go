package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"sidewalksafe/internal/config"
	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/redis"
	"sidewalksafe/pkg/e"
)

// NotifySender drains the report-event queue and delivers each event to the
// configured webhook with bounded retry.
type NotifySender struct {
	logger *slog.Logger
	cfg    config.NotifyConfig
	queue  *redis.ReportQueue
	http   *http.Client
}

func NewNotifySender(logger *slog.Logger, cfg config.NotifyConfig, q *redis.ReportQueue) *NotifySender {
	return &NotifySender{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *NotifySender) Run(ctx context.Context) {
	s.logger.Info("notify sender started", slog.String("url", s.cfg.WebhookURL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notify sender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		event, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.logger.Info("sending report notification",
			slog.String("event_id", event.EventID),
			slog.Int64("hazard_id", event.HazardID),
		)
		s.sendWithRetry(ctx, event)
	}
}

func (s *NotifySender) sendWithRetry(ctx context.Context, event domain.ReportEvent) {
	const maxRetries = 3

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal report event failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create webhook request failed", slog.String("error", err.Error()))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("webhook delivery failed",
			slog.Int("attempt", attempt),
			slog.String("event_id", event.EventID),
			slog.String("reason", reason),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}
}
