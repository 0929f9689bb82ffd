package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sidewalksafe/internal/api/handlers/http/plans"
	"sidewalksafe/internal/api/handlers/http/reports"
	"sidewalksafe/internal/api/handlers/http/routes"
	"sidewalksafe/internal/api/handlers/http/system"
	"sidewalksafe/internal/config"
	"sidewalksafe/internal/middleware"
	"sidewalksafe/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service) *Server {
	reportHandler := reports.NewHandler(logger, svc.HazardService)
	routeHandler := routes.NewHandler(logger, svc.RouteService)
	planHandler := plans.NewHandler(logger, svc.PlanService)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(cfg, reportHandler, routeHandler, planHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	reportHandler *reports.Handler,
	routeHandler *routes.Handler,
	planHandler *plans.Handler,
	systemHandler *system.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// REPORTS
		api.Route("/reports", func(rr chi.Router) {
			rr.Use(middleware.Limit(10, 20, 10*time.Minute, logger))

			rr.Get("/", reportHandler.ReportList)

			// Mutations sit behind the optional API key.
			rr.Group(func(mr chi.Router) {
				mr.Use(middleware.APIKey(cfg.APIKey))
				mr.Post("/", reportHandler.ReportSubmit)
			})

			rr.Route("/{id}", func(ir chi.Router) {
				ir.Get("/", reportHandler.ReportGet)

				ir.Group(func(mr chi.Router) {
					mr.Use(middleware.APIKey(cfg.APIKey))
					mr.Put("/status", reportHandler.ReportStatusUpdate)
					mr.Post("/plan", planHandler.PlanGenerate)
				})
			})
		})

		// ROUTES
		api.Route("/routes", func(pr chi.Router) {
			pr.Use(middleware.Limit(5, 10, 5*time.Minute, logger))
			pr.Post("/", routeHandler.RoutePlan)
		})
		api.Get("/places/suggest", routeHandler.PlaceSuggest)
		api.Post("/narration", routeHandler.Narrate)

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
