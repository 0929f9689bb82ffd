package plans_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"

	"sidewalksafe/internal/api/handlers/http/plans"
	"sidewalksafe/internal/domain"
	mock_service "sidewalksafe/internal/service/mocks"
	"sidewalksafe/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPlanGenerate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockPlanService(ctrl)
	h := plans.NewHandler(newTestLogger(), svc)

	want := domain.RemediationPlan{
		HazardID:        5,
		Plan:            "1. Survey.\nThe estimated budget is $800 USD.",
		EstimatedBudget: "$800",
	}

	svc.EXPECT().
		GeneratePlan(gomock.Any(), int64(5)).
		Return(want, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/5/plan", nil)
	req = addChiURLParam(req, "id", "5")
	rr := httptest.NewRecorder()

	h.PlanGenerate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var got domain.RemediationPlan
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	if got.EstimatedBudget != "$800" {
		t.Fatalf("unexpected budget %q", got.EstimatedBudget)
	}
}

func TestPlanGenerate_InvalidID_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := plans.NewHandler(newTestLogger(), mock_service.NewMockPlanService(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/zero/plan", nil)
	req = addChiURLParam(req, "id", "zero")
	rr := httptest.NewRecorder()

	h.PlanGenerate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestPlanGenerate_UnknownReport_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockPlanService(ctrl)
	h := plans.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		GeneratePlan(gomock.Any(), int64(99)).
		Return(domain.RemediationPlan{}, e.ErrNotFound).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/99/plan", nil)
	req = addChiURLParam(req, "id", "99")
	rr := httptest.NewRecorder()

	h.PlanGenerate(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d body=%s", http.StatusNotFound, rr.Code, rr.Body.String())
	}
}

func TestPlanGenerate_ProviderDown_502(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockPlanService(ctrl)
	h := plans.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		GeneratePlan(gomock.Any(), int64(2)).
		Return(domain.RemediationPlan{}, e.ErrExternalService).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/2/plan", nil)
	req = addChiURLParam(req, "id", "2")
	rr := httptest.NewRecorder()

	h.PlanGenerate(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadGateway, rr.Code, rr.Body.String())
	}
}
