//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"sidewalksafe/internal/domain"
	"sidewalksafe/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := EnsureSchema(ctx, testPool); err != nil {
		fmt.Println("EnsureSchema:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func newRepo() *HazardRepository {
	return NewHazardRepository(testPool, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func truncate(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), "TRUNCATE hazard_reports RESTART IDENTITY")
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func testReport(desc, addr string) *domain.HazardReport {
	return &domain.HazardReport{
		Description:   desc,
		Severity:      domain.SeverityHigh,
		Accessibility: domain.Challenging,
		Address:       addr,
		Date:          "2026-08-28",
		Time:          "10:00:00",
		Status:        domain.StatusNotStarted,
	}
}

func TestInsert_AssignsIncrementingIDs(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	repo := newRepo()

	a := testReport("Broken curb ramp", "5th & Main")
	if err := repo.Insert(ctx, a); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if a.ID != 1 {
		t.Fatalf("expected id=1, got %d", a.ID)
	}

	b := testReport("Flooded underpass", "Oak Ave")
	if err := repo.Insert(ctx, b); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if b.ID != 2 {
		t.Fatalf("expected id=2, got %d", b.ID)
	}
}

func TestInsert_DuplicatePairRejected(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	repo := newRepo()

	if err := repo.Insert(ctx, testReport("Broken curb ramp", "5th & Main")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	err := repo.Insert(ctx, testReport("Broken curb ramp", "5th & Main"))
	if !errors.Is(err, e.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	reports, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 row, got %d", len(reports))
	}
}

func TestUpdateStatus(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	repo := newRepo()

	r := testReport("Broken curb ramp", "5th & Main")
	if err := repo.Insert(ctx, r); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.UpdateStatus(ctx, r.ID, domain.StatusCompleted); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusCompleted {
		t.Fatalf("expected Completed, got %q", got.Status)
	}

	if err := repo.UpdateStatus(ctx, 999, domain.StatusInProgress); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	repo := newRepo()

	descs := []string{"a", "b", "c"}
	for i, d := range descs {
		if err := repo.Insert(ctx, testReport(d, fmt.Sprintf("addr-%d", i))); err != nil {
			t.Fatalf("insert %q: %v", d, err)
		}
	}

	reports, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, d := range descs {
		if reports[i].Description != d {
			t.Fatalf("position %d: expected %q, got %q", i, d, reports[i].Description)
		}
	}
}
