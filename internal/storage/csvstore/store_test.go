package csvstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidewalksafe/internal/domain"
	"sidewalksafe/pkg/e"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sidewalk_hazards.csv")
	return New(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleReport(desc, addr string) *domain.HazardReport {
	return &domain.HazardReport{
		Description:   desc,
		Severity:      domain.SeverityHigh,
		Accessibility: domain.Challenging,
		Address:       addr,
		Date:          "2026-08-28",
		Time:          "09:30:00",
		Status:        domain.StatusNotStarted,
	}
}

func TestList_MissingFileIsEmptyTable(t *testing.T) {
	store := newTestStore(t)

	reports, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestInsert_AssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleReport("Broken curb ramp", "5th & Main")
	require.NoError(t, store.Insert(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	second := sampleReport("Flooded underpass", "Oak Ave")
	require.NoError(t, store.Insert(ctx, second))
	assert.Equal(t, int64(2), second.ID)

	reports, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "Broken curb ramp", reports[0].Description)
	assert.Equal(t, "Flooded underpass", reports[1].Description)
}

func TestInsert_RejectsDuplicatePair(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleReport("Broken curb ramp", "5th & Main")))

	err := store.Insert(ctx, sampleReport("Broken curb ramp", "5th & Main"))
	require.ErrorIs(t, err, e.ErrDuplicate)

	reports, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestInsert_SameDescriptionDifferentAddressAllowed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleReport("Broken curb ramp", "5th & Main")))
	require.NoError(t, store.Insert(ctx, sampleReport("Broken curb ramp", "6th & Main")))

	reports, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestUpdateStatus_ChangesOnlyTargetRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := sampleReport("Broken curb ramp", "5th & Main")
	b := sampleReport("Flooded underpass", "Oak Ave")
	require.NoError(t, store.Insert(ctx, a))
	require.NoError(t, store.Insert(ctx, b))

	before, err := store.List(ctx)
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(ctx, a.ID, domain.StatusCompleted))

	after, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)

	assert.Equal(t, domain.StatusCompleted, after[0].Status)

	// Everything except the one status field is untouched.
	before[0].Status = domain.StatusCompleted
	assert.Equal(t, before, after)
}

func TestUpdateStatus_UnknownIDIsNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateStatus(context.Background(), 42, domain.StatusInProgress)
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := sampleReport("Broken curb ramp", "5th & Main")
	require.NoError(t, store.Insert(ctx, r))

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, *r, got)

	_, err = store.Get(ctx, 99)
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestRoundTrip_AllColumnsSurviveReload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := &domain.HazardReport{
		Description:   `Pothole, "deep", near crossing`,
		Severity:      domain.SeveritySevere,
		Accessibility: domain.Inaccessible,
		Address:       "12 Elm St, Apt 3",
		ImagePath:     "uploaded_images/pothole.jpg",
		Date:          "2026-08-28",
		Time:          "17:05:09",
		Status:        domain.StatusNotStarted,
	}
	require.NoError(t, store.Insert(ctx, r))

	// A fresh store over the same file sees the identical record.
	reopened := New(store.path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	reports, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, *r, reports[0])
}

func TestFilterByStatus_PartitionsTable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleReport("a", "1")))
	require.NoError(t, store.Insert(ctx, sampleReport("b", "2")))
	require.NoError(t, store.Insert(ctx, sampleReport("c", "3")))
	require.NoError(t, store.UpdateStatus(ctx, 2, domain.StatusCompleted))

	all, err := store.List(ctx)
	require.NoError(t, err)

	current := domain.FilterByStatus(all, domain.StatusNotStarted, domain.StatusInProgress)
	archived := domain.FilterByStatus(all, domain.StatusCompleted)

	assert.Len(t, current, 2)
	assert.Len(t, archived, 1)
	assert.Equal(t, all, append(append([]domain.HazardReport{}, current[0]), archived[0], current[1]))
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Insert(context.Background(), sampleReport("a", "1")))

	entries, err := os.ReadDir(filepath.Dir(store.path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.path), entries[0].Name())
}
