package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"sync"

	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/storage"
	"sidewalksafe/pkg/e"
)

var _ storage.HazardRepository = (*Store)(nil)

// header is the persisted column order. It must not change: the file is the
// external interface other tooling reads.
var header = []string{
	"Hazard_ID", "Description", "Severity_Level", "Accessibility",
	"Address", "Image_Path", "Date", "Time", "Status",
}

// Store persists hazard reports in a single delimited text file. Every
// mutation rewrites the full table; the mutex makes the store single-writer,
// and writes go through a temp file + rename so readers never observe a
// half-written table.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

func (s *Store) List(ctx context.Context) ([]domain.HazardReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Insert(ctx context.Context, report *domain.HazardReport) error {
	const op = "csvstore.Insert"

	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.load()
	if err != nil {
		return e.Wrap(op, err)
	}

	for _, r := range reports {
		if r.Description == report.Description && r.Address == report.Address {
			return fmt.Errorf("%s: %w", op, e.ErrDuplicate)
		}
	}

	report.ID = int64(len(reports)) + 1
	reports = append(reports, *report)

	if err := s.save(reports); err != nil {
		return e.Wrap(op, err)
	}
	s.logger.Info("report appended", slog.Int64("id", report.ID), slog.Int("table_size", len(reports)))
	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (domain.HazardReport, error) {
	const op = "csvstore.Get"

	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.load()
	if err != nil {
		return domain.HazardReport{}, e.Wrap(op, err)
	}
	for _, r := range reports {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.HazardReport{}, fmt.Errorf("%s: %w", op, e.ErrNotFound)
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	const op = "csvstore.UpdateStatus"

	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.load()
	if err != nil {
		return e.Wrap(op, err)
	}

	found := false
	for i := range reports {
		if reports[i].ID == id {
			reports[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	if err := s.save(reports); err != nil {
		return e.Wrap(op, err)
	}
	s.logger.Info("report status updated", slog.Int64("id", id), slog.String("status", string(status)))
	return nil
}

// load reads the whole table. A missing file is an empty table.
func (s *Store) load() ([]domain.HazardReport, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.HazardReport{}, nil
		}
		return nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = len(header)

	rows, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	reports := make([]domain.HazardReport, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Hazard_ID %q: %w", i, row[0], err)
		}
		reports = append(reports, domain.HazardReport{
			ID:            id,
			Description:   row[1],
			Severity:      domain.Severity(row[2]),
			Accessibility: domain.AccessibilityLevel(row[3]),
			Address:       row[4],
			ImagePath:     row[5],
			Date:          row[6],
			Time:          row[7],
			Status:        domain.Status(row[8]),
		})
	}
	return reports, nil
}

// save rewrites the full table atomically.
func (s *Store) save(reports []domain.HazardReport) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".hazards-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return err
	}
	for _, r := range reports {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Description,
			string(r.Severity),
			string(r.Accessibility),
			r.Address,
			r.ImagePath,
			r.Date,
			r.Time,
			string(r.Status),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
