package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/storage"
	"sidewalksafe/pkg/e"
)

var _ storage.HazardRepository = (*HazardRepository)(nil)

type HazardRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewHazardRepository(pool *pgxpool.Pool, logger *slog.Logger) *HazardRepository {
	return &HazardRepository{pool: pool, logger: logger}
}

func (p *HazardRepository) List(ctx context.Context) ([]domain.HazardReport, error) {
	const op = "postgres.Hazard.List"

	const query = `
		SELECT id, description, severity, accessibility, address,
		       image_path, report_date, report_time, status
		FROM hazard_reports
		ORDER BY id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	reports := []domain.HazardReport{}
	for rows.Next() {
		var r domain.HazardReport
		if err := rows.Scan(
			&r.ID,
			&r.Description,
			&r.Severity,
			&r.Accessibility,
			&r.Address,
			&r.ImagePath,
			&r.Date,
			&r.Time,
			&r.Status,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return reports, nil
}

func (p *HazardRepository) Insert(ctx context.Context, report *domain.HazardReport) error {
	const op = "postgres.Hazard.Insert"

	const query = `
		INSERT INTO hazard_reports
			(description, severity, accessibility, address, image_path, report_date, report_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := p.pool.QueryRow(ctx, query,
		report.Description,
		report.Severity,
		report.Accessibility,
		report.Address,
		report.ImagePath,
		report.Date,
		report.Time,
		report.Status,
	).Scan(&report.ID)
	if err != nil {
		// 23505 on the (description, address) key becomes ErrDuplicate.
		wrapped := e.WrapError(ctx, op, err)
		if !errors.Is(wrapped, e.ErrDuplicate) {
			p.logger.Error("db insert failed", slog.String("op", op), slog.Any("error", err))
		}
		return wrapped
	}

	return nil
}

func (p *HazardRepository) Get(ctx context.Context, id int64) (domain.HazardReport, error) {
	const op = "postgres.Hazard.Get"

	const query = `
		SELECT id, description, severity, accessibility, address,
		       image_path, report_date, report_time, status
		FROM hazard_reports
		WHERE id = $1
	`

	var r domain.HazardReport
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&r.ID,
		&r.Description,
		&r.Severity,
		&r.Accessibility,
		&r.Address,
		&r.ImagePath,
		&r.Date,
		&r.Time,
		&r.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.HazardReport{}, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.Int64("id", id))
		return domain.HazardReport{}, e.WrapError(ctx, op, err)
	}

	return r, nil
}

func (p *HazardRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	const op = "postgres.Hazard.UpdateStatus"

	const query = `UPDATE hazard_reports SET status = $2 WHERE id = $1`

	cmd, err := p.pool.Exec(ctx, query, id, status)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.Int64("id", id))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}
