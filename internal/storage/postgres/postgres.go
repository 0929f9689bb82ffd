package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"sidewalksafe/internal/config"
	"sidewalksafe/pkg/e"
)

type Postgres struct {
	Pool    *pgxpool.Pool
	Hazards *HazardRepository
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	poolCfg.MaxConnLifetime = cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}
	logger.Info("Connected to Postgres", slog.String("db", cfg.Postgres.Database))

	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.EnsureSchema", err)
	}

	return &Postgres{
		Pool:    pool,
		Hazards: NewHazardRepository(pool, logger),
	}, nil
}

// EnsureSchema creates the reports table. The unique index on
// (description, address) is what enforces duplicate rejection on this
// backend; BIGSERIAL keeps ids equal to count+1 since reports are never
// deleted.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS hazard_reports (
			id            BIGSERIAL PRIMARY KEY,
			description   TEXT NOT NULL,
			severity      TEXT NOT NULL,
			accessibility TEXT NOT NULL,
			address       TEXT NOT NULL,
			image_path    TEXT NOT NULL DEFAULT '',
			report_date   TEXT NOT NULL,
			report_time   TEXT NOT NULL,
			status        TEXT NOT NULL DEFAULT 'Not Started',
			CONSTRAINT hazard_reports_description_address_key UNIQUE (description, address)
		)
	`
	_, err := pool.Exec(ctx, ddl)
	return err
}
