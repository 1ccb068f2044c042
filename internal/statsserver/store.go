// Package statsserver is the statistics service: it records endpoint hits
// from other services and aggregates them into view counts.
package statsserver

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"afisha_backend/internal/dto"
)

//go:embed schema.sql
var schemaSQL string

type Store interface {
	InsertHit(ctx context.Context, hit dto.Hit) error
	QueryStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]dto.ViewStats, error)
	Ping(ctx context.Context) error
	Close()
}

type store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to stats database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply stats schema: %w", err)
	}
	return &store{pool: pool}, nil
}

func (s *store) InsertHit(ctx context.Context, hit dto.Hit) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO endpoint_hits (app, uri, ip, created_at) VALUES ($1, $2, $3, $4)`,
		hit.App, hit.URI, hit.IP, hit.Timestamp.Time)
	if err != nil {
		return fmt.Errorf("insert hit: %w", err)
	}
	return nil
}

func (s *store) QueryStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]dto.ViewStats, error) {
	counter := "COUNT(ip)"
	if unique {
		counter = "COUNT(DISTINCT ip)"
	}

	var sb strings.Builder
	sb.WriteString("SELECT app, uri, " + counter + " AS hits FROM endpoint_hits")
	sb.WriteString(" WHERE created_at BETWEEN $1 AND $2")

	args := []any{start, end}
	if len(uris) > 0 {
		args = append(args, uris)
		sb.WriteString(fmt.Sprintf(" AND uri = ANY($%d)", len(args)))
	}
	sb.WriteString(" GROUP BY app, uri ORDER BY hits DESC")

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := []dto.ViewStats{}
	for rows.Next() {
		var stat dto.ViewStats
		if err := rows.Scan(&stat.App, &stat.URI, &stat.Hits); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	return stats, nil
}

func (s *store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *store) Close() {
	s.pool.Close()
}
