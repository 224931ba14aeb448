// Package database owns the Postgres connection pool and every SQL statement
// in the service. The store is deliberately dumb: two tables, no joins across
// them, profile payloads treated as opaque text.
package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Service represents a service that interacts with the database.
type Service interface {
	// Health returns a map of health status information about the pool.
	Health(ctx context.Context) map[string]string

	// Close terminates the database connection pool.
	Close()

	// Queries exposes the query layer backed by this service's pool.
	Queries() *Queries
}

type service struct {
	pool *pgxpool.Pool
	q    *Queries
}

// NewService opens a connection pool against the given Postgres URL and
// ensures the schema exists.
func NewService(ctx context.Context, databaseURL string) (Service, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	s := &service{
		pool: pool,
		q:    NewQueries(pool),
	}

	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

func (s *service) Queries() *Queries {
	return s.q
}

// initSchema creates the profiles and swipes tables if they do not exist.
// All statements are idempotent so startup is safe to repeat.
func (s *service) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id         TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			image_url  TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS swipes (
			session_id TEXT NOT NULL,
			profile_id TEXT NOT NULL,
			action     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (session_id, profile_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_swipes_session ON swipes(session_id)`,
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Health checks the health of the database connection pool.
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Error().Err(err).Msg("database health check failed")
		return stats
	}

	poolStats := s.pool.Stat()
	stats["status"] = "up"
	stats["total_conns"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_conns"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_conns"] = strconv.Itoa(int(poolStats.AcquiredConns()))
	stats["max_conns"] = strconv.Itoa(int(poolStats.MaxConns()))
	stats["acquire_count"] = strconv.FormatInt(poolStats.AcquireCount(), 10)

	if poolStats.AcquiredConns() > (poolStats.MaxConns() * 8 / 10) { // 80% capacity
		stats["message"] = "The database connection pool is experiencing heavy load."
	}

	return stats
}

// Close closes the database connection pool.
func (s *service) Close() {
	log.Info().Msg("disconnecting from database")
	s.pool.Close()
}
