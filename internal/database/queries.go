package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRow is a stored profile as the read path sees it. Data is the raw
// payload text; callers decide whether to parse it.
type ProfileRow struct {
	ID       string
	Data     string
	ImageURL string
}

// Queries is the hand-written query layer over the pool. Each method is a
// single statement; there are no cross-table transactions.
type Queries struct {
	pool *pgxpool.Pool
}

func NewQueries(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// InsertProfile stores a freshly generated profile.
func (q *Queries) InsertProfile(ctx context.Context, id, data, imageURL string) error {
	_, err := q.pool.Exec(ctx,
		`INSERT INTO profiles (id, data, image_url) VALUES ($1, $2, $3)`,
		id, data, imageURL)
	return err
}

// CountProfiles returns the total number of stored profiles.
func (q *Queries) CountProfiles(ctx context.Context) (int, error) {
	var n int
	err := q.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, err
}

// MaxSessionSwipes returns the largest per-session swipe count, or 0 when no
// swipes exist. COALESCE keeps the aggregate NULL out of the scan.
func (q *Queries) MaxSessionSwipes(ctx context.Context) (int, error) {
	var n int
	err := q.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(swipe_count), 0) FROM (
			SELECT COUNT(*) AS swipe_count
			FROM swipes
			GROUP BY session_id
		) AS per_session`).Scan(&n)
	return n, err
}

// UnseenProfiles returns up to limit profiles the session has not swiped,
// in random order. Randomness is per call, so pages are not stable.
func (q *Queries) UnseenProfiles(ctx context.Context, sessionID string, limit int) ([]ProfileRow, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, data, image_url
		FROM profiles
		WHERE id NOT IN (
			SELECT profile_id FROM swipes WHERE session_id = $1
		)
		ORDER BY random()
		LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []ProfileRow{}
	for rows.Next() {
		var p ProfileRow
		if err := rows.Scan(&p.ID, &p.Data, &p.ImageURL); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// RecordSwipe records a swipe for a session. A repeat swipe on the same
// (session, profile) pair is a silent no-op; the first action wins.
func (q *Queries) RecordSwipe(ctx context.Context, sessionID, profileID, action string) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO swipes (session_id, profile_id, action)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, profile_id) DO NOTHING`,
		sessionID, profileID, action)
	return err
}

// DeleteOldestProfiles removes exactly n profiles, oldest by created_at
// first, ties broken by id so the selection is deterministic. Swipe rows
// referencing deleted profiles stay behind on purpose: the log only exists
// to exclude already-seen ids.
func (q *Queries) DeleteOldestProfiles(ctx context.Context, n int) (int64, error) {
	tag, err := q.pool.Exec(ctx, `
		DELETE FROM profiles
		WHERE id IN (
			SELECT id FROM profiles
			ORDER BY created_at ASC, id ASC
			LIMIT $1
		)`, n)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
