package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
)

type sessionsRepo struct {
	db dbtx
}

const createSession = `
INSERT INTO sessions (id, csrf_token, created_at, last_seen_at, expires_at)
VALUES (?, ?, ?, ?, ?)`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, createSession,
		s.ID,
		s.CSRFToken,
		toMillis(s.CreatedAt),
		toMillis(s.LastSeenAt),
		toMillis(s.ExpiresAt),
	)
	return mapConstraint(err)
}

const getSession = `
SELECT id, csrf_token, created_at, last_seen_at, expires_at
FROM sessions
WHERE id = ?`

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	var (
		s                        domain.Session
		created, seen, expiresAt int64
	)
	err := r.db.QueryRowContext(ctx, getSession, id).Scan(
		&s.ID,
		&s.CSRFToken,
		&created,
		&seen,
		&expiresAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.CreatedAt = fromMillis(created)
	s.LastSeenAt = fromMillis(seen)
	s.ExpiresAt = fromMillis(expiresAt)
	return s, nil
}

const touchSession = `
UPDATE sessions
SET last_seen_at = ?, expires_at = ?
WHERE id = ?`

func (r *sessionsRepo) TouchSession(ctx context.Context, id string, seen, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, touchSession, toMillis(seen), toMillis(expiresAt), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

const deleteSession = `DELETE FROM sessions WHERE id = ?`

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteSession, id)
	return err
}

const deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= ? RETURNING id`

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, deleteExpiredSessions, toMillis(now))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
