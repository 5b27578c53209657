package sqlite

import (
	"context"
	"time"
)

type valuesRepo struct {
	db dbtx
}

const getValue = `
SELECT value
FROM session_values
WHERE session_id = ? AND key = ?`

func (r *valuesRepo) GetValue(ctx context.Context, sessionID, key string) ([]byte, error) {
	var value []byte
	if err := r.db.QueryRowContext(ctx, getValue, sessionID, key).Scan(&value); err != nil {
		return nil, mapNotFound(err)
	}
	return value, nil
}

const putValue = `
INSERT INTO session_values (session_id, key, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (session_id, key) DO UPDATE
SET value = excluded.value, updated_at = excluded.updated_at`

func (r *valuesRepo) PutValue(ctx context.Context, sessionID, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, putValue, sessionID, key, value, toMillis(time.Now()))
	return err
}

const deleteValue = `DELETE FROM session_values WHERE session_id = ? AND key = ?`

func (r *valuesRepo) DeleteValue(ctx context.Context, sessionID, key string) error {
	_, err := r.db.ExecContext(ctx, deleteValue, sessionID, key)
	return err
}
