package sqlite

import (
	"context"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, kind, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, string(s.Kind), s.TokenHash, toMillis(s.ExpiresAt), toMillis(s.CreatedAt),
	)
	return mapConflict(err)
}

func (r *sessionsRepo) GetSessionByHash(ctx context.Context, hash string) (domain.Session, error) {
	var (
		s                    domain.Session
		kind                 string
		expiresAt, createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, kind, token_hash, expires_at, created_at FROM sessions WHERE token_hash = ?`,
		hash,
	).Scan(&s.ID, &s.UserID, &kind, &s.TokenHash, &expiresAt, &createdAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.Kind = domain.SessionKind(kind)
	s.ExpiresAt = fromMillis(expiresAt)
	s.CreatedAt = fromMillis(createdAt)
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, hash string) error {
	return execOne(ctx, r.db, `DELETE FROM sessions WHERE token_hash = ?`, hash)
}

func (r *sessionsRepo) DeleteUserSessions(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM sessions WHERE expires_at <= ?`, toMillis(now))
}
