package sqlite

import (
	"context"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
)

type resetTokensRepo struct {
	db dbtx
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (id, login, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Login, toMillis(t.ExpiresAt), toMillis(t.CreatedAt),
	)
	return mapConflict(err)
}

func (r *resetTokensRepo) GetResetToken(ctx context.Context, id string) (domain.ResetToken, error) {
	var (
		t                    domain.ResetToken
		expiresAt, createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, login, expires_at, created_at FROM reset_tokens WHERE id = ?`, id,
	).Scan(&t.ID, &t.Login, &expiresAt, &createdAt)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	t.ExpiresAt = fromMillis(expiresAt)
	t.CreatedAt = fromMillis(createdAt)
	return t, nil
}

func (r *resetTokensRepo) DeleteResetToken(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM reset_tokens WHERE id = ?`, id)
}

func (r *resetTokensRepo) DeleteResetTokensByLogin(ctx context.Context, login string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reset_tokens WHERE login = ?`, login)
	return err
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM reset_tokens WHERE expires_at <= ?`, toMillis(now))
}
