package sqlite

import (
	"context"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
)

const userColumns = `id, login, password_hash, two_fa_enabled, two_fa_secret, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.TwoFAEnabled, &u.TwoFASecret, &createdAt, &updatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (login, password_hash, two_fa_enabled, two_fa_secret, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING `+userColumns,
		u.Login, u.PasswordHash, u.TwoFAEnabled, u.TwoFASecret, toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapConflict(err)
	}
	return created, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByLogin(ctx context.Context, login string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE login = ?`, login))
}

func (r *usersRepo) FirstUser(ctx context.Context) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT 1`))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string, now time.Time) error {
	return execOne(ctx, r.db,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, toMillis(now), id,
	)
}

func (r *usersRepo) UpdateTwoFA(ctx context.Context, id int64, enabled bool, secret string, now time.Time) error {
	return execOne(ctx, r.db,
		`UPDATE users SET two_fa_enabled = ?, two_fa_secret = ?, updated_at = ? WHERE id = ?`,
		enabled, secret, toMillis(now), id,
	)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM users WHERE id = ?`, id)
}

