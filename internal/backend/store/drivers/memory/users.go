package memory

import (
	"context"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
)

type usersRepo struct {
	st *state
	g  guard
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	defer r.g.lock()()

	if _, taken := r.st.logins[u.Login]; taken {
		return domain.User{}, store.ErrAlreadyExists
	}

	r.st.nextUserID++
	u.ID = r.st.nextUserID
	r.st.users[u.ID] = u
	r.st.logins[u.Login] = u.ID
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	defer r.g.lock()()

	u, ok := r.st.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetUserByLogin(ctx context.Context, login string) (domain.User, error) {
	defer r.g.lock()()

	id, ok := r.st.logins[login]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return r.st.users[id], nil
}

func (r *usersRepo) FirstUser(ctx context.Context) (domain.User, error) {
	defer r.g.lock()()

	var first domain.User
	for id, u := range r.st.users {
		if first.ID == 0 || id < first.ID {
			first = u
		}
	}
	if first.ID == 0 {
		return domain.User{}, store.ErrNotFound
	}
	return first, nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string, now time.Time) error {
	defer r.g.lock()()

	u, ok := r.st.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = now
	r.st.users[id] = u
	return nil
}

func (r *usersRepo) UpdateTwoFA(ctx context.Context, id int64, enabled bool, secret string, now time.Time) error {
	defer r.g.lock()()

	u, ok := r.st.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.TwoFAEnabled = enabled
	u.TwoFASecret = secret
	u.UpdatedAt = now
	r.st.users[id] = u
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	defer r.g.lock()()

	u, ok := r.st.users[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(r.st.users, id)
	delete(r.st.logins, u.Login)
	return nil
}
