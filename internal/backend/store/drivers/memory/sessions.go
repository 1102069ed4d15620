package memory

import (
	"context"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
)

type sessionsRepo struct {
	st *state
	g  guard
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	defer r.g.lock()()

	if _, ok := r.st.sessions[s.TokenHash]; ok {
		return store.ErrAlreadyExists
	}
	r.st.sessions[s.TokenHash] = s
	return nil
}

func (r *sessionsRepo) GetSessionByHash(ctx context.Context, hash string) (domain.Session, error) {
	defer r.g.lock()()

	s, ok := r.st.sessions[hash]
	if !ok {
		return domain.Session{}, store.ErrNotFound
	}
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, hash string) error {
	defer r.g.lock()()

	if _, ok := r.st.sessions[hash]; !ok {
		return store.ErrNotFound
	}
	delete(r.st.sessions, hash)
	return nil
}

func (r *sessionsRepo) DeleteUserSessions(ctx context.Context, userID int64) error {
	defer r.g.lock()()

	for hash, s := range r.st.sessions {
		if s.UserID == userID {
			delete(r.st.sessions, hash)
		}
	}
	return nil
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	defer r.g.lock()()

	var n int64
	for hash, s := range r.st.sessions {
		if s.Expired(now) {
			delete(r.st.sessions, hash)
			n++
		}
	}
	return n, nil
}
