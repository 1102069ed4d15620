package memory

import (
	"context"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
)

type resetTokensRepo struct {
	st *state
	g  guard
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	defer r.g.lock()()

	if _, ok := r.st.resetTokens[t.ID]; ok {
		return store.ErrAlreadyExists
	}
	r.st.resetTokens[t.ID] = t
	return nil
}

func (r *resetTokensRepo) GetResetToken(ctx context.Context, id string) (domain.ResetToken, error) {
	defer r.g.lock()()

	t, ok := r.st.resetTokens[id]
	if !ok {
		return domain.ResetToken{}, store.ErrNotFound
	}
	return t, nil
}

func (r *resetTokensRepo) DeleteResetToken(ctx context.Context, id string) error {
	defer r.g.lock()()

	if _, ok := r.st.resetTokens[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.st.resetTokens, id)
	return nil
}

func (r *resetTokensRepo) DeleteResetTokensByLogin(ctx context.Context, login string) error {
	defer r.g.lock()()

	for id, t := range r.st.resetTokens {
		if t.Login == login {
			delete(r.st.resetTokens, id)
		}
	}
	return nil
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	defer r.g.lock()()

	var n int64
	for id, t := range r.st.resetTokens {
		if !now.Before(t.ExpiresAt) {
			delete(r.st.resetTokens, id)
			n++
		}
	}
	return n, nil
}
