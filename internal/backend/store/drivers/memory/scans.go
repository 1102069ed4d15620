package memory

import (
	"context"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
)

type scansRepo struct {
	st *state
	g  guard
}

func (r *scansRepo) upsert(scanID string, now time.Time, mutate func(*domain.Scan)) domain.Scan {
	sc, ok := r.st.scans[scanID]
	if !ok {
		sc = domain.Scan{ID: scanID, CreatedAt: now}
	}
	mutate(&sc)
	sc.UpdatedAt = now
	r.st.scans[scanID] = sc
	return sc
}

func (r *scansRepo) RecordFrames(ctx context.Context, scanID string, frames int, now time.Time) (domain.Scan, error) {
	defer r.g.lock()()

	return r.upsert(scanID, now, func(sc *domain.Scan) { sc.FramesReceived += frames }), nil
}

func (r *scansRepo) FinishScan(ctx context.Context, scanID string, now time.Time) (domain.Scan, error) {
	defer r.g.lock()()

	return r.upsert(scanID, now, func(sc *domain.Scan) { sc.Finished = true }), nil
}

func (r *scansRepo) GetScan(ctx context.Context, scanID string) (domain.Scan, error) {
	defer r.g.lock()()

	sc, ok := r.st.scans[scanID]
	if !ok {
		return domain.Scan{}, store.ErrNotFound
	}
	return sc, nil
}

func (r *scansRepo) DeleteScansBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	defer r.g.lock()()

	var n int64
	for id, sc := range r.st.scans {
		if sc.UpdatedAt.Before(cutoff) {
			delete(r.st.scans, id)
			n++
		}
	}
	return n, nil
}
