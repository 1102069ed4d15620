package sqlite

import (
	"context"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
)

type scansRepo struct {
	db dbtx
}

const scanColumns = `id, frames_received, finished, created_at, updated_at`

func scanScan(row interface{ Scan(...any) error }) (domain.Scan, error) {
	var (
		sc                   domain.Scan
		createdAt, updatedAt int64
	)
	if err := row.Scan(&sc.ID, &sc.FramesReceived, &sc.Finished, &createdAt, &updatedAt); err != nil {
		return domain.Scan{}, mapNotFound(err)
	}
	sc.CreatedAt = fromMillis(createdAt)
	sc.UpdatedAt = fromMillis(updatedAt)
	return sc, nil
}

func (r *scansRepo) RecordFrames(ctx context.Context, scanID string, frames int, now time.Time) (domain.Scan, error) {
	return scanScan(r.db.QueryRowContext(ctx,
		`INSERT INTO scans (id, frames_received, finished, created_at, updated_at)
		 VALUES (?, ?, 0, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     frames_received = frames_received + excluded.frames_received,
		     updated_at = excluded.updated_at
		 RETURNING `+scanColumns,
		scanID, frames, toMillis(now), toMillis(now),
	))
}

func (r *scansRepo) FinishScan(ctx context.Context, scanID string, now time.Time) (domain.Scan, error) {
	return scanScan(r.db.QueryRowContext(ctx,
		`INSERT INTO scans (id, frames_received, finished, created_at, updated_at)
		 VALUES (?, 0, 1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     finished = 1,
		     updated_at = excluded.updated_at
		 RETURNING `+scanColumns,
		scanID, toMillis(now), toMillis(now),
	))
}

func (r *scansRepo) GetScan(ctx context.Context, scanID string) (domain.Scan, error) {
	return scanScan(r.db.QueryRowContext(ctx, `SELECT `+scanColumns+` FROM scans WHERE id = ?`, scanID))
}

func (r *scansRepo) DeleteScansBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM scans WHERE updated_at < ?`, toMillis(cutoff))
}
