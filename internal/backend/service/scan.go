package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
)

// Estimator turns a scan into room dimensions.
type Estimator interface {
	Estimate(ctx context.Context, scan domain.Scan) (domain.Dimensions, error)
}

// StubEstimator answers fixed measurements regardless of the frames.
type StubEstimator struct{}

func (StubEstimator) Estimate(_ context.Context, scan domain.Scan) (domain.Dimensions, error) {
	return domain.Dimensions{
		ScanID:          scan.ID,
		WallHeightM:     2.7,
		PerimeterM:      18.4,
		FloorAreaM2:     21.16,
		CoveragePercent: 92.5,
		QualityScore:    0.87,
	}, nil
}

type ScanService struct {
	Store     store.Store
	Estimator Estimator
	Clock     Clock
}

func scanIDOrDefault(scanID string) string {
	if id := strings.TrimSpace(scanID); id != "" {
		return id
	}
	return domain.DefaultScanID
}

func (s *ScanService) estimator() Estimator {
	if s.Estimator != nil {
		return s.Estimator
	}
	return StubEstimator{}
}

// Process records an upload of frames for scanID and returns the current
// estimate.
func (s *ScanService) Process(ctx context.Context, scanID string, frames int) (domain.Dimensions, error) {
	sc, err := s.Store.Scans().RecordFrames(ctx, scanIDOrDefault(scanID), frames, s.Clock.now())
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("failed to record frames: %w", err)
	}
	return s.estimator().Estimate(ctx, sc)
}

// Finish closes scanID and returns the final estimate.
func (s *ScanService) Finish(ctx context.Context, scanID string) (domain.Dimensions, error) {
	sc, err := s.Store.Scans().FinishScan(ctx, scanIDOrDefault(scanID), s.Clock.now())
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("failed to finish scan: %w", err)
	}
	return s.estimator().Estimate(ctx, sc)
}
