package domain

import "time"

// DefaultScanID is used when a client omits scan_id.
const DefaultScanID = "scan-1"

type Scan struct {
	ID             string
	FramesReceived int
	Finished       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Dimensions is the room measurement returned for a scan.
type Dimensions struct {
	ScanID          string  `json:"scan_id"`
	WallHeightM     float64 `json:"wall_height_m"`
	PerimeterM      float64 `json:"perimeter_m"`
	FloorAreaM2     float64 `json:"floor_area_m2"`
	CoveragePercent float64 `json:"coverage_percent"`
	QualityScore    float64 `json:"quality_score"`
}
