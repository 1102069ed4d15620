package backendsdk

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// EmptyResponse encodes as {}.
type EmptyResponse struct{}

// ============================================================================
// Auth
// ============================================================================

type CredentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse is returned by register, login and refresh. UserID is the
// decimal user id as a string.
type AuthResponse struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RequestResetRequest accepts the account by login or email; the first
// non-blank one is used.
type RequestResetRequest struct {
	Login string `json:"login,omitempty"`
	Email string `json:"email,omitempty"`
}

// RequestResetResponse carries the reset token only when the account exists.
type RequestResetResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken,omitempty"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ============================================================================
// Account
// ============================================================================

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type TwoFARequest struct {
	Enabled bool `json:"enabled"`
}

type TwoFAStatusResponse struct {
	Enabled    bool   `json:"enabled"`
	Secret     string `json:"secret,omitempty"`
	OtpauthURL string `json:"otpauthUrl,omitempty"`
}

type TwoFAVerifyRequest struct {
	Code string `json:"code"`
}

type TwoFAVerifyResponse struct {
	Valid bool `json:"valid"`
}

// ============================================================================
// Support
// ============================================================================

type TicketRequest struct {
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

type TicketCreatedResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type Ticket struct {
	ID          int64  `json:"id"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"` // RFC 3339
}

type TicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

// ============================================================================
// Scan
// ============================================================================

type ScanFinishRequest struct {
	ScanID string `json:"scan_id"`
}

// Frame is one uploaded image of a scan.
type Frame struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DimensionsResponse is the room estimate for a scan.
type DimensionsResponse struct {
	ScanID          string  `json:"scan_id"`
	WallHeightM     float64 `json:"wall_height_m"`
	PerimeterM      float64 `json:"perimeter_m"`
	FloorAreaM2     float64 `json:"floor_area_m2"`
	CoveragePercent float64 `json:"coverage_percent"`
	QualityScore    float64 `json:"quality_score"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Store string `json:"store"`
}
