package http

import (
	"net/http"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/service"
	"github.com/smetchik/backend/pkg/backendsdk"
	"github.com/smetchik/backend/pkg/formx"
	"github.com/smetchik/backend/pkg/httpx"
	"github.com/smetchik/backend/pkg/slogx"
)

type ScanHandler struct {
	ScanService    *service.ScanService
	MaxBodyBytes   int64
	MaxUploadBytes int64
}

func dimensionsToResponse(d domain.Dimensions) backendsdk.DimensionsResponse {
	return backendsdk.DimensionsResponse{
		ScanID:          d.ScanID,
		WallHeightM:     d.WallHeightM,
		PerimeterM:      d.PerimeterM,
		FloorAreaM2:     d.FloorAreaM2,
		CoveragePercent: d.CoveragePercent,
		QualityScore:    d.QualityScore,
	}
}

// HandleProcess godoc
//
//	@Summary		Upload scan frames
//	@Description	Accepts a multipart body with a scan_id field and any number of frame file parts. A missing scan_id means "scan-1".
//	@Tags			Scan
//	@Accept			mpfd
//	@Produce		json
//	@Param			scan_id	formData	string	false	"Scan identifier"
//	@Param			frames	formData	file	false	"Captured frame"
//	@Success		200		{object}	backendsdk.DimensionsResponse
//	@Failure		413		{object}	backendsdk.ErrorResponse	"Upload too large"
//	@Router			/api/v1/scan/process [post].
func (h *ScanHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := httpx.ReadBody(w, r, h.MaxUploadBytes)
	if err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	form := formx.Parse(body, r.Header.Get("Content-Type"))

	dims, err := h.ScanService.Process(ctx, form.Value("scan_id"), form.FileCount())
	if err != nil {
		slogx.FromContext(ctx).Error("process scan failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slogx.FromContext(ctx).Debug("scan frames received", "scan_id", dims.ScanID, "frames", form.FileCount())
	httpx.WriteJSON(w, http.StatusOK, dimensionsToResponse(dims))
}

// HandleFinish godoc
//
//	@Summary		Finish a scan
//	@Description	Closes the scan and returns the final dimensions.
//	@Tags			Scan
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.ScanFinishRequest	true	"Scan identifier"
//	@Success		200		{object}	backendsdk.DimensionsResponse
//	@Failure		500		{object}	backendsdk.ErrorResponse	"Malformed JSON"
//	@Router			/api/v1/scan/finish [post].
func (h *ScanHandler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req backendsdk.ScanFinishRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	dims, err := h.ScanService.Finish(ctx, req.ScanID)
	if err != nil {
		slogx.FromContext(ctx).Error("finish scan failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dimensionsToResponse(dims))
}
