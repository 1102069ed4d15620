package backendsdk

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// ProcessScan uploads frames for scanID as multipart/form-data. An empty
// scanID lets the server pick its default.
func (c *Client) ProcessScan(ctx context.Context, scanID string, frames []Frame) (*DimensionsResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if scanID != "" {
		if err := mw.WriteField("scan_id", scanID); err != nil {
			return nil, fmt.Errorf("failed to encode scan_id: %w", err)
		}
	}

	for i, f := range frames {
		name := f.Filename
		if name == "" {
			name = fmt.Sprintf("frame-%d.jpg", i)
		}
		ctype := f.ContentType
		if ctype == "" {
			ctype = "application/octet-stream"
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="frames"; filename=%q`, name))
		h.Set("Content-Type", ctype)

		w, err := mw.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("failed to create frame part: %w", err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write frame: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/scan/process", buf.Bytes(), mw.FormDataContentType(), "")
	if err != nil {
		return nil, err
	}

	var dims DimensionsResponse
	if err := decodeJSON(resp, &dims, http.StatusOK); err != nil {
		return nil, err
	}
	return &dims, nil
}

func (c *Client) FinishScan(ctx context.Context, scanID string) (*DimensionsResponse, error) {
	var dims DimensionsResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/scan/finish", "", ScanFinishRequest{ScanID: scanID}, &dims); err != nil {
		return nil, err
	}
	return &dims, nil
}
