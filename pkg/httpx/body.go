package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrBodyTooLarge is returned when a request body exceeds its limit.
var ErrBodyTooLarge = errors.New("request body too large")

// ReadBody buffers the whole request body, refusing more than limit bytes.
// A non-positive limit disables the bound.
func ReadBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body := r.Body
	if limit > 0 {
		body = http.MaxBytesReader(w, r.Body, limit)
	}

	buf, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, err
	}
	return buf, nil
}

// ReadJSON buffers the body and decodes it into v. An empty body decodes as
// {} so that body-less POSTs behave like an empty object.
func ReadJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	buf, err := ReadBody(w, r, limit)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(buf)) == 0 {
		return nil
	}
	return json.Unmarshal(buf, v)
}

// WriteBodyError answers a ReadJSON/ReadBody failure: 413 for an oversized
// body, otherwise 500 carrying the decoder message.
func WriteBodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error())
}
