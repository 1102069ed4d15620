package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smetchik/backend/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusNotFound, "Not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Login string `json:"login"`
	}

	t.Run("decodes object", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"login":"ivan"}`))
		var p payload
		require.NoError(t, httpx.ReadJSON(httptest.NewRecorder(), req, 1024, &p))
		require.Equal(t, "ivan", p.Login)
	})

	t.Run("empty body is an empty object", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		var p payload
		require.NoError(t, httpx.ReadJSON(httptest.NewRecorder(), req, 1024, &p))
		require.Empty(t, p.Login)
	})

	t.Run("malformed json fails", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"login":`))
		var p payload
		require.Error(t, httpx.ReadJSON(httptest.NewRecorder(), req, 1024, &p))
	})

	t.Run("oversized body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"login":"`+strings.Repeat("a", 100)+`"}`))
		var p payload
		err := httpx.ReadJSON(httptest.NewRecorder(), req, 16, &p)
		require.ErrorIs(t, err, httpx.ErrBodyTooLarge)

		rec := httptest.NewRecorder()
		httpx.WriteBodyError(rec, err)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

type stubResolver struct {
	ids map[string]int64
}

func (s stubResolver) ResolveBearer(_ context.Context, token string) (int64, error) {
	if id, ok := s.ids[token]; ok {
		return id, nil
	}
	return 0, errors.New("unknown token")
}

func TestAuthnMiddleware(t *testing.T) {
	res := stubResolver{ids: map[string]int64{"tok-good": 42}}

	var seen int64
	var seenOK bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, seenOK = httpx.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("resolves bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok-good")
		rec := httptest.NewRecorder()

		httpx.AuthnMiddleware(res, true)(inner).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, seenOK)
		assert.Equal(t, int64(42), seen)
	})

	t.Run("required rejects unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()

		httpx.AuthnMiddleware(res, true)(inner).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("optional passes anonymous through", func(t *testing.T) {
		seen, seenOK = 0, false
		rec := httptest.NewRecorder()

		httpx.AuthnMiddleware(res, false)(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, seenOK)
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, httpx.BearerToken(req))

	req.Header.Set("Authorization", "bearer  abc ")
	require.Equal(t, "abc", httpx.BearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	require.Empty(t, httpx.BearerToken(req))
}
