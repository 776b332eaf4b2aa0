package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paymentrails/monei-sync/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: bad amount", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_ERROR"},
		{domain.ErrAuth, http.StatusUnauthorized, "AUTH_ERROR"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrSyncInProgress, http.StatusConflict, "SYNC_IN_PROGRESS"},
		{domain.ErrTransport, http.StatusBadGateway, "UPSTREAM_UNREACHABLE"},
		{domain.ErrRemote, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		status, code, _ := mapDomainError(tc.err)
		if status != tc.status || code != tc.code {
			t.Fatalf("error %v: want %d/%s, got %d/%s", tc.err, tc.status, tc.code, status, code)
		}
	}
}

func TestParseTimeParam(t *testing.T) {
	t.Parallel()

	got, err := parseTimeParam("2024-05-15T10:30:00+02:00")
	if err != nil {
		t.Fatalf("rfc3339 parse failed: %v", err)
	}
	if want := time.Date(2024, 5, 15, 8, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	got, err = parseTimeParam("2024-05-15")
	if err != nil {
		t.Fatalf("date parse failed: %v", err)
	}
	if want := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("plain date should read as midnight UTC, got %v", got)
	}

	if got, err = parseTimeParam("  "); err != nil || got != nil {
		t.Fatalf("blank input means absent, got %v %v", got, err)
	}
	if _, err = parseTimeParam("15/05/2024"); err == nil {
		t.Fatalf("unsupported format must be rejected")
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/monei/v1/charges", nil)
	req.Header.Set("X-Request-Id", "req-42")
	handler.ServeHTTP(rec, req)

	if seen != "req-42" {
		t.Fatalf("incoming request id must propagate, got %q", seen)
	}
	if rec.Header().Get("X-Request-Id") != "req-42" {
		t.Fatalf("request id must echo on the response")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/monei/v1/charges", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("a request id must be generated when absent")
	}
}

func TestRecoverMiddleware(t *testing.T) {
	t.Parallel()

	handler := recoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/monei/v1/sync", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("panic must map to 500, got %d", rec.Code)
	}
}
