package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_LogsPathWithoutQuery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := RequestLogger(logger)(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=SECRETCODE&state=deadbeef", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "path=/auth/google/callback")
	assert.Contains(t, out, "status=200")
	assert.NotContains(t, out, "SECRETCODE")
	assert.NotContains(t, out, "deadbeef")
}

func TestRequestLogger_LogsPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	h := RequestLogger(logger)(chimiddleware.Recoverer(boom))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Contains(t, buf.String(), "http request panic")
	assert.Contains(t, buf.String(), "boom")
}
