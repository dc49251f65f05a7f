package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithLogger(t *testing.T) (*http.Request, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	ctx := logger.WithLogger(WithTraceID(req.Context(), "trace-123"), log)
	return req.WithContext(ctx), &buf
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{"object", http.StatusOK, map[string]int{"count": 3}, `{"count":3}`},
		{"empty", http.StatusCreated, map[string]interface{}{}, `{}`},
		{"nil", http.StatusOK, nil, `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedBody+"\n", w.Body.String())
		})
	}
}

func TestRespondWithBytes(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	RespondWithBytes(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "image/svg+xml", []byte("<svg/>"))

	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "<svg/>", w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req, _ := requestWithLogger(t)
	w := httptest.NewRecorder()
	RespondWithError(w, req, http.StatusBadRequest, "bad input")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bad input", resp["error"])
	assert.Equal(t, "trace-123", resp["trace_id"])
	assert.NotContains(t, resp, "kind")
	assert.NotContains(t, resp, "Code")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		err       error
		opts      []ResponseOption
		wantLevel string
		wantKind  string
	}{
		{
			name:      "server error logs at error",
			status:    http.StatusInternalServerError,
			err:       domain.NewUpstreamError("poll image job", "kie.ai", errors.New("token=abcdefghijkl123 rejected")),
			wantLevel: "ERROR",
			wantKind:  "upstream",
		},
		{
			name:      "client error logs at debug",
			status:    http.StatusBadRequest,
			err:       domain.NewValidationError("slides", "is required", nil),
			wantLevel: "DEBUG",
			wantKind:  "validation",
		},
		{
			name:      "elevated client error",
			status:    http.StatusNotFound,
			err:       domain.NewNotFoundError("batch", "x"),
			opts:      []ResponseOption{WithElevatedLogLevel()},
			wantLevel: "WARN",
			wantKind:  "not_found",
		},
		{
			name:      "untagged error",
			status:    http.StatusInternalServerError,
			err:       errors.New("boom"),
			wantLevel: "ERROR",
			wantKind:  "unknown",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, logs := requestWithLogger(t)
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, req, tc.status, "safe message", tc.err, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "safe message", resp.Error)
			assert.Equal(t, tc.wantKind, resp.Kind)
			assert.Equal(t, "trace-123", resp.TraceID)
			assert.NotContains(t, w.Body.String(), tc.err.Error())

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, tc.wantKind, entry["error_kind"])
			assert.NotContains(t, logs.String(), "abcdefghijkl123")
		})
	}
}
