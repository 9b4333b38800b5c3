package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaysah101/pi-loom/internal/config"
)

func testServer() *Server {
	return New(&config.Config{
		Port:       8080,
		Scale:      "major",
		Key:        "C",
		BaseOctave: 4,
		Tempo:      120,
		UseCache:   false,
	})
}

func TestHandleHealth(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleScales(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/scales", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body scalesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Scales, "major")
	assert.Contains(t, body.Scales, "blues")
	assert.Len(t, body.Keys, 12)
	assert.Equal(t, "C", body.Keys[0])
}

func TestHandleCompose(t *testing.T) {
	srv := testServer()
	body := `{"digits": 16, "complexity": 0.5, "variation": 0.3, "harmony": true, "seed": 7}`
	req := httptest.NewRequest(http.MethodPost, "/api/compose", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp composeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 16, resp.Digits)
	assert.Equal(t, "major", resp.Scale)
	assert.Equal(t, "C", resp.Key)
	assert.Len(t, resp.Source, 16)
	assert.NotEmpty(t, resp.Notes)
	require.NotNil(t, resp.Harmonies)
	assert.Len(t, resp.Harmonies.Third, 16)
	assert.Contains(t, resp.Strudel, "setcps(")
	assert.Contains(t, resp.Strudel, "note(")
}

func TestHandleCompose_ConfigDefaults(t *testing.T) {
	srv := New(&config.Config{
		Scale:      "pentatonic",
		Key:        "D",
		BaseOctave: 3,
		Tempo:      90,
		UseCache:   false,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/compose", strings.NewReader(`{"digits": 8}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp composeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pentatonic", resp.Scale)
	assert.Equal(t, "D", resp.Key)
	assert.Contains(t, resp.Strudel, "setcps(90/60/4)")
}

func TestHandleCompose_RequestOverrides(t *testing.T) {
	srv := testServer()
	body := `{"digits": 8, "scale": "minor", "key": "A", "tempo": 140}`
	req := httptest.NewRequest(http.MethodPost, "/api/compose", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp composeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "minor", resp.Scale)
	assert.Equal(t, "A", resp.Key)
	assert.Contains(t, resp.Strudel, "setcps(140/60/4)")
}

func TestHandleCompose_InvalidJSON(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/api/compose", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid JSON body", body["error"])
}

func TestHandleCompose_BadParams(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown scale", `{"scale": "lydian"}`},
		{"unknown key", `{"key": "Q"}`},
		{"digits out of range", `{"digits": 100000}`},
		{"variation out of range", `{"variation": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer()
			req := httptest.NewRequest(http.MethodPost, "/api/compose", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleCompose_MethodNotAllowed(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/compose", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
