package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	looperrors "github.com/sanjaysah101/pi-loom/internal/errors"
	"github.com/sanjaysah101/pi-loom/internal/melody"
	"github.com/sanjaysah101/pi-loom/internal/pipeline"
	"github.com/sanjaysah101/pi-loom/internal/pitch"
	"github.com/sanjaysah101/pi-loom/internal/render"
)

const maxBodySize = 64 * 1024

// composeRequest is the JSON body of POST /api/compose. Zero-value
// fields fall back to configured defaults.
type composeRequest struct {
	Digits     int     `json:"digits"`
	Scale      string  `json:"scale"`
	Key        string  `json:"key"`
	BaseOctave int     `json:"baseOctave"`
	Complexity float64 `json:"complexity"`
	Variation  float64 `json:"variation"`
	Harmony    bool    `json:"harmony"`
	Seed       int64   `json:"seed"`
	Tempo      float64 `json:"tempo"`
}

type composeResponse struct {
	Digits    int                 `json:"digits"`
	Scale     string              `json:"scale"`
	Key       string              `json:"key"`
	Source    []pitch.Note        `json:"source"`
	Notes     []pitch.Note        `json:"notes"`
	Patterns  []melody.Pattern    `json:"patterns"`
	Harmonies *melody.HarmonyPair `json:"harmonies,omitempty"`
	Strudel   string              `json:"strudel"`
}

type scalesResponse struct {
	Scales []string `json:"scales"`
	Keys   []string `json:"keys"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScales lists the supported scales and key roots
func (s *Server) handleScales(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, scalesResponse{
		Scales: pitch.ScaleNames(),
		Keys:   pitch.Names[:],
	})
}

// handleCompose runs a composition pass and returns the full result.
// Each request gets its own composer and randomness source, so requests
// are safe to serve concurrently.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req composeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cfg := pipeline.DefaultConfig()
	cfg.Scale = s.config.Scale
	cfg.Key = s.config.Key
	cfg.BaseOctave = s.config.BaseOctave
	cfg.Tempo = s.config.Tempo
	cfg.UseCache = s.config.UseCache

	if req.Digits != 0 {
		cfg.Digits = req.Digits
	}
	if req.Scale != "" {
		cfg.Scale = req.Scale
	}
	if req.Key != "" {
		cfg.Key = req.Key
	}
	if req.BaseOctave != 0 {
		cfg.BaseOctave = req.BaseOctave
	}
	if req.Tempo != 0 {
		cfg.Tempo = req.Tempo
	}
	cfg.Complexity = req.Complexity
	cfg.Variation = req.Variation
	cfg.Harmony = req.Harmony
	cfg.Seed = req.Seed
	cfg.Format = render.FormatStrudel

	orch := pipeline.NewOrchestrator(io.Discard, false)
	result, err := orch.Execute(r.Context(), cfg)
	if err != nil {
		var paramErr *looperrors.ParamError
		if errors.As(err, &paramErr) {
			s.respondError(w, http.StatusBadRequest, paramErr.Error())
			return
		}
		s.logger.Error("compose failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "composition failed")
		return
	}

	s.respondJSON(w, http.StatusOK, composeResponse{
		Digits:    cfg.Digits,
		Scale:     result.Scale,
		Key:       result.Key,
		Source:    result.Source,
		Notes:     result.Composition.Notes,
		Patterns:  result.Composition.Patterns,
		Harmonies: result.Composition.Harmonies,
		Strudel:   result.Output,
	})
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// respondError writes a JSON error message
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
