// Package render turns composition results into caller-facing output:
// plain note-token text, JSON, or a Strudel live-coding snippet.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/sanjaysah101/pi-loom/internal/errors"
	"github.com/sanjaysah101/pi-loom/internal/melody"
	"github.com/sanjaysah101/pi-loom/internal/pitch"
)

// Format selects the output rendering.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatStrudel Format = "strudel"
)

// Formats returns the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatStrudel}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText, FormatJSON, FormatStrudel:
		return Format(name), nil
	}
	return "", fmt.Errorf("%q: %w", name, errors.ErrBadFormat)
}

// Meta carries the composition parameters a rendering may surface.
type Meta struct {
	Digits int     `json:"digits"`
	Scale  string  `json:"scale"`
	Key    string  `json:"key"`
	Tempo  float64 `json:"tempo"`
}

// jsonOutput is the serialized shape of a composition.
type jsonOutput struct {
	Meta      Meta                `json:"meta"`
	Notes     []pitch.Note        `json:"notes"`
	Patterns  []melody.Pattern    `json:"patterns"`
	Harmonies *melody.HarmonyPair `json:"harmonies,omitempty"`
}

// Composition renders a composition result in the requested format.
func Composition(res melody.Result, meta Meta, format Format) (string, error) {
	switch format {
	case FormatText:
		return pitch.Join(res.Notes) + "\n", nil
	case FormatJSON:
		data, err := json.MarshalIndent(jsonOutput{
			Meta:      meta,
			Notes:     res.Notes,
			Patterns:  res.Patterns,
			Harmonies: res.Harmonies,
		}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal composition: %w", err)
		}
		return string(data) + "\n", nil
	case FormatStrudel:
		return Strudel(res, meta), nil
	}
	return "", fmt.Errorf("%q: %w", format, errors.ErrBadFormat)
}
