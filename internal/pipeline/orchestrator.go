// Package pipeline coordinates a full composition run: π digits in,
// rendered melody out. Both the CLI and the HTTP server drive it.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sanjaysah101/pi-loom/internal/errors"
	"github.com/sanjaysah101/pi-loom/internal/melody"
	"github.com/sanjaysah101/pi-loom/internal/pidigits"
	"github.com/sanjaysah101/pi-loom/internal/pitch"
	"github.com/sanjaysah101/pi-loom/internal/progress"
	"github.com/sanjaysah101/pi-loom/internal/render"
)

// Config holds pipeline configuration
type Config struct {
	Digits     int     // number of π digits to compose from
	Scale      string  // scale name (major, minor, pentatonic, ...)
	Key        string  // key root (C, F#, ...)
	BaseOctave int     // octave of the lowest scale degree
	Complexity float64 // in [0,1]: how many top patterns feed enhancement
	Variation  float64 // in [0,1]: mutation probability and magnitude
	Harmony    bool    // derive third/fifth voices
	Seed       int64   // 0 seeds from the clock
	Tempo      float64 // BPM for strudel output
	Format     render.Format
	UseCache   bool // reuse digits cached under .cache/pi
}

// DefaultConfig returns default pipeline configuration
func DefaultConfig() Config {
	return Config{
		Digits:     32,
		Scale:      "major",
		Key:        "C",
		BaseOctave: 4,
		Complexity: 0.5,
		Variation:  0.3,
		Harmony:    false,
		Tempo:      120,
		Format:     render.FormatText,
		UseCache:   true,
	}
}

// Result contains all pipeline outputs
type Result struct {
	Digits      []int
	Source      []pitch.Note // melody before enhancement
	Composition melody.Result
	Output      string
	Scale       string
	Key         string
}

// Orchestrator coordinates the composition pipeline
type Orchestrator struct {
	progress *progress.Reporter
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(out io.Writer, verbose bool) *Orchestrator {
	return &Orchestrator{
		progress: progress.NewReporter(out, verbose),
	}
}

// Validate checks a configuration before execution. The composition core
// itself never fails, so this is the only place a run can be rejected.
func Validate(cfg Config) error {
	if cfg.Digits < 1 || cfg.Digits > pidigits.MaxDigits {
		return errors.NewParamError("digits", cfg.Digits, errors.ErrDigitRange)
	}
	if _, ok := pitch.ScaleIntervals(cfg.Scale); !ok {
		return errors.NewParamError("scale", cfg.Scale, errors.ErrUnknownScale)
	}
	if !pitch.ValidKey(cfg.Key) {
		return errors.NewParamError("key", cfg.Key, errors.ErrUnknownKey)
	}
	if cfg.Complexity < 0 || cfg.Complexity > 1 {
		return errors.NewParamError("complexity", cfg.Complexity, errors.ErrLevelRange)
	}
	if cfg.Variation < 0 || cfg.Variation > 1 {
		return errors.NewParamError("variation", cfg.Variation, errors.ErrLevelRange)
	}
	if _, err := render.ParseFormat(string(cfg.Format)); err != nil {
		return errors.NewParamError("format", cfg.Format, errors.ErrBadFormat)
	}
	return nil
}

// Execute runs the full pipeline
func (o *Orchestrator) Execute(ctx context.Context, cfg Config) (*Result, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	// Stage 1: π digits
	o.progress.StartStage(progress.StageDigits)
	var cache *pidigits.Cache
	if cfg.UseCache {
		var err error
		cache, err = pidigits.NewDefaultCache()
		if err != nil {
			o.progress.Warning("digit cache unavailable: %v", err)
		}
	}
	digits := pidigits.NewSource(cache).Digits(cfg.Digits)
	o.progress.StageComplete("%d digits ready", len(digits))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: digit -> note mapping
	o.progress.StartStage(progress.StageMap)
	source, err := pitch.MapDigits(digits, cfg.Scale, cfg.Key, cfg.BaseOctave)
	if err != nil {
		return nil, fmt.Errorf("map digits: %w", err)
	}
	o.progress.StageComplete("%d notes in %s %s", len(source), cfg.Key, cfg.Scale)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: pattern detection + enhancement + harmonies
	o.progress.StartStage(progress.StageEnhance)
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	composer := melody.NewComposer(rand.New(rand.NewSource(seed)))
	comp := composer.Compose(melody.Request{
		Notes:      source,
		Complexity: cfg.Complexity,
		Variation:  cfg.Variation,
		Harmony:    cfg.Harmony,
	})
	o.progress.StageComplete("%d patterns, %d notes out", len(comp.Patterns), len(comp.Notes))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: rendering
	o.progress.StartStage(progress.StageRender)
	meta := render.Meta{
		Digits: cfg.Digits,
		Scale:  cfg.Scale,
		Key:    cfg.Key,
		Tempo:  cfg.Tempo,
	}
	output, err := render.Composition(comp, meta, cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("render composition: %w", err)
	}
	o.progress.StageComplete("%s output ready", cfg.Format)

	return &Result{
		Digits:      digits,
		Source:      source,
		Composition: comp,
		Output:      output,
		Scale:       cfg.Scale,
		Key:         cfg.Key,
	}, nil
}
