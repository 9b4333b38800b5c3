package melody

import (
	"math/rand"
	"strings"
	"time"

	"github.com/sanjaysah101/pi-loom/internal/pitch"
)

// Significance tiers and mutation probabilities.
const (
	highSig    = 0.7
	mediumSig  = 0.4
	gateFactor = 0.8 // per-pattern gate: variation * gateFactor
	decorProb  = 0.3 // per-token decoration gate: variation * decorProb
)

// marker is the transient decoration flag appended to low-significance
// span tokens. Every marker is stripped before the sequence is returned,
// so decorated tokens never leave the package.
const marker = "'"

// Request is the caller-facing configuration for a composition pass.
type Request struct {
	Notes      []pitch.Note
	Complexity float64 // in [0,1]: how many top patterns feed the enhancer
	Variation  float64 // in [0,1]: mutation probability and magnitude
	Harmony    bool
}

// Result bundles a composition pass: the (possibly mutated) melody, the
// detected patterns, and the harmony pair when requested.
type Result struct {
	Notes     []pitch.Note `json:"notes"`
	Patterns  []Pattern    `json:"patterns"`
	Harmonies *HarmonyPair `json:"harmonies,omitempty"`
}

// Composer runs composition passes using an injected randomness source so
// callers (and tests) control mutation branch selection. A Composer is
// not safe for concurrent use; give each goroutine its own.
type Composer struct {
	rng *rand.Rand
}

// NewComposer creates a Composer. A nil rng gets a time-seeded source.
func NewComposer(rng *rand.Rand) *Composer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{rng: rng}
}

// Compose runs detection, complexity-gated enhancement, and optional
// harmony generation over a note sequence. It never fails; the worst case
// is the input passed through unchanged.
func (c *Composer) Compose(req Request) Result {
	patterns := DetectPatterns(req.Notes)

	notes := req.Notes
	// complexity == 0 bypasses the enhancer entirely: same observable
	// result as an empty pattern list, without burning random draws.
	if req.Complexity > 0 && len(patterns) > 0 {
		n := int(float64(len(patterns)) * req.Complexity)
		if n < 1 {
			n = 1
		}
		if n > len(patterns) {
			n = len(patterns)
		}
		notes = c.Enhance(req.Notes, patterns[:n], req.Variation)
	}

	res := Result{Notes: notes, Patterns: patterns}
	if req.Harmony {
		pair := Harmonize(req.Notes)
		res.Harmonies = &pair
	}
	return res
}

// Enhance probabilistically mutates a melody guided by ranked patterns.
// variation 0 is the identity. Output length is always >= input length:
// only the high-significance branch grows the sequence, nothing shrinks
// it. Spans spliced in are copied from the unmutated input.
func (c *Composer) Enhance(notes []pitch.Note, patterns []Pattern, variation float64) []pitch.Note {
	if variation <= 0 || len(notes) == 0 {
		return notes
	}

	out := make([]pitch.Note, len(notes))
	copy(out, notes)

	for _, p := range patterns {
		if c.rng.Float64() >= variation*gateFactor {
			continue
		}
		switch {
		case p.Significance > highSig:
			out = c.spliceSpan(out, notes, p)
		case p.Significance > mediumSig:
			c.raiseOccurrences(out, notes, p, variation)
		default:
			c.decorateSpan(out, p, variation)
		}
	}

	return stripMarkers(out)
}

// spliceSpan duplicates the pattern's original span and inserts it at a
// uniformly random position in the current output.
func (c *Composer) spliceSpan(out, source []pitch.Note, p Pattern) []pitch.Note {
	end := p.Start + p.Length
	if p.Start < 0 || end > len(source) {
		return out
	}
	span := source[p.Start:end]

	pos := c.rng.Intn(len(out) + 1)
	grown := make([]pitch.Note, 0, len(out)+len(span))
	grown = append(grown, out[:pos]...)
	grown = append(grown, span...)
	grown = append(grown, out[pos:]...)
	return grown
}

// raiseOccurrences raises the octave of each repeat occurrence of the
// pattern with probability = variation, clamped at the maximum octave.
// Occurrences are located in the original sequence; if an earlier splice
// shifted the output, the raise lands on the shifted index, which is the
// accepted behavior of the heuristic.
func (c *Composer) raiseOccurrences(out, source []pitch.Note, p Pattern, variation float64) {
	for _, start := range occurrenceStarts(source, p) {
		if c.rng.Float64() >= variation {
			continue
		}
		for i := start; i < start+p.Length && i < len(out); i++ {
			out[i] = out[i].RaiseOctave()
		}
	}
}

// decorateSpan appends the transient marker to span tokens with
// probability variation*decorProb each. Markers are stripped again before
// Enhance returns, so this branch is observably a no-op on the output.
func (c *Composer) decorateSpan(out []pitch.Note, p Pattern, variation float64) {
	for i := p.Start; i < p.Start+p.Length && i < len(out); i++ {
		if c.rng.Float64() < variation*decorProb {
			out[i] = out[i] + pitch.Note(marker)
		}
	}
}

func stripMarkers(notes []pitch.Note) []pitch.Note {
	for i, n := range notes {
		if strings.HasSuffix(string(n), marker) {
			notes[i] = pitch.Note(strings.TrimRight(string(n), marker))
		}
	}
	return notes
}
