// Package melody implements the pattern-driven composition core: repeated
// sub-sequence detection, probabilistic melody enhancement, and parallel
// harmony voice generation over note token sequences.
package melody

import (
	"math"
	"sort"
	"strings"

	"github.com/sanjaysah101/pi-loom/internal/pitch"
)

// Detection constants. Spans of 3..8 tokens are scanned; significance is
// occurrences*length normalized against 20, so two repeats of a 3-token
// span score 0.3 and longer or more frequent spans saturate toward 1.
const (
	minSpan       = 3
	maxSpan       = 8
	sigNormalizer = 20.0
	maxPatterns   = 5

	// Fuzzy fallback kicks in only for sequences of at least this many
	// tokens when no exact repeat was found.
	fuzzyMinLen = 10
)

// Pattern describes a detected repeated span in a note sequence.
type Pattern struct {
	Start        int     `json:"start"`
	Length       int     `json:"length"`
	Repeats      int     `json:"repeats"`
	Significance float64 `json:"significance"`
}

// DetectPatterns scans a note sequence for exact repeated sub-sequences
// and ranks them by significance, highest first, capped at 5. The input
// is never mutated and the function never fails; short sequences simply
// yield an empty list.
func DetectPatterns(notes []pitch.Note) []Pattern {
	var found []Pattern

	for span := minSpan; span <= maxSpan && span <= len(notes); span++ {
		starts := make(map[string][]int)
		for i := 0; i+span <= len(notes); i++ {
			key := spanKey(notes, i, span)
			starts[key] = append(starts[key], i)
		}

		// Walk in sequence order so output stays deterministic.
		emitted := make(map[string]bool)
		for i := 0; i+span <= len(notes); i++ {
			key := spanKey(notes, i, span)
			if emitted[key] {
				continue
			}
			emitted[key] = true
			occ := nonOverlapping(starts[key], span)
			if len(occ) < 2 {
				continue
			}
			found = append(found, Pattern{
				Start:        occ[0],
				Length:       span,
				Repeats:      len(occ),
				Significance: math.Min(1, float64(len(occ)*span)/sigNormalizer),
			})
		}
	}

	if len(found) == 0 && len(notes) >= fuzzyMinLen {
		found = fuzzyPatterns(notes)
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Significance > found[j].Significance
	})
	if len(found) > maxPatterns {
		found = found[:maxPatterns]
	}
	return found
}

// fuzzyPatterns is the fallback pass for sequences without exact repeats:
// a 3-token reference window matches any later non-overlapping 3-token
// window sharing at least one token value.
func fuzzyPatterns(notes []pitch.Note) []Pattern {
	var found []Pattern
	for i := 0; i+minSpan <= len(notes); i++ {
		ref := notes[i : i+minSpan]
		matches := 0
		for j := i + minSpan; j+minSpan <= len(notes); j += minSpan {
			if sharesToken(ref, notes[j:j+minSpan]) {
				matches++
			}
		}
		if matches >= 2 {
			found = append(found, Pattern{
				Start:        i,
				Length:       minSpan,
				Repeats:      matches,
				Significance: math.Min(1, float64(matches*minSpan)/sigNormalizer),
			})
			i += 2 // avoid heavy overlap between registered windows
		}
	}
	return found
}

func sharesToken(a, b []pitch.Note) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// nonOverlapping greedily filters start indices so counted occurrences
// never share tokens. This keeps sequences shorter than two spans from
// ever producing a pattern out of self-overlap.
func nonOverlapping(starts []int, span int) []int {
	var kept []int
	next := -1
	for _, s := range starts {
		if s < next {
			continue
		}
		kept = append(kept, s)
		next = s + span
	}
	return kept
}

func spanKey(notes []pitch.Note, start, span int) string {
	parts := make([]string, span)
	for i := 0; i < span; i++ {
		parts[i] = string(notes[start+i])
	}
	return strings.Join(parts, ",")
}

// occurrenceStarts returns every start index in notes where the span
// recorded by p recurs exactly.
func occurrenceStarts(notes []pitch.Note, p Pattern) []int {
	if p.Start < 0 || p.Start+p.Length > len(notes) {
		return nil
	}
	ref := spanKey(notes, p.Start, p.Length)
	var starts []int
	for i := 0; i+p.Length <= len(notes); i++ {
		if spanKey(notes, i, p.Length) == ref {
			starts = append(starts, i)
		}
	}
	return nonOverlapping(starts, p.Length)
}
