package pitch

import (
	"fmt"
	"sort"

	"github.com/sanjaysah101/pi-loom/internal/errors"
)

// Scale intervals in semitones above the key root.
var scales = map[string][]int{
	"major":      {0, 2, 4, 5, 7, 9, 11},
	"minor":      {0, 2, 3, 5, 7, 8, 10},
	"dorian":     {0, 2, 3, 5, 7, 9, 10},
	"pentatonic": {0, 2, 4, 7, 9},
	"blues":      {0, 3, 5, 6, 7, 10},
	"chromatic":  {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

// ScaleNames returns the supported scale names, sorted.
func ScaleNames() []string {
	names := make([]string, 0, len(scales))
	for name := range scales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScaleIntervals returns the interval set for a scale name.
func ScaleIntervals(name string) ([]int, bool) {
	intervals, ok := scales[name]
	return intervals, ok
}

// ValidKey reports whether key names one of the 12 chromatic classes.
func ValidKey(key string) bool {
	return keyIndex(key) >= 0
}

// keyIndex resolves a key name ("C", "F#", ...) to its chromatic index.
func keyIndex(key string) int {
	for i, name := range Names {
		if name == key {
			return i
		}
	}
	return -1
}

// MapDigits maps decimal digits onto note tokens for a scale and key.
// Digit d picks scale degree d mod len(scale); every full wrap around the
// scale raises the octave from baseOctave. The result contains only
// well-formed tokens.
func MapDigits(digits []int, scale, key string, baseOctave int) ([]Note, error) {
	intervals, ok := scales[scale]
	if !ok {
		return nil, fmt.Errorf("map digits: %q: %w", scale, errors.ErrUnknownScale)
	}
	root := keyIndex(key)
	if root < 0 {
		return nil, fmt.Errorf("map digits: %q: %w", key, errors.ErrUnknownKey)
	}

	notes := make([]Note, 0, len(digits))
	for _, d := range digits {
		if d < 0 {
			d = -d
		}
		d %= 10
		idx := root + intervals[d%len(intervals)]
		octave := baseOctave + d/len(intervals) + idx/12
		if octave > MaxOctave+1 {
			octave = MaxOctave + 1
		}
		notes = append(notes, New(idx%12, octave))
	}
	return notes, nil
}
