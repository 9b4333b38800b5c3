// Package pitch defines note tokens and the chromatic name table used
// throughout pi-loom. A note token is a pitch-class name (sharps only)
// followed by a single octave digit, e.g. "D4" or "F#5".
package pitch

import (
	"fmt"
	"strings"
)

// Names is the fixed 12-entry chromatic pitch-class table.
var Names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// MaxOctave is the highest octave digit a mutation may produce.
const MaxOctave = 7

// Note is a note token. Tokens are assumed well-formed; malformed tokens
// are carried through transforms untouched rather than rejected.
type Note string

// New builds a note token from a chromatic class index and an octave digit.
// The class index is normalized into 0..11.
func New(class, octave int) Note {
	class = ((class % 12) + 12) % 12
	return Note(fmt.Sprintf("%s%d", Names[class], octave))
}

// Split separates a token into its pitch-class name and octave digit.
// The last character is assumed to be the octave digit; octaves >= 10 are
// not representable, which is an accepted limitation of the token format.
func (n Note) Split() (name string, octave int, ok bool) {
	if len(n) < 2 {
		return string(n), 0, false
	}
	last := n[len(n)-1]
	if last < '0' || last > '9' {
		return string(n), 0, false
	}
	return string(n[:len(n)-1]), int(last - '0'), true
}

// Class returns the chromatic index of the token's pitch-class name, or -1
// when the name is not in the table. Callers doing interval arithmetic
// fold the -1 through rather than failing.
func (n Note) Class() int {
	name, _, ok := n.Split()
	if !ok {
		name = string(n)
	}
	for i, candidate := range Names {
		if candidate == name {
			return i
		}
	}
	return -1
}

// Transpose shifts the token by a chromatic interval, keeping the octave
// digit unchanged. Tokens without an octave digit pass through as-is.
func (n Note) Transpose(semitones int) Note {
	_, octave, ok := n.Split()
	if !ok {
		return n
	}
	idx := ((n.Class()+semitones)%12 + 12) % 12
	return Note(Names[idx] + string(rune('0'+octave)))
}

// RaiseOctave bumps the octave digit by one, clamped at MaxOctave.
// Malformed tokens pass through unchanged.
func (n Note) RaiseOctave() Note {
	name, octave, ok := n.Split()
	if !ok {
		return n
	}
	if octave < MaxOctave {
		octave++
	}
	return Note(fmt.Sprintf("%s%d", name, octave))
}

// Join renders a sequence of tokens as a single space-separated line.
func Join(notes []Note) string {
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = string(n)
	}
	return strings.Join(parts, " ")
}
