package melody

import "github.com/sanjaysah101/pi-loom/internal/pitch"

// Harmony intervals in semitones. The "third" voice is always a major
// third regardless of scale; the literal offsets are load-bearing, do
// not diatonicize them.
const (
	thirdInterval = 4
	fifthInterval = 7
)

// HarmonyPair holds the two parallel voices derived from a melody.
type HarmonyPair struct {
	Third []pitch.Note `json:"third"`
	Fifth []pitch.Note `json:"fifth"`
}

// Harmonize derives the third and fifth voices from a melody by shifting
// each token's chromatic index by +4 and +7 mod 12, octave unchanged.
// Pure and deterministic; both voices always match the input length.
func Harmonize(notes []pitch.Note) HarmonyPair {
	third := make([]pitch.Note, len(notes))
	fifth := make([]pitch.Note, len(notes))
	for i, n := range notes {
		third[i] = n.Transpose(thirdInterval)
		fifth[i] = n.Transpose(fifthInterval)
	}
	return HarmonyPair{Third: third, Fifth: fifth}
}
