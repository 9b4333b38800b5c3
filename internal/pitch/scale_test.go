package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaysah101/pi-loom/internal/errors"
)

func TestScaleNames(t *testing.T) {
	names := ScaleNames()
	assert.Contains(t, names, "major")
	assert.Contains(t, names, "pentatonic")
	assert.IsNonDecreasing(t, names)
}

func TestMapDigits(t *testing.T) {
	tests := []struct {
		name   string
		digits []int
		scale  string
		key    string
		octave int
		want   []Note
	}{
		{
			name:   "pi opening in C major",
			digits: []int{3, 1, 4, 1, 5, 9},
			scale:  "major",
			key:    "C",
			octave: 4,
			want:   []Note{"F4", "D4", "G4", "D4", "A4", "E5"},
		},
		{
			name:   "key shifts the root",
			digits: []int{0, 9},
			scale:  "major",
			key:    "D",
			octave: 4,
			want:   []Note{"D4", "F#5"},
		},
		{
			name:   "pentatonic wraps into the next octave",
			digits: []int{7},
			scale:  "pentatonic",
			key:    "C",
			octave: 4,
			want:   []Note{"E5"},
		},
		{
			name:   "empty digits",
			digits: nil,
			scale:  "minor",
			key:    "A",
			octave: 3,
			want:   []Note{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapDigits(tt.digits, tt.scale, tt.key, tt.octave)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapDigits_WellFormedTokens(t *testing.T) {
	digits := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9}
	for _, scale := range ScaleNames() {
		notes, err := MapDigits(digits, scale, "F#", 4)
		require.NoError(t, err)
		for _, n := range notes {
			_, octave, ok := n.Split()
			assert.True(t, ok, "%s scale produced malformed token %q", scale, n)
			assert.GreaterOrEqual(t, octave, 0)
			assert.LessOrEqual(t, octave, 8)
		}
	}
}

func TestMapDigits_Errors(t *testing.T) {
	_, err := MapDigits([]int{1}, "phrygian", "C", 4)
	assert.ErrorIs(t, err, errors.ErrUnknownScale)

	_, err = MapDigits([]int{1}, "major", "H", 4)
	assert.ErrorIs(t, err, errors.ErrUnknownKey)
}
