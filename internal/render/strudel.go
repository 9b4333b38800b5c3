package render

import (
	"fmt"
	"strings"

	"github.com/sanjaysah101/pi-loom/internal/melody"
	"github.com/sanjaysah101/pi-loom/internal/pitch"
)

// Voice sounds and gains for the Strudel rendering. The melody carries
// the line; harmony voices sit behind it.
const (
	melodySound  = "gm_acoustic_grand_piano"
	harmonySound = "gm_epiano1"
	harmonyGain  = 0.6
)

// Strudel renders a composition as a Strudel snippet: a tempo header plus
// a note() line per voice, stacked when harmonies are present.
func Strudel(res melody.Result, meta Meta) string {
	var sb strings.Builder

	sb.WriteString("// pi-loom output\n")
	sb.WriteString(fmt.Sprintf("// Digits: %d, Scale: %s, Key: %s\n", meta.Digits, meta.Scale, meta.Key))
	sb.WriteString(fmt.Sprintf("// Notes: %d, Patterns: %d\n", len(res.Notes), len(res.Patterns)))

	tempo := meta.Tempo
	if tempo <= 0 {
		tempo = 120
	}
	sb.WriteString(fmt.Sprintf("setcps(%.0f/60/4)\n\n", tempo))

	type voice struct {
		name  string
		notes []pitch.Note
		sound string
		gain  float64
	}
	voices := []voice{
		{"melody", res.Notes, melodySound, 1.0},
	}
	if res.Harmonies != nil {
		voices = append(voices,
			voice{"third", res.Harmonies.Third, harmonySound, harmonyGain},
			voice{"fifth", res.Harmonies.Fifth, harmonySound, harmonyGain},
		)
	}

	var active []string
	for _, v := range voices {
		pattern := toPattern(v.notes)
		if pattern == "" {
			continue
		}
		code := fmt.Sprintf("  // %s (%d notes)\n", v.name, len(v.notes))
		code += fmt.Sprintf("  note(\"%s\")\n", pattern)
		code += fmt.Sprintf("    .sound(\"%s\")", v.sound)
		if v.gain != 1.0 {
			code += fmt.Sprintf("\n    .gain(%.1f)", v.gain)
		}
		active = append(active, code)
	}

	if len(active) == 0 {
		sb.WriteString(fmt.Sprintf("$: note(\"c4\").sound(\"%s\")\n", melodySound))
		return sb.String()
	}

	if len(active) == 1 {
		sb.WriteString("$: ")
		sb.WriteString(strings.TrimPrefix(active[0], "  "))
		sb.WriteString("\n  .room(0.3).size(0.6)\n")
		return sb.String()
	}

	sb.WriteString("$: stack(\n")
	for i, voice := range active {
		sb.WriteString(voice)
		if i < len(active)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(")\n  .room(0.3).size(0.6)\n")
	return sb.String()
}

// toPattern converts note tokens to Strudel mini-notation, one slot per
// token ("C#4" -> "cs4").
func toPattern(notes []pitch.Note) string {
	if len(notes) == 0 {
		return ""
	}
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = strudelName(n)
	}
	return strings.Join(parts, " ")
}

func strudelName(n pitch.Note) string {
	s := strings.ToLower(string(n))
	return strings.ReplaceAll(s, "#", "s")
}
