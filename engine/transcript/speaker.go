package transcript

import "strings"

// turnOpeners are words that tend to open a reply in conversational video.
// A segment starting with one of these flips the speaker label. Heuristic
// only, useful for two-person interviews and podcasts.
var turnOpeners = map[string]struct{}{
	"so":       {},
	"well":     {},
	"yeah":     {},
	"now":      {},
	"but":      {},
	"and":      {},
	"actually": {},
}

// AssignSpeakers labels segments by alternating between two speakers
// whenever a segment opens with a turn word. Segments are mutated in place.
func AssignSpeakers(segments []Segment) {
	speaker := 1
	for i := range segments {
		if i > 0 && opensTurn(segments[i].Text) {
			speaker = 3 - speaker
		}
		segments[i].Speaker = "Speaker " + string(rune('0'+speaker))
	}
}

func opensTurn(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	first, _, _ := strings.Cut(text, " ")
	first = strings.TrimRight(first, ",.!?")
	_, ok := turnOpeners[first]
	return ok
}
