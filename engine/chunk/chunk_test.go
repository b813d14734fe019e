package chunk

import (
	"errors"
	"reflect"
	"testing"

	"github.com/clipseek/clipseek/engine/transcript"
)

func segs(n int) []transcript.Segment {
	out := make([]transcript.Segment, n)
	for i := range out {
		out[i] = transcript.Segment{
			Text:    string(rune('a' + i)),
			Start:   float64(i * 2),
			End:     float64(i*2 + 2),
			Speaker: "Speaker 1",
		}
	}
	return out
}

func TestSplitEmpty(t *testing.T) {
	_, err := Split(nil, 6)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSplitCoversAllSegments(t *testing.T) {
	chunks, err := Split(segs(7), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "a b c" || chunks[2].Text != "g" {
		t.Fatalf("unexpected texts: %+v", chunks)
	}
	if chunks[0].Start != 0 || chunks[0].End != 6 || chunks[0].Duration != 6 {
		t.Fatalf("unexpected timing: %+v", chunks[0])
	}
	if chunks[2].Start != 12 || chunks[2].End != 14 {
		t.Fatalf("unexpected tail timing: %+v", chunks[2])
	}
}

func TestSplitSizeOne(t *testing.T) {
	chunks, err := Split(segs(3), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
}

func TestSplitLargerThanInput(t *testing.T) {
	chunks, err := Split(segs(2), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected single chunk, got %d", len(chunks))
	}
}

func TestSpeakersDeduplicated(t *testing.T) {
	segments := []transcript.Segment{
		{Text: "a", Start: 0, End: 1, Speaker: "Speaker 1"},
		{Text: "b", Start: 1, End: 2, Speaker: "Speaker 2"},
		{Text: "c", Start: 2, End: 3, Speaker: "Speaker 1"},
	}
	chunks, err := Split(segments, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Speaker 1", "Speaker 2"}
	if !reflect.DeepEqual(chunks[0].Speakers, want) {
		t.Fatalf("expected %v, got %v", want, chunks[0].Speakers)
	}
}

func TestSplitDeterministic(t *testing.T) {
	a, _ := Split(segs(10), 4)
	b, _ := Split(segs(10), 4)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("chunking should be deterministic")
	}
}
