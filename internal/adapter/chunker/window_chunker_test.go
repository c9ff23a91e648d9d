package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkDefaults(t *testing.T) {
	text := strings.Repeat("a", 1500)

	pieces, err := Chunk(text, 1000, 200)
	if err != nil {
		t.Fatal(err)
	}

	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces for 1500 chars at 1000/200, got %d", len(pieces))
	}
	if pieces[0].Start != 0 || pieces[0].End != 1000 {
		t.Errorf("first piece spans [%d,%d), want [0,1000)", pieces[0].Start, pieces[0].End)
	}
	if pieces[1].Start != 800 || pieces[1].End != 1500 {
		t.Errorf("second piece spans [%d,%d), want [800,1500)", pieces[1].Start, pieces[1].End)
	}
}

func TestChunkCoversTextWithoutGaps(t *testing.T) {
	text := strings.Repeat("abcdefghij", 137)

	pieces, err := Chunk(text, 100, 25)
	if err != nil {
		t.Fatal(err)
	}

	if pieces[0].Start != 0 {
		t.Errorf("first piece starts at %d, want 0", pieces[0].Start)
	}
	if pieces[len(pieces)-1].End != len(text) {
		t.Errorf("last piece ends at %d, want %d", pieces[len(pieces)-1].End, len(text))
	}

	for i, p := range pieces {
		if p.End-p.Start > 100 {
			t.Errorf("piece %d has length %d > maxChars", i, p.End-p.Start)
		}
		if p.Text != text[p.Start:p.End] {
			t.Errorf("piece %d text does not match its offsets", i)
		}
		if i > 0 {
			prev := pieces[i-1]
			if p.Start > prev.End {
				t.Errorf("gap between piece %d (ends %d) and piece %d (starts %d)", i-1, prev.End, i, p.Start)
			}
			if p.Start < prev.Start {
				t.Errorf("piece %d starts before piece %d", i, i-1)
			}
		}
	}
}

func TestChunkOverlapClamped(t *testing.T) {
	text := strings.Repeat("x", 300)

	pieces, err := Chunk(text, 100, 150)
	if err != nil {
		t.Fatal(err)
	}

	if len(pieces) < 2 {
		t.Fatal("expected multiple pieces")
	}
	// overlap 150 >= maxChars 100 is capped at 99, so the window
	// advances one character per step
	if got := pieces[1].Start - pieces[0].Start; got != 1 {
		t.Errorf("window advanced by %d, want 1 (effective overlap 99)", got)
	}
}

func TestChunkShortText(t *testing.T) {
	pieces, err := Chunk("short", 1000, 200)
	if err != nil {
		t.Fatal(err)
	}

	if len(pieces) != 1 {
		t.Fatalf("expected exactly one piece, got %d", len(pieces))
	}
	if pieces[0].Text != "short" || pieces[0].Start != 0 || pieces[0].End != 5 {
		t.Errorf("unexpected piece %+v", pieces[0])
	}
}

func TestChunkMultibyteText(t *testing.T) {
	text := strings.Repeat("é", 10) // 10 characters, 20 bytes

	pieces, err := Chunk(text, 5, 2)
	if err != nil {
		t.Fatal(err)
	}

	want := []Piece{
		{Text: strings.Repeat("é", 5), Start: 0, End: 5},
		{Text: strings.Repeat("é", 5), Start: 3, End: 8},
		{Text: strings.Repeat("é", 4), Start: 6, End: 10},
	}
	if len(pieces) != len(want) {
		t.Fatalf("expected %d pieces, got %d", len(want), len(pieces))
	}
	for i, p := range pieces {
		if !utf8.ValidString(p.Text) {
			t.Errorf("piece %d [%d,%d) is invalid UTF-8: %q", i, p.Start, p.End, p.Text)
		}
		if p != want[i] {
			t.Errorf("piece %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestChunkOffsetsCountCharactersNotBytes(t *testing.T) {
	// mixed-width text: 1-byte, 2-byte and 3-byte runes
	text := "aé中bé中cé中dé中eé中fé中"

	pieces, err := Chunk(text, 7, 3)
	if err != nil {
		t.Fatal(err)
	}

	runes := []rune(text)
	if last := pieces[len(pieces)-1]; last.End != len(runes) {
		t.Errorf("last piece ends at %d, want %d characters", last.End, len(runes))
	}
	for i, p := range pieces {
		if !utf8.ValidString(p.Text) {
			t.Errorf("piece %d is invalid UTF-8: %q", i, p.Text)
		}
		if got := utf8.RuneCountInString(p.Text); got != p.End-p.Start {
			t.Errorf("piece %d has %d characters, offsets span %d", i, got, p.End-p.Start)
		}
		if p.Text != string(runes[p.Start:p.End]) {
			t.Errorf("piece %d text does not match its character offsets", i)
		}
	}
}

func TestChunkEmptyText(t *testing.T) {
	pieces, err := Chunk("", 1000, 200)
	if err != nil {
		t.Fatal(err)
	}
	if len(pieces) != 0 {
		t.Errorf("expected no pieces for empty text, got %d", len(pieces))
	}
}

func TestChunkInvalidArguments(t *testing.T) {
	if _, err := Chunk("text", 0, 0); err == nil {
		t.Error("expected error for maxChars=0")
	}
	if _, err := Chunk("text", -5, 0); err == nil {
		t.Error("expected error for negative maxChars")
	}
	if _, err := Chunk("text", 100, -1); err == nil {
		t.Error("expected error for negative overlap")
	}
}

func TestChunkDeterministic(t *testing.T) {
	text := strings.Repeat("determinism ", 200)

	first, err := Chunk(text, 128, 32)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Chunk(text, 128, 32)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("piece counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("piece %d differs between runs", i)
		}
	}
}
