package chunker

import "fmt"

// Piece is one window of a document's full text. Start and End are
// character (rune) offsets satisfying 0 <= Start < End <= character
// count of the text.
type Piece struct {
	Text  string
	Start int
	End   int
}

// Chunk splits text into overlapping fixed-size windows. The window is
// maxChars wide and advances by maxChars-overlap each step, so
// consecutive pieces share overlap characters except possibly the last.
// maxChars and overlap count characters, not bytes, so window
// boundaries never split a multi-byte rune. Empty text yields no pieces
// and no error. The function is pure: the same inputs always produce
// the same pieces.
func Chunk(text string, maxChars, overlap int) ([]Piece, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("maxChars must be positive, got %d", maxChars)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap cannot be negative, got %d", overlap)
	}
	if overlap >= maxChars {
		// cap overlap to keep the window moving forward
		overlap = maxChars - 1
	}

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}

	var pieces []Piece
	start := 0
	for start < n {
		end := start + maxChars
		if end > n {
			end = n
		}
		pieces = append(pieces, Piece{Text: string(runes[start:end]), Start: start, End: end})
		if end == n {
			break
		}
		start = end - overlap
	}

	return pieces, nil
}
