package format

import (
	"errors"
	"fmt"

	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// ErrInvalidRange is returned for ranges outside the text or ending before they start
var ErrInvalidRange = errors.New("invalid range")

// Position is a zero-based line and byte column
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// TextEdit replaces the text in Range with NewText
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"new_text"`
}

// FullRange spans from the first character to the end of the last line
func FullRange(text string) Range {
	lines := scanner.SplitLines(text)
	last := len(lines) - 1
	return Range{
		Start: Position{Line: 0, Character: 0},
		End:   Position{Line: last, Character: len(lines[last])},
	}
}

// Offset converts a position to a byte offset in text
func Offset(text string, pos Position) (int, error) {
	lines := scanner.SplitLines(text)
	if pos.Line < 0 || pos.Line >= len(lines) {
		return 0, fmt.Errorf("%w: line %d out of bounds (%d lines)", ErrInvalidRange, pos.Line, len(lines))
	}
	if pos.Character < 0 || pos.Character > len(lines[pos.Line]) {
		return 0, fmt.Errorf("%w: character %d out of bounds on line %d", ErrInvalidRange, pos.Character, pos.Line)
	}

	offset := 0
	for i := 0; i < pos.Line; i++ {
		offset += len(lines[i]) + 1
	}
	return offset + pos.Character, nil
}

func offsets(text string, rng Range) (int, int, error) {
	start, err := Offset(text, rng.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := Offset(text, rng.End)
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("%w: end before start", ErrInvalidRange)
	}
	return start, end, nil
}

// Extract returns the text covered by rng
func Extract(text string, rng Range) (string, error) {
	start, end, err := offsets(text, rng)
	if err != nil {
		return "", err
	}
	return text[start:end], nil
}

// ApplyEdit returns text with the edit applied
func ApplyEdit(text string, edit TextEdit) (string, error) {
	start, end, err := offsets(text, edit.Range)
	if err != nil {
		return "", err
	}
	return text[:start] + edit.NewText + text[end:], nil
}
