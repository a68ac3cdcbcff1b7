package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	text := "ab\ncde\n"

	tests := []struct {
		pos  Position
		want int
	}{
		{Position{0, 0}, 0},
		{Position{0, 2}, 2},
		{Position{1, 0}, 3},
		{Position{1, 3}, 6},
		{Position{2, 0}, 7},
	}

	for _, tt := range tests {
		got, err := Offset(text, tt.pos)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := Offset(text, Position{3, 0})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestFullRange(t *testing.T) {
	assert.Equal(t, Range{End: Position{0, 0}}, FullRange(""))
	assert.Equal(t, Range{End: Position{1, 0}}, FullRange("x\n"))
	assert.Equal(t, Range{End: Position{1, 3}}, FullRange("x\nabc"))
}

func TestApplyEdit(t *testing.T) {
	text := "one\ntwo\nthree"

	out, err := ApplyEdit(text, TextEdit{
		Range:   Range{Start: Position{1, 0}, End: Position{1, 3}},
		NewText: "TWO",
	})
	require.NoError(t, err)
	assert.Equal(t, "one\nTWO\nthree", out)

	out, err = ApplyEdit(text, TextEdit{
		Range:   Range{Start: Position{0, 3}, End: Position{0, 3}},
		NewText: "!",
	})
	require.NoError(t, err)
	assert.Equal(t, "one!\ntwo\nthree", out)

	_, err = ApplyEdit(text, TextEdit{Range: Range{End: Position{9, 0}}})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDiff(t *testing.T) {
	out, err := Diff("a.alloy", "x = 1\n", "x = 1\n")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Diff("a.alloy", "a {\n  x = 1\n}\n", "a {\n\tx = 1\n}\n")
	require.NoError(t, err)
	assert.Contains(t, out, "--- a.alloy")
	assert.Contains(t, out, "+++ a.alloy (formatted)")
	assert.Contains(t, out, "-  x = 1")
	assert.Contains(t, out, "+\tx = 1")
}
