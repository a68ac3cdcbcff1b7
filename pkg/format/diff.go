package format

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders a unified diff between the original and formatted text.
// It returns an empty string when they are equal.
func Diff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (formatted)",
		Context:  3,
	}

	return difflib.GetUnifiedDiffString(diff)
}
