// Package format re-indents Alloy configuration text.
//
// Indentation is derived from braces alone: a line starting with "}"
// dedents before it is written, a line ending with "{" indents the lines
// after it, and a line holding both kinds of brace shifts the level by its
// net count. Comment lines are placed at the current level but never
// change it. Blank lines are emptied.
//
// FormatRange formats a substring in isolation, so a range that starts in
// the middle of a block does not inherit the surrounding indentation.
package format
