package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tidy = "prometheus.scrape \"default\" {\n\tforward_to = []\n}\n"

func TestRunFmtStdin(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runFmt(strings.NewReader(messy), &buf, fmtOptions{}))
	assert.Equal(t, tidy, buf.String())

	buf.Reset()
	require.NoError(t, runFmt(strings.NewReader("a {\nb = 1\n}"), &buf, fmtOptions{indent: "2"}))
	assert.Equal(t, "a {\n  b = 1\n}\n", buf.String())

	err := runFmt(strings.NewReader(messy), &buf, fmtOptions{write: true})
	assert.EqualError(t, err, "cannot use -w with standard input")
}

func TestRunFmtWrite(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"messy.alloy": messy, "tidy.alloy": tidy})

	var buf bytes.Buffer
	require.NoError(t, runFmt(nil, &buf, fmtOptions{files: []string{dir}, write: true}))
	assert.Equal(t, filepath.Join(dir, "messy.alloy")+"\n", buf.String())

	content, err := os.ReadFile(filepath.Join(dir, "messy.alloy"))
	require.NoError(t, err)
	assert.Equal(t, tidy, string(content))
}

func TestRunFmtCheck(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"messy.alloy": messy, "tidy.alloy": tidy})

	var buf bytes.Buffer
	err := runFmt(nil, &buf, fmtOptions{files: []string{dir}, check: true})
	require.Error(t, err)
	assert.Equal(t, "1 file(s) need formatting", err.Error())
	assert.Equal(t, filepath.Join(dir, "messy.alloy")+"\n", buf.String())

	// Check never writes
	content, err := os.ReadFile(filepath.Join(dir, "messy.alloy"))
	require.NoError(t, err)
	assert.Equal(t, messy, string(content))

	buf.Reset()
	require.NoError(t, runFmt(nil, &buf, fmtOptions{files: []string{filepath.Join(dir, "tidy.alloy")}, check: true}))
	assert.Empty(t, buf.String())
}

func TestRunFmtDiff(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"messy.alloy": messy})
	path := filepath.Join(dir, "messy.alloy")

	var buf bytes.Buffer
	require.NoError(t, runFmt(nil, &buf, fmtOptions{files: []string{path}, diff: true}))

	output := buf.String()
	assert.Contains(t, output, "--- "+path)
	assert.Contains(t, output, "+++ "+path+" (formatted)")
	assert.Contains(t, output, "-forward_to = []")
	assert.Contains(t, output, "+\tforward_to = []")
}

func TestParseIndent(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "tab", want: "\t"},
		{in: "TAB", want: "\t"},
		{in: `\t`, want: "\t"},
		{in: "4", want: "    "},
		{in: "  ", want: "  "},
		{in: " \t", want: " \t"},
		{in: "0", wantErr: true},
		{in: "--", wantErr: true},
		{in: "xx", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseIndent(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRunFmtRejectsNonWhitespaceIndent(t *testing.T) {
	var buf bytes.Buffer
	err := runFmt(strings.NewReader("a {\nb = 1\n}"), &buf, fmtOptions{indent: "xx"})
	assert.ErrorContains(t, err, "invalid indent")
	assert.Empty(t, buf.String())
}
