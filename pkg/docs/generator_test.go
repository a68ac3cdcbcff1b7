package docs

import (
	"testing"
	"time"

	"github.com/platinummonkey/alloykit/pkg/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedGenerator() *Generator {
	return NewGenerator(WithClock(func() time.Time { return fixedTime }))
}

func TestBlocks(t *testing.T) {
	type want struct {
		name  string
		label string
		line  int
		attrs []string
	}

	tests := []struct {
		name string
		text string
		want []want
	}{
		{
			name: "empty",
			text: "",
			want: []want{},
		},
		{
			name: "one block one attribute",
			text: "prometheus.scrape \"default\" {\n  targets = []\n}",
			want: []want{{"prometheus.scrape", "default", 0, []string{"targets"}}},
		},
		{
			name: "nested sub-block attributes belong to parent",
			text: "loki.process \"p\" {\n  stage.match {\n    selector = \"x\"\n  }\n  forward_to = []\n}",
			want: []want{{"loki.process", "p", 0, []string{"selector", "forward_to"}}},
		},
		{
			name: "sequential blocks",
			text: "a.b \"x\" {\n  one = 1\n}\n\nc.d \"y\" {\n  two = 2\n}",
			want: []want{
				{"a.b", "x", 0, []string{"one"}},
				{"c.d", "y", 4, []string{"two"}},
			},
		},
		{
			name: "header inside open block starts a new block",
			text: "a.b \"x\" {\n  c.d \"y\" {\n    z = 1\n  }\n}",
			want: []want{
				{"a.b", "x", 0, []string{}},
				{"c.d", "y", 1, []string{"z"}},
			},
		},
		{
			name: "single line block",
			text: "a.b \"x\" { }\ny = 1",
			want: []want{{"a.b", "x", 0, []string{}}},
		},
		{
			name: "unclosed at end of input",
			text: "a.b \"x\" {\n  y = 1",
			want: []want{{"a.b", "x", 0, []string{"y"}}},
		},
		{
			name: "comments skipped",
			text: "a.b \"x\" {\n  // z = 1\n  y = 2\n}",
			want: []want{{"a.b", "x", 0, []string{"y"}}},
		},
		{
			name: "attributes outside blocks ignored",
			text: "x = 1\na.b \"x\" {\n}\ny = 2",
			want: []want{{"a.b", "x", 1, []string{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Blocks(scanner.Scan(tt.text))
			require.Len(t, blocks, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.name, blocks[i].QualifiedName)
				assert.Equal(t, w.label, blocks[i].Label)
				assert.Equal(t, w.line, blocks[i].StartLine)
				assert.Equal(t, w.attrs, blocks[i].Attributes)
			}
		})
	}
}

func TestGroupBlocks(t *testing.T) {
	blocks := []*Block{
		{QualifiedName: "prometheus.scrape"},
		{QualifiedName: "loki.write"},
		{QualifiedName: "prometheus.remote_write"},
		{QualifiedName: "logging"},
	}

	groups := GroupBlocks(blocks)
	require.Len(t, groups, 3)
	assert.Equal(t, &Group{Namespace: "prometheus", Count: 2}, groups[0])
	assert.Equal(t, &Group{Namespace: "loki", Count: 1}, groups[1])
	assert.Equal(t, &Group{Namespace: "logging", Count: 1}, groups[2])

	assert.Empty(t, GroupBlocks(nil))
}

func TestGenerate(t *testing.T) {
	doc := fixedGenerator().GenerateText("prometheus.scrape \"default\" {\n  targets = []\n}", "config.alloy")

	assert.Equal(t, "config.alloy", doc.Title)
	assert.Equal(t, fixedTime, doc.GeneratedAt)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, []string{"targets"}, doc.Blocks[0].Attributes)
	assert.Equal(t, Describe("prometheus.scrape"), doc.Blocks[0].Description)
	require.Len(t, doc.Groups, 1)
	assert.Equal(t, 1, doc.Groups[0].Count)
}

func TestDescribe(t *testing.T) {
	assert.NotEmpty(t, Describe("prometheus.scrape"))
	assert.NotEmpty(t, Describe("loki.write"))
	assert.Empty(t, Describe("custom.component"))
}
