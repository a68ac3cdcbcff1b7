package linter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NotNil(t, config)

	assert.Equal(t, "v1", config.Version)
	assert.Empty(t, config.Rules)
	assert.Equal(t, []string{"data_source_names"}, config.RequiredAttributes["prometheus.exporter.postgres"])
	assert.Equal(t, "\t", config.Format.Indent)
	assert.Len(t, config.Ignore, 2)
}

func TestDefaultConfig_DoesNotShareTable(t *testing.T) {
	config := DefaultConfig()
	config.RequiredAttributes["prometheus.exporter.postgres"][0] = "changed"

	assert.Equal(t, "data_source_names", DefaultRequiredAttributes["prometheus.exporter.postgres"][0])
}

func TestConfig_RuleEnabled(t *testing.T) {
	config := DefaultConfig()
	config.Rules["off"] = false
	config.Rules["on"] = true

	assert.False(t, config.RuleEnabled("off"))
	assert.True(t, config.RuleEnabled("on"))
	assert.True(t, config.RuleEnabled("unlisted"))
}

func TestConfig_Ignored(t *testing.T) {
	config := DefaultConfig()
	config.Ignore = []string{"vendor/**", "*.generated.alloy", "tmp/scratch.alloy"}

	tests := []struct {
		path string
		want bool
	}{
		{"vendor/a.alloy", true},
		{"vendor/deep/b.alloy", true},
		{"vendors/a.alloy", false},
		{"gen/x.generated.alloy", true},
		{"tmp/scratch.alloy", true},
		{"main.alloy", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, config.Ignored(tt.path))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	config := DefaultConfig()
	assert.NoError(t, config.Validate())

	config.RequiredAttributes["loki.write"] = []string{""}
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.RequiredAttributes[""] = []string{"x"}
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Format.Indent = "ab"
	assert.ErrorContains(t, config.Validate(), "format.indent")

	config.Format.Indent = "  \t"
	assert.NoError(t, config.Validate())
}

func TestValidIndent(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"\t", true},
		{"    ", true},
		{" \t", true},
		{"", false},
		{"ab", false},
		{" x ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidIndent(tt.in), "%q", tt.in)
	}
}

func TestLoadConfig_RejectsNonWhitespaceIndent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "alloykit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("format:\n  indent: \"ab\"\n"), 0644))

	_, err := LoadConfig(configPath)
	assert.ErrorContains(t, err, "format.indent")
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `version: v1
rules:
  block-namespace: false
required_attributes:
  loki.source.file:
    - targets
    - forward_to
ignore:
  - build/**
format:
  indent: "  "
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "v1", config.Version)
	assert.False(t, config.RuleEnabled("block-namespace"))
	assert.Equal(t, []string{"targets", "forward_to"}, config.RequiredAttributes["loki.source.file"])
	assert.Equal(t, []string{"data_source_names"}, config.RequiredAttributes["prometheus.exporter.postgres"])
	assert.Equal(t, []string{"build/**"}, config.Ignore)
	assert.Equal(t, "  ", config.Format.Indent)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("rules: [invalid yaml content\n"), 0644))

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyIndentKeepsDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".alloykit.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("format:\n  indent: \"\"\n"), 0644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "\t", config.Format.Indent)
}

func TestLoadConfigFromDir(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".alloykit.yml"), []byte("version: v2\n"), 0644))

	config, err := LoadConfigFromDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "v2", config.Version)
}

func TestLoadConfigFromDir_NoConfig(t *testing.T) {
	config, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "saved.yaml")

	config := DefaultConfig()
	config.Rules["missing-equals"] = false
	config.RequiredAttributes["loki.write"] = []string{"endpoint"}

	require.NoError(t, SaveConfig(config, configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
