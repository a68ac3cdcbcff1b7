package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	goodConfig = "prometheus.scrape \"default\" {\n\tforward_to = []\n}\n"
	badConfig  = "a = \"unterminated\n"
	warnConfig = "prometheus.exporter.postgres \"db\" {\n}\n"
	messy      = "prometheus.scrape \"default\" {\nforward_to = []\n    }\n"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}
