package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/workspace"
)

// findAlloyFiles walks dir for .alloy files, skipping hidden and vendored
// directories and paths the config ignores. Paths are returned in walk order.
func findAlloyFiles(dir string, config *linter.Config) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}

		if info.IsDir() {
			name := info.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "vendor") {
				return filepath.SkipDir
			}
			if rel != "." && config != nil && config.Ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isAlloyFile(path) {
			return nil
		}
		if config != nil && config.Ignored(rel) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// expandPaths resolves file and directory arguments to a list of .alloy files
func expandPaths(paths []string, config *linter.Config) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := findAlloyFiles(p, config)
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

func isAlloyFile(path string) bool {
	return workspace.LanguageForPath(path) == workspace.LanguageAlloy
}
