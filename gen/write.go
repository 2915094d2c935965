package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WriteArtifacts materializes rendered artifacts under dir, creating parent
// directories as needed. Files are written in sorted path order; the written
// paths are returned in that order.
func WriteArtifacts(dir string, artifacts map[string]string) ([]string, error) {
	paths := make([]string, 0, len(artifacts))
	for path := range artifacts {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		full := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return nil, fmt.Errorf("javagen: creating %s: %w", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(artifacts[path]), 0o644); err != nil {
			return nil, fmt.Errorf("javagen: writing %s: %w", full, err)
		}
	}
	return paths, nil
}
