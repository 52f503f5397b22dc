package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one conversion in the output manifest.
type ManifestEntry struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json next to the converted files.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Input:   filepath.Base(r.Input),
			Output:  filepath.Base(r.Output),
			Success: r.Success,
			Error:   r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
