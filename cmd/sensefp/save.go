package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"sensefp/internal/discovery"
	"sensefp/internal/fileutil"
	"sensefp/internal/fingerprint"
)

// saveResult writes result under dir as <safe-label>-<key>.json and reports
// the path on w.
func saveResult(w io.Writer, dir, label string, result fingerprint.Result) error {
	if strings.TrimSpace(dir) == "" {
		return nil
	}
	name := fmt.Sprintf("%s-%s.json", fileutil.SafeName(label), strings.ToLower(discovery.ResultKey(result)))
	path := filepath.Join(dir, name)
	if err := fileutil.WriteJSON(path, result); err != nil {
		return fmt.Errorf("save fingerprint: %w", err)
	}
	fmt.Fprintf(w, "Saved %s\n", path)
	return nil
}
