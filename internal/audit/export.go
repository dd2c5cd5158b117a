package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoLogs is returned when the audit log is missing or empty.
var ErrNoLogs = errors.New("no audit logs to export")

type exportEntry struct {
	Log string `json:"log"`
}

// ExportJSON appends the audit log's lines to a JSON array file as
// {"log": "..."} records. Lines already present in the target file are
// skipped, so repeated exports do not duplicate entries. Returns the number
// of newly exported lines.
func ExportJSON(logPath, jsonPath string) (int, error) {
	raw, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNoLogs
		}
		return 0, fmt.Errorf("read audit log: %w", err)
	}

	lines := []string{}
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return 0, ErrNoLogs
	}

	entries := []exportEntry{}
	if existing, err := os.ReadFile(jsonPath); err == nil {
		// A corrupt target file starts a fresh export rather than failing.
		if err := json.Unmarshal(existing, &entries); err != nil {
			entries = []exportEntry{}
		}
	} else if !os.IsNotExist(err) {
		return 0, fmt.Errorf("read export file: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Log] = struct{}{}
	}

	added := 0
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		entries = append(entries, exportEntry{Log: line})
		seen[line] = struct{}{}
		added++
	}
	if added == 0 {
		return 0, nil
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return 0, fmt.Errorf("write export file: %w", err)
	}
	return added, nil
}
