package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var migrationFileRe = regexp.MustCompile(`^\d{14}_[a-z0-9_]+\.sql$`)

// ValidateDir checks that every SQL migration in dir follows the goose
// naming convention and carries both Up and Down sections.
func ValidateDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %q: %w", dir, err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		count++

		if !migrationFileRe.MatchString(entry.Name()) {
			return fmt.Errorf("migration %q does not match <YYYYMMDDHHMMSS>_<name>.sql", entry.Name())
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading %q: %w", entry.Name(), err)
		}
		content := string(data)
		if !strings.Contains(content, "-- +goose Up") {
			return fmt.Errorf("migration %q is missing a '-- +goose Up' section", entry.Name())
		}
		if !strings.Contains(content, "-- +goose Down") {
			return fmt.Errorf("migration %q is missing a '-- +goose Down' section", entry.Name())
		}
	}

	if count == 0 {
		return fmt.Errorf("no SQL migrations found in %q", dir)
	}
	return nil
}
