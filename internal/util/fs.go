package util

import (
	"fmt"
	"os"
	"strings"
)

func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// FileStem maps a standard name onto a name usable as a file stem. Standard
// names are upper-case identifiers in practice; separators and traversal
// sequences are replaced so a bad record can never escape its directory.
func FileStem(name string) string {
	name = strings.TrimSpace(name)
	r := strings.NewReplacer("/", "_", "\\", "_", "\x00", "")
	name = r.Replace(name)
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}
