package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands $VAR references and a leading ~ in todo.txt and config
// file paths. "~user" forms are left alone.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && !os.IsPathSeparator(rest[0])) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}
