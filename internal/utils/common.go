// Package utils holds small helpers shared by the config and output packages.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits s on sep and trims each part, dropping empty ones, so
// "a.txt, b.txt," yields two names.
func SplitAndTrim(s, sep string) []string {
	var parts []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// JSONPointerToPath turns the JSON Pointer of a schema error, such as
// "/file/1", into the config key path "file[1]".
func JSONPointerToPath(ptr string) string {
	var b strings.Builder
	for _, token := range strings.Split(strings.TrimPrefix(ptr, "#"), "/") {
		if token == "" {
			continue
		}
		token = pointerUnescaper.Replace(token)
		if _, err := strconv.Atoi(token); err == nil {
			b.WriteString("[" + token + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}
