package todotxt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinFilename names standard input in a list of todo.txt files.
const StdinFilename = "-"

const maxLineLength = 1024 * 1024

// Read parses one task per non-blank line of r. Line numbers count every
// physical line, blank ones included, starting at 1. The result is not
// resolved.
func Read(r io.Reader, filename string) (Tasks, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var tasks Tasks
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		text := scanner.Text()
		if lineNumber == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		tasks = append(tasks, NewTaskAt(text, filename, lineNumber))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return tasks, nil
}

// ReadFiles reads the files in order, skipping repeated names, and resolves
// the combined collection. The name "-" reads from stdin. Errors for missing
// files wrap fs.ErrNotExist.
func ReadFiles(filenames []string, stdin io.Reader) (Tasks, error) {
	var all Tasks
	seen := make(map[string]bool, len(filenames))
	for _, filename := range filenames {
		if seen[filename] {
			continue
		}
		seen[filename] = true

		tasks, err := readFile(filename, stdin)
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)
	}
	all.Resolve()
	return all, nil
}

func readFile(filename string, stdin io.Reader) (Tasks, error) {
	if filename == StdinFilename {
		if stdin == nil {
			stdin = os.Stdin
		}
		return Read(stdin, filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open todo file: %w", err)
	}
	defer file.Close()
	return Read(file, filename)
}
