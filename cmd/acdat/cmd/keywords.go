package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// readKeywordFile parses a keyword file: one keyword per line, with an
// optional tab-separated value (the keyword itself when absent). Blank
// lines and '#' comments are skipped.
func readKeywordFile(path string) (keys, values []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "\t")
		if key == "" {
			return nil, nil, fmt.Errorf("%s:%d: empty keyword", path, lineno)
		}
		if !found {
			value = key
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return keys, values, nil
}
