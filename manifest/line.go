package manifest

import (
	"bufio"
	"io"
	"strings"
)

// splitComment splits line at the first '#' outside double quotes.
func splitComment(line string) (content, comment string) {
	quoted := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			quoted = !quoted
		case '#':
			if !quoted {
				return line[:i], line[i:]
			}
		}
	}
	return line, ""
}

func stripComment(line string) string {
	content, _ := splitComment(line)
	return strings.TrimSpace(content)
}

// scanLines calls fn for every line that is not blank after
// comment stripping. Line numbers start at 1.
func scanLines(r io.Reader, fn func(n int, line string) error) error {
	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		n++
		line := stripComment(s.Text())
		if line == "" {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	return s.Err()
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
