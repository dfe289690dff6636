package manifest

import (
	"bytes"
	"strconv"
	"strings"
)

// FormatModList rewrites every valid mod list line as "<id>, <name>",
// keeping trailing comments. Comment-only, blank and invalid lines
// are only stripped of trailing whitespace.
func FormatModList(src []byte) []byte {
	lines := strings.Split(string(src), "\n")
	var buf bytes.Buffer
	for i, line := range lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(formatModLine(line))
	}
	return buf.Bytes()
}

func formatModLine(line string) string {
	line = strings.TrimRight(line, " \t\r")
	content, comment := splitComment(line)
	content = strings.TrimSpace(content)
	if content == "" {
		return line
	}
	m, err := parseMod(content)
	if err != nil {
		return line
	}
	out := strconv.FormatUint(m.ID, 10) + ", " + m.Name
	if comment != "" {
		out += " " + comment
	}
	return out
}
