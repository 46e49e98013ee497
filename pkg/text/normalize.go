package text

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t\r]*\n\s*`)
	spaces         = regexp.MustCompile(`[ \t\r\f\v]+`)
)

// Normalize trims every line, collapses runs of blanks into one space and
// keeps at most one empty line between paragraphs.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaces.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")

	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	text = strings.Join(lines, "\n")
	text = paragraphBreak.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
