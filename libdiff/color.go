package libdiff

import (
	"strings"

	"github.com/fatih/color"
)

var (
	fileColor = color.New(color.Bold).SprintFunc()
	hunkColor = color.New(color.FgCyan).SprintFunc()
	addColor  = color.New(color.FgGreen).SprintFunc()
	delColor  = color.New(color.FgRed).SprintFunc()
)

// Colorize colors the lines of a unified diff.
func Colorize(diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, ln := range lines {
		body := strings.TrimSuffix(ln, "\n")
		nl := ln[len(body):]
		switch {
		case body == "":
			b.WriteString(ln)
			continue
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			body = fileColor(body)
		case strings.HasPrefix(body, "@@"):
			body = hunkColor(body)
		case body[0] == '+':
			body = addColor(body)
		case body[0] == '-':
			body = delColor(body)
		}
		b.WriteString(body)
		b.WriteString(nl)
	}
	return b.String()
}
