// Package markup handles the inline escape markup accepted in labels, texts,
// headings and prompts.
//
// A span wrapped in \[ and \] is invisible for layout purposes (it carries
// colour codes), and \e stands for the ESC control byte. This mirrors what
// bash does for PS1.
package markup

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	spanOpen  = `\[`
	spanClose = `\]`
	escMarker = `\e`
)

var spanRe = regexp.MustCompile(`\\\[.*?\\\]`)

var renderer = strings.NewReplacer(spanOpen, "", spanClose, "", escMarker, "\033")

// Strip removes every complete \[ ... \] span. Unmatched delimiters are kept.
func Strip(s string) string {
	if !strings.Contains(s, spanOpen) {
		return s
	}
	return spanRe.ReplaceAllString(s, "")
}

// VisibleWidth returns the number of terminal cells s occupies once rendered.
func VisibleWidth(s string) int {
	return ansi.StringWidth(Strip(s))
}

// Render converts s into the bytes to send to the terminal.
func Render(s string) string {
	return renderer.Replace(s)
}
