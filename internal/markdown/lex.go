package markdown

import "strings"

// lineKind classifies a single source line.
type lineKind int

const (
	lineText lineKind = iota
	lineBlank
	lineHeading
	lineListItem
	lineHTML
)

// line is one lexed source line. text holds the content after any block marker.
type line struct {
	kind  lineKind
	level int
	text  string
}

// maxHeadingLevel is the deepest heading the dialect recognizes. "####" and
// beyond are plain text.
const maxHeadingLevel = 3

// htmlBlockTags are the tag names that mark a line as a raw HTML block.
// Converter output only ever starts lines with one of these, which keeps
// Convert idempotent over its own output.
var htmlBlockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "ul": true, "ol": true, "li": true, "div": true, "pre": true,
	"blockquote": true, "table": true, "hr": true,
}

// lexLines splits src into lines and classifies each one.
func lexLines(src string) []line {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	raw := strings.Split(src, "\n")
	lines := make([]line, 0, len(raw))
	for _, s := range raw {
		lines = append(lines, lexLine(s))
	}
	return lines
}

func lexLine(s string) line {
	if strings.TrimSpace(s) == "" {
		return line{kind: lineBlank}
	}
	if level, text, ok := headingLine(s); ok {
		return line{kind: lineHeading, level: level, text: text}
	}
	if strings.HasPrefix(s, "- ") {
		return line{kind: lineListItem, text: s[2:]}
	}
	if isHTMLBlock(s) {
		return line{kind: lineHTML, text: s}
	}
	return line{kind: lineText, text: s}
}

// headingLine reports whether s is "#", "##" or "###" followed by a space.
func headingLine(s string) (int, string, bool) {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n == 0 || n > maxHeadingLevel || n >= len(s) || s[n] != ' ' {
		return 0, "", false
	}
	return n, s[n+1:], true
}

// isHTMLBlock reports whether s opens (or closes) a block-level HTML element.
func isHTMLBlock(s string) bool {
	if !strings.HasPrefix(s, "<") {
		return false
	}
	rest := strings.TrimPrefix(s[1:], "/")
	end := 0
	for end < len(rest) && isTagNameByte(rest[end]) {
		end++
	}
	if end == 0 || !htmlBlockTags[strings.ToLower(rest[:end])] {
		return false
	}
	if end == len(rest) {
		return true
	}
	switch rest[end] {
	case '>', ' ', '/', '\t':
		return true
	}
	return false
}

func isTagNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
