package markdown

import "strings"

// inlineKind identifies an inline token.
type inlineKind int

const (
	inlineText inlineKind = iota
	inlineStrong
	inlineEmphasis
	inlineCode
	inlineLink
)

// inline is a node in the inline token tree. For text and code nodes text is
// the literal content; for links it is the href and children hold the label.
type inline struct {
	kind     inlineKind
	text     string
	children []inline
}

// parseInline tokenizes a single line of inline markup. Spans never cross
// line boundaries because callers pass one line at a time.
func parseInline(s string) []inline {
	var (
		nodes []inline
		text  strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, inline{kind: inlineText, text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch s[i] {
		case '`':
			if j := strings.IndexByte(s[i+1:], '`'); j > 0 {
				flush()
				nodes = append(nodes, inline{kind: inlineCode, text: s[i+1 : i+1+j]})
				i += j + 2
				continue
			}
		case '*':
			if strings.HasPrefix(s[i:], "**") {
				// Bold closes at the nearest "**", so "**a** **b**" is two spans.
				if j := strings.Index(s[i+2:], "**"); j > 0 {
					flush()
					nodes = append(nodes, inline{kind: inlineStrong, children: parseInline(s[i+2 : i+2+j])})
					i += j + 4
					continue
				}
				text.WriteString("**")
				i += 2
				continue
			}
			if j := emphasisClose(s[i+1:]); j > 0 {
				flush()
				nodes = append(nodes, inline{kind: inlineEmphasis, children: parseInline(s[i+1 : i+1+j])})
				i += j + 2
				continue
			}
		case '[':
			if label, href, n, ok := linkAt(s[i:]); ok {
				flush()
				nodes = append(nodes, inline{kind: inlineLink, text: href, children: parseInline(label)})
				i += n
				continue
			}
		}
		text.WriteByte(s[i])
		i++
	}
	flush()
	return nodes
}

// emphasisClose returns the index of the "*" closing an emphasis span in s,
// or -1. Complete "**...**" pairs are stepped over so their markers are never
// mistaken for the closer.
func emphasisClose(s string) int {
	for j := 0; j < len(s); j++ {
		if s[j] != '*' {
			continue
		}
		if strings.HasPrefix(s[j:], "**") {
			if k := strings.Index(s[j+2:], "**"); k > 0 {
				j += k + 3
				continue
			}
		}
		return j
	}
	return -1
}

// linkAt matches "[label](href)" at the start of s. Both parts must be non-empty.
func linkAt(s string) (label, href string, n int, ok bool) {
	closeLabel := strings.IndexByte(s, ']')
	if closeLabel < 2 || closeLabel+1 >= len(s) || s[closeLabel+1] != '(' {
		return "", "", 0, false
	}
	rest := s[closeLabel+2:]
	closeHref := strings.IndexByte(rest, ')')
	if closeHref < 1 {
		return "", "", 0, false
	}
	return s[1:closeLabel], rest[:closeHref], closeLabel + 2 + closeHref + 1, true
}

func renderInline(b *strings.Builder, nodes []inline) {
	for _, n := range nodes {
		switch n.kind {
		case inlineText:
			b.WriteString(n.text)
		case inlineStrong:
			b.WriteString("<strong>")
			renderInline(b, n.children)
			b.WriteString("</strong>")
		case inlineEmphasis:
			b.WriteString("<em>")
			renderInline(b, n.children)
			b.WriteString("</em>")
		case inlineCode:
			b.WriteString("<code>")
			b.WriteString(n.text)
			b.WriteString("</code>")
		case inlineLink:
			b.WriteString(`<a href="`)
			b.WriteString(n.text)
			b.WriteString(`">`)
			renderInline(b, n.children)
			b.WriteString("</a>")
		}
	}
}
