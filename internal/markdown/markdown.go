// Package markdown converts the restricted Markdown dialect used for page
// bodies into HTML.
//
// Supported syntax: "#".."###" headings, **bold**, *italic*, `code`,
// [label](url) links, "- " list items, blank-line separated paragraphs and
// single-newline line breaks. Lines that already start with a block-level
// HTML tag pass through untouched.
//
// No escaping is performed. Input must be trusted, author-controlled text;
// run the output through a sanitizer before showing anything else.
package markdown

import (
	"strconv"
	"strings"
)

// Convert renders markdown to HTML. It never fails: malformed markup is
// emitted as literal text. Blocks are separated by a single newline.
func Convert(markdown string) string {
	r := &renderer{}
	for _, ln := range lexLines(markdown) {
		r.line(ln)
	}
	r.flushParagraph()
	r.flushList()
	return strings.Join(r.blocks, "\n")
}

// renderer accumulates output blocks in a single pass over lexed lines.
type renderer struct {
	blocks    []string
	paragraph []string
	items     []string
}

func (r *renderer) line(ln line) {
	switch ln.kind {
	case lineBlank:
		r.flushParagraph()
		r.flushList()
	case lineHeading:
		r.flushParagraph()
		r.flushList()
		level := strconv.Itoa(ln.level)
		r.blocks = append(r.blocks, "<h"+level+">"+inlineHTML(ln.text)+"</h"+level+">")
	case lineListItem:
		r.flushParagraph()
		r.items = append(r.items, inlineHTML(ln.text))
	case lineHTML:
		r.flushParagraph()
		r.flushList()
		r.blocks = append(r.blocks, ln.text)
	case lineText:
		r.flushList()
		r.paragraph = append(r.paragraph, inlineHTML(ln.text))
	}
}

func (r *renderer) flushParagraph() {
	if len(r.paragraph) == 0 {
		return
	}
	r.blocks = append(r.blocks, "<p>"+strings.Join(r.paragraph, "<br>")+"</p>")
	r.paragraph = nil
}

// flushList closes the current run of list items. Every disjoint run gets
// its own <ul>.
func (r *renderer) flushList() {
	if len(r.items) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range r.items {
		b.WriteString("<li>")
		b.WriteString(item)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	r.blocks = append(r.blocks, b.String())
	r.items = nil
}

func inlineHTML(s string) string {
	var b strings.Builder
	renderInline(&b, parseInline(s))
	return b.String()
}
