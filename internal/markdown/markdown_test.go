package markdown

import (
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only blank lines", "\n\n\n", ""},
		{"h1", "# Title", "<h1>Title</h1>"},
		{"h2", "## Section", "<h2>Section</h2>"},
		{"h3", "### Detail", "<h3>Detail</h3>"},
		{"four hashes is text", "#### Deep", "<p>#### Deep</p>"},
		{"hash without space", "#tag", "<p>#tag</p>"},
		{"heading with inline", "# **Bold** heading", "<h1><strong>Bold</strong> heading</h1>"},
		{"bold and italic", "**bold** and *italic*", "<p><strong>bold</strong> and <em>italic</em></p>"},
		{"adjacent bold spans", "**a** and **b**", "<p><strong>a</strong> and <strong>b</strong></p>"},
		{"bold inside italic", "*a **b** c*", "<p><em>a <strong>b</strong> c</em></p>"},
		{"italic inside bold", "**a *b* c**", "<p><strong>a <em>b</em> c</strong></p>"},
		{"unclosed bold", "**unclosed", "<p>**unclosed</p>"},
		{"lone star", "2 * 3", "<p>2 * 3</p>"},
		{"code", "run `go test`", "<p>run <code>go test</code></p>"},
		{"code keeps markers", "`**x**`", "<p><code>**x**</code></p>"},
		{"empty code is text", "``", "<p>``</p>"},
		{"link", "[Go](https://go.dev)", `<p><a href="https://go.dev">Go</a></p>`},
		{"link with bold label", "[**Go**](u)", `<p><a href="u"><strong>Go</strong></a></p>`},
		{"broken link", "[broken](", "<p>[broken](</p>"},
		{"empty link label", "[](u)", "<p>[](u)</p>"},
		{"line break", "one\ntwo", "<p>one<br>two</p>"},
		{"crlf line break", "one\r\ntwo", "<p>one<br>two</p>"},
		{"paragraphs", "one\n\ntwo", "<p>one</p>\n<p>two</p>"},
		{"list", "- a\n- b", "<ul><li>a</li><li>b</li></ul>"},
		{"list item inline", "- use `code`", "<ul><li>use <code>code</code></li></ul>"},
		{"disjoint lists", "- a\n\n- b", "<ul><li>a</li></ul>\n<ul><li>b</li></ul>"},
		{"list then text", "- a\ntext\n- b", "<ul><li>a</li></ul>\n<p>text</p>\n<ul><li>b</li></ul>"},
		{"heading then text", "# T\ntext", "<h1>T</h1>\n<p>text</p>"},
		{"raw html block", "<div class=\"note\">hi</div>", "<div class=\"note\">hi</div>"},
		{"inline html is text", "<span>x</span>", "<p><span>x</span></p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.input)
			if got != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertIdempotentOnOutput(t *testing.T) {
	inputs := []string{
		"# Welcome\n\nThis is **bold**, *italic* and `code`.\n\n## Links\n- [Home](#home)\n- [Contact](#contact)\n\nBye\nsee you",
		"### Only a heading",
		"plain 2 * 3 text",
		"- a\n\n- b",
	}
	for _, in := range inputs {
		once := Convert(in)
		twice := Convert(once)
		if once != twice {
			t.Errorf("Convert not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestHeadingsNeverWrappedInParagraph(t *testing.T) {
	got := Convert("intro\n# One\n## Two\noutro")
	if strings.Contains(got, "<p><h") || strings.Contains(got, "</h1></p>") {
		t.Errorf("heading nested in paragraph: %q", got)
	}
}

func TestLexLine(t *testing.T) {
	tests := []struct {
		input string
		kind  lineKind
		level int
		text  string
	}{
		{"", lineBlank, 0, ""},
		{"   ", lineBlank, 0, ""},
		{"# a", lineHeading, 1, "a"},
		{"### c", lineHeading, 3, "c"},
		{"####", lineText, 0, "####"},
		{"- item", lineListItem, 0, "item"},
		{"-item", lineText, 0, "-item"},
		{"<ul><li>x</li></ul>", lineHTML, 0, "<ul><li>x</li></ul>"},
		{"</div>", lineHTML, 0, "</div>"},
		{"<pretend>", lineText, 0, "<pretend>"},
	}
	for _, tt := range tests {
		got := lexLine(tt.input)
		if got.kind != tt.kind || got.level != tt.level || got.text != tt.text {
			t.Errorf("lexLine(%q) = %+v, want kind=%d level=%d text=%q", tt.input, got, tt.kind, tt.level, tt.text)
		}
	}
}

func TestNewEngine(t *testing.T) {
	for _, engine := range []Engine{"", EngineBuiltin, EngineGoldmark} {
		c, err := New(engine)
		if err != nil {
			t.Fatalf("New(%q): %v", engine, err)
		}
		html, err := c.Convert("# Title")
		if err != nil {
			t.Fatalf("%q Convert: %v", engine, err)
		}
		if !strings.Contains(html, "<h1") || !strings.Contains(html, "Title</h1>") {
			t.Errorf("%q Convert(# Title) = %q", engine, html)
		}
	}

	if _, err := New("asciidoc"); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestGoldmarkTables(t *testing.T) {
	html, err := NewGoldmark().Convert("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("expected GFM table, got %q", html)
	}
}
