package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Engine names a converter implementation.
type Engine string

const (
	EngineBuiltin  Engine = "builtin"
	EngineGoldmark Engine = "goldmark"
)

// Converter turns a Markdown page body into HTML.
type Converter interface {
	Convert(markdown string) (string, error)
}

// Builtin is the Converter backed by Convert. It never returns an error.
type Builtin struct{}

func (Builtin) Convert(markdown string) (string, error) {
	return Convert(markdown), nil
}

// Goldmark is a full CommonMark/GFM Converter for content that outgrows the
// builtin dialect.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark creates a goldmark Converter with GFM and syntax highlighting.
func NewGoldmark() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			html.WithHardWraps(),
		),
	)
	return &Goldmark{md: md}
}

func (g *Goldmark) Convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// New returns the Converter for the named engine. An empty name selects the
// builtin engine.
func New(engine Engine) (Converter, error) {
	switch engine {
	case "", EngineBuiltin:
		return Builtin{}, nil
	case EngineGoldmark:
		return NewGoldmark(), nil
	default:
		return nil, fmt.Errorf("unknown markdown engine %q", engine)
	}
}
