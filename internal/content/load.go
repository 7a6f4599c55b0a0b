package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContent []byte

// document is the on-disk layout of a content file.
type document struct {
	Routes []Record `yaml:"routes"`
}

// Parse decodes a YAML content document into a Table.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	return NewTable(doc.Routes...)
}

// LoadFile reads a YAML content document from path.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns the built-in sample site.
func Default() (*Table, error) {
	return Parse(defaultContent)
}

// Options selects where the route table comes from.
type Options struct {
	File      string   // YAML content document; empty uses Default.
	Dir       string   // Optional directory of Markdown pages appended after File.
	Include   []string // Glob filters for Dir.
	Exclude   []string
	RootLabel string // Breadcrumb root for pages from Dir without front matter.
}

// Load builds the route table described by opts.
func Load(opts Options) (*Table, error) {
	var (
		t   *Table
		err error
	)
	if opts.File != "" {
		t, err = LoadFile(opts.File)
	} else {
		t, err = Default()
	}
	if err != nil {
		return nil, err
	}
	if opts.Dir == "" {
		return t, nil
	}

	extra, err := LoadDir(opts.Dir, opts.Include, opts.Exclude, opts.RootLabel)
	if err != nil {
		return nil, err
	}
	return t.Merge(extra...)
}
