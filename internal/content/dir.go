package content

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/pageshell/internal/walker"
)

// frontMatter is the optional YAML header of a Markdown page.
type frontMatter struct {
	Route      string   `yaml:"route"`
	Title      string   `yaml:"title"`
	Breadcrumb []string `yaml:"breadcrumb"`
}

// LoadDir reads every Markdown page under dir. Route, title and breadcrumb
// come from front matter when present, otherwise from the file path and the
// first "# " heading.
func LoadDir(dir string, include, exclude []string, rootLabel string) ([]Record, error) {
	files, err := walker.Walk(walker.Config{RootDir: dir, Include: include, Exclude: exclude})
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		rec, err := parsePage(string(data), f.RelPath, rootLabel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.RelPath, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parsePage(src, relPath, rootLabel string) (Record, error) {
	fm, body, err := splitFrontMatter(src)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Route:      fm.Route,
		Title:      fm.Title,
		Breadcrumb: fm.Breadcrumb,
		Body:       body,
	}
	if rec.Route == "" {
		rec.Route = routeFromPath(relPath)
	}
	if rec.Title == "" {
		rec.Title = extractTitle(body, relPath)
	}
	if len(rec.Breadcrumb) == 0 {
		rec.Breadcrumb = breadcrumbFromPath(relPath, rec.Title, rootLabel)
	}
	return rec, nil
}

// splitFrontMatter separates a leading "---" YAML block from the body.
func splitFrontMatter(src string) (frontMatter, string, error) {
	var fm frontMatter
	src = strings.ReplaceAll(src, "\r\n", "\n")
	if !strings.HasPrefix(src, "---\n") {
		return fm, src, nil
	}
	rest := src[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, src, nil
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, "", fmt.Errorf("decoding front matter: %w", err)
	}
	body := strings.TrimPrefix(rest[end+len("\n---"):], "\n")
	return fm, body, nil
}

// routeFromPath turns "services/tech.md" into "services-tech".
func routeFromPath(relPath string) string {
	p := strings.TrimSuffix(relPath, path.Ext(relPath))
	return strings.ReplaceAll(p, "/", "-")
}

// extractTitle pulls the first "# " heading from markdown, or falls back to
// the file name.
func extractTitle(markdown, relPath string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))
}

func breadcrumbFromPath(relPath, title, rootLabel string) []string {
	var crumbs []string
	if rootLabel != "" {
		crumbs = append(crumbs, rootLabel)
	}
	if dir := path.Dir(relPath); dir != "." {
		for _, part := range strings.Split(dir, "/") {
			crumbs = append(crumbs, formatDirName(part))
		}
	}
	return append(crumbs, title)
}

// formatDirName title-cases a directory slug: "tech-services" -> "Tech Services".
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
