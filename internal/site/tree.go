package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/ziadkadry99/pageshell/internal/content"
)

// Tree is a node of the sidebar navigation. A node with a Route links to a
// page; a node with Children is a section. A node may be both.
type Tree struct {
	Label    string
	Route    string
	Children []*Tree
}

// BuildTree arranges records by their breadcrumb paths, labelling each node
// with its crumb. The first crumb is the site root; a record whose
// breadcrumb is only the root becomes the root's own page. Records without
// a breadcrumb hang off the root under their title. Order follows the table.
func BuildTree(records []content.Record) *Tree {
	root := &Tree{}

	for _, rec := range records {
		path := rec.Breadcrumb
		if len(path) == 0 {
			path = []string{rec.Title}
		} else {
			if root.Label == "" {
				root.Label = path[0]
			}
			path = path[1:]
		}

		if len(path) == 0 {
			if root.Route == "" {
				root.Route = rec.Route
			}
			continue
		}

		current := root
		for _, label := range path {
			current = current.child(label)
		}
		if current.Route == "" {
			current.Route = rec.Route
		}
	}

	return root
}

func (t *Tree) child(label string) *Tree {
	for _, c := range t.Children {
		if c.Label == label {
			return c
		}
	}
	c := &Tree{Label: label}
	t.Children = append(t.Children, c)
	return c
}

// contains reports whether route is t's page or below it.
func (t *Tree) contains(route string) bool {
	if t.Route == route {
		return true
	}
	for _, c := range t.Children {
		if c.contains(route) {
			return true
		}
	}
	return false
}

// ToHTML renders the tree as nested <ul><li> HTML for the sidebar, marking
// the active page and expanding the sections above it.
func (t *Tree) ToHTML(activeRoute string) string {
	var b strings.Builder

	// Root page link at top.
	if t.Route != "" {
		label := t.Label
		if label == "" {
			label = "Home"
		}
		fmt.Fprintf(&b, `<ul><li class="file home-link">%s</li></ul>`+"\n", link(t.Route, label, activeRoute))
	}

	renderChildren(&b, t, activeRoute)
	return b.String()
}

func renderChildren(b *strings.Builder, node *Tree, activeRoute string) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if len(child.Children) == 0 {
			fmt.Fprintf(b, `<li class="file">%s</li>`+"\n", link(child.Route, child.Label, activeRoute))
			continue
		}

		class := "dir"
		if child.contains(activeRoute) {
			class += " expanded"
		}
		label := `<span class="dir-toggle">` + html.EscapeString(child.Label) + `</span>`
		if child.Route != "" {
			label = link(child.Route, child.Label, activeRoute)
		}
		fmt.Fprintf(b, `<li class="%s">%s`+"\n", class, label)
		renderChildren(b, child, activeRoute)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

func link(route, label, activeRoute string) string {
	active := ""
	if route == activeRoute {
		active = ` class="active"`
	}
	return fmt.Sprintf(`<a href="%s"%s>%s</a>`, html.EscapeString(pagePath(route)), active, html.EscapeString(label))
}

// pagePath is the file a route is exported to.
func pagePath(route string) string {
	return route + ".html"
}
