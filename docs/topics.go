// Package docs embeds the help topics printed by `vtl topic`.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed *.md
var docs embed.FS

// All is the topic name that expands to every topic.
const All = "*"

// Info describes a topic.
type Info struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topic returns the markdown content of a topic.
func Topic(name string) (string, error) {
	if name == All {
		return Topics(All)
	}
	content, err := docs.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics concatenates several topics, All expanding to every topic in name order.
func Topics(names ...string) (string, error) {
	var b bytes.Buffer
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			expanded = topicNames()
		}
		for _, n := range expanded {
			content, err := Topic(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// List returns every topic with its title, sorted by name.
func List() ([]Info, error) {
	var list []Info
	for _, name := range topicNames() {
		content, err := docs.ReadFile(name + ".md")
		if err != nil {
			return nil, err
		}
		list = append(list, Info{Name: name, Title: title(content)})
	}
	return list, nil
}

// topicNames returns the sorted names of the embedded topics, without the readme.
func topicNames() []string {
	files, _ := fs.Glob(docs, "*.md")
	var names []string
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".md")
		if name != "readme" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// title returns the text of the first heading of a markdown document.
func title(src []byte) string {
	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	var b strings.Builder
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(src))
			}
		}
		return ast.WalkStop, nil
	})
	return b.String()
}
