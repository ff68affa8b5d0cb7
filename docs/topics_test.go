package docs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// indexed returns the topic names listed in readme.md, as "* name: description" items.
func indexed(t *testing.T) []string {
	t.Helper()
	src, err := os.ReadFile("readme.md")
	if err != nil {
		t.Fatalf("failed to read readme.md: %v", err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var topics []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		item, ok := n.(*ast.ListItem)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < item.FirstChild().Lines().Len(); i++ {
			line := item.FirstChild().Lines().At(i)
			b.Write(line.Value(src))
		}
		if name, _, found := strings.Cut(b.String(), ":"); found {
			topics = append(topics, strings.TrimSpace(name))
		}
		return ast.WalkSkipChildren, nil
	})
	return topics
}

func TestTopics(t *testing.T) {
	topics := indexed(t)
	if len(topics) == 0 {
		t.Fatal("no topic listed in readme.md")
	}

	for _, topic := range topics {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := Topic(topic); err != nil {
				t.Errorf("Topic(%q) error = %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".md")
		if name != "readme" && !slices.Contains(topics, name) {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestList(t *testing.T) {
	list, err := List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var names []string
	for _, info := range list {
		if info.Title == "" {
			t.Errorf("topic %q has no title", info.Name)
		}
		names = append(names, info.Name)
	}
	if !slices.IsSorted(names) {
		t.Errorf("List() names are not sorted: %v", names)
	}
	want := indexed(t)
	slices.Sort(want)
	if !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestTopicsAll(t *testing.T) {
	all, err := Topic(All)
	if err != nil {
		t.Fatalf("Topic(All) error = %v", err)
	}
	for _, name := range indexed(t) {
		content, err := Topic(name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(all, content) {
			t.Errorf("Topic(All) does not contain topic %q", name)
		}
	}

	if _, err := Topics("health-score", "nope"); err == nil {
		t.Error("Topics(unknown) error = nil, want an error")
	}
}

func TestTitle(t *testing.T) {
	for src, want := range map[string]string{
		"# Health Score\n\ntext":  "Health Score",
		"intro\n\n## Second\n# X": "Second",
		"no heading":              "",
	} {
		if got := title([]byte(src)); got != want {
			t.Errorf("title(%q) = %q, want %q", src, got, want)
		}
	}
}
