package cmd

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/etnz/vitals/docs"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// codeBlocks returns the fenced code blocks of a markdown document, by language.
func codeBlocks(t *testing.T, doc string) map[string][]string {
	t.Helper()
	src := []byte(doc)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	blocks := make(map[string][]string)
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}
		lang := string(fcb.Language(src))
		blocks[lang] = append(blocks[lang], b.String())
		return ast.WalkSkipChildren, nil
	})
	require.NoError(t, err)
	return blocks
}

func lookup(name string) (subcommands.Command, bool) {
	for _, c := range Commands() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// TestDocumentedCommands parses every 'vtl' command of the documentation with the real flags.
func TestDocumentedCommands(t *testing.T) {
	infos, err := docs.List()
	require.NoError(t, err)

	var count int
	for _, info := range infos {
		doc, err := docs.Topic(info.Name)
		require.NoError(t, err)
		for _, block := range codeBlocks(t, doc)["console"] {
			for _, line := range strings.Split(block, "\n") {
				cmdline, ok := strings.CutPrefix(strings.TrimSpace(line), "$ vtl ")
				if !ok {
					continue
				}
				count++
				t.Run(info.Name+"/"+cmdline, func(t *testing.T) {
					args := strings.Fields(cmdline)
					c, found := lookup(args[0])
					require.True(t, found, "unknown command %q", args[0])

					// fresh values, the commands of the groups are shared.
					c = fresh(c)
					fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
					fs.SetOutput(io.Discard)
					c.SetFlags(fs)
					require.NoError(t, fs.Parse(args[1:]))
					checkInput(t, c)
				})
			}
		}
	}
	assert.NotZero(t, count)
}

func fresh(c subcommands.Command) subcommands.Command {
	switch c.(type) {
	case *healthCmd:
		return new(healthCmd)
	case *mentalCmd:
		return new(mentalCmd)
	case *logHealthCmd:
		return new(logHealthCmd)
	case *logMoodCmd:
		return new(logMoodCmd)
	}
	return c
}

// checkInput validates the documented values of the logging commands.
func checkInput(t *testing.T, c subcommands.Command) {
	today := date.New(2025, 3, 10)
	var err error
	switch c := c.(type) {
	case *healthCmd:
		_, err = c.input(today)
	case *logHealthCmd:
		_, err = c.input(today)
	case *mentalCmd:
		_, err = c.input(today)
	case *logMoodCmd:
		_, err = c.input(today)
	}
	assert.NoError(t, err)
}

// TestDocumentedSchemes loads the scheme profiles of the documentation.
func TestDocumentedSchemes(t *testing.T) {
	doc, err := docs.Topic("schemes")
	require.NoError(t, err)
	blocks := codeBlocks(t, doc)["yaml"]
	require.NotEmpty(t, blocks)

	for i, block := range blocks {
		file := filepath.Join(t.TempDir(), "schemes.yaml")
		require.NoError(t, os.WriteFile(file, []byte(block), 0644))
		profiles, err := vitals.LoadSchemes(file)
		require.NoError(t, err, "block #%d", i)
		assert.NotEmpty(t, profiles)
	}
}
