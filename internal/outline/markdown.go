// Package outline converts trees to and from plain-text outlines: Markdown
// bullet lists and indented text.
package outline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pstuifzand/tui-dragtree/internal/model"
)

// WriteMarkdown writes the tree as an unordered Markdown list, two spaces of
// indentation per level
func WriteMarkdown(w io.Writer, roots []*model.Node[string]) error {
	var sb strings.Builder
	model.Walk(roots, func(n, _ *model.Node[string], level int) bool {
		sb.WriteString(strings.Repeat("  ", level))
		sb.WriteString("- ")
		sb.WriteString(strings.TrimSpace(n.Name))
		sb.WriteString("\n")
		return true
	})
	_, err := io.WriteString(w, sb.String())
	return err
}

// ExportToMarkdown writes the tree to a Markdown file
func ExportToMarkdown(roots []*model.Node[string], filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create markdown file: %w", err)
	}
	if err := WriteMarkdown(f, roots); err != nil {
		f.Close()
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return f.Close()
}
