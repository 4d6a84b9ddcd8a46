package outline

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-dragtree/internal/model"
)

// Parse reads an indented outline. Two spaces or one tab make a level, and
// Markdown bullets ("- ", "* ", "+ ") are stripped. Nodes get dotted ids
// from their position ("1", "1.2", ...); nodes with children are branches,
// the rest are leaves.
func Parse(content string) ([]*model.Node[string], error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var roots []*model.Node[string]
	// stack[i] is the last node seen on level i
	var stack []*model.Node[string]

	for scanner.Scan() {
		line := scanner.Text()
		name := stripBullet(strings.TrimSpace(line))
		if name == "" {
			continue
		}

		level := min(indentLevel(line), len(stack))
		stack = stack[:level]

		if level == 0 {
			n := model.NewLeaf(strconv.Itoa(len(roots)+1), name, len(roots)+1)
			roots = append(roots, n)
			stack = append(stack, n)
			continue
		}

		parent := stack[level-1]
		pos := len(parent.Children) + 1
		n := model.NewLeaf(parent.ID+"."+strconv.Itoa(pos), name, pos)
		parent.Children = append(parent.Children, n)
		stack = append(stack, n)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outline: %w", err)
	}
	return roots, nil
}

// ImportFile parses the outline in filePath
func ImportFile(filePath string) ([]*model.Node[string], error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(string(data))
}

// indentLevel counts leading whitespace, a tab being two spaces
func indentLevel(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	return indent / 2
}

func stripBullet(s string) string {
	for _, bullet := range []string{"- ", "* ", "+ "} {
		if rest, ok := strings.CutPrefix(s, bullet); ok {
			return strings.TrimSpace(rest)
		}
	}
	return s
}
