package output

import (
	"strings"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	Label    string
	Value    string
	Flag     *bool // rendered as a check mark when set
	Children []TreeNode
}

// Flag returns a pointer for TreeNode.Flag.
func Flag(b bool) *bool { return &b }

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth  int  // 0 = unlimited
	ShowMarks bool // Whether to show flag marks
	HideFalse bool // Skip nodes whose flag is false
}

// flagMark returns a flag indicator symbol
func flagMark(b bool) string {
	if b {
		return " \u2713" // ✓
	}
	return " \u2717" // ✗
}

// RenderTree renders a tree starting from a single root node
// Returns the root label followed by its children
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := []string{nodeText(root, opts)}
	lines = append(lines, renderTreeNodes(root.Children, opts, 0, "")...)
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
// Useful for embedding trees in other output
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func nodeText(node TreeNode, opts TreeRenderOptions) string {
	text := node.Label
	if node.Value != "" {
		text += ": " + node.Value
	}
	if opts.ShowMarks && node.Flag != nil {
		text += flagMark(*node.Flag)
	}
	return text
}

// renderTreeNodes recursively renders tree nodes
func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	if opts.HideFalse {
		visible := nodes[:0:0]
		for _, n := range nodes {
			if n.Flag == nil || *n.Flag {
				visible = append(visible, n)
			}
		}
		nodes = visible
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		// Build connector
		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		lines = append(lines, prefix+connector+nodeText(node, opts))

		// Build prefix for children
		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}

		// Recurse for children
		childLines := renderTreeNodes(node.Children, opts, depth+1, childPrefix)
		lines = append(lines, childLines...)
	}

	return lines
}
