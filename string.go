package latex

import (
	"fmt"
	"strconv"
	"strings"
)

// String extracts the plain text content of a tree: text and special-character
// leaves concatenated in document order. Comments are skipped. For commands
// the mandatory arguments count as content, options do not.
func String(node *Node) string {
	var sb strings.Builder
	collectText(&sb, node)
	return sb.String()
}

func collectText(sb *strings.Builder, node *Node) {
	switch node.Kind {
	case TextKind, SpecialKind:
		sb.WriteString(node.Data)
	case CommentKind:
		return
	case CommandKind:
		for _, arg := range node.Args {
			collectText(sb, arg)
		}
	default:
		for _, child := range node.Children {
			collectText(sb, child)
		}
	}
}

// Tree renders a tree as indented ASCII art, one node per line.
func Tree(node *Node) string {
	var sb strings.Builder
	sb.WriteString(describe(node))
	sb.WriteString("\n")
	writeTree(&sb, node, "")
	return sb.String()
}

func writeTree(sb *strings.Builder, node *Node, prefix string) {
	var items []*Node
	items = append(items, node.Optional...)
	items = append(items, node.Args...)
	items = append(items, node.Children...)

	for i, child := range items {
		connector, indent := "├── ", "│   "
		if i == len(items)-1 {
			connector, indent = "└── ", "    "
		}

		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(describe(child))
		sb.WriteString("\n")

		writeTree(sb, child, prefix+indent)
	}
}

func describe(node *Node) string {
	switch node.Kind {
	case TextKind, CommentKind, SpecialKind:
		return fmt.Sprintf("%v %s", node.Kind, strconv.Quote(node.Data))
	case CommandKind:
		return fmt.Sprintf("%v \\%s", node.Kind, node.Name)
	case EnvironmentKind:
		return fmt.Sprintf("%v %s", node.Kind, node.Name)
	case MathKind:
		if node.Mode == DisplayMath {
			return "Math (display)"
		}

		return "Math (inline)"
	default:
		return node.Kind.String()
	}
}
