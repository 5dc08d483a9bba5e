package latex

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the LaTeX source form of a tree to w. Parsing the output
// again produces a structurally equivalent tree: recovery-synthesized closes
// come out as real ones, bare arguments come out braced.
func Render(w io.Writer, node *Node) error {
	switch node.Kind {
	case DocumentKind:
		return renderChildren(w, node)
	case TextKind, SpecialKind:
		_, err := fmt.Fprint(w, node.Data)
		return err
	case CommentKind:
		_, err := fmt.Fprint(w, "%", node.Data)
		return err
	case GroupKind:
		return renderWrapped(w, node, "{", "}")
	case MathKind:
		return renderWrapped(w, node, node.Data, mathCloser(node.Data))
	case CommandKind:
		return renderCommand(w, node)
	case EnvironmentKind:
		return renderEnvironment(w, node)
	default:
		return fmt.Errorf("unable to render node kind %v", node.Kind)
	}
}

// Source returns the LaTeX source form of a tree as a string.
func Source(node *Node) string {
	var sb strings.Builder
	if err := Render(&sb, node); err != nil {
		return ""
	}

	return sb.String()
}

func renderChildren(w io.Writer, node *Node) error {
	for _, child := range node.Children {
		if err := Render(w, child); err != nil {
			return err
		}
	}

	return nil
}

func renderWrapped(w io.Writer, node *Node, prefix, suffix string) error {
	if _, err := fmt.Fprint(w, prefix); err != nil {
		return err
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	_, err := fmt.Fprint(w, suffix)
	return err
}

// renderCommand reproduces a command in source order: name, then whatever
// sits between name and arguments (the defined name and parameter markers of
// \newcommand and \def), then optional and mandatory arguments.
func renderCommand(w io.Writer, node *Node) error {
	if _, err := fmt.Fprint(w, "\\", node.Name); err != nil {
		return err
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	return renderArguments(w, node)
}

func renderEnvironment(w io.Writer, node *Node) error {
	if _, err := fmt.Fprintf(w, "\\begin{%s}", node.Name); err != nil {
		return err
	}

	if err := renderArguments(w, node); err != nil {
		return err
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\\end{%s}", node.Name)
	return err
}

func renderArguments(w io.Writer, node *Node) error {
	for _, arg := range node.Optional {
		if err := renderWrapped(w, arg, "[", "]"); err != nil {
			return err
		}
	}

	for _, arg := range node.Args {
		if arg.Kind == GroupKind {
			if err := renderWrapped(w, arg, "{", "}"); err != nil {
				return err
			}

			continue
		}

		// bare argument, normalized to the braced form
		if _, err := fmt.Fprint(w, "{"); err != nil {
			return err
		}

		if err := Render(w, arg); err != nil {
			return err
		}

		if _, err := fmt.Fprint(w, "}"); err != nil {
			return err
		}
	}

	return nil
}
