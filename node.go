package latex

type NodeKind int

const (
	TextKind NodeKind = iota
	DocumentKind
	CommandKind
	EnvironmentKind
	GroupKind
	MathKind
	CommentKind
	SpecialKind
)

func (k NodeKind) String() string {
	switch k {
	case TextKind:
		return "Text"
	case DocumentKind:
		return "Document"
	case CommandKind:
		return "Command"
	case EnvironmentKind:
		return "Environment"
	case GroupKind:
		return "Group"
	case MathKind:
		return "Math"
	case CommentKind:
		return "Comment"
	case SpecialKind:
		return "Special"
	default:
		return "Unknown"
	}
}

// MathMode distinguishes inline and display math nodes.
type MathMode int

const (
	InlineMath MathMode = iota
	DisplayMath
)

// Node is a single vertex of the syntax tree.
//
// Name holds the command or environment name (without backslash). Data holds
// the payload of text, comment and special-character leaves; for math nodes it
// holds the opening delimiter ("$", "$$", "\\(" or "\\[") so the source form
// can be reproduced. Optional and Args hold command or environment arguments
// in source order, Children the enclosed content.
type Node struct {
	Kind     NodeKind
	Name     string
	Data     string
	Mode     MathMode
	Optional []*Node
	Args     []*Node
	Children []*Node
	Pos      Position
	End      Position
}

// Find returns the first descendant for which match returns true, or nil.
// The scan is depth-first, visiting each node's arguments before its body
// children, the same order Tree prints.
func (n *Node) Find(match func(*Node) bool) *Node {
	for _, list := range [][]*Node{n.Optional, n.Args, n.Children} {
		for _, child := range list {
			if match(child) {
				return child
			}

			if found := child.Find(match); found != nil {
				return found
			}
		}
	}

	return nil
}

// FindCommand returns the first descendant command node with the given name, or nil.
func (n *Node) FindCommand(name string) *Node {
	return n.Find(func(c *Node) bool {
		return c.Kind == CommandKind && c.Name == name
	})
}

// FindEnvironment returns the first descendant environment node with the given name, or nil.
func (n *Node) FindEnvironment(name string) *Node {
	return n.Find(func(c *Node) bool {
		return c.Kind == EnvironmentKind && c.Name == name
	})
}
