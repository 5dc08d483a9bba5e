package latex

// TokenKind enumerates the lexical units produced by the Lexer.
type TokenKind int

const (
	TextToken TokenKind = iota
	CommandToken
	CommentToken
	GroupOpenToken
	GroupCloseToken
	MathInlineToken
	MathDisplayToken
	SpecialToken
	EOFToken
)

func (k TokenKind) String() string {
	switch k {
	case TextToken:
		return "text"
	case CommandToken:
		return "command"
	case CommentToken:
		return "comment"
	case GroupOpenToken:
		return "group-open"
	case GroupCloseToken:
		return "group-close"
	case MathInlineToken:
		return "math-inline"
	case MathDisplayToken:
		return "math-display"
	case SpecialToken:
		return "special"
	case EOFToken:
		return "eof"
	default:
		return "unknown"
	}
}

// Position locates a token or node in the source text. Line and Column are
// 1-based, Offset is a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Before reports whether p comes before q in the source.
func (p Position) Before(q Position) bool {
	return p.Offset < q.Offset
}

// Token is a single lexical unit. Value holds the command name without the
// leading backslash, the comment text without the leading %, or the literal
// characters of the token. Pos and End delimit the token in the source.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   Position
	End   Position
}
