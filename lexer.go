package latex

import "unicode/utf8"

// Lexer converts LaTeX source into a stream of tokens. It recognizes lexical
// shape only; structure (matching braces, environments, math nesting) is the
// parser's job, so lexing never fails.
type Lexer struct {
	src  string
	off  int
	line int
	col  int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Next returns the next token. After the end of input it keeps returning the
// terminal EOF token.
func (l *Lexer) Next() Token {
	start := l.pos()

	if l.off >= len(l.src) {
		return Token{Kind: EOFToken, Pos: start, End: start}
	}

	switch ch := l.read(); ch {
	case '{':
		return Token{Kind: GroupOpenToken, Value: "{", Pos: start, End: l.pos()}
	case '}':
		return Token{Kind: GroupCloseToken, Value: "}", Pos: start, End: l.pos()}
	case '$':
		if next, ok := l.peek(); ok && next == '$' {
			l.read()
			return Token{Kind: MathDisplayToken, Value: "$$", Pos: start, End: l.pos()}
		}

		return Token{Kind: MathInlineToken, Value: "$", Pos: start, End: l.pos()}
	case '%':
		return l.readComment(start)
	case '\\':
		return l.readCommand(start)
	case '~', '&', '#', '_', '^', '[', ']':
		return Token{Kind: SpecialToken, Value: string(ch), Pos: start, End: l.pos()}
	default:
		return l.readText(start)
	}
}

// readComment collects everything up to, but excluding, the next newline. The
// leading % is not part of the payload.
func (l *Lexer) readComment(start Position) Token {
	from := l.off
	for {
		next, ok := l.peek()
		if !ok || next == '\n' {
			break
		}

		l.read()
	}

	return Token{Kind: CommentToken, Value: l.src[from:l.off], Pos: start, End: l.pos()}
}

// readCommand scans the token after a backslash. A run of letters is a named
// command; a single non-letter character is a one-character command, which is
// how escaped specials (\%, \&, \\) and the math delimiters \( \) \[ \] reach
// the parser.
func (l *Lexer) readCommand(start Position) Token {
	next, ok := l.peek()
	if !ok {
		// trailing backslash, keep it as literal text
		return Token{Kind: TextToken, Value: "\\", Pos: start, End: l.pos()}
	}

	if !isLetter(next) {
		l.read()
		return Token{Kind: CommandToken, Value: string(next), Pos: start, End: l.pos()}
	}

	from := l.off
	for {
		next, ok := l.peek()
		if !ok || !isLetter(next) {
			break
		}

		l.read()
	}

	name := l.src[from:l.off]

	// command names may include * in the end (except for begin and end)
	if next, ok := l.peek(); ok && next == '*' && name != "begin" && name != "end" {
		l.read()
		name = l.src[from:l.off]
	}

	return Token{Kind: CommandToken, Value: name, Pos: start, End: l.pos()}
}

// readText collects a maximal run of characters with no special meaning.
// Whitespace is preserved untouched so consumers can spot paragraph breaks.
func (l *Lexer) readText(start Position) Token {
	from := start.Offset
	for {
		next, ok := l.peek()
		if !ok || isSpecial(next) {
			break
		}

		l.read()
	}

	return Token{Kind: TextToken, Value: l.src[from:l.off], Pos: start, End: l.pos()}
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.off}
}

func (l *Lexer) peek() (rune, bool) {
	if l.off >= len(l.src) {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	return r, true
}

func (l *Lexer) read() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// isSpecial reports whether a character interrupts a text run.
func isSpecial(r rune) bool {
	switch r {
	case '\\', '{', '}', '$', '%', '~', '&', '#', '_', '^', '[', ']':
		return true
	default:
		return false
	}
}
