package latex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahrtr/gocontainer/stack"
	"github.com/edwingeng/deque"
)

// Parser turns a token stream into a syntax tree. It owns all parse-time
// state: the symbol table of command arities and the stack of open scopes.
// Parsing never aborts; structural problems are reported as diagnostics and
// recovered from, so the returned tree is always well formed.
type Parser struct {
	lex     *Lexer
	pending deque.Deque
	scopes  stack.Interface
	symbols *SymbolTable
	relaxed bool
	diags   []Diagnostic
}

type Option func(*Parser)

// WithSymbols seeds the parser with additional command and environment
// arities. The table is copied, the parse does not mutate the argument.
func WithSymbols(t *SymbolTable) Option {
	return func(p *Parser) {
		p.symbols = t.Clone()
	}
}

// WithRelaxedOptionals lets an optional argument follow its command across
// whitespace, so "\foo [bar]" consumes the option just like "\foo[bar]".
func WithRelaxedOptionals() Option {
	return func(p *Parser) {
		p.relaxed = true
	}
}

// Parse parses a complete LaTeX source text.
func Parse(src string, opts ...Option) (*Node, []Diagnostic) {
	return NewParser(src, opts...).Parse()
}

func NewParser(src string, opts ...Option) *Parser {
	p := &Parser{
		lex:     NewLexer(src),
		pending: deque.NewDeque(),
		scopes:  stack.New(),
		symbols: NewSymbolTable(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Register declares a command arity before parsing starts.
func (p *Parser) Register(name string, ar Arity) {
	p.symbols.Register(name, ar)
}

// RegisterEnvironment declares an environment arity before parsing starts.
func (p *Parser) RegisterEnvironment(name string, ar Arity) {
	p.symbols.RegisterEnvironment(name, ar)
}

// Parse consumes the whole token stream and returns the document root plus
// all diagnostics, ordered by source position. A parser instance parses once.
func (p *Parser) Parse() (*Node, []Diagnostic) {
	doc := &Node{Kind: DocumentKind, Pos: Position{Line: 1, Column: 1}}

	for {
		tok := p.next()
		if tok.Kind == EOFToken {
			doc.End = tok.End
			break
		}

		if node := p.parseToken(tok); node != nil {
			doc.Children = appendNode(doc.Children, node)
		}
	}

	sortDiagnostics(p.diags)
	return doc, p.diags
}

// next returns the next token, draining the pushback buffer first.
func (p *Parser) next() Token {
	if p.pending.Len() != 0 {
		return p.pending.PopFront().(Token)
	}

	return p.lex.Next()
}

func (p *Parser) pushBack(tok Token) {
	p.pending.PushFront(tok)
}

func (p *Parser) openScope(s openedScope) {
	p.scopes.Push(s)
}

func (p *Parser) closeScope() {
	p.scopes.Pop()
}

// currentScope returns the innermost open scope, if any.
func (p *Parser) currentScope() (openedScope, bool) {
	top := p.scopes.Peek()
	if top == nil {
		return openedScope{}, false
	}

	return top.(openedScope), true
}

type scopeKind int

const (
	scopeGroup scopeKind = iota
	scopeEnvironment
	scopeMath
)

// openedScope marks one unclosed group, environment or math span.
type openedScope struct {
	kind scopeKind
	name string
	pos  Position
}

func (p *Parser) report(code Code, pos Position, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// parseToken builds the node for one token, recursing for tokens that open a
// scope. It returns nil for tokens that are dropped during recovery.
func (p *Parser) parseToken(tok Token) *Node {
	switch tok.Kind {
	case TextToken:
		return &Node{Kind: TextKind, Data: tok.Value, Pos: tok.Pos, End: tok.End}
	case SpecialToken:
		return &Node{Kind: SpecialKind, Data: tok.Value, Pos: tok.Pos, End: tok.End}
	case CommentToken:
		return &Node{Kind: CommentKind, Data: tok.Value, Pos: tok.Pos, End: tok.End}
	case GroupOpenToken:
		return p.parseGroup(tok)
	case GroupCloseToken:
		if top, ok := p.currentScope(); ok && top.kind == scopeMath {
			p.report(UnexpectedClose, tok.Pos, "unexpected } inside math started at %d:%d", top.pos.Line, top.pos.Column)
		} else {
			p.report(UnexpectedClose, tok.Pos, "unexpected } without matching {")
		}

		return nil
	case MathInlineToken:
		return p.parseMath(tok, InlineMath)
	case MathDisplayToken:
		return p.parseMath(tok, DisplayMath)
	case CommandToken:
		return p.parseCommand(tok)
	default:
		return nil
	}
}

func (p *Parser) parseCommand(tok Token) *Node {
	switch tok.Value {
	case "begin":
		return p.parseEnvironment(tok)
	case "end":
		// an \end reaching this point has no environment to close: either
		// nothing is open, or the innermost scope is a group or math span
		name, _, ok := p.environmentName()
		switch top, open := p.currentScope(); {
		case !ok:
			p.report(UnexpectedClose, tok.Pos, "\\end without matching \\begin")
		case open && top.kind == scopeGroup:
			p.report(UnexpectedClose, tok.Pos, "\\end{%s} inside group opened at %d:%d", name, top.pos.Line, top.pos.Column)
		default:
			p.report(UnexpectedClose, tok.Pos, "\\end{%s} without matching \\begin", name)
		}

		return nil
	case "(":
		return p.parseMath(tok, InlineMath)
	case "[":
		return p.parseMath(tok, DisplayMath)
	case ")", "]":
		p.report(UnexpectedClose, tok.Pos, "unexpected math closer \\%s", tok.Value)
		return nil
	case "newcommand", "renewcommand", "providecommand":
		return p.parseNewcommand(tok)
	case "def":
		return p.parseDef(tok)
	}

	node := &Node{Kind: CommandKind, Name: tok.Value, Pos: tok.Pos, End: tok.End}

	ar, known := p.symbols.Lookup(tok.Value)
	if !known {
		// unknown commands pass through unexpanded, without arguments
		return node
	}

	p.parseArguments(node, ar)
	return node
}

// parseGroup parses a braced group after its opening token. A group cut short
// by the end of input is closed there, so ancestors stay well formed.
func (p *Parser) parseGroup(open Token) *Node {
	node := &Node{Kind: GroupKind, Pos: open.Pos}

	p.openScope(openedScope{kind: scopeGroup, pos: open.Pos})
	defer p.closeScope()

	for {
		tok := p.next()
		switch tok.Kind {
		case GroupCloseToken:
			node.End = tok.End
			return node
		case EOFToken:
			p.report(UnterminatedGroup, open.Pos, "unterminated group, missing }")
			node.End = tok.End
			return node
		default:
			if child := p.parseToken(tok); child != nil {
				node.Children = appendNode(node.Children, child)
			}
		}
	}
}

// parseMath parses a math span after its opening delimiter. Any math boundary
// ends the span; a boundary of the wrong kind is reported but still closes,
// the same local recovery groups use.
func (p *Parser) parseMath(open Token, mode MathMode) *Node {
	delim := open.Value
	if open.Kind == CommandToken {
		delim = "\\" + open.Value
	}

	node := &Node{Kind: MathKind, Mode: mode, Data: delim, Pos: open.Pos}

	p.openScope(openedScope{kind: scopeMath, name: delim, pos: open.Pos})
	defer p.closeScope()

	closer := mathCloser(delim)

	for {
		tok := p.next()
		switch {
		case tok.Kind == EOFToken:
			p.report(MathDelimiterMismatch, open.Pos, "math started with %q is never closed", delim)
			node.End = tok.End
			return node
		case isMathBoundary(tok):
			if text := boundaryText(tok); text != closer {
				p.report(MathDelimiterMismatch, tok.Pos, "math started with %q closed with %q", delim, text)
			}

			node.End = tok.End
			return node
		default:
			if child := p.parseToken(tok); child != nil {
				node.Children = appendNode(node.Children, child)
			}
		}
	}
}

func mathCloser(delim string) string {
	switch delim {
	case "\\(":
		return "\\)"
	case "\\[":
		return "\\]"
	default:
		return delim
	}
}

func isMathBoundary(tok Token) bool {
	switch tok.Kind {
	case MathInlineToken, MathDisplayToken:
		return true
	case CommandToken:
		return tok.Value == "(" || tok.Value == ")" || tok.Value == "[" || tok.Value == "]"
	default:
		return false
	}
}

func boundaryText(tok Token) string {
	if tok.Kind == CommandToken {
		return "\\" + tok.Value
	}

	return tok.Value
}

// parseEnvironment parses \begin{name} ... \end{name}. A mismatched \end
// still closes the environment at that point; only the mismatch is reported.
func (p *Parser) parseEnvironment(begin Token) *Node {
	name, _, ok := p.environmentName()
	if !ok || name == "" {
		p.report(EnvironmentMismatch, begin.Pos, "\\begin is missing an environment name")
		return &Node{Kind: CommandKind, Name: begin.Value, Pos: begin.Pos, End: begin.End}
	}

	node := &Node{Kind: EnvironmentKind, Name: name, Pos: begin.Pos, End: begin.End}

	ar, known := p.symbols.LookupEnvironment(name)
	if !known {
		// unregistered environments still pick up [options] when present
		ar = Arity{Optional: 1}
	}

	p.parseArguments(node, ar)

	p.openScope(openedScope{kind: scopeEnvironment, name: name, pos: begin.Pos})
	defer p.closeScope()

	for {
		tok := p.next()
		switch {
		case tok.Kind == EOFToken:
			p.report(EnvironmentMismatch, begin.Pos, "environment %q is never closed", name)
			node.End = tok.End
			return node
		case tok.Kind == CommandToken && tok.Value == "end":
			closing, end, ok := p.environmentName()
			switch {
			case !ok:
				p.report(EnvironmentMismatch, tok.Pos, "\\end closing %q is missing an environment name", name)
				node.End = tok.End
			case closing != name:
				p.report(EnvironmentMismatch, tok.Pos, "environment %q closed as %q", name, closing)
				node.End = end
			default:
				node.End = end
			}

			return node
		default:
			if child := p.parseToken(tok); child != nil {
				node.Children = appendNode(node.Children, child)
			}
		}
	}
}

// environmentName reads the {name} group after \begin or \end. It reports
// false without consuming anything when no braced group follows; whitespace
// skipped while looking for the group is restored too.
func (p *Parser) environmentName() (string, Position, bool) {
	var skipped []Token

	open := p.next()
	for open.Kind == TextToken && strings.TrimSpace(open.Value) == "" {
		skipped = append(skipped, open)
		open = p.next()
	}

	if open.Kind != GroupOpenToken {
		p.pushBack(open)
		for i := len(skipped) - 1; i >= 0; i-- {
			p.pushBack(skipped[i])
		}

		return "", open.Pos, false
	}

	var name strings.Builder
	for {
		tok := p.next()
		switch tok.Kind {
		case GroupCloseToken:
			return name.String(), tok.End, true
		case EOFToken:
			p.report(UnterminatedGroup, open.Pos, "unterminated group, missing }")
			return name.String(), tok.End, true
		default:
			name.WriteString(tok.Value)
		}
	}
}

// parseArguments consumes up to the declared number of optional and mandatory
// arguments. Optional arguments are taken only when actually present.
func (p *Parser) parseArguments(node *Node, ar Arity) {
	for i := 0; i < ar.Optional; i++ {
		arg, ok := p.optionalArgument()
		if !ok {
			break
		}

		node.Optional = append(node.Optional, arg)
		node.End = arg.End
	}

	for i := 0; i < ar.Required; i++ {
		arg, ok := p.mandatoryArgument()
		if !ok {
			break
		}

		node.Args = append(node.Args, arg)
		node.End = arg.End
	}
}

// optionalArgument consumes a [..] group if one immediately follows. In
// relaxed mode a whitespace run may sit in between.
func (p *Parser) optionalArgument() (*Node, bool) {
	tok := p.next()

	if p.relaxed && tok.Kind == TextToken && strings.TrimSpace(tok.Value) == "" {
		next := p.next()
		if next.Kind == SpecialToken && next.Value == "[" {
			return p.optionGroup(next), true
		}

		p.pushBack(next)
		p.pushBack(tok)
		return nil, false
	}

	if tok.Kind != SpecialToken || tok.Value != "[" {
		p.pushBack(tok)
		return nil, false
	}

	return p.optionGroup(tok), true
}

// optionGroup parses the content of an optional argument up to the closing ].
// Braced groups inside may contain ] without ending the argument.
func (p *Parser) optionGroup(open Token) *Node {
	node := &Node{Kind: GroupKind, Pos: open.Pos}

	for {
		tok := p.next()
		switch {
		case tok.Kind == SpecialToken && tok.Value == "]":
			node.End = tok.End
			return node
		case tok.Kind == EOFToken:
			p.report(UnterminatedGroup, open.Pos, "unterminated optional argument, missing ]")
			node.End = tok.End
			return node
		default:
			if child := p.parseToken(tok); child != nil {
				node.Children = appendNode(node.Children, child)
			}
		}
	}
}

// mandatoryArgument consumes one braced group, or a single bare token when no
// brace follows. Tokens that close an enclosing scope are never consumed, and
// neither are math delimiters: a math span as an argument requires braces.
func (p *Parser) mandatoryArgument() (*Node, bool) {
	tok := p.nextSkippingSpace()

	switch tok.Kind {
	case EOFToken:
		return nil, false
	case GroupOpenToken:
		return p.parseGroup(tok), true
	case GroupCloseToken, MathInlineToken, MathDisplayToken:
		p.pushBack(tok)
		return nil, false
	case SpecialToken:
		if tok.Value == "]" {
			p.pushBack(tok)
			return nil, false
		}
	case CommandToken:
		if tok.Value == "end" || tok.Value == ")" || tok.Value == "]" {
			p.pushBack(tok)
			return nil, false
		}
	}

	node := p.parseToken(tok)
	if node == nil {
		return nil, false
	}

	return node, true
}

// nextSkippingSpace drops whitespace-only text tokens, which carry no meaning
// between a command and its arguments.
func (p *Parser) nextSkippingSpace() Token {
	for {
		tok := p.next()
		if tok.Kind == TextToken && strings.TrimSpace(tok.Value) == "" {
			continue
		}

		return tok
	}
}

// parseNewcommand handles \newcommand, \renewcommand and \providecommand:
// {\name} or \name, then [nargs], then [default] which makes the first
// argument optional, then the {body}. The new arity takes effect immediately
// for the rest of the stream; definitions are not hoisted.
func (p *Parser) parseNewcommand(tok Token) *Node {
	node := &Node{Kind: CommandKind, Name: tok.Value, Pos: tok.Pos, End: tok.End}

	var name string
	switch target := p.nextSkippingSpace(); target.Kind {
	case GroupOpenToken:
		group := p.parseGroup(target)
		if cmd := firstCommand(group); cmd != nil {
			name = cmd.Name
		}

		node.Children = append(node.Children, group)
		node.End = group.End
	case CommandToken:
		defined := &Node{Kind: CommandKind, Name: target.Value, Pos: target.Pos, End: target.End}
		name = target.Value
		node.Children = append(node.Children, defined)
		node.End = target.End
	default:
		// malformed definition, leave the rest of the stream in place
		p.pushBack(target)
		return node
	}

	count := 0
	hasDefault := false

	if arg, ok := p.optionalArgument(); ok {
		node.Optional = append(node.Optional, arg)
		node.End = arg.End

		if n, err := strconv.Atoi(strings.TrimSpace(String(arg))); err == nil {
			count = n
		}

		if def, ok := p.optionalArgument(); ok {
			node.Optional = append(node.Optional, def)
			node.End = def.End
			hasDefault = true
		}
	}

	if body, ok := p.mandatoryArgument(); ok {
		node.Args = append(node.Args, body)
		node.End = body.End
	}

	if name == "" {
		return node
	}

	if tok.Value == "providecommand" {
		if _, exists := p.symbols.Lookup(name); exists {
			return node
		}
	}

	ar := Arity{Required: count}
	if hasDefault {
		ar = Arity{Optional: 1, Required: count - 1}
	}

	if ar.Required < 0 {
		ar.Required = 0
	}

	p.symbols.Register(name, ar)
	return node
}

// parseDef handles TeX-style \def\name#1#2{body}. The parameter markers
// determine the arity; they are kept as children so the definition can be
// reproduced from the tree.
func (p *Parser) parseDef(tok Token) *Node {
	node := &Node{Kind: CommandKind, Name: tok.Value, Pos: tok.Pos, End: tok.End}

	target := p.nextSkippingSpace()
	if target.Kind != CommandToken {
		p.pushBack(target)
		return node
	}

	node.Children = append(node.Children, &Node{Kind: CommandKind, Name: target.Value, Pos: target.Pos, End: target.End})
	node.End = target.End

	count := 0
markers:
	for {
		tok := p.next()
		switch {
		case tok.Kind == SpecialToken && tok.Value == "#":
			digits := p.next()
			if digits.Kind != TextToken || !startsWithDigit(digits.Value) {
				p.pushBack(digits)
				p.pushBack(tok)
				break markers
			}

			count++
			node.Children = append(node.Children, &Node{Kind: SpecialKind, Data: tok.Value, Pos: tok.Pos, End: tok.End})
			node.Children = append(node.Children, &Node{Kind: TextKind, Data: digits.Value, Pos: digits.Pos, End: digits.End})
			node.End = digits.End
		default:
			p.pushBack(tok)
			break markers
		}
	}

	if body, ok := p.mandatoryArgument(); ok {
		node.Args = append(node.Args, body)
		node.End = body.End
	}

	p.symbols.Register(target.Value, Arity{Required: count})
	return node
}

func firstCommand(group *Node) *Node {
	for _, child := range group.Children {
		if child.Kind == CommandKind {
			return child
		}
	}

	return nil
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && '0' <= s[0] && s[0] <= '9'
}

// appendNode adds a child, merging consequent text nodes together.
func appendNode(children []*Node, node *Node) []*Node {
	if node.Kind == TextKind && len(children) > 0 && children[len(children)-1].Kind == TextKind {
		last := children[len(children)-1]
		last.Data += node.Data
		last.End = node.End
		return children
	}

	return append(children, node)
}
