package latex_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/treex/go-latex"
)

var ignorePositions = cmpopts.IgnoreFields(latex.Node{}, "Pos", "End")

func TestParser(t *testing.T) {
	doc := func(children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.DocumentKind, Children: children}
	}

	text := func(data string) *latex.Node {
		return &latex.Node{Kind: latex.TextKind, Data: data}
	}

	special := func(data string) *latex.Node {
		return &latex.Node{Kind: latex.SpecialKind, Data: data}
	}

	comment := func(data string) *latex.Node {
		return &latex.Node{Kind: latex.CommentKind, Data: data}
	}

	group := func(children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.GroupKind, Children: children}
	}

	command := func(name string) *latex.Node {
		return &latex.Node{Kind: latex.CommandKind, Name: name}
	}

	env := func(name string, children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.EnvironmentKind, Name: name, Children: children}
	}

	math := func(delim string, mode latex.MathMode, children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.MathKind, Data: delim, Mode: mode, Children: children}
	}

	tt := []struct {
		name   string
		input  string
		output *latex.Node
		diags  []latex.Code
	}{
		{
			name:  "command with mandatory argument",
			input: "\\textbf{hello}",
			output: doc(&latex.Node{
				Kind: latex.CommandKind,
				Name: "textbf",
				Args: []*latex.Node{group(text("hello"))},
			}),
		},
		{
			name:   "unknown commands take no arguments",
			input:  "\\foobar{x}",
			output: doc(command("foobar"), group(text("x"))),
		},
		{
			name:   "environment with body",
			input:  "\\begin{itemize}\\item A\\end{itemize}",
			output: doc(env("itemize", command("item"), text(" A"))),
		},
		{
			name:  "environment with begin arguments",
			input: "\\begin{tabular}[t]{|c|}x\\end{tabular}",
			output: doc(&latex.Node{
				Kind:     latex.EnvironmentKind,
				Name:     "tabular",
				Optional: []*latex.Node{group(text("t"))},
				Args:     []*latex.Node{group(text("|c|"))},
				Children: []*latex.Node{text("x")},
			}),
		},
		{
			name:   "nested groups",
			input:  "{a{b}c}",
			output: doc(group(text("a"), group(text("b")), text("c"))),
		},
		{
			name:   "inline math",
			input:  "$x^2$",
			output: doc(math("$", latex.InlineMath, text("x"), special("^"), text("2"))),
		},
		{
			name:   "display math",
			input:  "$$a+b$$",
			output: doc(math("$$", latex.DisplayMath, text("a+b"))),
		},
		{
			name:   "math delimiter commands",
			input:  "\\(x\\)\\[y\\]",
			output: doc(math("\\(", latex.InlineMath, text("x")), math("\\[", latex.DisplayMath, text("y"))),
		},
		{
			name:   "commands inside math",
			input:  "$\\frac{1}{2}$",
			output: doc(math("$", latex.InlineMath, &latex.Node{
				Kind: latex.CommandKind,
				Name: "frac",
				Args: []*latex.Node{group(text("1")), group(text("2"))},
			})),
		},
		{
			name:   "comments are kept",
			input:  "a%note\nb",
			output: doc(text("a"), comment("note"), text("\nb")),
		},
		{
			name:   "escaped specials stay commands",
			input:  "100\\%",
			output: doc(text("100"), command("%")),
		},
		{
			name:   "adjacent text runs merge",
			input:  "a\\relax b",
			output: doc(text("a"), command("relax"), text(" b")),
		},
		{
			name:  "optional argument consumed when adjacent",
			input: "\\item[+] A",
			output: doc(&latex.Node{
				Kind:     latex.CommandKind,
				Name:     "item",
				Optional: []*latex.Node{group(text("+"))},
			}, text(" A")),
		},
		{
			name:   "optional argument skipped across whitespace",
			input:  "\\item [+]",
			output: doc(command("item"), text(" "), special("["), text("+"), special("]")),
		},
		{
			name:  "bare mandatory argument",
			input: "\\sqrt2",
			output: doc(&latex.Node{
				Kind: latex.CommandKind,
				Name: "sqrt",
				Args: []*latex.Node{text("2")},
			}),
		},
		{
			name:   "unterminated group is closed at end of input",
			input:  "{unterminated",
			output: doc(group(text("unterminated"))),
			diags:  []latex.Code{latex.UnterminatedGroup},
		},
		{
			name:   "unexpected close is dropped",
			input:  "}x",
			output: doc(text("x")),
			diags:  []latex.Code{latex.UnexpectedClose},
		},
		{
			name:   "begin without a name keeps the following tokens",
			input:  "\\begin [x]",
			output: doc(command("begin"), text(" "), special("["), text("x"), special("]")),
			diags:  []latex.Code{latex.EnvironmentMismatch},
		},
		{
			name:   "environment closed by mismatched end",
			input:  "\\begin{a}\\end{b}",
			output: doc(env("a")),
			diags:  []latex.Code{latex.EnvironmentMismatch},
		},
		{
			name:   "environment never closed",
			input:  "\\begin{itemize}a",
			output: doc(env("itemize", text("a"))),
			diags:  []latex.Code{latex.EnvironmentMismatch},
		},
		{
			name:   "end without begin",
			input:  "\\end{itemize}x",
			output: doc(text("x")),
			diags:  []latex.Code{latex.UnexpectedClose},
		},
		{
			name:   "math closed by wrong delimiter",
			input:  "$x\\]",
			output: doc(math("$", latex.InlineMath, text("x"))),
			diags:  []latex.Code{latex.MathDelimiterMismatch},
		},
		{
			name:   "math closer never taken as a bare argument",
			input:  "$\\textbf$ after",
			output: doc(math("$", latex.InlineMath, command("textbf")), text(" after")),
		},
		{
			name:   "math never closed",
			input:  "$x",
			output: doc(math("$", latex.InlineMath, text("x"))),
			diags:  []latex.Code{latex.MathDelimiterMismatch},
		},
		{
			name:   "stray math closer",
			input:  "\\)x",
			output: doc(text("x")),
			diags:  []latex.Code{latex.UnexpectedClose},
		},
		{
			name:  "group left open across environment end",
			input: "\\begin{a}{\\end{a}",
			output: doc(env("a", group())),
			diags: []latex.Code{
				latex.EnvironmentMismatch,
				latex.UnterminatedGroup,
				latex.UnexpectedClose,
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, diags := latex.Parse(tc.input)

			if diff := cmp.Diff(tc.output, got, ignorePositions); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}

			var codes []latex.Code
			for _, d := range diags {
				codes = append(codes, d.Code)
			}

			if diff := cmp.Diff(tc.diags, codes); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParserDefinitions(t *testing.T) {
	group := func(children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.GroupKind, Children: children}
	}

	text := func(data string) *latex.Node {
		return &latex.Node{Kind: latex.TextKind, Data: data}
	}

	t.Run("newcommand registers arity for later use", func(t *testing.T) {
		root, diags := latex.Parse("\\newcommand{\\mycmd}[2]{#1-#2}\\mycmd{a}{b}")
		if len(diags) != 0 {
			t.Fatalf("expected no diagnostics, got %v", diags)
		}

		if len(root.Children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(root.Children))
		}

		use := root.Children[1]
		want := &latex.Node{
			Kind: latex.CommandKind,
			Name: "mycmd",
			Args: []*latex.Node{group(text("a")), group(text("b"))},
		}

		if diff := cmp.Diff(want, use, ignorePositions); diff != "" {
			t.Errorf("usage mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("default value makes first argument optional", func(t *testing.T) {
		root, diags := latex.Parse("\\newcommand{\\greet}[2][Hi]{#1 #2}\\greet{Bob}\\greet[Yo]{Al}")
		if len(diags) != 0 {
			t.Fatalf("expected no diagnostics, got %v", diags)
		}

		if len(root.Children) != 3 {
			t.Fatalf("expected 3 children, got %d", len(root.Children))
		}

		plain := root.Children[1]
		if len(plain.Optional) != 0 || len(plain.Args) != 1 {
			t.Errorf("expected \\greet{Bob} to take 0 optional and 1 mandatory argument, got %d and %d", len(plain.Optional), len(plain.Args))
		}

		custom := root.Children[2]
		if len(custom.Optional) != 1 || len(custom.Args) != 1 {
			t.Errorf("expected \\greet[Yo]{Al} to take 1 optional and 1 mandatory argument, got %d and %d", len(custom.Optional), len(custom.Args))
		}
	})

	t.Run("definitions are not hoisted", func(t *testing.T) {
		root, _ := latex.Parse("\\late{x}\\newcommand{\\late}[1]{#1}")

		first := root.Children[0]
		if first.Kind != latex.CommandKind || first.Name != "late" || len(first.Args) != 0 {
			t.Errorf("expected \\late before its definition to take no arguments, got %+v", first)
		}
	})

	t.Run("redefinition replaces the entry outright", func(t *testing.T) {
		root, _ := latex.Parse("\\newcommand{\\a}[1]{x}\\renewcommand{\\a}{y}\\a{z}")

		use := root.Children[2]
		if len(use.Args) != 0 {
			t.Errorf("expected redefined \\a to take no arguments, got %d", len(use.Args))
		}
	})

	t.Run("providecommand never overrides", func(t *testing.T) {
		root, _ := latex.Parse("\\newcommand{\\b}[1]{x}\\providecommand{\\b}{y}\\b{z}")

		use := root.Children[2]
		if len(use.Args) != 1 {
			t.Errorf("expected \\b to keep its original single argument, got %d", len(use.Args))
		}
	})

	t.Run("def counts parameter markers", func(t *testing.T) {
		root, diags := latex.Parse("\\def\\pair#1#2{(#1,#2)}\\pair{a}{b}")
		if len(diags) != 0 {
			t.Fatalf("expected no diagnostics, got %v", diags)
		}

		use := root.Children[1]
		want := &latex.Node{
			Kind: latex.CommandKind,
			Name: "pair",
			Args: []*latex.Node{group(text("a")), group(text("b"))},
		}

		if diff := cmp.Diff(want, use, ignorePositions); diff != "" {
			t.Errorf("usage mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestParserSeededSymbols(t *testing.T) {
	table := latex.NewSymbolTable()
	table.Register("InputFile", latex.Arity{Required: 1})
	table.RegisterEnvironment("problem", latex.Arity{Required: 2})

	root, diags := latex.Parse("\\InputFile{stdin}\\begin{problem}{A}{B}x\\end{problem}", latex.WithSymbols(table))
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}

	cmd := root.Children[0]
	if len(cmd.Args) != 1 {
		t.Errorf("expected \\InputFile to take 1 argument, got %d", len(cmd.Args))
	}

	env := root.Children[1]
	if env.Kind != latex.EnvironmentKind || len(env.Args) != 2 {
		t.Errorf("expected problem environment with 2 arguments, got %+v", env)
	}

	if len(env.Children) != 1 {
		t.Errorf("expected problem environment body with 1 child, got %d", len(env.Children))
	}

	// the seed table must stay untouched by definitions inside the parse
	latex.Parse("\\newcommand{\\InputFile}{}", latex.WithSymbols(table))
	if ar, ok := table.Lookup("InputFile"); !ok || ar.Required != 1 {
		t.Errorf("seed table was mutated by a parse, got %+v", ar)
	}
}

func TestParserRelaxedOptionals(t *testing.T) {
	root, diags := latex.Parse("\\item [+]", latex.WithRelaxedOptionals())
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}

	item := root.Children[0]
	if len(item.Optional) != 1 {
		t.Fatalf("expected relaxed mode to consume the optional argument, got %+v", item)
	}
}

func TestParserDiagnosticPositions(t *testing.T) {
	_, diags := latex.Parse("ab\n{cd")

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", diags)
	}

	want := latex.Position{Line: 2, Column: 1, Offset: 3}
	if diags[0].Pos != want {
		t.Errorf("expected diagnostic at %+v, got %+v", want, diags[0].Pos)
	}

	if diags[0].Severity != latex.Error {
		t.Errorf("expected error severity, got %v", diags[0].Severity)
	}
}

func TestParserDiagnosticOrdering(t *testing.T) {
	_, diags := latex.Parse("}a{b\n\\begin{x}")

	for i := 1; i < len(diags); i++ {
		if diags[i].Pos.Before(diags[i-1].Pos) {
			t.Fatalf("diagnostics out of order: %v", diags)
		}
	}

	if len(diags) != 3 {
		t.Errorf("expected 3 diagnostics, got %v", diags)
	}
}

func TestParserNodePositions(t *testing.T) {
	root, _ := latex.Parse("{ab}")

	group := root.Children[0]
	if group.Pos != (latex.Position{Line: 1, Column: 1, Offset: 0}) {
		t.Errorf("unexpected group start: %+v", group.Pos)
	}

	if group.End != (latex.Position{Line: 1, Column: 5, Offset: 4}) {
		t.Errorf("unexpected group end: %+v", group.End)
	}
}
