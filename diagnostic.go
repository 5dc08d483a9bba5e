package latex

import (
	"fmt"
	"sort"
)

// Severity grades a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Code identifies the class of structural problem a diagnostic reports.
type Code int

const (
	UnterminatedGroup Code = iota
	EnvironmentMismatch
	MathDelimiterMismatch
	UnexpectedClose
)

func (c Code) String() string {
	switch c {
	case UnterminatedGroup:
		return "unterminated-group"
	case EnvironmentMismatch:
		return "environment-mismatch"
	case MathDelimiterMismatch:
		return "math-delimiter-mismatch"
	case UnexpectedClose:
		return "unexpected-close"
	default:
		return "unknown"
	}
}

// Diagnostic reports a structural problem found during parsing. The parser
// recovers from every problem it reports, so diagnostics accompany a complete
// tree rather than replacing one.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
}

// sortDiagnostics orders diagnostics by source position ascending, keeping
// report order for equal positions.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Pos.Before(diags[j].Pos)
	})
}
