package latex

// Arity declares how many optional and mandatory arguments a command (or an
// environment's \begin) consumes.
type Arity struct {
	Optional int
	Required int
}

// SymbolTable maps command and environment names to their declared arities.
// A table is scoped to a single parse: the parser clones its seed table, so
// definitions picked up during one parse never leak into the next.
type SymbolTable struct {
	commands     map[string]Arity
	environments map[string]Arity
}

// NewSymbolTable returns a table seeded with the builtin command set. Names
// are stored without the leading backslash.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		commands:     map[string]Arity{},
		environments: map[string]Arity{},
	}

	for name, ar := range builtins {
		t.commands[name] = ar
	}

	for name, ar := range builtinEnvironments {
		t.environments[name] = ar
	}

	return t
}

// Register declares the arity of a command. Redefinition replaces the previous
// entry outright, matching LaTeX's own redefinition semantics.
func (t *SymbolTable) Register(name string, ar Arity) {
	t.commands[name] = ar
}

// RegisterEnvironment declares the arity of an environment's begin arguments.
func (t *SymbolTable) RegisterEnvironment(name string, ar Arity) {
	t.environments[name] = ar
}

// Lookup returns the declared arity of a command.
func (t *SymbolTable) Lookup(name string) (Arity, bool) {
	ar, ok := t.commands[name]
	return ar, ok
}

// LookupEnvironment returns the declared arity of an environment.
func (t *SymbolTable) LookupEnvironment(name string) (Arity, bool) {
	ar, ok := t.environments[name]
	return ar, ok
}

// Clone returns an independent copy of the table.
func (t *SymbolTable) Clone() *SymbolTable {
	c := &SymbolTable{
		commands:     make(map[string]Arity, len(t.commands)),
		environments: make(map[string]Arity, len(t.environments)),
	}

	for name, ar := range t.commands {
		c.commands[name] = ar
	}

	for name, ar := range t.environments {
		c.environments[name] = ar
	}

	return c
}

// builtins covers the common LaTeX commands whose argument shape matters for
// parsing. Anything absent is treated as zero-arity and passes through.
var builtins = map[string]Arity{
	"documentclass":     {Optional: 1, Required: 1},
	"usepackage":        {Optional: 1, Required: 1},
	"title":             {Required: 1},
	"author":            {Required: 1},
	"date":              {Required: 1},
	"chapter":           {Optional: 1, Required: 1},
	"chapter*":          {Required: 1},
	"section":           {Optional: 1, Required: 1},
	"section*":          {Required: 1},
	"subsection":        {Optional: 1, Required: 1},
	"subsection*":       {Required: 1},
	"subsubsection":     {Optional: 1, Required: 1},
	"subsubsection*":    {Required: 1},
	"paragraph":         {Required: 1},
	"caption":           {Optional: 1, Required: 1},
	"item":              {Optional: 1},
	"textbf":            {Required: 1},
	"textit":            {Required: 1},
	"texttt":            {Required: 1},
	"textsc":            {Required: 1},
	"textrm":            {Required: 1},
	"textsf":            {Required: 1},
	"emph":              {Required: 1},
	"underline":         {Required: 1},
	"mbox":              {Required: 1},
	"frac":              {Required: 2},
	"sqrt":              {Optional: 1, Required: 1},
	"label":             {Required: 1},
	"ref":               {Required: 1},
	"eqref":             {Required: 1},
	"pageref":           {Required: 1},
	"cite":              {Optional: 1, Required: 1},
	"citep":             {Optional: 1, Required: 1},
	"citet":             {Optional: 1, Required: 1},
	"footnote":          {Required: 1},
	"url":               {Required: 1},
	"href":              {Required: 2},
	"includegraphics":   {Optional: 1, Required: 1},
	"input":             {Required: 1},
	"include":           {Required: 1},
	"bibliography":      {Required: 1},
	"bibliographystyle": {Required: 1},
	"vspace":            {Required: 1},
	"hspace":            {Required: 1},
	"rule":              {Optional: 1, Required: 2},
	"parbox":            {Optional: 1, Required: 2},
	"setlength":         {Required: 2},
	"mathbb":            {Required: 1},
	"mathcal":           {Required: 1},
	"mathrm":            {Required: 1},
	"mathbf":            {Required: 1},
	"text":              {Required: 1},
	"overline":          {Required: 1},
	"hat":               {Required: 1},
	"vec":               {Required: 1},
	"\\":                {Optional: 1},
}

var builtinEnvironments = map[string]Arity{
	"tabular":         {Optional: 1, Required: 1},
	"tabular*":        {Optional: 1, Required: 2},
	"array":           {Optional: 1, Required: 1},
	"minipage":        {Optional: 1, Required: 1},
	"wrapfigure":      {Optional: 1, Required: 2},
	"list":            {Required: 2},
	"thebibliography": {Required: 1},
}
