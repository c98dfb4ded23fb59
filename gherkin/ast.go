package gherkin

// Location is a 1-based line/column pair. Column is 0 when the token kind
// carries no meaningful column anchor.
type Location struct {
	Line   int
	Column int
}

// Less reports whether loc precedes other lexicographically by
// (line, column).
func (loc Location) Less(other Location) bool {
	if loc.Line != other.Line {
		return loc.Line < other.Line
	}
	return loc.Column < other.Column
}

// KeywordType classifies a step keyword's grammatical role.
type KeywordType int

const (
	KeywordTypeUnknown KeywordType = iota
	KeywordTypeContext
	KeywordTypeAction
	KeywordTypeOutcome
	KeywordTypeConjunction
)

func (k KeywordType) String() string {
	switch k {
	case KeywordTypeContext:
		return "Context"
	case KeywordTypeAction:
		return "Action"
	case KeywordTypeOutcome:
		return "Outcome"
	case KeywordTypeConjunction:
		return "Conjunction"
	default:
		return "Unknown"
	}
}

// ScenarioKind distinguishes a plain Scenario from a Scenario Outline.
type ScenarioKind int

const (
	ScenarioKindScenario ScenarioKind = iota
	ScenarioKindOutline
)

func (k ScenarioKind) String() string {
	if k == ScenarioKindOutline {
		return "ScenarioOutline"
	}
	return "Scenario"
}

// Node is the supertype every AST value implements: a source location and
// its immediate children, enough for the visitor/fold/handler facades to
// walk the tree generically without knowing each concrete type. Children
// is a materialized slice rather than a callback since a node's fan-out
// here is always small and bounded (steps, tags, examples).
type Node interface {
	Location() Location
	Children() []Node
}

// FeatureChild is a Background, Scenario, or Rule appearing directly under
// a Feature.
type FeatureChild interface {
	Node
	isFeatureChild()
}

// RuleChild is a Background or Scenario appearing under a Rule.
type RuleChild interface {
	Node
	isRuleChild()
}

// StepArgument is a DocString or a DataTable attached to a Step.
type StepArgument interface {
	Node
	isStepArgument()
}

// Tag is an `@`-prefixed identifier attached to a Feature, Rule, Scenario,
// or Examples block.
type Tag struct {
	Loc  Location
	Name string // includes the leading '@'
	ID   string
}

func (t *Tag) Location() Location { return t.Loc }
func (t *Tag) Children() []Node   { return nil }

// Comment is a `#`-prefixed line collected into the document regardless of
// its position.
type Comment struct {
	Loc  Location
	Text string // includes the leading '#'
}

func (c *Comment) Location() Location { return c.Loc }
func (c *Comment) Children() []Node   { return nil }

// TableCell is one `|`-delimited cell of a TableRow.
type TableCell struct {
	Loc   Location
	Value string
}

func (c *TableCell) Location() Location { return c.Loc }
func (c *TableCell) Children() []Node   { return nil }

// TableRow is one row of a DataTable or Examples table.
type TableRow struct {
	Loc   Location
	ID    string
	Cells []*TableCell
}

func (r *TableRow) Location() Location { return r.Loc }
func (r *TableRow) Children() []Node {
	nodes := make([]Node, len(r.Cells))
	for i, c := range r.Cells {
		nodes[i] = c
	}
	return nodes
}

// DocString is a triple-delimited multi-line step argument.
type DocString struct {
	Loc       Location
	MediaType string // empty when absent
	Content   string
	Delimiter string // `"""` or "```"
}

func (d *DocString) Location() Location { return d.Loc }
func (d *DocString) Children() []Node   { return nil }
func (d *DocString) isStepArgument()    {}

// DataTable is a `|`-delimited step argument.
type DataTable struct {
	Loc  Location
	Rows []*TableRow
}

func (t *DataTable) Location() Location { return t.Loc }
func (t *DataTable) Children() []Node {
	nodes := make([]Node, len(t.Rows))
	for i, r := range t.Rows {
		nodes[i] = r
	}
	return nodes
}
func (t *DataTable) isStepArgument() {}

// Step is a Given/When/Then/And/But/`*` line with an optional argument.
type Step struct {
	Loc         Location
	Keyword     string // includes the trailing separator: "Given " or "* "
	KeywordType KeywordType
	Text        string
	ID          string
	Argument    StepArgument // nil when absent
}

func (s *Step) Location() Location { return s.Loc }
func (s *Step) Children() []Node {
	if s.Argument == nil {
		return nil
	}
	return []Node{s.Argument}
}

// Examples is one Examples/Scenarios table block under a Scenario Outline.
type Examples struct {
	Loc         Location
	Tags        []*Tag
	Keyword     string
	Name        string
	Description string
	ID          string
	TableHeader *TableRow // nil when absent
	TableBody   []*TableRow
}

func (e *Examples) Location() Location { return e.Loc }
func (e *Examples) Children() []Node {
	nodes := make([]Node, 0, len(e.Tags)+1+len(e.TableBody))
	for _, t := range e.Tags {
		nodes = append(nodes, t)
	}
	if e.TableHeader != nil {
		nodes = append(nodes, e.TableHeader)
	}
	for _, r := range e.TableBody {
		nodes = append(nodes, r)
	}
	return nodes
}

// Background is a list of steps implicitly executed before each sibling
// Scenario.
type Background struct {
	Loc         Location
	Keyword     string
	Name        string
	Description string
	ID          string
	Steps       []*Step
}

func (b *Background) Location() Location { return b.Loc }
func (b *Background) Children() []Node {
	nodes := make([]Node, len(b.Steps))
	for i, s := range b.Steps {
		nodes[i] = s
	}
	return nodes
}
func (b *Background) isFeatureChild() {}
func (b *Background) isRuleChild()    {}

// Scenario is a single example (Kind == ScenarioKindScenario) or a
// template parameterized by Examples tables (Kind == ScenarioKindOutline).
type Scenario struct {
	Loc         Location
	Tags        []*Tag
	Kind        ScenarioKind
	Keyword     string
	Name        string
	Description string
	ID          string
	Steps       []*Step
	Examples    []*Examples
}

func (s *Scenario) Location() Location { return s.Loc }
func (s *Scenario) Children() []Node {
	nodes := make([]Node, 0, len(s.Tags)+len(s.Steps)+len(s.Examples))
	for _, t := range s.Tags {
		nodes = append(nodes, t)
	}
	for _, step := range s.Steps {
		nodes = append(nodes, step)
	}
	for _, ex := range s.Examples {
		nodes = append(nodes, ex)
	}
	return nodes
}
func (s *Scenario) isFeatureChild() {}
func (s *Scenario) isRuleChild()    {}

// Rule groups a Background and Scenarios under a shared business rule
// (Gherkin 6).
type Rule struct {
	Loc         Location
	Tags        []*Tag
	Keyword     string
	Name        string
	Description string
	ID          string
	Children_   []RuleChild
}

func (r *Rule) Location() Location { return r.Loc }
func (r *Rule) Children() []Node {
	nodes := make([]Node, 0, len(r.Tags)+len(r.Children_))
	for _, t := range r.Tags {
		nodes = append(nodes, t)
	}
	for _, c := range r.Children_ {
		nodes = append(nodes, c)
	}
	return nodes
}
func (r *Rule) isFeatureChild() {}

// Feature is the root construct of a Gherkin document.
type Feature struct {
	Loc         Location
	Tags        []*Tag
	Language    string
	Keyword     string
	Name        string
	Description string
	ID          string
	Children_   []FeatureChild
}

func (f *Feature) Location() Location { return f.Loc }
func (f *Feature) Children() []Node {
	nodes := make([]Node, 0, len(f.Tags)+len(f.Children_))
	for _, t := range f.Tags {
		nodes = append(nodes, t)
	}
	for _, c := range f.Children_ {
		nodes = append(nodes, c)
	}
	return nodes
}

// GherkinDocument is the top-level parse result: an optional Feature plus
// every Comment collected from the source, in source order.
type GherkinDocument struct {
	Source   *Source
	Feature  *Feature // nil when the source has no feature
	Comments []*Comment
}

func (d *GherkinDocument) Location() Location {
	if d.Feature != nil {
		return d.Feature.Location()
	}
	return Location{Line: 1}
}

func (d *GherkinDocument) Children() []Node {
	nodes := make([]Node, 0, 1+len(d.Comments))
	if d.Feature != nil {
		nodes = append(nodes, d.Feature)
	}
	for _, c := range d.Comments {
		nodes = append(nodes, c)
	}
	return nodes
}

// DeriveKeywordType resolves And/But/`*` conjunctions to the role of the
// last non-conjunction step that preceded them. The AST itself always
// records Conjunction or Unknown for those keywords; this helper is how a
// consumer recovers the effective role. previous should be
// KeywordTypeUnknown when kind is the first step of its Background/Scenario.
func DeriveKeywordType(kind KeywordType, previous KeywordType) KeywordType {
	if kind == KeywordTypeConjunction || kind == KeywordTypeUnknown {
		return previous
	}
	return kind
}
