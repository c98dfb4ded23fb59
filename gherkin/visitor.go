package gherkin

// Visitor is the external double-dispatch facade over a parsed document:
// one method per concrete AST type, each given a default no-op so a caller
// only overrides what it cares about.
type Visitor interface {
	VisitDocument(d *GherkinDocument)
	VisitFeature(f *Feature)
	VisitRule(r *Rule)
	VisitBackground(b *Background)
	VisitScenario(s *Scenario)
	VisitStep(s *Step)
	VisitExamples(e *Examples)
	VisitDocString(d *DocString)
	VisitDataTable(t *DataTable)
	VisitTableRow(r *TableRow)
	VisitTableCell(c *TableCell)
	VisitTag(t *Tag)
	VisitComment(c *Comment)
}

// BaseVisitor implements Visitor with every method a no-op, so a concrete
// visitor can embed it and override only the handful it needs.
type BaseVisitor struct{}

func (BaseVisitor) VisitDocument(*GherkinDocument) {}
func (BaseVisitor) VisitFeature(*Feature)          {}
func (BaseVisitor) VisitRule(*Rule)                {}
func (BaseVisitor) VisitBackground(*Background)    {}
func (BaseVisitor) VisitScenario(*Scenario)        {}
func (BaseVisitor) VisitStep(*Step)                {}
func (BaseVisitor) VisitExamples(*Examples)        {}
func (BaseVisitor) VisitDocString(*DocString)      {}
func (BaseVisitor) VisitDataTable(*DataTable)       {}
func (BaseVisitor) VisitTableRow(*TableRow)         {}
func (BaseVisitor) VisitTableCell(*TableCell)       {}
func (BaseVisitor) VisitTag(*Tag)                   {}
func (BaseVisitor) VisitComment(*Comment)           {}

// Accept walks doc and every descendant in source order - tags before body,
// steps before examples - calling the matching Visit* method on v for each
// node. Comments are delivered interleaved by location, immediately before
// the first node whose location is at or after their own, the same way
// Write places them back into re-serialized text.
func Accept(doc *GherkinDocument, v Visitor) {
	v.VisitDocument(doc)
	cc := &commentCursor{comments: doc.Comments}
	if doc.Feature != nil {
		acceptFeature(doc.Feature, v, cc)
	}
	cc.rest(v.VisitComment)
}

func acceptFeature(f *Feature, v Visitor, cc *commentCursor) {
	cc.before(f.Loc, v.VisitComment)
	v.VisitFeature(f)
	for _, t := range f.Tags {
		cc.before(t.Loc, v.VisitComment)
		v.VisitTag(t)
	}
	for _, child := range f.Children_ {
		switch c := child.(type) {
		case *Rule:
			acceptRule(c, v, cc)
		case *Background:
			acceptBackground(c, v, cc)
		case *Scenario:
			acceptScenario(c, v, cc)
		}
	}
}

func acceptRule(r *Rule, v Visitor, cc *commentCursor) {
	cc.before(r.Loc, v.VisitComment)
	v.VisitRule(r)
	for _, t := range r.Tags {
		cc.before(t.Loc, v.VisitComment)
		v.VisitTag(t)
	}
	for _, child := range r.Children_ {
		switch c := child.(type) {
		case *Background:
			acceptBackground(c, v, cc)
		case *Scenario:
			acceptScenario(c, v, cc)
		}
	}
}

func acceptBackground(b *Background, v Visitor, cc *commentCursor) {
	cc.before(b.Loc, v.VisitComment)
	v.VisitBackground(b)
	for _, s := range b.Steps {
		acceptStep(s, v, cc)
	}
}

func acceptScenario(s *Scenario, v Visitor, cc *commentCursor) {
	cc.before(s.Loc, v.VisitComment)
	v.VisitScenario(s)
	for _, t := range s.Tags {
		cc.before(t.Loc, v.VisitComment)
		v.VisitTag(t)
	}
	for _, step := range s.Steps {
		acceptStep(step, v, cc)
	}
	for _, ex := range s.Examples {
		acceptExamples(ex, v, cc)
	}
}

func acceptStep(s *Step, v Visitor, cc *commentCursor) {
	cc.before(s.Loc, v.VisitComment)
	v.VisitStep(s)
	switch arg := s.Argument.(type) {
	case *DocString:
		cc.before(arg.Loc, v.VisitComment)
		v.VisitDocString(arg)
	case *DataTable:
		v.VisitDataTable(arg)
		for _, row := range arg.Rows {
			acceptTableRow(row, v, cc)
		}
	}
}

func acceptExamples(e *Examples, v Visitor, cc *commentCursor) {
	cc.before(e.Loc, v.VisitComment)
	v.VisitExamples(e)
	for _, t := range e.Tags {
		cc.before(t.Loc, v.VisitComment)
		v.VisitTag(t)
	}
	if e.TableHeader != nil {
		acceptTableRow(e.TableHeader, v, cc)
	}
	for _, row := range e.TableBody {
		acceptTableRow(row, v, cc)
	}
}

func acceptTableRow(r *TableRow, v Visitor, cc *commentCursor) {
	cc.before(r.Loc, v.VisitComment)
	v.VisitTableRow(r)
	for _, c := range r.Cells {
		v.VisitTableCell(c)
	}
}
