package gherkin

import (
	"strings"
	"unicode/utf8"
)

const indentUnit = "  "

// writer accumulates output text and tracks which source comments have
// already been flushed, so they can be interleaved back into the rewritten
// document by the line number they originally occupied.
type writer struct {
	sb       strings.Builder
	comments []*Comment
	ci       int
}

// Write re-serializes doc into Gherkin source text, using a two-pass
// measure-then-emit shape for tables: figure out column widths first, then
// print. An empty document (no Feature) writes as just its trailing
// comments, if any. Write's one failure mode is a malformed tree - one
// violating an invariant a parsed document could never have - reported as
// a *SyntaxError with Kind SyntaxErrorKindMalformedTree.
func Write(doc *GherkinDocument) (string, error) {
	if doc.Feature != nil {
		if err := validateFeatureTables(doc.Feature); err != nil {
			return "", err
		}
	}

	w := &writer{comments: doc.Comments}

	if doc.Feature != nil {
		w.writeFeature(doc.Feature)
	}
	w.flushRemainingComments()

	return w.sb.String(), nil
}

// validateFeatureTables walks every DataTable and Examples table under f and
// rejects one whose rows disagree on cell count - the one invariant a
// hand-built tree could violate that writeTable cannot recover from.
func validateFeatureTables(f *Feature) error {
	for _, child := range f.Children_ {
		switch c := child.(type) {
		case *Rule:
			if err := validateRuleTables(c); err != nil {
				return err
			}
		case *Background:
			if err := validateStepsTables(c.Steps); err != nil {
				return err
			}
		case *Scenario:
			if err := validateScenarioTables(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRuleTables(r *Rule) error {
	for _, child := range r.Children_ {
		switch c := child.(type) {
		case *Background:
			if err := validateStepsTables(c.Steps); err != nil {
				return err
			}
		case *Scenario:
			if err := validateScenarioTables(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateScenarioTables(s *Scenario) error {
	if err := validateStepsTables(s.Steps); err != nil {
		return err
	}
	for _, ex := range s.Examples {
		var rows []*TableRow
		if ex.TableHeader != nil {
			rows = append(rows, ex.TableHeader)
		}
		rows = append(rows, ex.TableBody...)
		if err := validateRowWidths(rows); err != nil {
			return err
		}
	}
	return nil
}

func validateStepsTables(steps []*Step) error {
	for _, s := range steps {
		if dt, ok := s.Argument.(*DataTable); ok {
			if err := validateRowWidths(dt.Rows); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRowWidths(rows []*TableRow) error {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0].Cells)
	for _, r := range rows {
		if len(r.Cells) != width {
			return newMalformedTree(r.Loc, width, len(r.Cells))
		}
	}
	return nil
}

func (w *writer) writeLine(s string) {
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

// flushCommentsBefore emits every not-yet-written comment whose original
// line precedes line, in source order.
func (w *writer) flushCommentsBefore(line int) {
	for w.ci < len(w.comments) && w.comments[w.ci].Loc.Line < line {
		c := w.comments[w.ci]
		indent := c.Loc.Column - 1
		if indent < 0 {
			indent = 0
		}
		w.writeLine(strings.Repeat(" ", indent) + c.Text)
		w.ci++
	}
}

func (w *writer) flushRemainingComments() {
	for w.ci < len(w.comments) {
		c := w.comments[w.ci]
		indent := c.Loc.Column - 1
		if indent < 0 {
			indent = 0
		}
		w.writeLine(strings.Repeat(" ", indent) + c.Text)
		w.ci++
	}
}

func indent(level int) string {
	return strings.Repeat(indentUnit, level)
}

func (w *writer) writeTags(tags []*Tag, level int) {
	if len(tags) == 0 {
		return
	}
	w.flushCommentsBefore(tags[0].Loc.Line)
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	w.writeLine(indent(level) + strings.Join(names, " "))
}

func (w *writer) writeHeader(loc Location, level int, keyword, name string) {
	w.flushCommentsBefore(loc.Line)
	line := indent(level) + keyword + ":"
	if name != "" {
		line += " " + name
	}
	w.writeLine(line)
}

func (w *writer) writeDescription(desc string) {
	if desc == "" {
		return
	}
	for _, l := range strings.Split(desc, "\n") {
		w.writeLine(l)
	}
}

func (w *writer) writeFeature(f *Feature) {
	if f.Language != "" && f.Language != DefaultLanguage {
		w.writeLine("# language: " + f.Language)
	}
	w.writeTags(f.Tags, 0)
	w.writeHeader(f.Loc, 0, f.Keyword, f.Name)
	w.writeDescription(f.Description)

	for _, child := range f.Children_ {
		switch c := child.(type) {
		case *Rule:
			w.writeRule(c)
		case *Background:
			w.writeBackground(c, 1)
		case *Scenario:
			w.writeScenario(c, 1)
		}
	}
}

func (w *writer) writeRule(r *Rule) {
	w.writeTags(r.Tags, 1)
	w.writeHeader(r.Loc, 1, r.Keyword, r.Name)
	w.writeDescription(r.Description)

	for _, child := range r.Children_ {
		switch c := child.(type) {
		case *Background:
			w.writeBackground(c, 2)
		case *Scenario:
			w.writeScenario(c, 2)
		}
	}
}

func (w *writer) writeBackground(b *Background, level int) {
	w.writeHeader(b.Loc, level, b.Keyword, b.Name)
	w.writeDescription(b.Description)
	w.writeSteps(b.Steps, level+1)
}

func (w *writer) writeScenario(s *Scenario, level int) {
	w.writeTags(s.Tags, level)
	w.writeHeader(s.Loc, level, s.Keyword, s.Name)
	w.writeDescription(s.Description)
	w.writeSteps(s.Steps, level+1)
	for _, ex := range s.Examples {
		w.writeExamples(ex, level+1)
	}
}

func (w *writer) writeSteps(steps []*Step, level int) {
	for _, s := range steps {
		w.flushCommentsBefore(s.Loc.Line)
		w.writeLine(indent(level) + s.Keyword + s.Text)
		switch arg := s.Argument.(type) {
		case *DocString:
			w.writeDocString(arg, level+1)
		case *DataTable:
			w.writeTable(arg.Rows, level+1)
		}
	}
}

func (w *writer) writeExamples(e *Examples, level int) {
	w.writeTags(e.Tags, level)
	w.writeHeader(e.Loc, level, e.Keyword, e.Name)
	w.writeDescription(e.Description)

	var rows []*TableRow
	if e.TableHeader != nil {
		rows = append(rows, e.TableHeader)
	}
	rows = append(rows, e.TableBody...)
	w.writeTable(rows, level+1)
}

func (w *writer) writeDocString(d *DocString, level int) {
	w.flushCommentsBefore(d.Loc.Line)
	prefix := indent(level)
	header := prefix + d.Delimiter
	if d.MediaType != "" {
		header += d.MediaType
	}
	w.writeLine(header)
	if d.Content != "" {
		for _, l := range strings.Split(d.Content, "\n") {
			w.writeLine(prefix + l)
		}
	}
	w.writeLine(prefix + d.Delimiter)
}

// writeTable emits rows with every column padded to that column's widest
// escaped cell, so the pipes in a re-serialized table line up the way a
// hand-formatted one does.
func (w *writer) writeTable(rows []*TableRow, level int) {
	if len(rows) == 0 {
		return
	}
	texts := make([][]string, len(rows))
	widths := make([]int, len(rows[0].Cells))
	for ri, row := range rows {
		texts[ri] = make([]string, len(row.Cells))
		for ci, cell := range row.Cells {
			esc := escapeTableCell(cell.Value)
			texts[ri][ci] = esc
			if n := utf8.RuneCountInString(esc); n > widths[ci] {
				widths[ci] = n
			}
		}
	}

	prefix := indent(level)
	for ri, row := range rows {
		w.flushCommentsBefore(row.Loc.Line)
		var sb strings.Builder
		sb.WriteString(prefix)
		sb.WriteByte('|')
		for ci, cell := range texts[ri] {
			sb.WriteByte(' ')
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[ci]-utf8.RuneCountInString(cell)))
			sb.WriteString(" |")
		}
		w.writeLine(sb.String())
	}
}

func escapeTableCell(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `|`, `\|`)
	v = strings.ReplaceAll(v, "\n", `\n`)
	return v
}
