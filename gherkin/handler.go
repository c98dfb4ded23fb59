package gherkin

// Handler is the push-style facade: strictly nested OnBegin*/OnEnd* pairs
// delivered in source order, for a caller that wants to react to structure
// as it goes by without holding the whole tree in memory at once. A failed
// parse is delivered as a single OnError call instead of a begin/end pair,
// and the stream ends there - BaseHandler gives every method a no-op
// default.
type Handler interface {
	OnBeginDocument(d *GherkinDocument)
	OnEndDocument(d *GherkinDocument)
	OnBeginFeature(f *Feature)
	OnEndFeature(f *Feature)
	OnBeginRule(r *Rule)
	OnEndRule(r *Rule)
	OnBeginBackground(b *Background)
	OnEndBackground(b *Background)
	OnBeginScenario(s *Scenario)
	OnEndScenario(s *Scenario)
	OnStep(s *Step)
	OnDocString(d *DocString)
	OnDataTable(t *DataTable)
	OnBeginExamples(e *Examples)
	OnEndExamples(e *Examples)
	OnTableRow(r *TableRow)
	OnTag(t *Tag)
	OnComment(c *Comment)
	OnError(err error)
}

// BaseHandler implements Handler with every method a no-op.
type BaseHandler struct{}

func (BaseHandler) OnBeginDocument(*GherkinDocument) {}
func (BaseHandler) OnEndDocument(*GherkinDocument)   {}
func (BaseHandler) OnBeginFeature(*Feature)          {}
func (BaseHandler) OnEndFeature(*Feature)            {}
func (BaseHandler) OnBeginRule(*Rule)                {}
func (BaseHandler) OnEndRule(*Rule)                  {}
func (BaseHandler) OnBeginBackground(*Background)    {}
func (BaseHandler) OnEndBackground(*Background)      {}
func (BaseHandler) OnBeginScenario(*Scenario)        {}
func (BaseHandler) OnEndScenario(*Scenario)          {}
func (BaseHandler) OnStep(*Step)                     {}
func (BaseHandler) OnDocString(*DocString)           {}
func (BaseHandler) OnDataTable(*DataTable)           {}
func (BaseHandler) OnBeginExamples(*Examples)        {}
func (BaseHandler) OnEndExamples(*Examples)          {}
func (BaseHandler) OnTableRow(*TableRow)             {}
func (BaseHandler) OnTag(*Tag)                       {}
func (BaseHandler) OnComment(*Comment)               {}
func (BaseHandler) OnError(error)                    {}

// ParseWithHandler parses source and drives h over the result in source
// order with strictly nested begin/end pairs, for callers that want the
// push-style shape of Handler without assembling their own traversal over a
// *GherkinDocument. Parsing still produces the full tree internally - a
// Gherkin feature file is small enough that there is no streaming-size
// pressure to justify a separate event-only parse path - but the handler
// never sees the tree, only the sequence of calls. On a parse failure h
// receives a single OnError call and no begin/end pairs at all; the
// returned error is the same one passed to OnError.
func ParseWithHandler(source *Source, h Handler, opts ...Option) error {
	doc, err := ParseDocument(source, opts...)
	if err != nil {
		h.OnError(err)
		return err
	}
	driveHandler(doc, h)
	return nil
}

func driveHandler(doc *GherkinDocument, h Handler) {
	h.OnBeginDocument(doc)
	cc := &commentCursor{comments: doc.Comments}
	if doc.Feature != nil {
		driveFeature(doc.Feature, h, cc)
	}
	cc.rest(h.OnComment)
	h.OnEndDocument(doc)
}

func driveFeature(f *Feature, h Handler, cc *commentCursor) {
	cc.before(f.Loc, h.OnComment)
	h.OnBeginFeature(f)
	for _, t := range f.Tags {
		cc.before(t.Loc, h.OnComment)
		h.OnTag(t)
	}
	for _, child := range f.Children_ {
		switch c := child.(type) {
		case *Rule:
			driveRule(c, h, cc)
		case *Background:
			driveBackground(c, h, cc)
		case *Scenario:
			driveScenario(c, h, cc)
		}
	}
	h.OnEndFeature(f)
}

func driveRule(r *Rule, h Handler, cc *commentCursor) {
	cc.before(r.Loc, h.OnComment)
	h.OnBeginRule(r)
	for _, t := range r.Tags {
		cc.before(t.Loc, h.OnComment)
		h.OnTag(t)
	}
	for _, child := range r.Children_ {
		switch c := child.(type) {
		case *Background:
			driveBackground(c, h, cc)
		case *Scenario:
			driveScenario(c, h, cc)
		}
	}
	h.OnEndRule(r)
}

func driveBackground(b *Background, h Handler, cc *commentCursor) {
	cc.before(b.Loc, h.OnComment)
	h.OnBeginBackground(b)
	for _, s := range b.Steps {
		driveStep(s, h, cc)
	}
	h.OnEndBackground(b)
}

func driveScenario(s *Scenario, h Handler, cc *commentCursor) {
	cc.before(s.Loc, h.OnComment)
	h.OnBeginScenario(s)
	for _, t := range s.Tags {
		cc.before(t.Loc, h.OnComment)
		h.OnTag(t)
	}
	for _, step := range s.Steps {
		driveStep(step, h, cc)
	}
	for _, ex := range s.Examples {
		driveExamples(ex, h, cc)
	}
	h.OnEndScenario(s)
}

func driveStep(s *Step, h Handler, cc *commentCursor) {
	cc.before(s.Loc, h.OnComment)
	h.OnStep(s)
	switch arg := s.Argument.(type) {
	case *DocString:
		cc.before(arg.Loc, h.OnComment)
		h.OnDocString(arg)
	case *DataTable:
		h.OnDataTable(arg)
		for _, row := range arg.Rows {
			driveTableRow(row, h, cc)
		}
	}
}

func driveExamples(e *Examples, h Handler, cc *commentCursor) {
	cc.before(e.Loc, h.OnComment)
	h.OnBeginExamples(e)
	for _, t := range e.Tags {
		cc.before(t.Loc, h.OnComment)
		h.OnTag(t)
	}
	if e.TableHeader != nil {
		driveTableRow(e.TableHeader, h, cc)
	}
	for _, row := range e.TableBody {
		driveTableRow(row, h, cc)
	}
	h.OnEndExamples(e)
}

func driveTableRow(r *TableRow, h Handler, cc *commentCursor) {
	cc.before(r.Loc, h.OnComment)
	h.OnTableRow(r)
}
