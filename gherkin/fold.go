package gherkin

// FoldSignal tells Fold whether to keep descending, skip a node's children,
// or stop the walk entirely, carrying the accumulator value along with it.
type FoldSignal int

const (
	FoldContinue FoldSignal = iota
	FoldSkipChildren
	FoldStop
)

// FoldResult pairs a FoldSignal with the accumulator value produced by one
// fold step.
type FoldResult struct {
	Signal FoldSignal
	Acc    any
}

// Continue keeps the walk going into a node's children.
func Continue(acc any) FoldResult { return FoldResult{Signal: FoldContinue, Acc: acc} }

// SkipChildren accepts acc but does not descend into the current node's
// children.
func SkipChildren(acc any) FoldResult { return FoldResult{Signal: FoldSkipChildren, Acc: acc} }

// Stop ends the walk immediately with acc as the final value.
func Stop(acc any) FoldResult { return FoldResult{Signal: FoldStop, Acc: acc} }

// FoldFunc is called once per node visited, in the same source order Accept
// uses, and returns the next accumulator plus how the walk should proceed.
type FoldFunc func(acc any, n Node) FoldResult

// Fold walks doc depth-first in source order, threading acc through fn at
// every node, and returns the final accumulator. A three-way signal lets a
// caller both carry state across nodes and prune a subtree without aborting
// the whole walk. Comments are folded interleaved by location, the same
// point in the walk Accept would deliver them.
func Fold(doc *GherkinDocument, acc any, fn FoldFunc) any {
	w := &folder{fn: fn, cc: &commentCursor{comments: doc.Comments}}
	acc, _ = w.foldDocument(acc, doc)
	return acc
}

// folder carries the fold callback and the comment cursor through the
// explicit per-type walk below. Like Accept and driveHandler, Fold does not
// use the generic Node.Children() walk, since comments need to be
// interleaved by location: comments live in a flat list on GherkinDocument,
// not as children of whatever node they precede, so placing them correctly
// needs the same explicit dispatch the other two facades use.
type folder struct {
	fn FoldFunc
	cc *commentCursor
}

func (w *folder) visit(acc any, n Node) (any, FoldSignal) {
	res := w.fn(acc, n)
	return res.Acc, res.Signal
}

// flushBefore folds every not-yet-delivered comment preceding loc. The
// returned bool is false exactly when a fold signaled FoldStop, meaning the
// whole walk must end immediately without visiting anything else.
func (w *folder) flushBefore(acc any, loc Location) (any, bool) {
	for w.cc.i < len(w.cc.comments) && w.cc.comments[w.cc.i].Loc.Line < loc.Line {
		c := w.cc.comments[w.cc.i]
		w.cc.i++
		var signal FoldSignal
		acc, signal = w.visit(acc, c)
		if signal == FoldStop {
			return acc, false
		}
	}
	return acc, true
}

func (w *folder) flushRest(acc any) (any, bool) {
	for w.cc.i < len(w.cc.comments) {
		c := w.cc.comments[w.cc.i]
		w.cc.i++
		var signal FoldSignal
		acc, signal = w.visit(acc, c)
		if signal == FoldStop {
			return acc, false
		}
	}
	return acc, true
}

func (w *folder) foldDocument(acc any, d *GherkinDocument) (any, bool) {
	acc, signal := w.visit(acc, d)
	if signal == FoldStop {
		return acc, false
	}
	if signal != FoldSkipChildren && d.Feature != nil {
		var cont bool
		acc, cont = w.foldFeature(acc, d.Feature)
		if !cont {
			return acc, false
		}
	}
	return w.flushRest(acc)
}

func (w *folder) foldFeature(acc any, f *Feature) (any, bool) {
	acc, cont := w.flushBefore(acc, f.Loc)
	if !cont {
		return acc, false
	}
	var signal FoldSignal
	acc, signal = w.visit(acc, f)
	if signal == FoldStop {
		return acc, false
	}
	if signal == FoldSkipChildren {
		return acc, true
	}
	for _, t := range f.Tags {
		if acc, cont = w.flushBefore(acc, t.Loc); !cont {
			return acc, false
		}
		if acc, signal = w.visit(acc, t); signal == FoldStop {
			return acc, false
		}
	}
	for _, child := range f.Children_ {
		switch c := child.(type) {
		case *Rule:
			acc, cont = w.foldRule(acc, c)
		case *Background:
			acc, cont = w.foldBackground(acc, c)
		case *Scenario:
			acc, cont = w.foldScenario(acc, c)
		}
		if !cont {
			return acc, false
		}
	}
	return acc, true
}

func (w *folder) foldRule(acc any, r *Rule) (any, bool) {
	acc, cont := w.flushBefore(acc, r.Loc)
	if !cont {
		return acc, false
	}
	var signal FoldSignal
	acc, signal = w.visit(acc, r)
	if signal == FoldStop {
		return acc, false
	}
	if signal == FoldSkipChildren {
		return acc, true
	}
	for _, t := range r.Tags {
		if acc, cont = w.flushBefore(acc, t.Loc); !cont {
			return acc, false
		}
		if acc, signal = w.visit(acc, t); signal == FoldStop {
			return acc, false
		}
	}
	for _, child := range r.Children_ {
		switch c := child.(type) {
		case *Background:
			acc, cont = w.foldBackground(acc, c)
		case *Scenario:
			acc, cont = w.foldScenario(acc, c)
		}
		if !cont {
			return acc, false
		}
	}
	return acc, true
}

func (w *folder) foldBackground(acc any, b *Background) (any, bool) {
	acc, cont := w.flushBefore(acc, b.Loc)
	if !cont {
		return acc, false
	}
	var signal FoldSignal
	acc, signal = w.visit(acc, b)
	if signal == FoldStop {
		return acc, false
	}
	if signal == FoldSkipChildren {
		return acc, true
	}
	for _, s := range b.Steps {
		if acc, cont = w.foldStep(acc, s); !cont {
			return acc, false
		}
	}
	return acc, true
}

func (w *folder) foldScenario(acc any, s *Scenario) (any, bool) {
	acc, cont := w.flushBefore(acc, s.Loc)
	if !cont {
		return acc, false
	}
	var signal FoldSignal
	acc, signal = w.visit(acc, s)
	if signal == FoldStop {
		return acc, false
	}
	if signal == FoldSkipChildren {
		return acc, true
	}
	for _, t := range s.Tags {
		if acc, cont = w.flushBefore(acc, t.Loc); !cont {
			return acc, false
		}
		if acc, signal = w.visit(acc, t); signal == FoldStop {
			return acc, false
		}
	}
	for _, step := range s.Steps {
		if acc, cont = w.foldStep(acc, step); !cont {
			return acc, false
		}
	}
	for _, ex := range s.Examples {
		if acc, cont = w.foldExamples(acc, ex); !cont {
			return acc, false
		}
	}
	return acc, true
}

func (w *folder) foldStep(acc any, s *Step) (any, bool) {
	acc, cont := w.flushBefore(acc, s.Loc)
	if !cont {
		return acc, false
	}
	var signal FoldSignal
	acc, signal = w.visit(acc, s)
	if signal == FoldStop {
		return acc, false
	}
	if signal == FoldSkipChildren || s.Argument == nil {
		return acc, true
	}
	switch arg := s.Argument.(type) {
	case *DocString:
		if acc, cont = w.flushBefore(acc, arg.Loc); !cont {
			return acc, false
		}
		if acc, signal = w.visit(acc, arg); signal == FoldStop {
			return acc, false
		}
	case *DataTable:
		acc, signal = w.visit(acc, arg)
		if signal == FoldStop {
			return acc, false
		}
		if signal != FoldSkipChildren {
			for _, row := range arg.Rows {
				if acc, cont = w.foldTableRow(acc, row); !cont {
					return acc, false
				}
			}
		}
	}
	return acc, true
}

func (w *folder) foldExamples(acc any, e *Examples) (any, bool) {
	acc, cont := w.flushBefore(acc, e.Loc)
	if !cont {
		return acc, false
	}
	var signal FoldSignal
	acc, signal = w.visit(acc, e)
	if signal == FoldStop {
		return acc, false
	}
	if signal == FoldSkipChildren {
		return acc, true
	}
	for _, t := range e.Tags {
		if acc, cont = w.flushBefore(acc, t.Loc); !cont {
			return acc, false
		}
		if acc, signal = w.visit(acc, t); signal == FoldStop {
			return acc, false
		}
	}
	if e.TableHeader != nil {
		if acc, cont = w.foldTableRow(acc, e.TableHeader); !cont {
			return acc, false
		}
	}
	for _, row := range e.TableBody {
		if acc, cont = w.foldTableRow(acc, row); !cont {
			return acc, false
		}
	}
	return acc, true
}

func (w *folder) foldTableRow(acc any, r *TableRow) (any, bool) {
	acc, cont := w.flushBefore(acc, r.Loc)
	if !cont {
		return acc, false
	}
	var signal FoldSignal
	acc, signal = w.visit(acc, r)
	if signal == FoldStop {
		return acc, false
	}
	if signal == FoldSkipChildren {
		return acc, true
	}
	for _, c := range r.Cells {
		if acc, signal = w.visit(acc, c); signal == FoldStop {
			return acc, false
		}
	}
	return acc, true
}
