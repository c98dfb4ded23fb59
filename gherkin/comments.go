package gherkin

// commentCursor threads comments through a traversal by source location,
// the same way the writer's flushCommentsBefore/flushRemainingComments pair
// interleaves them back into re-serialized text. Accept, Fold, and
// ParseWithHandler each carry one so a Comment is delivered immediately
// before the first node whose location is at or after its own, instead of
// all at once at the end of the walk.
type commentCursor struct {
	comments []*Comment
	i        int
}

// before calls emit for every not-yet-delivered comment preceding loc, in
// source order.
func (c *commentCursor) before(loc Location, emit func(*Comment)) {
	for c.i < len(c.comments) && c.comments[c.i].Loc.Line < loc.Line {
		emit(c.comments[c.i])
		c.i++
	}
}

// rest delivers every comment not yet delivered, in source order.
func (c *commentCursor) rest(emit func(*Comment)) {
	for c.i < len(c.comments) {
		emit(c.comments[c.i])
		c.i++
	}
}
