package gherkin

import "strconv"

// IDGenerator produces stable, monotone id strings: a counter starting at 0
// for each parse, incrementing once per addressable entity (feature, rule,
// background, scenario, step, examples, tag, row).
type IDGenerator interface {
	NextID() string
}

// counterIDGenerator is the default IDGenerator: a plain incrementing
// integer rendered as a decimal string, freshly allocated per parse so two
// parses never share counter state.
type counterIDGenerator struct {
	next int
}

func newCounterIDGenerator() *counterIDGenerator {
	return &counterIDGenerator{}
}

func (g *counterIDGenerator) NextID() string {
	id := strconv.Itoa(g.next)
	g.next++
	return id
}
