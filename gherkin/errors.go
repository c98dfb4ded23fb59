package gherkin

import "fmt"

// SyntaxErrorKind is the closed set of ways a parse can fail.
type SyntaxErrorKind int

const (
	SyntaxErrorKindUnexpectedToken SyntaxErrorKind = iota
	SyntaxErrorKindMissingFeature
	SyntaxErrorKindUnterminatedDocString
	SyntaxErrorKindInconsistentTableCells
	SyntaxErrorKindUnknownLanguage
	SyntaxErrorKindOrphanTags
	SyntaxErrorKindExamplesUnderNonOutline
	// SyntaxErrorKindMalformedTree is Write's one failure mode: the tree it
	// was given violates an invariant a parsed document could never produce
	// (e.g. a table whose rows disagree on cell count), so there is no
	// well-formed text to emit.
	SyntaxErrorKindMalformedTree
	// SyntaxErrorKindInternal is raised only by the defer/recover net around
	// ParseDocument catching an unexpected panic; every other kind above is
	// reached by an explicit, expected check in the parser.
	SyntaxErrorKindInternal
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case SyntaxErrorKindUnexpectedToken:
		return "UnexpectedToken"
	case SyntaxErrorKindMissingFeature:
		return "MissingFeature"
	case SyntaxErrorKindUnterminatedDocString:
		return "UnterminatedDocString"
	case SyntaxErrorKindInconsistentTableCells:
		return "InconsistentTableCells"
	case SyntaxErrorKindUnknownLanguage:
		return "UnknownLanguage"
	case SyntaxErrorKindOrphanTags:
		return "OrphanTags"
	case SyntaxErrorKindExamplesUnderNonOutline:
		return "ExamplesUnderNonOutline"
	case SyntaxErrorKindMalformedTree:
		return "MalformedTree"
	default:
		return "Internal"
	}
}

// SyntaxError is a structured parse error: a closed Kind, a human message,
// and the Location it occurred at, with an optional wrapped Cause for
// errors.As/errors.Is.
type SyntaxError struct {
	Kind     SyntaxErrorKind
	Message  string
	Location Location
	URI      string

	// Expected/Got describe an UnexpectedToken mismatch; for every other Kind
	// Expected is nil and Got is the zero TokenKind.
	Expected []TokenKind
	Got      TokenKind

	Cause error
}

func (e *SyntaxError) Error() string {
	loc := fmt.Sprintf("%d:%d", e.Location.Line, e.Location.Column)
	if e.URI != "" {
		loc = e.URI + ":" + loc
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// Unwrap exposes the underlying cause, if any, for errors.As/errors.Is.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

func newUnexpectedToken(uri string, loc Location, got TokenKind, expected ...TokenKind) *SyntaxError {
	return &SyntaxError{
		Kind:     SyntaxErrorKindUnexpectedToken,
		Message:  fmt.Sprintf("unexpected %s", got),
		Location: loc,
		URI:      uri,
		Expected: expected,
		Got:      got,
	}
}

func newMissingFeature(uri string, loc Location) *SyntaxError {
	return &SyntaxError{
		Kind:     SyntaxErrorKindMissingFeature,
		Message:  "expected Feature",
		Location: loc,
		URI:      uri,
	}
}

func newUnterminatedDocString(uri string, openedAt Location) *SyntaxError {
	return &SyntaxError{
		Kind:     SyntaxErrorKindUnterminatedDocString,
		Message:  "unterminated doc string",
		Location: openedAt,
		URI:      uri,
	}
}

func newInconsistentTableCells(uri string, loc Location, expected, got int) *SyntaxError {
	return &SyntaxError{
		Kind:     SyntaxErrorKindInconsistentTableCells,
		Message:  fmt.Sprintf("inconsistent table row: expected %d cells, got %d", expected, got),
		Location: loc,
		URI:      uri,
	}
}

func newUnknownLanguage(uri string, loc Location, code string) *SyntaxError {
	return &SyntaxError{
		Kind:     SyntaxErrorKindUnknownLanguage,
		Message:  fmt.Sprintf("unknown language %q", code),
		Location: loc,
		URI:      uri,
	}
}

func newOrphanTags(uri string, loc Location) *SyntaxError {
	return &SyntaxError{
		Kind:     SyntaxErrorKindOrphanTags,
		Message:  "tags not attached to a Feature, Rule, Scenario, or Examples",
		Location: loc,
		URI:      uri,
	}
}

func newExamplesUnderNonOutline(uri string, loc Location) *SyntaxError {
	return &SyntaxError{
		Kind:     SyntaxErrorKindExamplesUnderNonOutline,
		Message:  "Examples is only valid under a Scenario Outline",
		Location: loc,
		URI:      uri,
	}
}

// newMalformedTree builds the error Write returns when the tree it was
// asked to serialize violates an invariant. Write operates on an
// already-built *GherkinDocument rather than a *Source, so there is no URI
// to attach the way the parser's constructors do.
func newMalformedTree(loc Location, expectedCells, gotCells int) *SyntaxError {
	return &SyntaxError{
		Kind:     SyntaxErrorKindMalformedTree,
		Message:  fmt.Sprintf("malformed tree: inconsistent table row: expected %d cells, got %d", expectedCells, gotCells),
		Location: loc,
	}
}
