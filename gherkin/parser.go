package gherkin

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// ParserOptions configures ParseDocument: a constructor with sane defaults,
// then functional Option values to override individual fields.
type ParserOptions struct {
	DefaultLanguage string
	IDs             IDGenerator
	Log             *log.Logger
}

// NewParserOptions returns the default configuration: English as the
// fallback language, a fresh counter-based IDGenerator, and a logger
// writing to stderr.
func NewParserOptions() *ParserOptions {
	return &ParserOptions{
		DefaultLanguage: DefaultLanguage,
		IDs:             newCounterIDGenerator(),
		Log:             log.New(os.Stderr, "gherkin: ", 0),
	}
}

// Silent discards the options' diagnostic logger.
func (o *ParserOptions) Silent() *ParserOptions {
	o.Log = log.New(io.Discard, "", 0)
	return o
}

// Option mutates a ParserOptions in place.
type Option func(*ParserOptions)

// WithDefaultLanguage overrides the language assumed for a document that
// carries no `# language:` directive.
func WithDefaultLanguage(code string) Option {
	return func(o *ParserOptions) { o.DefaultLanguage = code }
}

// WithIDGenerator overrides the IDGenerator used to assign addressable-entity
// ids, e.g. for deterministic ids in a test fixture.
func WithIDGenerator(ids IDGenerator) Option {
	return func(o *ParserOptions) { o.IDs = ids }
}

// WithLogger overrides the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(o *ParserOptions) { o.Log = l }
}

// parser holds the state threaded through one recursive-descent parse: the
// full eagerly classified token stream plus an index, rather than a pull
// iterator, since the grammar below needs backtrack-free one-token lookahead
// in several places.
type parser struct {
	src      *Source
	tokens   []Token
	i        int
	uri      string
	ids      IDGenerator
	log      *log.Logger
	language string
	comments []*Comment
}

// ParseDocument parses source into a GherkinDocument. A malformed document
// returns a *SyntaxError; an unexpected internal failure is recovered and
// reported as one too, rather than panicking out through the caller.
func ParseDocument(source *Source, opts ...Option) (doc *GherkinDocument, err error) {
	options := NewParserOptions()
	for _, opt := range opts {
		opt(options)
	}

	if _, ok := LookupLanguage(options.DefaultLanguage); !ok {
		options.DefaultLanguage = DefaultLanguage
	}

	it := NewTokenIterator(source)
	defaultLang, _ := LookupLanguage(options.DefaultLanguage)
	it.SetLanguage(defaultLang)
	tokens := []Token{}
	for {
		tok, more := it.Next()
		tokens = append(tokens, tok)
		if !more {
			break
		}
	}

	p := &parser{
		src:      source,
		tokens:   tokens,
		uri:      source.URI(),
		ids:      options.IDs,
		log:      options.Log,
		language: options.DefaultLanguage,
	}

	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &SyntaxError{
				Kind:     SyntaxErrorKindInternal,
				Message:  fmt.Sprintf("internal error: %v", r),
				Location: p.peek().Loc,
				URI:      p.uri,
			}
		}
	}()

	return p.parseDocument()
}

func (p *parser) peek() Token {
	return p.tokens[p.i]
}

func (p *parser) advance() Token {
	t := p.tokens[p.i]
	if p.i < len(p.tokens)-1 {
		p.i++
	}
	return t
}

// collectComments consumes every CommentLine token at the current position,
// appending each to p.comments in source order. Comments never become
// children of any node; they are collected regardless of where in the
// grammar they're encountered.
func (p *parser) collectComments() {
	for p.peek().Kind == TokenCommentLine {
		t := p.advance()
		p.comments = append(p.comments, &Comment{Loc: t.Loc, Text: t.CommentText})
	}
}

func (p *parser) skipEmptyAndComments() {
	for {
		switch p.peek().Kind {
		case TokenEmpty:
			p.advance()
		case TokenCommentLine:
			p.collectComments()
		default:
			return
		}
	}
}

// parseTags collects every consecutive TagLine at the current position
// (comments may interleave; they're collected, not treated as a break) into
// a flat []*Tag, assigning each an id. A lone "@" with no name is rejected
// here rather than at tokenization - the tokenizer never fails - so a
// structurally empty tag is caught at the point it's about to become an
// addressable AST node.
func (p *parser) parseTags() ([]*Tag, error) {
	var tags []*Tag
	for {
		p.collectComments()
		if p.peek().Kind != TokenTagLine {
			return tags, nil
		}
		t := p.advance()
		for _, tg := range t.Tags {
			if len(tg.Name) <= 1 {
				return nil, newUnexpectedToken(p.uri, Location{Line: t.Loc.Line, Column: tg.Column}, TokenTagLine)
			}
			tags = append(tags, &Tag{
				Loc:  Location{Line: t.Loc.Line, Column: tg.Column},
				Name: tg.Name,
				ID:   p.ids.NextID(),
			})
		}
	}
}

func (p *parser) parseDocument() (*GherkinDocument, error) {
	p.skipEmptyAndComments()

	if p.peek().Kind == TokenLanguage {
		tok := p.advance()
		if _, ok := LookupLanguage(tok.LanguageCode); !ok {
			return nil, newUnknownLanguage(p.uri, tok.Loc, tok.LanguageCode)
		}
		p.language = tok.LanguageCode
	}
	p.skipEmptyAndComments()

	tags, err := p.parseTags()
	if err != nil {
		return nil, err
	}
	p.skipEmptyAndComments()

	switch p.peek().Kind {
	case TokenFeatureLine:
		feature, err := p.parseFeature(tags)
		if err != nil {
			return nil, err
		}
		p.skipEmptyAndComments()
		if p.peek().Kind != TokenEOF {
			return nil, newUnexpectedToken(p.uri, p.peek().Loc, p.peek().Kind, TokenEOF)
		}
		return &GherkinDocument{Source: p.sourceOf(), Feature: feature, Comments: p.comments}, nil
	case TokenEOF:
		if len(tags) > 0 {
			return nil, newOrphanTags(p.uri, tags[0].Loc)
		}
		return &GherkinDocument{Source: p.sourceOf(), Feature: nil, Comments: p.comments}, nil
	default:
		if len(tags) > 0 {
			return nil, newOrphanTags(p.uri, tags[0].Loc)
		}
		return nil, newMissingFeature(p.uri, p.peek().Loc)
	}
}

func (p *parser) sourceOf() *Source {
	return p.src
}

func (p *parser) parseFeature(tags []*Tag) (*Feature, error) {
	tok := p.advance() // FeatureLine
	feature := &Feature{
		Loc:      tok.Loc,
		Tags:     tags,
		Language: p.language,
		Keyword:  tok.Keyword,
		Name:     tok.Name,
		ID:       p.ids.NextID(),
	}
	feature.Description = p.parseDescription()

	var children []FeatureChild
	for {
		p.skipEmptyAndComments()
		childTags, err := p.parseTags()
		if err != nil {
			return nil, err
		}
		p.skipEmptyAndComments()

		switch p.peek().Kind {
		case TokenBackgroundLine:
			if len(childTags) > 0 {
				return nil, newOrphanTags(p.uri, childTags[0].Loc)
			}
			bg, err := p.parseBackground()
			if err != nil {
				return nil, err
			}
			children = append(children, bg)
		case TokenRuleLine:
			r, err := p.parseRule(childTags)
			if err != nil {
				return nil, err
			}
			children = append(children, r)
		case TokenScenarioLine:
			sc, err := p.parseScenario(childTags)
			if err != nil {
				return nil, err
			}
			children = append(children, sc)
		default:
			if len(childTags) > 0 {
				return nil, newOrphanTags(p.uri, childTags[0].Loc)
			}
			feature.Children_ = children
			return feature, nil
		}
	}
}

func (p *parser) parseRule(tags []*Tag) (*Rule, error) {
	tok := p.advance() // RuleLine
	rule := &Rule{
		Loc:     tok.Loc,
		Tags:    tags,
		Keyword: tok.Keyword,
		Name:    tok.Name,
		ID:      p.ids.NextID(),
	}
	rule.Description = p.parseDescription()

	var children []RuleChild
	for {
		p.skipEmptyAndComments()
		childTags, err := p.parseTags()
		if err != nil {
			return nil, err
		}
		p.skipEmptyAndComments()

		switch p.peek().Kind {
		case TokenBackgroundLine:
			if len(childTags) > 0 {
				return nil, newOrphanTags(p.uri, childTags[0].Loc)
			}
			bg, err := p.parseBackground()
			if err != nil {
				return nil, err
			}
			children = append(children, bg)
		case TokenScenarioLine:
			sc, err := p.parseScenario(childTags)
			if err != nil {
				return nil, err
			}
			children = append(children, sc)
		default:
			if len(childTags) > 0 {
				return nil, newOrphanTags(p.uri, childTags[0].Loc)
			}
			rule.Children_ = children
			return rule, nil
		}
	}
}

func (p *parser) parseBackground() (*Background, error) {
	tok := p.advance() // BackgroundLine
	bg := &Background{
		Loc:     tok.Loc,
		Keyword: tok.Keyword,
		Name:    tok.Name,
		ID:      p.ids.NextID(),
	}
	bg.Description = p.parseDescription()
	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	bg.Steps = steps
	return bg, nil
}

func (p *parser) parseScenario(tags []*Tag) (*Scenario, error) {
	tok := p.advance() // ScenarioLine
	sc := &Scenario{
		Loc:     tok.Loc,
		Tags:    tags,
		Kind:    tok.ScenarioKind,
		Keyword: tok.Keyword,
		Name:    tok.Name,
		ID:      p.ids.NextID(),
	}
	sc.Description = p.parseDescription()

	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	sc.Steps = steps

	var examples []*Examples
	for {
		p.skipEmptyAndComments()
		exTags, err := p.parseTags()
		if err != nil {
			return nil, err
		}
		p.skipEmptyAndComments()

		if p.peek().Kind != TokenExamplesLine {
			if len(exTags) > 0 {
				return nil, newOrphanTags(p.uri, exTags[0].Loc)
			}
			break
		}
		if sc.Kind != ScenarioKindOutline {
			return nil, newExamplesUnderNonOutline(p.uri, p.peek().Loc)
		}
		ex, err := p.parseExamples(exTags)
		if err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}
	sc.Examples = examples
	return sc, nil
}

func (p *parser) parseExamples(tags []*Tag) (*Examples, error) {
	tok := p.advance() // ExamplesLine
	ex := &Examples{
		Loc:     tok.Loc,
		Tags:    tags,
		Keyword: tok.Keyword,
		Name:    tok.Name,
		ID:      p.ids.NextID(),
	}
	ex.Description = p.parseDescription()

	p.skipEmptyAndComments()
	if p.peek().Kind != TokenTableRow {
		return ex, nil
	}

	headerTok := p.advance()
	header := p.newTableRow(headerTok)
	ex.TableHeader = header

	var body []*TableRow
	for p.peek().Kind == TokenTableRow {
		rowTok := p.peek()
		if len(rowTok.Cells) != len(headerTok.Cells) {
			return nil, newInconsistentTableCells(p.uri, rowTok.Loc, len(headerTok.Cells), len(rowTok.Cells))
		}
		p.advance()
		body = append(body, p.newTableRow(rowTok))
	}
	ex.TableBody = body
	return ex, nil
}

func (p *parser) parseSteps() ([]*Step, error) {
	var steps []*Step
	for {
		p.skipEmptyAndComments()
		if p.peek().Kind != TokenStepLine {
			return steps, nil
		}
		st, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
}

func (p *parser) parseStep() (*Step, error) {
	tok := p.advance() // StepLine
	step := &Step{
		Loc:         tok.Loc,
		Keyword:     tok.Keyword,
		KeywordType: tok.StepKeywordType,
		Text:        tok.Text,
		ID:          p.ids.NextID(),
	}
	arg, err := p.parseStepArgument()
	if err != nil {
		return nil, err
	}
	step.Argument = arg
	return step, nil
}

func (p *parser) parseStepArgument() (StepArgument, error) {
	p.skipEmptyAndComments()
	switch p.peek().Kind {
	case TokenDocStringSeparator:
		return p.parseDocString()
	case TokenTableRow:
		return p.parseDataTable()
	default:
		return nil, nil
	}
}

func (p *parser) parseDocString() (*DocString, error) {
	open := p.advance() // opening DocStringSeparator
	indent := open.Loc.Column - 1

	var raw []string
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return nil, newUnterminatedDocString(p.uri, open.Loc)
		}
		if tok.Kind == TokenDocStringSeparator && tok.Delimiter == open.Delimiter {
			p.advance()
			break
		}
		raw = append(raw, tok.Raw)
		p.advance()
	}

	for i, l := range raw {
		if len(l) >= indent {
			raw[i] = l[indent:]
		}
	}

	return &DocString{
		Loc:       open.Loc,
		MediaType: open.MediaType,
		Content:   strings.Join(raw, "\n"),
		Delimiter: open.Delimiter,
	}, nil
}

func (p *parser) parseDataTable() (*DataTable, error) {
	startLoc := p.peek().Loc
	var rows []*TableRow
	var expected int
	for p.peek().Kind == TokenTableRow {
		tok := p.peek()
		if rows == nil {
			expected = len(tok.Cells)
		} else if len(tok.Cells) != expected {
			return nil, newInconsistentTableCells(p.uri, tok.Loc, expected, len(tok.Cells))
		}
		p.advance()
		rows = append(rows, p.newTableRow(tok))
	}
	return &DataTable{Loc: startLoc, Rows: rows}, nil
}

func (p *parser) newTableRow(tok Token) *TableRow {
	cells := make([]*TableCell, len(tok.Cells))
	for i, c := range tok.Cells {
		cells[i] = &TableCell{Loc: Location{Line: tok.Loc.Line, Column: c.Column}, Value: c.Value}
	}
	return &TableRow{Loc: tok.Loc, ID: p.ids.NextID(), Cells: cells}
}

// parseDescription collects the maximal run of free-text (Other) lines
// following a header: leading and trailing blank lines are trimmed, but a
// blank line with further free text beyond it is kept as an interior blank
// in the joined result. Comments mixed into this run are still collected
// into the document; they never appear in the description text itself.
func (p *parser) parseDescription() string {
	p.skipEmptyAndComments()

	var lines []string
	for {
		switch p.peek().Kind {
		case TokenOther:
			lines = append(lines, p.advance().Raw)
		case TokenCommentLine:
			p.collectComments()
		case TokenEmpty:
			if !p.moreDescriptionAhead() {
				return strings.Join(lines, "\n")
			}
			for p.peek().Kind == TokenEmpty || p.peek().Kind == TokenCommentLine {
				if p.peek().Kind == TokenCommentLine {
					p.collectComments()
					continue
				}
				p.advance()
				lines = append(lines, "")
			}
		default:
			return strings.Join(lines, "\n")
		}
	}
}

// moreDescriptionAhead reports whether, skipping over the Empty/CommentLine
// run starting at the current position, another Other token follows -
// i.e. whether the blank run is interior to the description rather than
// trailing it.
func (p *parser) moreDescriptionAhead() bool {
	j := p.i
	for j < len(p.tokens) && (p.tokens[j].Kind == TokenEmpty || p.tokens[j].Kind == TokenCommentLine) {
		j++
	}
	return j < len(p.tokens) && p.tokens[j].Kind == TokenOther
}
