package gherkin

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TokenKind is the closed set of line classifications the tokenizer produces.
type TokenKind int

const (
	TokenFeatureLine TokenKind = iota
	TokenRuleLine
	TokenBackgroundLine
	TokenScenarioLine
	TokenExamplesLine
	TokenStepLine
	TokenDocStringSeparator
	TokenTableRow
	TokenTagLine
	TokenCommentLine
	TokenLanguage
	TokenEmpty
	TokenOther
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenFeatureLine:
		return "FeatureLine"
	case TokenRuleLine:
		return "RuleLine"
	case TokenBackgroundLine:
		return "BackgroundLine"
	case TokenScenarioLine:
		return "ScenarioLine"
	case TokenExamplesLine:
		return "ExamplesLine"
	case TokenStepLine:
		return "StepLine"
	case TokenDocStringSeparator:
		return "DocStringSeparator"
	case TokenTableRow:
		return "TableRow"
	case TokenTagLine:
		return "TagLine"
	case TokenCommentLine:
		return "CommentLine"
	case TokenLanguage:
		return "Language"
	case TokenEmpty:
		return "Empty"
	case TokenOther:
		return "Other"
	case TokenEOF:
		return "Eof"
	default:
		return "Unknown"
	}
}

// Token is a single classified line. Which fields are populated depends on
// Kind - one struct rather than one Go type per token kind, since every
// consumer already switches exhaustively on Kind.
type Token struct {
	Kind TokenKind
	Loc  Location

	Keyword      string // name keyword (no colon) or step keyword (with trailing separator)
	Name         string // header line name, after the colon
	ScenarioKind ScenarioKind

	Text            string      // step text
	StepKeywordType KeywordType // StepLine only

	Delimiter string // DocStringSeparator: `"""` or "```"
	MediaType string // DocStringSeparator opener only

	Cells []TokenCell // TableRow

	Tags []TokenTag // TagLine

	CommentText string // CommentLine, includes leading '#'

	LanguageCode string // Language

	Raw string // Other: the raw source line
}

// TokenCell is one escaped-and-trimmed data table cell, with the column
// immediately after its opening '|'.
type TokenCell struct {
	Value  string
	Column int
}

// TokenTag is one tag on a TagLine, with the column of its leading '@'.
type TokenTag struct {
	Name   string
	Column int
}

// LexerState is the tokenizer's only piece of state, threaded explicitly
// through classifyLine rather than held as a field, so classifyLine stays a
// pure function of (line, state).
type LexerState struct {
	InDocString bool
	Delimiter   string
}

var languageDirectiveRegexp = regexp.MustCompile(`^#\s*language\s*:\s*([A-Za-z][A-Za-z-]*)\s*$`)

// classifyLine implements the priority-ordered, per-line classification
// rules. It is a pure function: given the same (line, lineNumber,
// state, lang, languageDirectiveAllowed) it always returns the same token
// and next state.
func classifyLine(line string, lineNumber int, state LexerState, lang LanguageKeywords, languageDirectiveAllowed bool) (Token, LexerState) {
	trimmed := strings.TrimLeft(line, " \t")
	col := leadingWidth(line) + 1

	// Rule 1: doc-string body state overrides everything else.
	if state.InDocString {
		if opener, mediaType, ok := matchDocStringOpener(trimmed); ok && opener == state.Delimiter {
			return Token{Kind: TokenDocStringSeparator, Loc: Location{Line: lineNumber, Column: col}, Delimiter: opener, MediaType: mediaType},
				LexerState{}
		}
		return Token{Kind: TokenOther, Loc: Location{Line: lineNumber, Column: col}, Raw: line}, state
	}

	// Rule 2: empty/whitespace-only.
	if strings.TrimSpace(line) == "" {
		return Token{Kind: TokenEmpty, Loc: Location{Line: lineNumber, Column: col}}, state
	}

	// Rule 3: comment or language directive.
	if strings.HasPrefix(trimmed, "#") {
		if languageDirectiveAllowed {
			if m := languageDirectiveRegexp.FindStringSubmatch(trimmed); m != nil {
				return Token{Kind: TokenLanguage, Loc: Location{Line: lineNumber, Column: col}, LanguageCode: m[1]}, state
			}
		}
		return Token{Kind: TokenCommentLine, Loc: Location{Line: lineNumber, Column: col}, CommentText: trimmed}, state
	}

	// Rule 4: tags.
	if strings.HasPrefix(trimmed, "@") {
		tags := []TokenTag{}
		col := leadingWidth(line)
		rest := trimmed
		for _, field := range strings.Fields(trimmed) {
			idx := strings.Index(rest, field)
			col += utf8.RuneCountInString(rest[:idx])
			tags = append(tags, TokenTag{Name: field, Column: col + 1})
			col += utf8.RuneCountInString(field)
			rest = rest[idx+len(field):]
		}
		return Token{Kind: TokenTagLine, Loc: Location{Line: lineNumber, Column: leadingWidth(line) + 1}, Tags: tags}, state
	}

	// Rule 5: table row.
	if strings.HasPrefix(trimmed, "|") {
		cells := splitTableCells(line, leadingWidth(line))
		return Token{Kind: TokenTableRow, Loc: Location{Line: lineNumber, Column: col}, Cells: cells}, state
	}

	// Rule 6: doc string opener.
	if opener, mediaType, ok := matchDocStringOpener(trimmed); ok {
		return Token{Kind: TokenDocStringSeparator, Loc: Location{Line: lineNumber, Column: col}, Delimiter: opener, MediaType: mediaType},
			LexerState{InDocString: true, Delimiter: opener}
	}

	// Rule 7: name keyword line (Feature/Rule/Background/Scenario/ScenarioOutline/Examples).
	if m, ok := matchNameKeyword(lang, trimmed); ok {
		name := strings.TrimSpace(trimmed[len(m.keyword)+1:])
		tok := Token{Loc: Location{Line: lineNumber, Column: col}, Keyword: m.keyword, Name: name}
		switch m.kind {
		case nameKeywordFeature:
			tok.Kind = TokenFeatureLine
		case nameKeywordRule:
			tok.Kind = TokenRuleLine
		case nameKeywordBackground:
			tok.Kind = TokenBackgroundLine
		case nameKeywordScenario:
			tok.Kind = TokenScenarioLine
			tok.ScenarioKind = ScenarioKindScenario
		case nameKeywordScenarioOutline:
			tok.Kind = TokenScenarioLine
			tok.ScenarioKind = ScenarioKindOutline
		case nameKeywordExamples:
			tok.Kind = TokenExamplesLine
		}
		return tok, state
	}

	// Rule 8: step keyword line.
	if m, ok := matchStepKeyword(lang, trimmed); ok {
		text := strings.TrimSpace(trimmed[len(m.keyword):])
		return Token{Kind: TokenStepLine, Loc: Location{Line: lineNumber, Column: col}, Keyword: m.keyword, Text: text, StepKeywordType: m.keywordType}, state
	}

	// Rule 9: anything else.
	return Token{Kind: TokenOther, Loc: Location{Line: lineNumber, Column: col}, Raw: line}, state
}

func leadingWidth(line string) int {
	n := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}

// matchDocStringOpener recognizes `"""` or ```` ``` ```` possibly followed by
// a media type, returning the exact three-character delimiter and trimmed
// media type text.
func matchDocStringOpener(trimmed string) (delimiter string, mediaType string, ok bool) {
	for _, d := range []string{`"""`, "```"} {
		if strings.HasPrefix(trimmed, d) {
			return d, strings.TrimSpace(trimmed[len(d):]), true
		}
	}
	return "", "", false
}

// splitTableCells splits a `|`-delimited row on unescaped '|', trimming each
// cell and dropping the leading/trailing empty segments produced by the
// row's own bounding pipes.
func splitTableCells(line string, leading int) []TokenCell {
	raw := []string{}
	cols := []int{}
	var current strings.Builder
	col := leading + 1
	cellStartCol := col
	escaped := false
	started := false
	for _, r := range line[leading:] {
		switch {
		case escaped:
			switch r {
			case '|':
				current.WriteByte('|')
			case '\\':
				current.WriteByte('\\')
			case 'n':
				current.WriteByte('\n')
			default:
				current.WriteByte('\\')
				current.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			if started {
				raw = append(raw, current.String())
				cols = append(cols, cellStartCol)
			}
			current.Reset()
			started = true
			cellStartCol = col + 1
		default:
			current.WriteRune(r)
		}
		col++
	}
	cells := make([]TokenCell, 0, len(raw))
	for i, v := range raw {
		cells = append(cells, TokenCell{Value: strings.TrimSpace(v), Column: cols[i]})
	}
	return cells
}

// Tokenize eagerly classifies every line of source and returns the full
// token stream, terminated by a single Eof token. It auto-detects a leading
// `# language:` directive the same way TokenIterator does, so callers never
// need to know the language up front.
func Tokenize(source *Source) []Token {
	it := NewTokenIterator(source)
	tokens := []Token{}
	for {
		tok, ok := it.Next()
		tokens = append(tokens, tok)
		if !ok {
			break
		}
	}
	return tokens
}

// TokenIterator is the lazy, pull-driven counterpart to Tokenize. It
// advances only when Next is called and carries its LexerState internally;
// abandoning it leaks nothing since it owns no resources beyond the
// caller's Source.
//
// It starts classifying with the default ("en") keyword set and switches to
// the directive's language as soon as it observes a Language token, so a
// caller pulling the stream one token at a time sees every subsequent line
// classified in the right language without having to pre-scan the source
// itself.
type TokenIterator struct {
	source    *Source
	lang      LanguageKeywords
	line      int
	state     LexerState
	sawHeader bool
	done      bool
}

// NewTokenIterator returns a lazy tokenizer over source, starting from the
// default language.
func NewTokenIterator(source *Source) *TokenIterator {
	lang, _ := LookupLanguage(DefaultLanguage)
	return &TokenIterator{source: source, lang: lang, line: 1}
}

// SetLanguage overrides the keyword set used to classify lines from this
// point forward. ParseDocument uses it to start classification in the
// configured default language; a later Language token still switches the
// keyword set as usual.
func (it *TokenIterator) SetLanguage(lang LanguageKeywords) {
	it.lang = lang
}

// Next returns the next token. The boolean result is false for the terminal
// Eof token and for every call after it, each of which returns Eof again.
func (it *TokenIterator) Next() (Token, bool) {
	if it.done {
		return Token{Kind: TokenEOF, Loc: Location{Line: it.source.LineCount() + 1}}, false
	}
	line, ok := it.source.Line(it.line)
	if !ok {
		it.done = true
		return Token{Kind: TokenEOF, Loc: Location{Line: it.source.LineCount() + 1}}, false
	}
	languageDirectiveAllowed := !it.sawHeader
	tok, next := classifyLine(line, it.line, it.state, it.lang, languageDirectiveAllowed)
	it.state = next
	it.line++
	if tok.Kind == TokenLanguage {
		if lang, ok := LookupLanguage(tok.LanguageCode); ok {
			it.lang = lang
		}
	}
	if tok.Kind != TokenEmpty && tok.Kind != TokenCommentLine && tok.Kind != TokenLanguage {
		it.sawHeader = true
	}
	return tok, true
}
