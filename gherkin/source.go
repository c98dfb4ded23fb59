package gherkin

import (
	"bufio"
	"io"
	"strings"
)

// Source is an immutable, already-in-memory wrapper over Gherkin input text.
// It precomputes a line index so Line can do random access without
// re-scanning the text on every call.
type Source struct {
	uri   string
	lines []string
}

// NewSource reads all of r and splits it into lines. Both "\n" and "\r\n"
// are accepted as terminators; a final trailing terminator does not produce
// an extra empty line, matching the way bufio.Scanner's default split
// function already behaves.
func NewSource(r io.Reader, uri string) *Source {
	return &Source{uri: uri, lines: splitLines(r)}
}

// NewSourceFromString is a convenience wrapper around NewSource for callers
// that already hold the full text in memory.
func NewSourceFromString(text string, uri string) *Source {
	return NewSource(strings.NewReader(text), uri)
}

func splitLines(r io.Reader) []string {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// URI returns the identifier the source was constructed with, typically a
// file path. It is opaque to the parser and used only for error reporting.
func (s *Source) URI() string {
	return s.uri
}

// LineCount returns the number of lines in the source.
func (s *Source) LineCount() int {
	return len(s.lines)
}

// Line returns the 1-based line n without its terminator, or ("", false) if
// n is out of range.
func (s *Source) Line(n int) (string, bool) {
	if n < 1 || n > len(s.lines) {
		return "", false
	}
	return s.lines[n-1], true
}

// Tokens eagerly tokenizes the whole source, starting language detection
// from English. It's a convenience for callers who want the full stream
// without driving a TokenIterator themselves; Tokenize(s) does the same
// thing and this just saves the extra import-level indirection at call
// sites that already have a *Source in hand.
func (s *Source) Tokens() []Token {
	return Tokenize(s)
}
