package gherkin_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moonrockz/gherkin/gherkin"
)

func TestWriteColumnAlignment(t *testing.T) {
	text := "Feature: F\n" +
		"  Scenario: S\n" +
		"    Given a table:\n" +
		"      | short | a very long header |\n" +
		"      | x | y |\n"
	doc := parse(t, text)

	out, err := gherkin.Write(doc)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var tableLines []string
	for _, l := range lines {
		if strings.Contains(l, "|") {
			tableLines = append(tableLines, l)
		}
	}
	require.Len(t, tableLines, 2)
	require.Equal(t, len(tableLines[0]), len(tableLines[1]),
		"aligned table rows should be the same printed width: %q vs %q", tableLines[0], tableLines[1])
	require.Equal(t, strings.Index(tableLines[0], "|"), strings.Index(tableLines[1], "|"))
}

func TestWriteOmitsLanguageDirectiveForEnglish(t *testing.T) {
	doc := parse(t, "Feature: F\n  Scenario: S\n    Given g\n")
	out, err := gherkin.Write(doc)
	require.NoError(t, err)
	require.NotContains(t, out, "# language:")
}

func TestWriteEmitsLanguageDirectiveForNonEnglish(t *testing.T) {
	text := "# language: fr\nFonctionnalité: F\n  Scénario: S\n    Soit g\n"
	doc := parse(t, text)
	out, err := gherkin.Write(doc)
	require.NoError(t, err)
	require.Contains(t, out, "# language: fr")
}

func TestWriteEscapesTableCells(t *testing.T) {
	text := "Feature: F\n  Scenario: S\n    Given a table:\n      | a\\|b | c\\\\d |\n"
	doc := parse(t, text)
	out, err := gherkin.Write(doc)
	require.NoError(t, err)
	require.Contains(t, out, `a\|b`)
	require.Contains(t, out, `c\\d`)
}

func TestWriteCommentPlacement(t *testing.T) {
	text := "# a leading comment\nFeature: F\n  # a comment before the scenario\n  Scenario: S\n    Given g\n"
	doc := parse(t, text)
	require.Len(t, doc.Comments, 2)

	out, err := gherkin.Write(doc)
	require.NoError(t, err)

	doc2 := parse(t, out)
	require.Len(t, doc2.Comments, 2)
	require.Equal(t, doc.Comments[0].Text, doc2.Comments[0].Text)
	require.Equal(t, doc.Comments[1].Text, doc2.Comments[1].Text)
}

// Writer idempotence on its own output.
func TestWriteIsIdempotent(t *testing.T) {
	text := "Feature: F\n" +
		"  Scenario Outline: S\n" +
		"    Given a <thing>\n" +
		"\n" +
		"    Examples:\n" +
		"      | thing |\n" +
		"      | cat   |\n"
	doc := parse(t, text)

	out1, err := gherkin.Write(doc)
	require.NoError(t, err)
	doc2 := parse(t, out1)
	out2, err := gherkin.Write(doc2)
	require.NoError(t, err)

	require.Equal(t, out1, out2, "writer is not idempotent:\n%s", unifiedDiff(t, out1, out2))
}

// Write rejects a tree a parse could never produce - here a table whose
// second row has a different cell count than its first.
func TestWriteRejectsMalformedTable(t *testing.T) {
	doc := parse(t, "Feature: F\n  Scenario: S\n    Given a table:\n      | a | b |\n      | 1 | 2 |\n")
	doc.Feature.Children_[0].(*gherkin.Scenario).Steps[0].Argument.(*gherkin.DataTable).Rows[1].Cells =
		doc.Feature.Children_[0].(*gherkin.Scenario).Steps[0].Argument.(*gherkin.DataTable).Rows[1].Cells[:1]

	_, err := gherkin.Write(doc)
	require.Error(t, err)

	var syntaxErr *gherkin.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	require.Equal(t, gherkin.SyntaxErrorKindMalformedTree, syntaxErr.Kind)
}
