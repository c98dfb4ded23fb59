package gherkin_test

import (
	"errors"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"

	"github.com/moonrockz/gherkin/gherkin"
)

// unifiedDiff renders a readable diff between two rendered documents for
// failure messages, instead of dumping both strings verbatim.
func unifiedDiff(t *testing.T, a, b string) string {
	t.Helper()
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "first render",
		ToFile:   "second render",
		Context:  2,
	})
	require.NoError(t, err)
	return diff
}

func parse(t *testing.T, text string) *gherkin.GherkinDocument {
	t.Helper()
	src := gherkin.NewSourceFromString(text, "mem")
	doc, err := gherkin.ParseDocument(src)
	require.NoError(t, err)
	return doc
}

// Minimal feature.
func TestParseMinimalFeature(t *testing.T) {
	doc := parse(t, "Feature: Minimal\n  Scenario: One\n    Given a step\n")

	require.Equal(t, "Minimal", doc.Feature.Name)
	require.Equal(t, "en", doc.Feature.Language)
	require.Len(t, doc.Feature.Children_, 1)

	sc, ok := doc.Feature.Children_[0].(*gherkin.Scenario)
	require.True(t, ok)
	require.Equal(t, "One", sc.Name)
	require.Equal(t, gherkin.ScenarioKindScenario, sc.Kind)
	require.Len(t, sc.Steps, 1)
	require.Equal(t, "Given ", sc.Steps[0].Keyword)
	require.Equal(t, gherkin.KeywordTypeContext, sc.Steps[0].KeywordType)
	require.Equal(t, "a step", sc.Steps[0].Text)
}

// Tags on Feature and Scenario.
func TestParseTags(t *testing.T) {
	doc := parse(t, "@smoke @regression\nFeature: Tagged\n  @wip\n  Scenario: S\n    Given g\n")

	require.Len(t, doc.Feature.Tags, 2)
	require.Equal(t, "@smoke", doc.Feature.Tags[0].Name)
	require.Equal(t, "@regression", doc.Feature.Tags[1].Name)

	sc := doc.Feature.Children_[0].(*gherkin.Scenario)
	require.Len(t, sc.Tags, 1)
	require.Equal(t, "@wip", sc.Tags[0].Name)
}

// Data table with inconsistent width.
func TestParseInconsistentTableCells(t *testing.T) {
	text := "Feature: T\n  Scenario: X\n    Given rows:\n      | a | b |\n      | 1 | 2 | 3 |\n"
	src := gherkin.NewSourceFromString(text, "mem")
	_, err := gherkin.ParseDocument(src)
	require.Error(t, err)

	var synErr *gherkin.SyntaxError
	require.True(t, errors.As(err, &synErr))
	require.Equal(t, gherkin.SyntaxErrorKindInconsistentTableCells, synErr.Kind)
	require.Equal(t, 5, synErr.Location.Line)
}

// Doc string with media type and round-trip.
func TestParseDocStringWithMediaType(t *testing.T) {
	text := "Feature: D\n  Scenario: X\n    Given body:\n      ```json\n      {\"k\":\"v\"}\n      ```\n"
	doc := parse(t, text)

	sc := doc.Feature.Children_[0].(*gherkin.Scenario)
	ds, ok := sc.Steps[0].Argument.(*gherkin.DocString)
	require.True(t, ok)
	require.Equal(t, "json", ds.MediaType)
	require.Equal(t, `{"k":"v"}`, ds.Content)
	require.Equal(t, "```", ds.Delimiter)

	out, err := gherkin.Write(doc)
	require.NoError(t, err)

	doc2 := parse(t, out)
	sc2 := doc2.Feature.Children_[0].(*gherkin.Scenario)
	ds2 := sc2.Steps[0].Argument.(*gherkin.DocString)
	require.Equal(t, ds.MediaType, ds2.MediaType)
	require.Equal(t, ds.Content, ds2.Content)
	require.Equal(t, ds.Delimiter, ds2.Delimiter)
}

// i18n keyword tables.
func TestParseFrenchLanguage(t *testing.T) {
	text := "# language: fr\nFonctionnalité: Connexion\n  Scénario: Succès\n    Soit un utilisateur\n"
	doc := parse(t, text)

	require.Equal(t, "fr", doc.Feature.Language)
	require.Equal(t, "Fonctionnalité", doc.Feature.Keyword)
	require.Len(t, doc.Feature.Children_, 1)

	sc := doc.Feature.Children_[0].(*gherkin.Scenario)
	require.Len(t, sc.Steps, 1)
	require.Equal(t, gherkin.KeywordTypeContext, sc.Steps[0].KeywordType)
}

// Orphan scenario.
func TestParseOrphanScenario(t *testing.T) {
	src := gherkin.NewSourceFromString("Scenario: Orphan\n  Given x\n", "mem")
	_, err := gherkin.ParseDocument(src)
	require.Error(t, err)

	var synErr *gherkin.SyntaxError
	require.True(t, errors.As(err, &synErr))
	require.Equal(t, gherkin.SyntaxErrorKindMissingFeature, synErr.Kind)
	require.Equal(t, 1, synErr.Location.Line)
	require.Contains(t, synErr.Error(), "Feature")
}

func TestParseExamplesUnderPlainScenarioIsAnError(t *testing.T) {
	text := "Feature: F\n  Scenario: S\n    Given g\n\n    Examples:\n      | a |\n      | 1 |\n"
	src := gherkin.NewSourceFromString(text, "mem")
	_, err := gherkin.ParseDocument(src)
	require.Error(t, err)

	var synErr *gherkin.SyntaxError
	require.True(t, errors.As(err, &synErr))
	require.Equal(t, gherkin.SyntaxErrorKindExamplesUnderNonOutline, synErr.Kind)
}

func TestParseScenarioOutlineWithExamples(t *testing.T) {
	text := "Feature: F\n" +
		"  Scenario Outline: Template\n" +
		"    Given a <thing>\n" +
		"\n" +
		"    Examples:\n" +
		"      | thing |\n" +
		"      | cat   |\n" +
		"      | dog   |\n"
	doc := parse(t, text)

	sc := doc.Feature.Children_[0].(*gherkin.Scenario)
	require.Equal(t, gherkin.ScenarioKindOutline, sc.Kind)
	require.Len(t, sc.Examples, 1)

	ex := sc.Examples[0]
	require.NotNil(t, ex.TableHeader)
	require.Equal(t, []string{"thing"}, cellValues(ex.TableHeader))
	require.Len(t, ex.TableBody, 2)
	require.Equal(t, []string{"cat"}, cellValues(ex.TableBody[0]))
	require.Equal(t, []string{"dog"}, cellValues(ex.TableBody[1]))
}

func TestParseUnterminatedDocString(t *testing.T) {
	text := "Feature: F\n  Scenario: S\n    Given g:\n      \"\"\"\n      unterminated\n"
	src := gherkin.NewSourceFromString(text, "mem")
	_, err := gherkin.ParseDocument(src)
	require.Error(t, err)

	var synErr *gherkin.SyntaxError
	require.True(t, errors.As(err, &synErr))
	require.Equal(t, gherkin.SyntaxErrorKindUnterminatedDocString, synErr.Kind)
}

func TestParseUnknownLanguage(t *testing.T) {
	src := gherkin.NewSourceFromString("# language: xx\nFeature: F\n", "mem")
	_, err := gherkin.ParseDocument(src)
	require.Error(t, err)

	var synErr *gherkin.SyntaxError
	require.True(t, errors.As(err, &synErr))
	require.Equal(t, gherkin.SyntaxErrorKindUnknownLanguage, synErr.Kind)
}

func TestParseOrphanTags(t *testing.T) {
	src := gherkin.NewSourceFromString("@wip\n", "mem")
	_, err := gherkin.ParseDocument(src)
	require.Error(t, err)

	var synErr *gherkin.SyntaxError
	require.True(t, errors.As(err, &synErr))
	require.Equal(t, gherkin.SyntaxErrorKindOrphanTags, synErr.Kind)
}

func TestParseBareTagIsRejected(t *testing.T) {
	src := gherkin.NewSourceFromString("@\nFeature: F\n", "mem")
	_, err := gherkin.ParseDocument(src)
	require.Error(t, err)
}

// Ids are monotone starting at 0, one per addressable entity.
func TestParseAssignsMonotoneIDs(t *testing.T) {
	text := "Feature: F\n" +
		"  @tag\n" +
		"  Scenario: S\n" +
		"    Given a table:\n" +
		"      | a | b |\n" +
		"      | 1 | 2 |\n"
	doc := parse(t, text)

	var ids []string
	for _, t := range doc.Feature.Tags {
		ids = append(ids, t.ID)
	}
	ids = append(ids, doc.Feature.ID)
	sc := doc.Feature.Children_[0].(*gherkin.Scenario)
	for _, t := range sc.Tags {
		ids = append(ids, t.ID)
	}
	ids = append(ids, sc.ID)
	ids = append(ids, sc.Steps[0].ID)
	dt := sc.Steps[0].Argument.(*gherkin.DataTable)
	for _, row := range dt.Rows {
		ids = append(ids, row.ID)
	}

	seen := map[string]bool{}
	for _, id := range ids {
		require.False(t, seen[id], "id %q reused", id)
		seen[id] = true
	}
	require.Equal(t, "0", doc.Feature.ID)
}

// Location monotonicity across an in-order walk.
func TestLocationMonotonicity(t *testing.T) {
	text := "Feature: F\n" +
		"  Scenario: S\n" +
		"    Given g\n" +
		"    When w\n" +
		"    Then t\n"
	doc := parse(t, text)

	var locs []gherkin.Location
	gherkin.Fold(doc, nil, func(acc any, n gherkin.Node) gherkin.FoldResult {
		locs = append(locs, n.Location())
		return gherkin.Continue(acc)
	})
	for i := 1; i < len(locs); i++ {
		require.False(t, locs[i].Less(locs[i-1]), "location %v precedes %v out of order", locs[i], locs[i-1])
	}
}

// Parse/write round trip and idempotent writer.
func TestWriteParseRoundTrip(t *testing.T) {
	text := "@feature-tag\n" +
		"Feature: F\n" +
		"  description line one\n" +
		"\n" +
		"  description line two\n" +
		"\n" +
		"  Background: Setup\n" +
		"    Given a clean slate\n" +
		"\n" +
		"  @outline\n" +
		"  Scenario Outline: Template\n" +
		"    Given a <thing>\n" +
		"    Then it has <count>\n" +
		"\n" +
		"    Examples:\n" +
		"      | thing | count |\n" +
		"      | cat   | 4     |\n"
	doc := parse(t, text)

	out, err := gherkin.Write(doc)
	require.NoError(t, err)

	doc2 := parse(t, out)
	require.Equal(t, structuralSignature(doc), structuralSignature(doc2))

	out2, err := gherkin.Write(doc2)
	require.NoError(t, err)
	require.Equal(t, out, out2, "writer is not idempotent:\n%s", unifiedDiff(t, out, out2))
}

func cellValues(row *gherkin.TableRow) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Value
	}
	return out
}

// structuralSignature reduces a document to a sequence of (kind, name or
// text or cell value) entries in traversal order, ignoring ids and locations
// so two parses of textually-equal-up-to-whitespace-canonicalization
// documents compare equal.
func structuralSignature(doc *gherkin.GherkinDocument) []string {
	var sig []string
	gherkin.Accept(doc, signatureVisitor{sig: &sig})
	return sig
}

type signatureVisitor struct {
	gherkin.BaseVisitor
	sig *[]string
}

func (v signatureVisitor) VisitFeature(f *gherkin.Feature) {
	*v.sig = append(*v.sig, "Feature:"+f.Name)
}
func (v signatureVisitor) VisitScenario(s *gherkin.Scenario) {
	*v.sig = append(*v.sig, "Scenario:"+s.Name)
}
func (v signatureVisitor) VisitBackground(b *gherkin.Background) {
	*v.sig = append(*v.sig, "Background:"+b.Name)
}
func (v signatureVisitor) VisitStep(s *gherkin.Step) {
	*v.sig = append(*v.sig, "Step:"+s.Keyword+s.Text)
}
func (v signatureVisitor) VisitTag(tg *gherkin.Tag) {
	*v.sig = append(*v.sig, "Tag:"+tg.Name)
}
func (v signatureVisitor) VisitExamples(e *gherkin.Examples) {
	*v.sig = append(*v.sig, "Examples:"+e.Name)
}
func (v signatureVisitor) VisitTableCell(c *gherkin.TableCell) {
	*v.sig = append(*v.sig, "Cell:"+c.Value)
}
