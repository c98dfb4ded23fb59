package gherkin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moonrockz/gherkin/gherkin"
)

func kinds(tokens []gherkin.Token) []gherkin.TokenKind {
	out := make([]gherkin.TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []gherkin.TokenKind
	}{
		{
			name:  "minimal feature",
			input: "Feature: Minimal\n  Scenario: One\n    Given a step\n",
			want: []gherkin.TokenKind{
				gherkin.TokenFeatureLine,
				gherkin.TokenScenarioLine,
				gherkin.TokenStepLine,
				gherkin.TokenEOF,
			},
		},
		{
			name:  "tags then feature",
			input: "@smoke @regression\nFeature: Tagged\n",
			want: []gherkin.TokenKind{
				gherkin.TokenTagLine,
				gherkin.TokenFeatureLine,
				gherkin.TokenEOF,
			},
		},
		{
			name:  "comment vs language directive",
			input: "# language: fr\n# just a comment\nFonctionnalité: X\n",
			want: []gherkin.TokenKind{
				gherkin.TokenLanguage,
				gherkin.TokenCommentLine,
				gherkin.TokenFeatureLine,
				gherkin.TokenEOF,
			},
		},
		{
			name:  "table row",
			input: "      | a | b |\n",
			want: []gherkin.TokenKind{
				gherkin.TokenTableRow,
				gherkin.TokenEOF,
			},
		},
		{
			name:  "doc string body is not re-tokenized",
			input: "    \"\"\"\n    Given this looks like a step\n    \"\"\"\n",
			want: []gherkin.TokenKind{
				gherkin.TokenDocStringSeparator,
				gherkin.TokenOther,
				gherkin.TokenDocStringSeparator,
				gherkin.TokenEOF,
			},
		},
		{
			name:  "blank line",
			input: "Feature: X\n\n  Scenario: Y\n",
			want: []gherkin.TokenKind{
				gherkin.TokenFeatureLine,
				gherkin.TokenEmpty,
				gherkin.TokenScenarioLine,
				gherkin.TokenEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := gherkin.NewSourceFromString(tt.input, "mem")
			got := gherkin.Tokenize(src)
			require.Equal(t, tt.want, kinds(got))
		})
	}
}

func TestTokenizeStepKeyword(t *testing.T) {
	src := gherkin.NewSourceFromString("Feature: X\n  Scenario: Y\n    Given a step\n    And another\n", "mem")
	toks := gherkin.Tokenize(src)

	var steps []gherkin.Token
	for _, tok := range toks {
		if tok.Kind == gherkin.TokenStepLine {
			steps = append(steps, tok)
		}
	}
	require.Len(t, steps, 2)
	require.Equal(t, "Given ", steps[0].Keyword)
	require.Equal(t, gherkin.KeywordTypeContext, steps[0].StepKeywordType)
	require.Equal(t, "a step", steps[0].Text)
	require.Equal(t, "And ", steps[1].Keyword)
	require.Equal(t, gherkin.KeywordTypeConjunction, steps[1].StepKeywordType)
}

func TestTokenizeTableCells(t *testing.T) {
	src := gherkin.NewSourceFromString(`      | a | b\|c | d\\e |`+"\n", "mem")
	toks := gherkin.Tokenize(src)
	require.Equal(t, gherkin.TokenTableRow, toks[0].Kind)
	values := make([]string, len(toks[0].Cells))
	for i, c := range toks[0].Cells {
		values[i] = c.Value
	}
	require.Equal(t, []string{"a", "b|c", `d\e`}, values)
}

func TestTokenizeScenarioOutlineLongestMatch(t *testing.T) {
	src := gherkin.NewSourceFromString("Feature: X\n  Scenario Outline: Y\n    Given a <thing>\n", "mem")
	toks := gherkin.Tokenize(src)
	require.Equal(t, gherkin.TokenScenarioLine, toks[1].Kind)
	require.Equal(t, gherkin.ScenarioKindOutline, toks[1].ScenarioKind)
	require.Equal(t, "Scenario Outline", toks[1].Keyword)
}
