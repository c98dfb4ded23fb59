package gherkin

// DefaultLanguage is the language code used when a Feature file carries no
// `# language:` directive.
const DefaultLanguage = "en"

// starKeyword is the single language-independent step keyword form: a bare
// "*" is accepted as a step prefix in every language and always resolves to
// KeywordTypeUnknown.
const starKeyword = "*"

// LanguageKeywords holds every accepted keyword form for one language.
// Name keywords (Feature..Examples) are stored without their trailing
// colon; step keywords are stored without their trailing separator. Forms
// within a slice are in no particular order: matchNameKeyword and
// matchStepKeyword compare every form and keep the longest match.
type LanguageKeywords struct {
	Feature         []string
	Rule            []string
	Background      []string
	Scenario        []string
	ScenarioOutline []string
	Examples        []string

	Given []string
	When  []string
	Then  []string
	And   []string
	But   []string
}

// KeywordTable is the closed, static per-language keyword lookup the
// tokenizer consults. It is a plain map literal: no reflection, no runtime
// assembly, just fixed data the tokenizer consumes directly.
var KeywordTable = map[string]LanguageKeywords{
	"en": {
		Feature:         []string{"Feature", "Business Need", "Ability"},
		Rule:            []string{"Rule"},
		Background:      []string{"Background"},
		Scenario:        []string{"Scenario", "Example"},
		ScenarioOutline: []string{"Scenario Outline", "Scenario Template"},
		Examples:        []string{"Examples", "Scenarios"},
		Given:           []string{"Given"},
		When:            []string{"When"},
		Then:            []string{"Then"},
		And:             []string{"And"},
		But:             []string{"But"},
	},
	"fr": {
		Feature:         []string{"Fonctionnalité"},
		Rule:            []string{"Règle"},
		Background:      []string{"Contexte"},
		Scenario:        []string{"Scénario", "Exemple"},
		ScenarioOutline: []string{"Plan du scénario", "Plan du Scénario"},
		Examples:        []string{"Exemples"},
		Given:           []string{"Etant donné", "Etant donnée", "Etant donnés", "Etant données", "Étant donné", "Étant donnée", "Étant donnés", "Étant données", "Soit"},
		When:            []string{"Quand"},
		Then:            []string{"Alors"},
		And:             []string{"Et"},
		But:             []string{"Mais"},
	},
	"de": {
		Feature:         []string{"Funktionalität"},
		Rule:            []string{"Regel"},
		Background:      []string{"Grundlage"},
		Scenario:        []string{"Szenario", "Beispiel"},
		ScenarioOutline: []string{"Szenariogrundriss", "Szenario-Grundriss"},
		Examples:        []string{"Beispiele"},
		Given:           []string{"Angenommen", "Gegeben seien", "Gegeben sei"},
		When:            []string{"Wenn"},
		Then:            []string{"Dann"},
		And:             []string{"Und"},
		But:             []string{"Aber"},
	},
	"pt": {
		Feature:         []string{"Funcionalidade"},
		Rule:            []string{"Regra"},
		Background:      []string{"Contexto", "Cenário de Fundo", "Fundo"},
		Scenario:        []string{"Cenário", "Exemplo"},
		ScenarioOutline: []string{"Esquema do Cenário"},
		Examples:        []string{"Exemplos", "Cenários"},
		Given:           []string{"Dado", "Dada", "Dados", "Dadas"},
		When:            []string{"Quando"},
		Then:            []string{"Então", "Entao"},
		And:             []string{"E"},
		But:             []string{"Mas"},
	},
	"nl": {
		Feature:         []string{"Functionaliteit"},
		Rule:            []string{"Regel"},
		Background:      []string{"Achtergrond"},
		Scenario:        []string{"Scenario", "Voorbeeld"},
		ScenarioOutline: []string{"Abstract Scenario"},
		Examples:        []string{"Voorbeelden"},
		Given:           []string{"Gegeven", "Stel"},
		When:            []string{"Als"},
		Then:            []string{"Dan"},
		And:             []string{"En"},
		But:             []string{"Maar"},
	},
	"sv": {
		Feature:         []string{"Egenskap"},
		Rule:            []string{"Regel"},
		Background:      []string{"Bakgrund"},
		Scenario:        []string{"Scenario"},
		ScenarioOutline: []string{"Scenariomall"},
		Examples:        []string{"Exempel"},
		Given:           []string{"Givet"},
		When:            []string{"När"},
		Then:            []string{"Så"},
		And:             []string{"Och"},
		But:             []string{"Men"},
	},
}

// LookupLanguage returns the keyword set for code, and whether code is a
// recognized language.
func LookupLanguage(code string) (LanguageKeywords, bool) {
	kw, ok := KeywordTable[code]
	return kw, ok
}

type nameKeywordKind int

const (
	nameKeywordFeature nameKeywordKind = iota
	nameKeywordRule
	nameKeywordBackground
	nameKeywordScenarioOutline
	nameKeywordScenario
	nameKeywordExamples
)

type nameKeywordMatch struct {
	kind    nameKeywordKind
	keyword string
}

// matchNameKeyword finds the longest Feature/Rule/Background/Scenario/
// ScenarioOutline/Examples keyword that is a prefix of trimmed, immediately
// followed by ':'. ScenarioOutline forms are checked alongside Scenario
// forms so a longer form such as "Scenario Outline" always wins over the
// shorter "Scenario" at the same position.
func matchNameKeyword(kw LanguageKeywords, trimmed string) (nameKeywordMatch, bool) {
	candidates := []nameKeywordMatch{}
	for _, k := range kw.Feature {
		candidates = append(candidates, nameKeywordMatch{nameKeywordFeature, k})
	}
	for _, k := range kw.Rule {
		candidates = append(candidates, nameKeywordMatch{nameKeywordRule, k})
	}
	for _, k := range kw.Background {
		candidates = append(candidates, nameKeywordMatch{nameKeywordBackground, k})
	}
	for _, k := range kw.ScenarioOutline {
		candidates = append(candidates, nameKeywordMatch{nameKeywordScenarioOutline, k})
	}
	for _, k := range kw.Scenario {
		candidates = append(candidates, nameKeywordMatch{nameKeywordScenario, k})
	}
	for _, k := range kw.Examples {
		candidates = append(candidates, nameKeywordMatch{nameKeywordExamples, k})
	}

	best, bestLen, found := nameKeywordMatch{}, -1, false
	for _, c := range candidates {
		if len(c.keyword) <= bestLen {
			continue
		}
		if !hasKeywordColonPrefix(trimmed, c.keyword) {
			continue
		}
		best, bestLen, found = c, len(c.keyword), true
	}
	return best, found
}

func hasKeywordColonPrefix(trimmed, keyword string) bool {
	if len(trimmed) < len(keyword)+1 {
		return false
	}
	return trimmed[:len(keyword)] == keyword && trimmed[len(keyword)] == ':'
}

type stepKeywordMatch struct {
	keywordType KeywordType
	keyword     string // includes trailing separator: "Given " or "* "
}

// matchStepKeyword finds the longest step keyword (Given/When/Then/And/But,
// or the universal "*") that is a prefix of trimmed followed by a space,
// classifying its grammatical role along with it.
func matchStepKeyword(kw LanguageKeywords, trimmed string) (stepKeywordMatch, bool) {
	type cand struct {
		t KeywordType
		k string
	}
	candidates := []cand{{KeywordTypeUnknown, starKeyword}}
	for _, k := range kw.Given {
		candidates = append(candidates, cand{KeywordTypeContext, k})
	}
	for _, k := range kw.When {
		candidates = append(candidates, cand{KeywordTypeAction, k})
	}
	for _, k := range kw.Then {
		candidates = append(candidates, cand{KeywordTypeOutcome, k})
	}
	for _, k := range kw.And {
		candidates = append(candidates, cand{KeywordTypeConjunction, k})
	}
	for _, k := range kw.But {
		candidates = append(candidates, cand{KeywordTypeConjunction, k})
	}

	best, bestLen, found := stepKeywordMatch{}, -1, false
	for _, c := range candidates {
		if len(c.k) <= bestLen {
			continue
		}
		if len(trimmed) < len(c.k)+1 {
			continue
		}
		if trimmed[:len(c.k)] != c.k || trimmed[len(c.k)] != ' ' {
			continue
		}
		best = stepKeywordMatch{keywordType: c.t, keyword: c.k + " "}
		bestLen, found = len(c.k), true
	}
	return best, found
}
