// Package gherkin is a parser for the Gherkin BDD specification language.
//
// It tokenizes and parses Feature files (Feature, Rule, Background, Scenario,
// Scenario Outline, Examples, steps with doc strings and data tables, tags,
// comments and the i18n `# language:` directive) into a typed document tree,
// and can write that tree back out as Gherkin text.
//
// You probably want to start with something like this:
//
//	src := gherkin.NewSource(strings.NewReader(text), "login.feature")
//	doc, err := gherkin.ParseDocument(src)
//	if err != nil {
//	    log.Fatalf("could not parse feature: %s", err)
//	}
//	log.Print(doc.Feature.Name)
package gherkin
