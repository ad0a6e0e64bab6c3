package main

import (
	"fmt"
	"strings"
)

type CatalogItem struct {
	Name        string
	Description string
	Emoji       string
}

// LengthRule holds bounds in characters; 0 means not configured.
type LengthRule struct {
	Part string
	Min  int
	Max  int
}

type FormatRule struct {
	Part string
	Rule string
}

type Summary struct {
	Types      []CatalogItem
	Scopes     []CatalogItem
	Lengths    []LengthRule
	Formats    []FormatRule
	Structural []string
	HelpURL    string
}

func Summarize(r Resolution) Summary {
	return Summary{
		Types:      summarizeTypes(r),
		Scopes:     summarizeScopes(r),
		Lengths:    summarizeLengths(r.Policy),
		Formats:    summarizeFormats(r.Policy),
		Structural: summarizeStructure(r.Policy),
		HelpURL:    r.Policy.HelpURL,
	}
}

// activeRule is the entry of name if it exists and is not switched off.
func activeRule(p Policy, name string) (RuleEntry, bool) {
	e, ok := p.Rule(name)
	if !ok || !e.Active() {
		return RuleEntry{}, false
	}
	return e, true
}

func catalogItems(names []string, cat Catalog) []CatalogItem {
	items := make([]CatalogItem, 0, len(names))
	for _, n := range names {
		item := CatalogItem{Name: n}
		if cat != nil {
			if ct, found := cat.Get(n); found {
				item.Description = ct.Desc
				item.Emoji = ct.Emoji
			}
		}
		items = append(items, item)
	}
	return items
}

func summarizeTypes(r Resolution) []CatalogItem {
	if e, ok := activeRule(r.Policy, ruleTypeEnum); ok {
		if names := stringsOf(e.Value); len(names) > 0 {
			return catalogItems(names, r.Types)
		}
	}
	if r.Types == nil {
		return nil
	}
	return catalogItems(r.Types.Keys(), r.Types)
}

func summarizeScopes(r Resolution) []CatalogItem {
	e, ok := activeRule(r.Policy, ruleScopeEnum)
	if !ok {
		return nil
	}
	names := stringsOf(e.Value)
	if len(names) == 0 {
		return nil
	}
	return catalogItems(names, r.Scopes)
}

func bound(p Policy, name string) int {
	e, ok := activeRule(p, name)
	if !ok {
		return 0
	}
	s, ok := e.Value.(Scalar)
	if !ok {
		return 0
	}
	n, ok := s.Int()
	if !ok || n < 0 {
		return 0
	}
	return n
}

func summarizeLengths(p Policy) []LengthRule {
	parts := []struct {
		part     string
		min, max string
	}{
		{"Header", "header-min-length", "header-max-length"},
		{"Description", "subject-min-length", "subject-max-length"},
		{"Scope", "scope-min-length", "scope-max-length"},
		{"Body lines", "", "body-max-line-length"},
		{"Footer lines", "", "footer-max-line-length"},
	}

	var lengths []LengthRule
	for _, pt := range parts {
		l := LengthRule{Part: pt.part}
		if pt.min != "" {
			l.Min = bound(p, pt.min)
		}
		l.Max = bound(p, pt.max)
		if l.Min == 0 && l.Max == 0 {
			continue
		}
		lengths = append(lengths, l)
	}
	return lengths
}

var caseNames = map[string]string{
	"lower-case":    "lowercase",
	"upper-case":    "UPPERCASE",
	"sentence-case": "sentence case",
	"start-case":    "start case",
	"camel-case":    "camelCase",
	"kebab-case":    "kebab-case",
	"pascal-case":   "PascalCase",
	"snake-case":    "snake_case",
}

func describeCase(e RuleEntry) string {
	var cases []string
	switch v := e.Value.(type) {
	case Scalar:
		cases = []string{v.String()}
	case Seq:
		cases = stringsOf(v)
	}
	if len(cases) == 0 {
		return ""
	}
	for i, c := range cases {
		if n, found := caseNames[c]; found {
			cases[i] = n
		}
	}

	verb := "must be in"
	if e.Applicability == Never {
		verb = "must not be in"
	}
	return fmt.Sprintf("%s %s", verb, strings.Join(cases, " or "))
}

func summarizeFormats(p Policy) []FormatRule {
	parts := []struct {
		part, rule string
	}{
		{"Type", "type-case"},
		{"Description", "subject-case"},
		{"Scope", "scope-case"},
		{"Body", "body-case"},
	}

	var formats []FormatRule
	for _, pt := range parts {
		e, ok := activeRule(p, pt.rule)
		if !ok {
			continue
		}
		if d := describeCase(e); d != "" {
			formats = append(formats, FormatRule{Part: pt.part, Rule: d})
		}
	}

	if applies(p, "header-full-stop", Never) || applies(p, "subject-full-stop", Never) {
		formats = append(formats, FormatRule{
			Part: "Header / Description",
			Rule: "must not end with a period",
		})
	}
	return formats
}

// applies reports an active rule with the given applicability.
func applies(p Policy, name, applicability string) bool {
	e, ok := activeRule(p, name)
	return ok && e.Applicability == applicability
}

func summarizeStructure(p Policy) []string {
	checks := []struct {
		rule, applicability, sentence string
	}{
		{"body-leading-blank", Always, "Leave a blank line before the commit body."},
		{"footer-leading-blank", Always, "Leave a blank line before the footer."},
		{"references-empty", Never, "Reference an issue or ticket (e.g. `#123`, `ABC-456`)."},
		{"type-empty", Never, "Always give a type."},
		{"subject-empty", Never, "Always give a description."},
		{"scope-empty", Never, "Always give a scope."},
		{"signed-off-by", Always, "End the message with a `Signed-off-by:` trailer."},
	}

	var sentences []string
	for _, c := range checks {
		if applies(p, c.rule, c.applicability) {
			sentences = append(sentences, c.sentence)
		}
	}
	return sentences
}
