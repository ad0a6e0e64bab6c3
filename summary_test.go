package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func defaultResolution() Resolution {
	return Resolve(defaultPolicy(), defaultTypeCatalog(), defaultScopeCatalog(), NewMap())
}

func TestSummarizeDefault(t *testing.T) {
	s := Summarize(defaultResolution())

	wantLengths := []LengthRule{
		{Part: "Header", Min: 10, Max: 140},
		{Part: "Description", Min: 5, Max: 50},
		{Part: "Scope", Max: 20},
		{Part: "Body lines", Max: 100},
		{Part: "Footer lines", Max: 100},
	}
	if diff := cmp.Diff(wantLengths, s.Lengths); diff != "" {
		t.Errorf("lengths (-want +got):\n%s", diff)
	}

	wantFormats := []FormatRule{
		{Part: "Type", Rule: "must be in lowercase"},
		{Part: "Description", Rule: "must be in lowercase"},
		{Part: "Scope", Rule: "must be in lowercase"},
		{Part: "Header / Description", Rule: "must not end with a period"},
	}
	if diff := cmp.Diff(wantFormats, s.Formats); diff != "" {
		t.Errorf("formats (-want +got):\n%s", diff)
	}

	wantStructural := []string{
		"Leave a blank line before the commit body.",
		"Leave a blank line before the footer.",
		"Reference an issue or ticket (e.g. `#123`, `ABC-456`).",
		"Always give a type.",
		"Always give a description.",
	}
	if diff := cmp.Diff(wantStructural, s.Structural); diff != "" {
		t.Errorf("structural (-want +got):\n%s", diff)
	}

	assert.Nil(t, s.Scopes)
	assert.Len(t, s.Types, 11)
	assert.Equal(t, CatalogItem{Name: "feat", Description: "A new feature", Emoji: ":sparkles:"}, s.Types[0])
	assert.Equal(t, CatalogItem{Name: "chore"}, s.Types[9])
}

func TestSummarizeScopes(t *testing.T) {
	s := Summarize(resolveDoc(t, "scopes: [core, mobile]\n"))

	want := []CatalogItem{
		{Name: "core", Description: "Core functionality and shared internals"},
		{Name: "mobile"},
	}
	if diff := cmp.Diff(want, s.Scopes); diff != "" {
		t.Errorf("scopes (-want +got):\n%s", diff)
	}
}

func TestSummarizeOmitsInactiveRules(t *testing.T) {
	s := Summarize(resolveDoc(t, `
rules:
  header-min-length: [0]
  header-max-length: [off, always, 72]
  scope-max-length: [0, always, 20]
  header-full-stop: [0, never, "."]
  subject-full-stop: [off]
  type-enum: [0, always, [feat]]
  references-empty: [0, never]
  scope-case: [0, always, lower-case]
`))

	for _, l := range s.Lengths {
		assert.NotEqual(t, "Header", l.Part)
		assert.NotEqual(t, "Scope", l.Part)
	}
	for _, f := range s.Formats {
		assert.NotEqual(t, "Header / Description", f.Part)
		assert.NotEqual(t, "Scope", f.Part)
	}
	assert.NotContains(t, s.Structural, "Reference an issue or ticket (e.g. `#123`, `ABC-456`).")
	// disabled type-enum falls back to the catalog
	assert.Len(t, s.Types, 9)
}

func TestSummarizeOneFullStopRuleIsEnough(t *testing.T) {
	s := Summarize(resolveDoc(t, "rules:\n  header-full-stop: [0]\n"))
	assert.Contains(t, s.Formats, FormatRule{Part: "Header / Description", Rule: "must not end with a period"})
}

func TestSummarizeCaseVariants(t *testing.T) {
	s := Summarize(resolveDoc(t, `
rules:
  subject-case: [2, never, [sentence-case, start-case, pascal-case, upper-case]]
  body-case: [1, always, sentence-case]
`))

	assert.Contains(t, s.Formats, FormatRule{Part: "Description", Rule: "must not be in sentence case or start case or PascalCase or UPPERCASE"})
	assert.Contains(t, s.Formats, FormatRule{Part: "Body", Rule: "must be in sentence case"})
}

func TestSummarizeExtraStructure(t *testing.T) {
	s := Summarize(resolveDoc(t, `
rules:
  scope-empty: [2, never]
  signed-off-by: [2, always, "Signed-off-by:"]
  body-leading-blank: [2, never]
`))

	assert.Contains(t, s.Structural, "Always give a scope.")
	assert.Contains(t, s.Structural, "End the message with a `Signed-off-by:` trailer.")
	assert.NotContains(t, s.Structural, "Leave a blank line before the commit body.")
}

func TestSummarizeScopeMinLength(t *testing.T) {
	s := Summarize(resolveDoc(t, "rules:\n  scope-min-length: [2, always, 2]\n"))
	assert.Contains(t, s.Lengths, LengthRule{Part: "Scope", Min: 2, Max: 20})
}
