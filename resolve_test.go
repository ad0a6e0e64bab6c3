package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policyYAML(t *testing.T, p Policy) string {
	t.Helper()
	content, err := encodePolicy(p, ".yaml")
	require.NoError(t, err)
	return string(content)
}

func resolveDoc(t *testing.T, doc string) Resolution {
	t.Helper()
	frag, err := parseFragment([]byte(doc))
	require.NoError(t, err)
	return Resolve(defaultPolicy(), defaultTypeCatalog(), defaultScopeCatalog(), frag)
}

func warnLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf).Level(zerolog.WarnLevel)
}

func TestResolveWithoutFragmentsIsDefault(t *testing.T) {
	var buf bytes.Buffer
	res := ResolveStore(newDirStore(filepath.Join(t.TempDir(), "missing"), ""), warnLogger(&buf))

	assert.Equal(t, policyYAML(t, defaultPolicy()), policyYAML(t, res.Policy))
	assert.Equal(t, defaultTypeCatalog().Keys(), res.Types.Keys())
	assert.Equal(t, defaultScopeCatalog().Keys(), res.Scopes.Keys())
	assert.Empty(t, buf.String(), "a missing store is not worth a warning")
}

func TestResolveEmptyStoreIsDefault(t *testing.T) {
	res := ResolveStore(newDirStore(t.TempDir(), ""), zerolog.Nop())
	assert.Equal(t, policyYAML(t, defaultPolicy()), policyYAML(t, res.Policy))
}

func TestResolveUnreadableStoreWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var buf bytes.Buffer
	res := ResolveStore(newDirStore(path, ""), warnLogger(&buf))

	assert.Equal(t, policyYAML(t, defaultPolicy()), policyYAML(t, res.Policy))
	assert.Contains(t, buf.String(), "fragments unavailable")
}

func TestResolveLaterFragmentWins(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "01-base.yaml", "rules:\n  header-max-length: [2, always, 100]\n")
	writeFragment(t, dir, "02-override.yaml", "rules:\n  header-max-length: [2, always, 72]\n")

	res := ResolveStore(newDirStore(dir, ""), zerolog.Nop())

	e, ok := res.Policy.Rule("header-max-length")
	require.True(t, ok)
	n, _ := e.Value.(Scalar).Int()
	assert.Equal(t, 72, n)
}

func TestResolveScopeEnumScenario(t *testing.T) {
	res := resolveDoc(t, `
rules:
  scope-enum: [2, always, [core, api]]
  scope-empty: [error, never]
`)

	e, ok := res.Policy.Rule("scope-enum")
	require.True(t, ok)
	assert.Equal(t, []string{"core", "api"}, stringsOf(e.Value))

	e, ok = res.Policy.Rule("scope-empty")
	require.True(t, ok)
	assert.Equal(t, SeverityError, e.Severity)
	assert.Equal(t, Never, e.Applicability)

	// untouched defaults survive
	e, _ = res.Policy.Rule("header-max-length")
	n, _ := e.Value.(Scalar).Int()
	assert.Equal(t, 140, n)
}

func TestResolveScopesListReplacesEnum(t *testing.T) {
	res := resolveDoc(t, "scopes: [web, cli]\n")

	e, ok := res.Policy.Rule("scope-enum")
	require.True(t, ok)
	assert.Equal(t, SeverityError, e.Severity)
	assert.Equal(t, Always, e.Applicability)
	assert.Equal(t, []string{"web", "cli"}, stringsOf(e.Value))
}

func TestResolveConvenienceListsWinOverRules(t *testing.T) {
	res := resolveDoc(t, `
rules:
  scope-enum: [1, never, [from-rule]]
  type-enum: [2, always, [feat]]
scopes: [from-list]
types: [fix, docs]
`)

	e, _ := res.Policy.Rule("scope-enum")
	assert.Equal(t, SeverityWarning, e.Severity)
	assert.Equal(t, Never, e.Applicability)
	assert.Equal(t, []string{"from-list"}, stringsOf(e.Value))

	e, _ = res.Policy.Rule("type-enum")
	assert.Equal(t, []string{"fix", "docs"}, stringsOf(e.Value))
}

func TestResolveEmptyListsAreIgnored(t *testing.T) {
	res := resolveDoc(t, "scopes: []\ntypes: []\n")

	_, ok := res.Policy.Rule("scope-enum")
	assert.False(t, ok)
	assert.Equal(t, policyYAML(t, defaultPolicy()), policyYAML(t, res.Policy))
}

func TestResolveTopLevelFieldsReplaceWholesale(t *testing.T) {
	res := resolveDoc(t, `
extends: []
helpUrl: https://example.com/commits
parserPreset:
  name: custom
  parserOpts:
    issuePrefixes: ["JIRA-"]
`)

	assert.Empty(t, res.Policy.Extends)
	assert.Equal(t, "https://example.com/commits", res.Policy.HelpURL)
	assert.Equal(t, "custom", res.Policy.ParserPreset.Name)
	assert.Equal(t, []string{"JIRA-"}, res.Policy.ParserPreset.ParserOpts.IssuePrefixes)
	assert.Empty(t, res.Policy.ParserPreset.ParserOpts.NoteKeywords)
}

func TestResolveKeepsSeverityOff(t *testing.T) {
	res := resolveDoc(t, "rules:\n  header-max-length: [off, always, 72]\n")

	e, ok := res.Policy.Rule("header-max-length")
	require.True(t, ok)
	assert.Equal(t, SeverityOff, e.Severity)
	assert.False(t, e.Active())
}

func TestResolveCatalogsReplaceDefaults(t *testing.T) {
	res := resolveDoc(t, `
typeDescriptions:
  feat: New stuff
  chore:
    description: Chores
    emoji: ":wrench:"
scopeDescriptions:
  web: Web frontend
`)

	assert.Equal(t, []string{"feat", "chore"}, res.Types.Keys())
	ct, _ := res.Types.Get("chore")
	assert.Equal(t, CommitType{Desc: "Chores", Emoji: ":wrench:"}, ct)
	assert.Equal(t, []string{"web"}, res.Scopes.Keys())
}

func TestResolveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "a.yaml", "scopes: [core, api]\nrules:\n  subject-case: [2, never, [upper-case, pascal-case]]\n")
	writeFragment(t, dir, "b.yaml", "rules:\n  body-max-line-length: [1, always, 80]\n")

	store := newDirStore(dir, "")
	first := ResolveStore(store, zerolog.Nop())
	second := ResolveStore(store, zerolog.Nop())

	assert.Equal(t, policyYAML(t, first.Policy), policyYAML(t, second.Policy))
}

func TestResolveExtendsString(t *testing.T) {
	res := resolveDoc(t, "extends: \"@acme/commitlint-config\"\n")
	assert.Equal(t, []string{"@acme/commitlint-config"}, res.Policy.Extends)
}
