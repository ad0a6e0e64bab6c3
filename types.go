package main

import (
	"github.com/shu-go/orderedmap"
)

const (
	keyExtends           = "extends"
	keyHelpURL           = "helpUrl"
	keyParserPreset      = "parserPreset"
	keyRules             = "rules"
	keyTypes             = "types"
	keyScopes            = "scopes"
	keyTypeDescriptions  = "typeDescriptions"
	keyScopeDescriptions = "scopeDescriptions"
)

type CommitType struct {
	Desc  string `json:"description,omitempty"`
	Emoji string `json:"emoji,omitempty"`
}

// Catalog maps a type or scope name to its description.
type Catalog = *orderedmap.OrderedMap[string, CommitType]

func newCatalog() Catalog {
	return orderedmap.New[string, CommitType]()
}

func defaultTypeCatalog() Catalog {
	ct := newCatalog()
	ct.Set("feat", CommitType{"A new feature", ":sparkles:"})
	ct.Set("fix", CommitType{"A bug fix", ":bug:"})
	ct.Set("docs", CommitType{"Documentation only changes", ":memo:"})
	ct.Set("style", CommitType{"Changes that do not affect the meaning of the code (white-space, formatting, etc)", ":art:"})
	ct.Set("refactor", CommitType{"A code change that neither fixes a bug nor adds a feature", ":recycle:"})
	ct.Set("perf", CommitType{"A code change that improves performance", ":zap:"})
	ct.Set("test", CommitType{"Adding missing tests or correcting existing tests", ":test_tube:"})
	ct.Set("build", CommitType{"Changes that affect the build system or external dependencies", ":package:"})
	ct.Set("ci", CommitType{"Changes to our CI configuration files and scripts", ":construction_worker:"})
	return ct
}

func defaultScopeCatalog() Catalog {
	sc := newCatalog()
	sc.Set("core", CommitType{Desc: "Core functionality and shared internals"})
	sc.Set("api", CommitType{Desc: "Public API and endpoints"})
	sc.Set("ui", CommitType{Desc: "User interface and components"})
	sc.Set("auth", CommitType{Desc: "Authentication and authorization"})
	sc.Set("database", CommitType{Desc: "Database schema, migrations and queries"})
	sc.Set("config", CommitType{Desc: "Configuration files and settings"})
	sc.Set("security", CommitType{Desc: "Security fixes and hardening"})
	sc.Set("i18n", CommitType{Desc: "Internationalization and localization"})
	return sc
}

// catalogOf reads a typeDescriptions/scopeDescriptions mapping. An entry is
// either a bare description or {description, emoji}.
func catalogOf(m *Map) Catalog {
	cat := newCatalog()
	for _, id := range m.Keys() {
		v, _ := m.Get(id)
		switch v := v.(type) {
		case Scalar:
			cat.Set(id, CommitType{Desc: v.String()})
		case *Map:
			desc, _ := v.StringOf("description")
			emoji, _ := v.StringOf("emoji")
			cat.Set(id, CommitType{Desc: desc, Emoji: emoji})
		}
	}
	return cat
}

func catalogValue(cat Catalog) *Map {
	m := NewMap()
	for _, id := range cat.Keys() {
		ct, _ := cat.Get(id)
		if ct.Emoji == "" {
			m.Set(id, Str(ct.Desc))
			continue
		}
		e := NewMap()
		e.Set("description", Str(ct.Desc))
		e.Set("emoji", Str(ct.Emoji))
		m.Set(id, e)
	}
	return m
}
