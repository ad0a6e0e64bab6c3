package main

import (
	"github.com/rs/zerolog"
)

const (
	ruleTypeEnum  = "type-enum"
	ruleScopeEnum = "scope-enum"
)

// Resolution is the resolved policy together with the catalogs used to
// describe it.
type Resolution struct {
	Policy Policy
	Types  Catalog
	Scopes Catalog
}

// Resolve layers the merged override onto the default policy and catalogs.
func Resolve(def Policy, defTypes, defScopes Catalog, override *Map) Resolution {
	p := Policy{
		Extends:      append([]string(nil), def.Extends...),
		HelpURL:      def.HelpURL,
		ParserPreset: def.ParserPreset,
	}

	// top-level fields: override wins per field
	if v, ok := override.Get(keyExtends); ok {
		p.Extends = listOf(v)
	}
	if s, ok := override.StringOf(keyHelpURL); ok {
		p.HelpURL = s
	}
	if pp := override.MapOf(keyParserPreset); pp != nil {
		p.ParserPreset = parserPresetOf(pp)
	}

	rules := MergeMaps(rulesValue(def.Rules), override.MapOf(keyRules))
	p.Rules = rulesOf(rules)

	// the convenience lists are applied last and so beat rules.scope-enum / rules.type-enum
	if scopes := override.SeqOf(keyScopes); len(scopes) > 0 {
		replaceEnum(p.Rules, ruleScopeEnum, scopes)
	}
	if types := override.SeqOf(keyTypes); len(types) > 0 {
		replaceEnum(p.Rules, ruleTypeEnum, types)
	}

	r := Resolution{
		Policy: p,
		Types:  defTypes,
		Scopes: defScopes,
	}
	if m := override.MapOf(keyTypeDescriptions); m != nil {
		r.Types = catalogOf(m)
	}
	if m := override.MapOf(keyScopeDescriptions); m != nil {
		r.Scopes = catalogOf(m)
	}
	return r
}

func replaceEnum(rules Rules, name string, list Seq) {
	e, found := rules.Get(name)
	if !found {
		e = RuleEntry{Severity: SeverityError, Applicability: Always}
	}
	e.Value = append(Seq(nil), list...)
	rules.Set(name, e)
}

// ResolveStore runs the whole discovery: list, merge, resolve.
// Store and fragment problems are logged and never fail the resolution.
func ResolveStore(store dirStore, logger zerolog.Logger) Resolution {
	ids, err := store.List()
	if err != nil {
		logger.Warn().Err(err).Str("dir", store.dir).Msg("fragments unavailable, using defaults")
		ids = nil
	}
	logger.Debug().Str("dir", store.dir).Strs("fragments", ids).Msg("fragments found")

	override := MergeFragments(store, ids, logger)
	return Resolve(defaultPolicy(), defaultTypeCatalog(), defaultScopeCatalog(), override)
}
