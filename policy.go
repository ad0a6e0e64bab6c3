package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shu-go/orderedmap"
)

type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

func parseSeverity(v Value) (Severity, error) {
	s, ok := v.(Scalar)
	if !ok {
		return 0, errors.New("severity must be a scalar")
	}
	if i, ok := s.Int(); ok {
		if i < 0 || i > 2 {
			return 0, fmt.Errorf("severity %d out of range 0-2", i)
		}
		return Severity(i), nil
	}
	switch strings.ToLower(s.String()) {
	case "off":
		return SeverityOff, nil
	case "warn", "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s.String())
}

const (
	Always = "always"
	Never  = "never"
)

// RuleEntry is one rule as [severity, applicability, value].
// Applicability and Value are nil/empty when not given.
type RuleEntry struct {
	Severity      Severity
	Applicability string
	Value         Value
}

// Active reports whether the rule is switched on.
func (e RuleEntry) Active() bool {
	return e.Severity != SeverityOff
}

func ruleEntryOf(v Value) (RuleEntry, error) {
	seq, ok := v.(Seq)
	if !ok {
		return RuleEntry{}, errors.New("rule must be a list [severity, applicability, value]")
	}
	if len(seq) == 0 || len(seq) > 3 {
		return RuleEntry{}, fmt.Errorf("rule must have 1 to 3 items, got %d", len(seq))
	}

	sev, err := parseSeverity(seq[0])
	if err != nil {
		return RuleEntry{}, err
	}
	e := RuleEntry{Severity: sev}

	if len(seq) > 1 {
		app, ok := seq[1].(Scalar)
		if !ok {
			return RuleEntry{}, errors.New("applicability must be a string")
		}
		e.Applicability = app.String()
	}
	if len(seq) > 2 {
		e.Value = seq[2]
	}
	return e, nil
}

func (e RuleEntry) value() Value {
	seq := Seq{Int(int(e.Severity))}
	if e.Applicability != "" || e.Value != nil {
		seq = append(seq, Str(e.Applicability))
	}
	if e.Value != nil {
		seq = append(seq, e.Value)
	}
	return seq
}

type ParserOpts struct {
	ReferenceActions []string
	IssuePrefixes    []string
	NoteKeywords     []string
}

type ParserPreset struct {
	Name       string
	ParserOpts ParserOpts
}

func parserPresetOf(m *Map) ParserPreset {
	name, _ := m.StringOf("name")
	opts := m.MapOf("parserOpts")
	return ParserPreset{
		Name: name,
		ParserOpts: ParserOpts{
			ReferenceActions: stringsOf(opts.SeqOf("referenceActions")),
			IssuePrefixes:    stringsOf(opts.SeqOf("issuePrefixes")),
			NoteKeywords:     stringsOf(opts.SeqOf("noteKeywords")),
		},
	}
}

func (p ParserPreset) value() *Map {
	opts := NewMap()
	opts.Set("referenceActions", Strings(p.ParserOpts.ReferenceActions...))
	opts.Set("issuePrefixes", Strings(p.ParserOpts.IssuePrefixes...))
	opts.Set("noteKeywords", Strings(p.ParserOpts.NoteKeywords...))

	m := NewMap()
	m.Set("name", Str(p.Name))
	m.Set("parserOpts", opts)
	return m
}

// Rules keeps rule entries in declaration order.
type Rules = *orderedmap.OrderedMap[string, RuleEntry]

// Policy is the complete rule configuration handed to the commit linter.
type Policy struct {
	Extends      []string
	HelpURL      string
	ParserPreset ParserPreset
	Rules        Rules
}

// Rule returns the named entry; ok is false when the rule is not configured.
func (p Policy) Rule(name string) (RuleEntry, bool) {
	if p.Rules == nil {
		return RuleEntry{}, false
	}
	return p.Rules.Get(name)
}

// Value renders the policy in commitlint's configuration layout.
func (p Policy) Value() *Map {
	m := NewMap()
	m.Set(keyExtends, Strings(p.Extends...))
	m.Set(keyHelpURL, Str(p.HelpURL))
	m.Set(keyParserPreset, p.ParserPreset.value())
	m.Set(keyRules, rulesValue(p.Rules))
	return m
}

func rulesValue(rules Rules) *Map {
	m := NewMap()
	if rules == nil {
		return m
	}
	for _, name := range rules.Keys() {
		e, _ := rules.Get(name)
		m.Set(name, e.value())
	}
	return m
}

func rulesOf(m *Map) Rules {
	rules := orderedmap.New[string, RuleEntry]()
	for _, name := range m.Keys() {
		v, _ := m.Get(name)
		e, err := ruleEntryOf(v)
		if err != nil {
			// fragments are validated on load; only the default reaches here unchecked
			continue
		}
		rules.Set(name, e)
	}
	return rules
}

func defaultPolicy() Policy {
	rules := orderedmap.New[string, RuleEntry]()
	rule := func(name string, sev Severity, app string, v Value) {
		rules.Set(name, RuleEntry{Severity: sev, Applicability: app, Value: v})
	}

	rule("header-max-length", SeverityError, Always, Int(140))
	rule("header-min-length", SeverityError, Always, Int(10))
	rule("header-full-stop", SeverityError, Never, Str("."))
	rule("body-leading-blank", SeverityError, Always, nil)
	rule("body-max-line-length", SeverityError, Always, Int(100))
	rule("footer-leading-blank", SeverityError, Always, nil)
	rule("footer-max-line-length", SeverityError, Always, Int(100))
	rule("type-case", SeverityError, Always, Str("lower-case"))
	rule("type-empty", SeverityError, Never, nil)
	rule("type-enum", SeverityError, Always, Strings(
		"feat", "fix", "docs", "style", "refactor", "perf", "test", "build", "ci", "chore", "revert",
	))
	rule("scope-case", SeverityError, Always, Str("lower-case"))
	rule("scope-max-length", SeverityError, Always, Int(20))
	rule("subject-case", SeverityError, Always, Str("lower-case"))
	rule("subject-empty", SeverityError, Never, nil)
	rule("subject-max-length", SeverityError, Always, Int(50))
	rule("subject-min-length", SeverityError, Always, Int(5))
	rule("subject-full-stop", SeverityError, Never, Str("."))
	rule("references-empty", SeverityWarning, Never, nil)
	rule("signed-off-by", SeverityOff, Always, Str("Signed-off-by:"))

	return Policy{
		Extends: []string{"@commitlint/config-conventional"},
		HelpURL: "https://www.conventionalcommits.org/en/v1.0.0/#specification",
		ParserPreset: ParserPreset{
			Name: "conventional-changelog-conventionalcommits",
			ParserOpts: ParserOpts{
				ReferenceActions: []string{"close", "closes", "closed", "fix", "fixes", "fixed", "resolve", "resolves", "resolved"},
				IssuePrefixes:    []string{"#"},
				NoteKeywords:     []string{"BREAKING CHANGE", "BREAKING-CHANGE"},
			},
		},
		Rules: rules,
	}
}
