package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/google/renameio/v2/maybe"
	"github.com/kyokomi/emoji/v2"
)

const defaultWidth = 100

//go:embed guide.md.tmpl
var guideTemplate string

var guideTmpl = template.Must(template.New("guide").Parse(guideTemplate))

// Renderer turns a Summary into the guideline document.
type Renderer struct {
	Width int
	Now   func() time.Time

	tmpl *template.Template
}

type headings struct {
	Format, Types, Scopes, Lengths, Formats, Structure string
}

type typeRow struct {
	Name, Emoji, Description string
}

type lengthRow struct {
	Part, Min, Max string
}

type guideData struct {
	Heading    headings
	Grammar    string
	TypeList   string
	ScopeList  string
	Types      []typeRow
	Scopes     []typeRow
	Lengths    []lengthRow
	Formats    []FormatRule
	Structural []string
	HelpURL    string
	Generated  string
}

func heading(code, title string) string {
	return strings.TrimSpace(emoji.Emojize(code)) + " " + title
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func cell(s string) string {
	return cellReplacer.Replace(strings.TrimSpace(s))
}

func bounds(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func names(items []CatalogItem) []string {
	ns := make([]string, 0, len(items))
	for _, it := range items {
		ns = append(ns, it.Name)
	}
	return ns
}

const (
	scopeFirst = "  │       └─⫸ Scope: "
	typeFirst  = "  └─⫸ Type: "
)

// minWidth leaves room for a few cells after the widest tree prefix.
var minWidth = cells.StringWidth(scopeFirst) + 12

// freeScope describes scopes when they are not enumerated.
func freeScope(s Summary) string {
	for _, f := range s.Formats {
		if f.Part == "Scope" {
			return "any, " + strings.TrimPrefix(f.Rule, "must be in ")
		}
	}
	return "any"
}

// grammar draws the header line with the type and scope annotated below it.
func grammar(s Summary, width int) string {
	scopeCont := "  │" + strings.Repeat(" ", cells.StringWidth(scopeFirst)-3)
	typeCont := strings.Repeat(" ", cells.StringWidth(typeFirst))

	scopeLine := scopeFirst + freeScope(s)
	if len(s.Scopes) > 0 {
		scopeLine = wrapTree(names(s.Scopes), width, scopeFirst, scopeCont)
	}
	typeLine := typeFirst + "any"
	if len(s.Types) > 0 {
		typeLine = wrapTree(names(s.Types), width, typeFirst, typeCont)
	}

	return strings.Join([]string{
		"<type>(<scope>): <description>",
		"  │       │",
		scopeLine,
		"  │",
		typeLine,
		"",
		"<body>",
		"",
		"<footer>",
	}, "\n")
}

func (r Renderer) data(s Summary) guideData {
	width := r.Width
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	d := guideData{
		Heading: headings{
			Format:    heading(":memo:", "Commit format"),
			Types:     heading(":white_check_mark:", "Allowed types"),
			Scopes:    heading(":dart:", "Allowed scopes"),
			Lengths:   heading(":straight_ruler:", "Lengths"),
			Formats:   heading(":pencil2:", "Formatting"),
			Structure: heading(":building_construction:", "Structure"),
		},
		Grammar:    grammar(s, width),
		TypeList:   wrapInline(names(s.Types), width, "   "),
		ScopeList:  wrapInline(names(s.Scopes), width, "   "),
		Formats:    s.Formats,
		Structural: s.Structural,
		HelpURL:    s.HelpURL,
		Generated:  now().UTC().Format(time.RFC3339),
	}

	for _, t := range s.Types {
		var e string
		if t.Emoji != "" {
			e = strings.TrimSpace(emoji.Emojize(t.Emoji))
		}
		d.Types = append(d.Types, typeRow{Name: t.Name, Emoji: e, Description: cell(t.Description)})
	}
	for _, sc := range s.Scopes {
		d.Scopes = append(d.Scopes, typeRow{Name: sc.Name, Description: cell(sc.Description)})
	}
	for _, l := range s.Lengths {
		d.Lengths = append(d.Lengths, lengthRow{Part: l.Part, Min: bounds(l.Min), Max: bounds(l.Max)})
	}

	return d
}

func (r Renderer) Render(w io.Writer, s Summary) error {
	tmpl := r.tmpl
	if tmpl == nil {
		tmpl = guideTmpl
	}
	if err := tmpl.Execute(w, r.data(s)); err != nil {
		return fmt.Errorf("render guide: %w", err)
	}
	return nil
}

// WriteFile renders the guide and replaces path with it.
// Nothing is written if rendering fails.
func (r Renderer) WriteFile(path string, s Summary) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, s); err != nil {
		return err
	}
	if err := maybe.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write guide %s: %w", path, err)
	}
	return nil
}
