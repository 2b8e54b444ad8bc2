// Package render turns characters and monsters into LaTeX fragments that are
// concatenated and typeset into the extra pages of a sheet.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/cory-johannsen/dungeonsheets/internal/game/character"
	"github.com/cory-johannsen/dungeonsheets/internal/game/monster"
	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
	"github.com/cory-johannsen/dungeonsheets/internal/game/spell"
)

//go:embed templates/*.tex
var templatesFS embed.FS

// Funcs are the helper functions available inside every template.
var Funcs = template.FuncMap{
	"mod_str":      character.ModStr,
	"ability_mod":  character.Modifier,
	"rst_to_latex": RSTToLatex,
	"latex_escape": EscapeLatex,
	"ordinal":      Ordinal,
	"join":         strings.Join,
	"title":        names.Title,
}

// Renderer executes the embedded LaTeX templates. It is safe for concurrent
// use once constructed.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
//
// Postcondition: returns a Renderer or the template parse error.
func New() (*Renderer, error) {
	tmpl, err := template.New("sheets").
		Delims("[[", "]]").
		Funcs(Funcs).
		ParseFS(templatesFS, "templates/*.tex")
	if err != nil {
		return nil, fmt.Errorf("render: parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is like New but panics on error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render: %s: %w", name, err)
	}
	return buf.String(), nil
}

// Preamble opens the document with the given title.
func (r *Renderer) Preamble(title string, fancy bool) (string, error) {
	return r.execute("preamble.tex", struct {
		Title string
		Fancy bool
	}{title, fancy})
}

// Postamble closes the document opened by Preamble.
func (r *Renderer) Postamble(fancy bool) (string, error) {
	return r.execute("postamble.tex", struct{ Fancy bool }{fancy})
}

type characterData struct {
	Character *character.Character
	Fancy     bool
}

// Subclasses lists the character's chosen subclasses.
func (r *Renderer) Subclasses(c *character.Character, fancy bool) (string, error) {
	return r.execute("subclasses.tex", characterData{c, fancy})
}

// Features lists every feature in resolution order. Placeholders are flagged
// "(not implemented)".
func (r *Renderer) Features(c *character.Character, fancy bool) (string, error) {
	return r.execute("features.tex", characterData{c, fancy})
}

// MagicItems lists the character's magic items.
func (r *Renderer) MagicItems(c *character.Character, fancy bool) (string, error) {
	return r.execute("magic_items.tex", characterData{c, fancy})
}

// SpellGroup is the spells of one level in a spellbook.
type SpellGroup struct {
	Level  int
	Label  string
	Slots  int
	Spells []SpellEntry
}

// SpellEntry is a spell as listed in the spellbook.
type SpellEntry struct {
	*spell.Spell
	Prepared bool
}

// GroupSpells groups the character's spells by level in ascending order.
//
// Postcondition: groups are non-empty and every spell appears exactly once.
func GroupSpells(c *character.Character) []SpellGroup {
	var groups []SpellGroup
	for _, s := range c.SpellsByLevel() {
		if len(groups) == 0 || groups[len(groups)-1].Level != s.Level {
			label := "Cantrips"
			if !s.IsCantrip() {
				label = s.LevelLabel() + " Level"
			}
			groups = append(groups, SpellGroup{Level: s.Level, Label: label, Slots: c.SpellSlots(s.Level)})
		}
		g := &groups[len(groups)-1]
		g.Spells = append(g.Spells, SpellEntry{Spell: s, Prepared: c.IsPrepared(s)})
	}
	return groups
}

// Spellbook lists spells grouped by level with the caster's save DC and
// attack bonus.
func (r *Renderer) Spellbook(c *character.Character, fancy bool) (string, error) {
	return r.execute("spellbook.tex", struct {
		Character *character.Character
		Groups    []SpellGroup
		Fancy     bool
	}{c, GroupSpells(c), fancy})
}

// Infusions lists an artificer's known infusions.
func (r *Renderer) Infusions(c *character.Character, fancy bool) (string, error) {
	return r.execute("infusions.tex", characterData{c, fancy})
}

// DruidShapes lists the beasts a druid can wild shape into.
func (r *Renderer) DruidShapes(c *character.Character, fancy bool) (string, error) {
	return r.execute("druid_shapes.tex", struct {
		Monsters []*monster.Monster
		Fancy    bool
	}{c.WildShapes, fancy})
}

// Monsters renders a stat block for each monster of a session sheet.
func (r *Renderer) Monsters(monsters []*monster.Monster, fancy bool) (string, error) {
	return r.execute("monsters.tex", struct {
		Monsters []*monster.Monster
		Fancy    bool
	}{monsters, fancy})
}
