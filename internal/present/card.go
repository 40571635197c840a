// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package present projects Records into display models. It has no I/O;
// the terminal UI and CLI render what it returns.
package present

import (
	"fmt"

	"github.com/pdiddy/papershelf/pkg/types"
)

// ActionKind is the context action a card offers.
type ActionKind string

const (
	ActionSave   ActionKind = "save"
	ActionSaved  ActionKind = "saved"
	ActionRemove ActionKind = "remove"
)

// Action is a card's context button.
type Action struct {
	Kind     ActionKind
	Label    string
	Disabled bool
}

// Card is the display model for one Record.
type Card struct {
	ID         string
	Title      string
	AuthorLine string
	VenueLine  string
	Link       string
	LinkLabel  string
	Abstract   string

	// AbstractOpen is false until the reader expands the abstract.
	AbstractOpen bool
	ToggleLabel  string

	Action Action

	// Record is the source record, kept so a card can be saved as shown.
	Record types.Record
}

// Renderer builds cards with one catalog.
type Renderer struct {
	cat Catalog
}

// NewRenderer returns a Renderer using cat.
func NewRenderer(cat Catalog) *Renderer {
	return &Renderer{cat: cat}
}

// Catalog returns the renderer's catalog.
func (r *Renderer) Catalog() Catalog { return r.cat }

// SearchCard renders rec in the results context. The action is a
// disabled "saved" button when saved is true.
func (r *Renderer) SearchCard(rec types.Record, saved bool) Card {
	c := r.base(rec)
	if saved {
		c.Action = Action{Kind: ActionSaved, Label: r.cat.Saved, Disabled: true}
	} else {
		c.Action = Action{Kind: ActionSave, Label: r.cat.Save}
	}
	return c
}

// SavedCard renders rec in the saved-list context.
func (r *Renderer) SavedCard(rec types.Record) Card {
	c := r.base(rec)
	c.Action = Action{Kind: ActionRemove, Label: r.cat.Remove}
	return c
}

// SearchCards renders records in the results context; isSaved reports
// which are already saved.
func (r *Renderer) SearchCards(records []types.Record, isSaved func(id string) bool) []Card {
	cards := make([]Card, len(records))
	for i, rec := range records {
		cards[i] = r.SearchCard(rec, isSaved != nil && isSaved(rec.ID))
	}
	return cards
}

// MarkSaved turns a card's save action into the disabled saved state.
func (r *Renderer) MarkSaved(c Card) Card {
	c.Action = Action{Kind: ActionSaved, Label: r.cat.Saved, Disabled: true}
	return c
}

// ToggleAbstract flips the abstract visibility and its label.
func (r *Renderer) ToggleAbstract(c Card) Card {
	c.AbstractOpen = !c.AbstractOpen
	if c.AbstractOpen {
		c.ToggleLabel = r.cat.Collapse
	} else {
		c.ToggleLabel = r.cat.Expand
	}
	return c
}

func (r *Renderer) base(rec types.Record) Card {
	ph := r.cat.Placeholders
	rec = types.Record{
		ID:       rec.ID,
		Title:    fallback(rec.Title, ph.Title),
		Authors:  fallback(rec.Authors, ph.Authors),
		Journal:  fallback(rec.Journal, ph.Journal),
		Year:     fallback(rec.Year, ph.Year),
		Abstract: fallback(rec.Abstract, ph.Abstract),
	}
	return Card{
		ID:          rec.ID,
		Title:       rec.Title,
		AuthorLine:  fmt.Sprintf(r.cat.authorsFmt, rec.Authors),
		VenueLine:   fmt.Sprintf(r.cat.venueFmt, rec.Journal, rec.Year),
		Link:        rec.URL(),
		LinkLabel:   fmt.Sprintf(r.cat.linkFmt, rec.ID),
		Abstract:    rec.Abstract,
		ToggleLabel: r.cat.Expand,
		Record:      rec,
	}
}

// fallback covers records imported from older payloads with blank fields.
func fallback(s, ph string) string {
	if s == "" {
		return ph
	}
	return s
}
