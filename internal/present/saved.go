// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import "github.com/pdiddy/papershelf/pkg/types"

// SavedView is the saved-list panel: a status line and one card per
// saved record, newest first.
type SavedView struct {
	Status string
	Cards  []Card
}

// SavedList renders the saved-list view for records.
func (r *Renderer) SavedList(records []types.Record) SavedView {
	if len(records) == 0 {
		return SavedView{Status: r.cat.SavedEmpty, Cards: []Card{}}
	}
	cards := make([]Card, len(records))
	for i, rec := range records {
		cards[i] = r.SavedCard(rec)
	}
	return SavedView{Status: r.cat.SavedCount(len(records)), Cards: cards}
}
