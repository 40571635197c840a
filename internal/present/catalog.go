// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import (
	"fmt"

	"github.com/pdiddy/papershelf/internal/search"
)

// Catalog holds the user-facing strings for one locale.
type Catalog struct {
	Locale string

	// Search status lines.
	EmptyQuery string
	Searching  string
	NoResults  string
	loadedFmt  string
	Failed     string

	// Saved-list status lines.
	SavedEmpty    string
	savedCountFmt string

	// Button labels.
	Expand   string
	Collapse string
	Save     string
	Saved    string
	Remove   string

	// Card line formats.
	authorsFmt string
	venueFmt   string
	linkFmt    string

	Placeholders search.Placeholders
}

// Loaded is the status line after n records were fetched.
func (c Catalog) Loaded(n int) string { return fmt.Sprintf(c.loadedFmt, n) }

// SavedCount is the saved-list status line for n saved records.
func (c Catalog) SavedCount(n int) string { return fmt.Sprintf(c.savedCountFmt, n) }

var english = Catalog{
	Locale:        "en",
	EmptyQuery:    "Enter a search term first.",
	Searching:     "Searching for papers...",
	NoResults:     "No papers match these filters.",
	loadedFmt:     "Loaded %d papers.",
	Failed:        "Something went wrong while loading. Please try again shortly.",
	SavedEmpty:    "No saved papers.",
	savedCountFmt: "%d saved papers",
	Expand:        "Show abstract",
	Collapse:      "Hide abstract",
	Save:          "Save",
	Saved:         "Saved",
	Remove:        "Remove",
	authorsFmt:    "Authors: %s",
	venueFmt:      "%s / %s",
	linkFmt:       "PMID: %s",
	Placeholders:  search.DefaultPlaceholders(),
}

var korean = Catalog{
	Locale:        "ko",
	EmptyQuery:    "검색어를 먼저 입력해 주세요.",
	Searching:     "논문을 찾는 중입니다...",
	NoResults:     "조건에 맞는 논문이 없습니다.",
	loadedFmt:     "총 %d건을 불러왔습니다.",
	Failed:        "불러오기 중 오류가 생겼습니다. 잠시 후 다시 시도해 주세요.",
	SavedEmpty:    "저장한 논문이 없습니다.",
	savedCountFmt: "저장한 논문 %d건",
	Expand:        "초록 펼치기",
	Collapse:      "초록 접기",
	Save:          "저장",
	Saved:         "저장됨",
	Remove:        "저장 삭제",
	authorsFmt:    "저자: %s",
	venueFmt:      "%s / %s",
	linkFmt:       "PMID: %s",
	Placeholders: search.Placeholders{
		Title:    "(제목 없음)",
		Authors:  "저자 정보 없음",
		Journal:  "저널 정보 없음",
		Year:     "연도 정보 없음",
		Abstract: "초록 정보 없음",
	},
}

// Locales lists the available catalog locales.
var Locales = []string{english.Locale, korean.Locale}

// CatalogFor returns the catalog for locale, defaulting to English.
func CatalogFor(locale string) Catalog {
	if locale == korean.Locale {
		return korean
	}
	return english
}
