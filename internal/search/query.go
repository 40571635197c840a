// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search talks to the NCBI E-utilities: it builds query
// descriptors, resolves them to PMIDs with esearch, and decodes efetch
// XML into Records.
package search

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the E-utilities date format (YYYY/MM/DD).
const DateLayout = "2006/01/02"

// DefaultDaysBack is the lookback window used when none is configured.
const DefaultDaysBack = 365

// maxDaysBack caps the lookback so absurd input cannot overflow date math.
const maxDaysBack = 200 * 366

// Sort is an esearch sort order.
type Sort string

const (
	SortPubDate   Sort = "pub+date"
	SortRelevance Sort = "relevance"
	SortAuthor    Sort = "author"
	SortJournal   Sort = "journal"
)

// Sorts lists the supported sort orders in display order.
var Sorts = []Sort{SortPubDate, SortRelevance, SortAuthor, SortJournal}

// ParseSort returns the Sort named by s, or fallback when s is empty or
// unknown. An invalid fallback resolves to SortPubDate.
func ParseSort(s string, fallback Sort) Sort {
	s = strings.TrimSpace(s)
	for _, known := range Sorts {
		if s == string(known) {
			return known
		}
	}
	for _, known := range Sorts {
		if fallback == known {
			return fallback
		}
	}
	return SortPubDate
}

// ParseDaysBack interprets a free-text days field. Anything that is not a
// number of at least one day yields fallback; fractional values truncate.
func ParseDaysBack(s string, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultDaysBack
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	days := int(math.Min(math.Trunc(f), maxDaysBack))
	if days < 1 {
		return fallback
	}
	return days
}

// Descriptor is a normalized search request. It is built fresh for every
// search and never persisted.
type Descriptor struct {
	Term     string
	Sort     Sort
	DateFrom string
	DateTo   string
}

// QueryBuilder turns raw form input into a Descriptor. It never rejects
// input: every field falls back to a default.
type QueryBuilder struct {
	// DefaultDays applies when the days field is empty or invalid.
	DefaultDays int

	// DefaultSort applies when the sort field is empty or unknown.
	DefaultSort Sort

	// Now returns the current time. Tests pin it; nil means time.Now.
	Now func() time.Time
}

// NewQueryBuilder returns a builder with the given fallbacks.
func NewQueryBuilder(defaultDays int, defaultSort string) *QueryBuilder {
	return &QueryBuilder{
		DefaultDays: ParseDaysBack(strconv.Itoa(defaultDays), DefaultDaysBack),
		DefaultSort: ParseSort(defaultSort, SortPubDate),
	}
}

// Build returns the descriptor for term covering the last daysBack days,
// ending today in local time.
func (b *QueryBuilder) Build(term, daysBack, sort string) Descriptor {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	end := now()
	days := ParseDaysBack(daysBack, b.DefaultDays)
	start := end.AddDate(0, 0, -days)

	return Descriptor{
		Term:     term,
		Sort:     ParseSort(sort, b.DefaultSort),
		DateFrom: start.Format(DateLayout),
		DateTo:   end.Format(DateLayout),
	}
}
