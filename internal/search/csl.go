// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/papershelf/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id" json:"id"`
	Type           string    `yaml:"type" json:"type"`
	Title          string    `yaml:"title,omitempty" json:"title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty" json:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty" json:"container-title,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty" json:"issued,omitempty"`
	PMID           string    `yaml:"PMID" json:"PMID"`
	URL            string    `yaml:"URL" json:"URL"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family string `yaml:"family,omitempty" json:"family,omitempty"`
	Given  string `yaml:"given,omitempty" json:"given,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts" json:"date-parts"`
}

// FormatCSL writes records as a CSL-YAML list to w. Fields holding a
// placeholder from ph are left out.
func FormatCSL(records []types.Record, ph Placeholders, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(ToCSL(records, ph))
}

// ToCSL converts records to CSL items.
func ToCSL(records []types.Record, ph Placeholders) []CSLItem {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r, ph)
	}
	return items
}

func toCSLItem(r types.Record, ph Placeholders) CSLItem {
	item := CSLItem{
		ID:             "pmid:" + r.ID,
		Type:           "article-journal",
		Title:          unless(r.Title, ph.Title),
		ContainerTitle: unless(r.Journal, ph.Journal),
		Abstract:       unless(r.Abstract, ph.Abstract),
		PMID:           r.ID,
		URL:            r.URL(),
	}

	if authors := unless(r.Authors, ph.Authors); authors != "" {
		for _, a := range strings.Split(authors, ", ") {
			if n := parseAuthorName(a); n.Family != "" {
				item.Author = append(item.Author, n)
			}
		}
	}

	if y, err := strconv.Atoi(unless(r.Year, ph.Year)); err == nil && y > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}

	return item
}

// unless returns s, or "" when s is the placeholder.
func unless(s, placeholder string) string {
	if s == placeholder {
		return ""
	}
	return s
}

// parseAuthorName splits a PubMed "LastName Initials" entry into CSL
// family/given parts. The initials are the last token; a single token is
// a family name alone.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Family: name}
	}
	return CSLName{
		Family: name[:idx],
		Given:  name[idx+1:],
	}
}
