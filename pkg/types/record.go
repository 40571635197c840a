// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for papershelf.
// Record is the unit that flows from the fetch endpoint through the
// presentation layer into the saved set; the config structs are bound
// by internal/config.
package types

import "fmt"

// CanonicalURLFormat is the PubMed record page for a PMID.
const CanonicalURLFormat = "https://pubmed.ncbi.nlm.nih.gov/%s/"

// Record is a single bibliographic entry returned by the fetch endpoint.
// Every text field is populated: missing upstream metadata is replaced by a
// placeholder at decode time, so consumers never see empty strings.
//
// The JSON keys match the payload the browser client kept in local storage,
// which lets an exported browser payload be imported unchanged.
type Record struct {
	// ID is the PubMed identifier (PMID). It is assigned upstream and never changes.
	ID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Authors is a comma-joined list of "LastName Initials" entries.
	Authors string `json:"authors" yaml:"authors"`

	// Journal is the journal title.
	Journal string `json:"journal" yaml:"journal"`

	// Year is the publication year as printed by PubMed.
	Year string `json:"year" yaml:"year"`

	// Abstract holds the abstract paragraphs separated by blank lines.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// URL returns the canonical PubMed page for the record.
func (r Record) URL() string {
	return fmt.Sprintf(CanonicalURLFormat, r.ID)
}
