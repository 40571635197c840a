// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/papershelf/internal/httputil"
	"github.com/pdiddy/papershelf/pkg/types"
)

// Placeholders are the values substituted for absent record fields.
type Placeholders struct {
	Title    string
	Authors  string
	Journal  string
	Year     string
	Abstract string
}

// DefaultPlaceholders returns the English placeholder set.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		Title:    "(untitled)",
		Authors:  "No author information",
		Journal:  "No journal information",
		Year:     "No year information",
		Abstract: "No abstract available",
	}
}

// or returns s, or the fallback when s is empty.
func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Fetcher retrieves full records for PMIDs through efetch.fcgi.
type Fetcher struct {
	client       *httputil.Client
	endpoint     endpoint
	placeholders Placeholders
	log          zerolog.Logger
}

// NewFetcher returns a Fetcher that fills missing fields from ph.
func NewFetcher(client *httputil.Client, cfg types.SearchConfig, ph Placeholders, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:       client,
		endpoint:     newEndpoint(cfg),
		placeholders: ph,
		log:          log.With().Str("component", "fetcher").Logger(),
	}
}

// Fetch returns the records for ids in the order the server returns them.
// An empty ids slice returns nil without contacting the server.
func (f *Fetcher) Fetch(ctx context.Context, ids []string) ([]types.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}

	f.log.Debug().Int("ids", len(ids)).Msg("efetch")

	resp, err := f.client.Get(ctx, f.endpoint.url("efetch.fcgi", params))
	if err != nil {
		return nil, &FetchError{Err: transportCause(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	records, err := DecodeArticles(io.LimitReader(resp.Body, maxBodyBytes), f.placeholders)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	return records, nil
}

// DecodeArticles parses a PubmedArticleSet document into records.
// Articles without a PMID are skipped.
func DecodeArticles(r io.Reader, ph Placeholders) ([]types.Record, error) {
	var set pubmedArticleSet
	if err := xml.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch XML: %w", err)
	}

	records := make([]types.Record, 0, len(set.Articles))
	for _, a := range set.Articles {
		id := a.Citation.PMID.String()
		if id == "" {
			continue
		}
		records = append(records, a.record(id, ph))
	}
	return records, nil
}

// efetch XML structures.
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID          xmlText         `xml:"PMID"`
	Article       article         `xml:"Article"`
	OtherAbstract []abstractBlock `xml:"OtherAbstract"`
}

type article struct {
	Title       xmlText       `xml:"ArticleTitle"`
	Journal     journal       `xml:"Journal"`
	Abstract    abstractBlock `xml:"Abstract"`
	Authors     []author      `xml:"AuthorList>Author"`
	ArticleDate []articleDate `xml:"ArticleDate"`
}

type journal struct {
	Title xmlText `xml:"Title"`
	Year  xmlText `xml:"JournalIssue>PubDate>Year"`
}

type articleDate struct {
	Year xmlText `xml:"Year"`
}

type abstractBlock struct {
	Text []xmlText `xml:"AbstractText"`
}

type author struct {
	LastName xmlText `xml:"LastName"`
	Initials xmlText `xml:"Initials"`
}

// xmlText collects all character data beneath an element, including text
// inside inline markup such as <i> or <sup>.
type xmlText string

func (t *xmlText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := tok.(type) {
		case xml.CharData:
			sb.Write(tt)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	*t = xmlText(sb.String())
	return nil
}

// String returns the trimmed text.
func (t xmlText) String() string {
	return strings.TrimSpace(string(t))
}

func (a pubmedArticle) record(id string, ph Placeholders) types.Record {
	art := a.Citation.Article
	return types.Record{
		ID:       id,
		Title:    or(art.Title.String(), ph.Title),
		Authors:  or(joinAuthors(art.Authors), ph.Authors),
		Journal:  or(art.Journal.Title.String(), ph.Journal),
		Year:     or(a.year(), ph.Year),
		Abstract: or(a.abstract(), ph.Abstract),
	}
}

func (a pubmedArticle) year() string {
	if y := a.Citation.Article.Journal.Year.String(); y != "" {
		return y
	}
	for _, d := range a.Citation.Article.ArticleDate {
		if y := d.Year.String(); y != "" {
			return y
		}
	}
	return ""
}

// abstract joins the primary abstract's paragraphs, falling back to the
// first OtherAbstract with any text.
func (a pubmedArticle) abstract() string {
	if s := a.Citation.Article.Abstract.join(); s != "" {
		return s
	}
	for _, other := range a.Citation.OtherAbstract {
		if s := other.join(); s != "" {
			return s
		}
	}
	return ""
}

func (b abstractBlock) join() string {
	parts := make([]string, 0, len(b.Text))
	for _, t := range b.Text {
		if s := t.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// joinAuthors renders "LastName Initials" entries. Authors without a last
// name (collective names) are dropped.
func joinAuthors(authors []author) string {
	names := make([]string, 0, len(authors))
	for _, au := range authors {
		last := au.LastName.String()
		if last == "" {
			continue
		}
		if ini := au.Initials.String(); ini != "" {
			last += " " + ini
		}
		names = append(names, last)
	}
	return strings.Join(names, ", ")
}
