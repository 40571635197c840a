// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/papershelf/pkg/types"
)

// DefaultBaseURL is the root of the NCBI E-utilities API.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// MaxResults is the esearch retmax ceiling.
const MaxResults = 20

// maxBodyBytes bounds how much of an upstream body is read.
const maxBodyBytes = 10 << 20

// endpoint joins the configured base URL with an E-utilities script name.
type endpoint struct {
	base   string
	apiKey string
	email  string
	tool   string
}

func newEndpoint(cfg types.SearchConfig) endpoint {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return endpoint{base: base, apiKey: cfg.APIKey, email: cfg.Email, tool: cfg.Tool}
}

// url returns base/script with params, adding the NCBI identification
// parameters that are configured.
func (e endpoint) url(script string, params url.Values) string {
	if e.apiKey != "" {
		params.Set("api_key", e.apiKey)
	}
	if e.email != "" {
		params.Set("email", e.email)
	}
	if e.tool != "" {
		params.Set("tool", e.tool)
	}
	return e.base + "/" + script + "?" + params.Encode()
}

// transportCause drops the request URL from a client error so the API key
// in the query string never reaches error messages or logs.
func transportCause(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s %s: %w", ue.Op, redactedPath(ue.URL), ue.Err)
	}
	return err
}

func redactedPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<url>"
	}
	return u.Path
}
