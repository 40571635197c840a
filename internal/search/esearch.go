// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/papershelf/internal/httputil"
	"github.com/pdiddy/papershelf/pkg/types"
)

// Gateway resolves a Descriptor to PMIDs through esearch.fcgi.
type Gateway struct {
	client   *httputil.Client
	endpoint endpoint
	log      zerolog.Logger
}

// NewGateway returns a Gateway that sends requests through client.
func NewGateway(client *httputil.Client, cfg types.SearchConfig, log zerolog.Logger) *Gateway {
	return &Gateway{
		client:   client,
		endpoint: newEndpoint(cfg),
		log:      log.With().Str("component", "gateway").Logger(),
	}
}

// Search returns at most MaxResults PMIDs for d. A response without an
// id list means no results, not an error.
func (g *Gateway) Search(ctx context.Context, d Descriptor) ([]string, error) {
	params := url.Values{
		"db":       {"pubmed"},
		"retmode":  {"json"},
		"retmax":   {strconv.Itoa(MaxResults)},
		"term":     {d.Term},
		"sort":     {string(d.Sort)},
		"datetype": {"pdat"},
		"mindate":  {d.DateFrom},
		"maxdate":  {d.DateTo},
	}

	g.log.Debug().
		Str("term", d.Term).
		Str("sort", string(d.Sort)).
		Str("mindate", d.DateFrom).
		Str("maxdate", d.DateTo).
		Msg("esearch")

	resp, err := g.client.Get(ctx, g.endpoint.url("esearch.fcgi", params))
	if err != nil {
		return nil, &GatewayError{Err: transportCause(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &GatewayError{StatusCode: resp.StatusCode}
	}

	var er esearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&er); err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("parsing response: %w", err)}
	}

	if er.Result == nil || len(er.Result.IDList) == 0 {
		return []string{}, nil
	}

	ids := er.Result.IDList
	if len(ids) > MaxResults {
		ids = ids[:MaxResults]
	}
	return ids, nil
}

// esearch JSON structures. Only the id list is consumed.
type esearchResponse struct {
	Result *esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}
