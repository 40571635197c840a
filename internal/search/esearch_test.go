// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/papershelf/internal/httputil"
	"github.com/pdiddy/papershelf/pkg/types"
)

func testConfig(baseURL string) types.SearchConfig {
	return types.SearchConfig{BaseURL: baseURL, DefaultDays: 365, DefaultSort: "pub+date"}
}

func testClient() *httputil.Client {
	return httputil.NewClient(types.HTTPConfig{}, zerolog.Nop())
}

var testDescriptor = Descriptor{
	Term:     "cancer",
	Sort:     SortPubDate,
	DateFrom: "2024/02/14",
	DateTo:   "2024/03/15",
}

func TestGatewaySearch_Parameters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/esearch.fcgi", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pubmed", q.Get("db"))
		assert.Equal(t, "json", q.Get("retmode"))
		assert.Equal(t, "20", q.Get("retmax"))
		assert.Equal(t, "cancer", q.Get("term"))
		assert.Equal(t, "pub+date", q.Get("sort"))
		assert.Equal(t, "pdat", q.Get("datetype"))
		assert.Equal(t, "2024/02/14", q.Get("mindate"))
		assert.Equal(t, "2024/03/15", q.Get("maxdate"))
		assert.False(t, q.Has("api_key"))
		fmt.Fprint(w, `{"esearchresult":{"count":"2","idlist":["111","222"]}}`)
	}))
	defer ts.Close()

	g := NewGateway(testClient(), testConfig(ts.URL), zerolog.Nop())
	ids, err := g.Search(context.Background(), testDescriptor)

	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, ids)
}

func TestGatewaySearch_EtiquetteParameters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("api_key"))
		assert.Equal(t, "me@example.org", q.Get("email"))
		assert.Equal(t, "papershelf", q.Get("tool"))
		fmt.Fprint(w, `{"esearchresult":{"idlist":[]}}`)
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL + "/")
	cfg.APIKey = "secret"
	cfg.Email = "me@example.org"
	cfg.Tool = "papershelf"

	ids, err := NewGateway(testClient(), cfg, zerolog.Nop()).Search(context.Background(), testDescriptor)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGatewaySearch_EmptyOrMissingIDList(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty list", `{"esearchresult":{"idlist":[]}}`},
		{"missing idlist", `{"esearchresult":{"count":"0"}}`},
		{"missing result", `{"header":{"type":"esearch"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			ids, err := NewGateway(testClient(), testConfig(ts.URL), zerolog.Nop()).Search(context.Background(), testDescriptor)
			require.NoError(t, err)
			assert.NotNil(t, ids)
			assert.Empty(t, ids)
		})
	}
}

func TestGatewaySearch_TruncatesToMaxResults(t *testing.T) {
	ids := make([]string, 25)
	for i := range ids {
		ids[i] = fmt.Sprintf("%q", fmt.Sprint(1000+i))
	}
	body := `{"esearchresult":{"idlist":[` + strings.Join(ids, ",") + `]}}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	got, err := NewGateway(testClient(), testConfig(ts.URL), zerolog.Nop()).Search(context.Background(), testDescriptor)
	require.NoError(t, err)
	assert.Len(t, got, MaxResults)
	assert.Equal(t, "1000", got[0])
	assert.Equal(t, "1019", got[MaxResults-1])
}

func TestGatewaySearch_HTTPError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := NewGateway(testClient(), testConfig(ts.URL), zerolog.Nop()).Search(context.Background(), testDescriptor)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusInternalServerError, ge.StatusCode)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGatewaySearch_MalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer ts.Close()

	_, err := NewGateway(testClient(), testConfig(ts.URL), zerolog.Nop()).Search(context.Background(), testDescriptor)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Zero(t, ge.StatusCode)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGatewaySearch_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	_, err := NewGateway(testClient(), testConfig(ts.URL), zerolog.Nop()).Search(context.Background(), testDescriptor)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.True(t, errors.Is(err, ErrUpstream))
}
