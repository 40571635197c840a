// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/papershelf/pkg/types"
)

func TestFormatTable(t *testing.T) {
	records := []types.Record{
		{ID: "111", Title: strings.Repeat("long title ", 10), Authors: "Kim JH, Lee S", Journal: "Nature", Year: "2024"},
		{ID: "222", Title: "Short", Authors: "Park", Journal: "Cell", Year: "2023"},
	}

	var buf bytes.Buffer
	FormatTable(records, &buf)
	out := buf.String()

	assert.Contains(t, out, "PMID")
	assert.Contains(t, out, "111")
	assert.Contains(t, out, "Kim JH et al.")
	assert.Contains(t, out, "Park")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "2 results")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	records := []types.Record{{ID: "111", Title: "T", Authors: "A", Journal: "J", Year: "2024", Abstract: "X"}}

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(records, &buf))

	var raw []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, map[string]string{
		"pmid": "111", "title": "T", "authors": "A", "journal": "J", "year": "2024", "abstract": "X",
	}, raw[0])
}

func TestFormatJSON_NilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefg", 5))
	assert.Equal(t, "저장한...", truncate("저장한 논문 목록", 6))
}
