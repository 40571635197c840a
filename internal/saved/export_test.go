// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saved

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/papershelf/internal/search"
	"github.com/pdiddy/papershelf/pkg/types"
)

func TestExportImport_JSONRoundTrip(t *testing.T) {
	records := []types.Record{rec("2"), rec("1")}

	var buf bytes.Buffer
	require.NoError(t, Export(records, FormatJSON, search.DefaultPlaceholders(), &buf))

	got, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestExport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export([]types.Record{rec("1")}, FormatYAML, search.DefaultPlaceholders(), &buf))

	var got []types.Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []types.Record{rec("1")}, got)
	assert.Contains(t, buf.String(), "pmid: \"1\"")
}

func TestExport_CSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export([]types.Record{rec("1")}, FormatCSL, search.DefaultPlaceholders(), &buf))
	assert.Contains(t, buf.String(), "pmid:1")
	assert.Contains(t, buf.String(), "family: Kim")
}

func TestExport_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(nil, FormatJSON, search.DefaultPlaceholders(), &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExport_UnknownFormat(t *testing.T) {
	err := Export(nil, "bibtex", search.DefaultPlaceholders(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "bibtex")
}

func TestImport_Corrupt(t *testing.T) {
	_, err := Import(strings.NewReader(`{"pmid":"1"}`))
	assert.ErrorIs(t, err, ErrCorruptPayload)
}
