// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saved

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/papershelf/internal/search"
	"github.com/pdiddy/papershelf/pkg/types"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSL  = "csl"
)

// Export writes records to w in format. The JSON form is the same array
// Import reads.
func Export(records []types.Record, format string, ph search.Placeholders, w io.Writer) error {
	if records == nil {
		records = []types.Record{}
	}
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatCSL:
		return search.FormatCSL(records, ph, w)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// Import reads a JSON array of records as written by Export or by the
// browser client. Unlike Open, a payload that does not decode is an error.
func Import(r io.Reader) ([]types.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	records, err := decode(data)
	if err != nil {
		return nil, err
	}
	return records, nil
}
