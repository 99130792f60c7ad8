// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cryptanalyst/internal/quadgram"
)

// ExportEntry is one quadgram with its count and log10 probability.
type ExportEntry struct {
	Gram    string  `json:"gram" yaml:"gram"`
	Count   int64   `json:"count" yaml:"count"`
	LogProb float64 `json:"log_prob" yaml:"log_prob"`
}

// Export formats accepted by Export.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Export writes the combined corpus to w, most frequent first. The text
// format is the "ABCD 1234" corpus line format, so an export can be used
// directly as corpus.path.
func (s *Store) Export(ctx context.Context, w io.Writer, format string) error {
	entries, err := s.Top(ctx, 0)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	switch format {
	case FormatText, "":
		counts := make(map[string]int64, len(entries))
		for _, e := range entries {
			counts[e.Gram] = e.Count
		}
		return quadgram.WriteCounts(w, counts)
	case FormatYAML:
		data, err := yaml.Marshal(exportEntries(entries))
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(exportEntries(entries), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	return fmt.Errorf("unknown export format %q (want text, yaml or json)", format)
}

func exportEntries(entries []quadgram.Entry) []ExportEntry {
	var total int64
	for _, e := range entries {
		total += e.Count
	}
	out := make([]ExportEntry, len(entries))
	for i, e := range entries {
		out[i] = ExportEntry{
			Gram:    e.Gram,
			Count:   e.Count,
			LogProb: math.Log10(float64(e.Count) / float64(total)),
		}
	}
	return out
}
