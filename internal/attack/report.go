// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// Report is the on-disk record of one solving run, so a result can be
// reviewed or re-decrypted later without searching again.
type Report struct {
	RunID      string           `yaml:"run_id"`
	Ciphertext string           `yaml:"ciphertext"`
	Families   []types.Family   `yaml:"families"`
	Solutions  []types.Solution `yaml:"solutions"`
	Summary    ReportSummary    `yaml:"summary"`
}

// ReportSummary stores run statistics and a timestamp.
type ReportSummary struct {
	Total        int       `yaml:"total"`
	Seed         uint64    `yaml:"seed"`
	FamilyErrors []string  `yaml:"family_errors,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// NewReport stamps the output of a run with a fresh run ID.
func NewReport(ciphertext string, families []types.Family, out AutoOutput, seed uint64) Report {
	return Report{
		RunID:      uuid.NewString(),
		Ciphertext: ciphertext,
		Families:   families,
		Solutions:  out.Solutions,
		Summary: ReportSummary{
			Total:        len(out.Solutions),
			Seed:         seed,
			FamilyErrors: out.FamilyErrors,
			Timestamp:    time.Now().UTC(),
		},
	}
}

// WriteReport saves a report as YAML.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report and re-parses each solution's key from its key
// text. Keys that no longer parse (such as duo keys with unresolved labels)
// are left nil.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	for i, s := range r.Solutions {
		if k, err := cipher.ParseKey(s.Family, s.KeyText); err == nil {
			r.Solutions[i].Key = k
		}
	}
	return &r, nil
}

// FormatTable writes ranked solutions as a human-readable table to w.
func FormatTable(out AutoOutput, w io.Writer) {
	if len(out.Solutions) == 0 {
		fmt.Fprintln(w, "No solutions.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-16s  %-9s  %-8s  %-30s  %s\n",
		"Rank", "Family", "Fitness", "Chi2", "Key", "Plaintext")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, s := range out.Solutions {
		fmt.Fprintf(w, "%-4d  %-16s  %-9.3f  %-8.1f  %-30s  %s\n",
			i+1, s.Family, s.PerQuadgram, s.ChiSquared, truncate(s.KeyText, 30), truncate(s.Plaintext, 40))
	}

	fmt.Fprintf(w, "\n%d solutions", len(out.Solutions))
	if n := len(out.FamilyErrors); n > 0 {
		fmt.Fprintf(w, " (%d families failed)", n)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes solutions as indented JSON to w.
func FormatJSON(out AutoOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Solutions)
}

// truncate shortens s to max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
