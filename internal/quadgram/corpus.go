// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quadgram

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ParseCounts reads a corpus in the "<ABCD> <count>" line format: one
// quadgram per line, a single space, a positive integer. Blank lines are
// skipped; anything else malformed is an error naming the line.
func ParseCounts(r io.Reader) (map[string]int64, error) {
	counts := make(map[string]int64)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, " ")
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want \"QUAD COUNT\", got %q", line, text)
		}
		gram := strings.ToUpper(fields[0])
		if _, ok := encode(gram); !ok {
			return nil, fmt.Errorf("line %d: invalid quadgram %q", line, fields[0])
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("line %d: invalid count %q", line, fields[1])
		}
		counts[gram] += n
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return counts, nil
}

// Load parses a corpus and builds its model.
func Load(r io.Reader, unseenPenalty float64) (*Model, error) {
	counts, err := ParseCounts(r)
	if err != nil {
		return nil, err
	}
	return New(counts, unseenPenalty)
}

// LoadFile loads the corpus at path. A missing file yields ErrCorpusMissing.
func LoadFile(path string, unseenPenalty float64) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusMissing, path)
		}
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	m, err := Load(f, unseenPenalty)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return m, nil
}

// Count tallies the quadgrams of free text, ignoring case and non-letters
// (a window may span word boundaries, as in the standard corpora).
func Count(r io.Reader) (map[string]int64, error) {
	counts := make(map[string]int64)
	br := bufio.NewReader(r)
	var window [4]byte
	run := 0
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading text: %w", err)
		}
		v, ok := letterValue(c)
		if !ok {
			continue
		}
		copy(window[:], window[1:])
		window[3] = byte('A' + v)
		run++
		if run >= 4 {
			counts[string(window[:])]++
		}
	}
	return counts, nil
}

// Entry is one corpus line.
type Entry struct {
	Gram  string `json:"gram" yaml:"gram"`
	Count int64  `json:"count" yaml:"count"`
}

// Sorted returns the counts ordered by descending count, ties by quadgram.
func Sorted(counts map[string]int64) []Entry {
	out := make([]Entry, 0, len(counts))
	for g, c := range counts {
		out = append(out, Entry{Gram: g, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Gram < out[j].Gram
	})
	return out
}

// WriteCounts writes counts in the corpus line format, most frequent first.
func WriteCounts(w io.Writer, counts map[string]int64) error {
	bw := bufio.NewWriter(w)
	for _, e := range Sorted(counts) {
		if _, err := fmt.Fprintf(bw, "%s %d\n", e.Gram, e.Count); err != nil {
			return err
		}
	}
	return bw.Flush()
}
