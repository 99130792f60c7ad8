// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quadgram scores candidate plaintexts by the log-likelihood of their
// four-letter sequences under an English corpus.
//
// Fitness is a maximize score: higher (closer to zero) is more English-like.
// The model is built once from a corpus (see ParseCounts) and is read-only
// afterwards, so one Model may be shared by any number of goroutines.
package quadgram

import (
	"errors"
	"fmt"
	"math"
)

// DefaultUnseenPenalty is the log10 score charged for a quadgram that does
// not occur in the corpus.
const DefaultUnseenPenalty = -10.0

const tableSize = 26 * 26 * 26 * 26

var (
	// ErrCorpusMissing is returned when the corpus resource does not exist.
	// Scoring cannot proceed without it.
	ErrCorpusMissing = errors.New("quadgram corpus not found")

	// ErrEmptyCorpus is returned for a corpus with no usable entries.
	ErrEmptyCorpus = errors.New("quadgram corpus is empty")
)

// Model maps every quadgram to log10(count/total). Unseen quadgrams score
// the penalty.
type Model struct {
	logp    []float64
	seen    []bool
	entries int
	total   int64
	penalty float64
}

// New builds a model from raw occurrence counts keyed by four-letter
// sequences (either case; keys differing only in case are merged).
// Entries with non-positive counts are ignored.
func New(counts map[string]int64, unseenPenalty float64) (*Model, error) {
	merged := make(map[int]int64, len(counts))
	var total int64
	for q, c := range counts {
		if c <= 0 {
			continue
		}
		idx, ok := encode(q)
		if !ok {
			return nil, fmt.Errorf("invalid quadgram %q", q)
		}
		merged[idx] += c
		total += c
	}
	if total == 0 {
		return nil, ErrEmptyCorpus
	}

	m := &Model{
		logp:    make([]float64, tableSize),
		seen:    make([]bool, tableSize),
		entries: len(merged),
		total:   total,
		penalty: unseenPenalty,
	}
	for i := range m.logp {
		m.logp[i] = unseenPenalty
	}
	for idx, c := range merged {
		m.logp[idx] = math.Log10(float64(c) / float64(total))
		m.seen[idx] = true
	}
	return m, nil
}

// Len returns the number of distinct quadgrams in the corpus.
func (m *Model) Len() int { return m.entries }

// Total returns the sum of all corpus counts.
func (m *Model) Total() int64 { return m.total }

// Penalty returns the unseen-quadgram score.
func (m *Model) Penalty() float64 { return m.penalty }

// LogProb returns the log10 probability of q and whether it was seen.
func (m *Model) LogProb(q string) (float64, bool) {
	idx, ok := encode(q)
	if !ok {
		return m.penalty, false
	}
	return m.logp[idx], m.seen[idx]
}

// Fitness sums the quadgram scores over every four-letter window of the
// letters in text. Non-letters are skipped, case is ignored. Texts shorter
// than four letters score 0.
func (m *Model) Fitness(text string) float64 {
	score, _ := m.score(text)
	return score
}

// PerQuadgram is Fitness divided by the number of windows, which makes
// scores of texts with different lengths comparable. Texts without a full
// window score the penalty.
func (m *Model) PerQuadgram(text string) float64 {
	score, windows := m.score(text)
	if windows == 0 {
		return m.penalty
	}
	return score / float64(windows)
}

func (m *Model) score(text string) (float64, int) {
	var (
		code    int
		run     int
		windows int
		score   float64
	)
	for i := 0; i < len(text); i++ {
		v, ok := letterValue(text[i])
		if !ok {
			continue
		}
		code = (code*26 + v) % tableSize
		run++
		if run >= 4 {
			score += m.logp[code]
			windows++
		}
	}
	return score, windows
}

func letterValue(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	}
	return 0, false
}

func encode(q string) (int, bool) {
	if len(q) != 4 {
		return 0, false
	}
	code := 0
	for i := 0; i < 4; i++ {
		v, ok := letterValue(q[i])
		if !ok {
			return 0, false
		}
		code = code*26 + v
	}
	return code, true
}
