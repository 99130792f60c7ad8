// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes unigram statistics of letter streams: frequency
// tables, chi-squared distance from English and the index of coincidence,
// plus polyalphabetic period detection built on the latter.
package stats

import (
	"math"
	"sort"
)

// englishPercent is the expected percentage of each letter a–z in English
// prose.
var englishPercent = [26]float64{
	8.04, 1.48, 3.34, 3.82, 12.49, 2.40, 1.87, 5.05, 7.57, 0.16, 0.54, 4.07, 2.51,
	7.23, 7.64, 2.14, 0.12, 6.28, 6.51, 9.28, 2.73, 1.05, 1.68, 0.23, 1.66, 0.09,
}

// EnglishOrder lists a–z from most to least frequent in English.
const EnglishOrder = "etaoinsrhldcumfpgwybvkxjqz"

// EnglishFrequency returns the expected percentage of letter c in English,
// or 0 for anything outside a–z.
func EnglishFrequency(c byte) float64 {
	if c < 'a' || c > 'z' {
		return 0
	}
	return englishPercent[c-'a']
}

// Counts tallies a–z occurrences; other bytes are ignored. The second result
// is the number of letters counted.
func Counts(letters string) ([26]int, int) {
	var counts [26]int
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			counts[c-'a']++
			n++
		}
	}
	return counts, n
}

// FrequencyTable maps each observed letter to its percentage of the text.
type FrequencyTable map[byte]float64

// SymbolFrequency is one row of a ranked frequency table.
type SymbolFrequency struct {
	Symbol    byte
	Frequency float64
}

// Frequency builds the percentage table of a letter stream in one pass.
// Letters that never occur are absent from the table.
func Frequency(letters string) FrequencyTable {
	counts, n := Counts(letters)
	table := make(FrequencyTable)
	if n == 0 {
		return table
	}
	for i, c := range counts {
		if c > 0 {
			table[byte('a'+i)] = float64(c) * 100 / float64(n)
		}
	}
	return table
}

// Ranked returns the table sorted by descending frequency, ties broken
// alphabetically.
func (t FrequencyTable) Ranked() []SymbolFrequency {
	out := make([]SymbolFrequency, 0, len(t))
	for s, f := range t {
		out = append(out, SymbolFrequency{Symbol: s, Frequency: f})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// Top returns up to k most frequent symbols.
func (t FrequencyTable) Top(k int) []byte {
	ranked := t.Ranked()
	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]byte, k)
	for i := 0; i < k; i++ {
		out[i] = ranked[i].Symbol
	}
	return out
}

// ChiSquared measures how far the letter counts are from English. Expected
// counts are scaled to the sample length and rounded up, so every expected
// count is at least 1 for a non-empty text. Lower is more English-like.
func ChiSquared(letters string) float64 {
	counts, n := Counts(letters)
	if n == 0 {
		return 0
	}
	var chi float64
	for i, observed := range counts {
		expected := math.Ceil(englishPercent[i] * float64(n) / 100)
		d := float64(observed) - expected
		chi += d * d / expected
	}
	return chi
}

// IndexOfCoincidence is the probability that two letters drawn without
// replacement are equal. English runs near 0.066; random text near 0.038.
func IndexOfCoincidence(letters string) float64 {
	counts, n := Counts(letters)
	if n < 2 {
		return 0
	}
	var sum int
	for _, c := range counts {
		sum += c * (c - 1)
	}
	return float64(sum) / float64(n*(n-1))
}
