// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exact

import (
	"fmt"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/modarith"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/internal/stats"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// ScytaleResult is the best rod size found by brute force.
type ScytaleResult struct {
	Turns     int
	Plaintext string
	Fitness   float64
}

// ScytaleLength unwinds letters for every turn count in 1..maxTurns (capped
// at the text length) and keeps the one scoring best under model.
func ScytaleLength(letters string, maxTurns int, model *quadgram.Model) (ScytaleResult, error) {
	maxTurns = min(maxTurns, len(letters))
	var best ScytaleResult
	for turns := 1; turns <= maxTurns; turns++ {
		pt, err := cipher.ScytaleDecrypt(letters, turns)
		if err != nil {
			return ScytaleResult{}, err
		}
		fit := model.PerQuadgram(pt)
		if turns == 1 || fit > best.Fitness {
			best = ScytaleResult{Turns: turns, Plaintext: pt, Fitness: fit}
		}
	}
	if best.Turns == 0 {
		return ScytaleResult{}, fmt.Errorf("scytale: %w for %d letters", ErrNoCandidate, len(letters))
	}
	return best, nil
}

// AffineVigenereResult is a recovered affine-then-Vigenère composite key.
type AffineVigenereResult struct {
	Key        types.AffineVigenereKey
	Plaintext  string
	ChiSquared float64
	Period     stats.Period
}

// AffineVigenere strips every invertible multiplier in turn, solves the
// remaining Vigenère by columns, and keeps the multiplier whose plaintext has
// the lowest chi-squared. Multiplying by a unit permutes letters within each
// column, so the period is detected once up front.
func AffineVigenere(letters string, opts stats.PeriodOptions) AffineVigenereResult {
	period := stats.DetectPeriod(cipher.LettersOnly(letters), opts)
	var best AffineVigenereResult
	for i, a := range modarith.Units(26) {
		stripped, err := cipher.AffineDecrypt(letters, types.AffineKey{A: a})
		if err != nil {
			continue
		}
		keyword := KeywordForPeriod(stripped, period.Length, false)
		pt, _ := cipher.VigenereDecrypt(stripped, keyword)
		chi := stats.ChiSquared(pt)
		if i == 0 || chi < best.ChiSquared {
			best = AffineVigenereResult{
				Key:        types.AffineVigenereKey{A: a, Keyword: keyword},
				Plaintext:  pt,
				ChiSquared: chi,
				Period:     period,
			}
		}
	}
	return best
}

// ScytaleVigenereResult is a recovered Vigenère-then-scytale composite key.
type ScytaleVigenereResult struct {
	Key       types.ScytaleVigenereKey
	Plaintext string
	Fitness   float64
	Period    stats.Period
}

// ScytaleVigenere unwinds letters for every turn count in 1..maxTurns,
// solves each unwound text as a Vigenère, and keeps the turn count whose
// plaintext scores best under model. The rod wraps every symbol of the
// stream, kept ones included; only the Vigenère step skips them.
func ScytaleVigenere(letters string, maxTurns int, opts stats.PeriodOptions, model *quadgram.Model) (ScytaleVigenereResult, error) {
	maxTurns = min(maxTurns, len(letters))
	var best ScytaleVigenereResult
	for turns := 1; turns <= maxTurns; turns++ {
		unwound, err := cipher.ScytaleDecrypt(letters, turns)
		if err != nil {
			return ScytaleVigenereResult{}, err
		}
		vig := Vigenere(unwound, opts)
		fit := model.PerQuadgram(vig.Plaintext)
		if turns == 1 || fit > best.Fitness {
			best = ScytaleVigenereResult{
				Key:       types.ScytaleVigenereKey{Turns: turns, Keyword: vig.Keyword},
				Plaintext: vig.Plaintext,
				Fitness:   fit,
				Period:    vig.Period,
			}
		}
	}
	if best.Key.Turns == 0 {
		return ScytaleVigenereResult{}, fmt.Errorf("scytale-vigenere: %w for %d letters", ErrNoCandidate, len(letters))
	}
	return best, nil
}
