// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/exact"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/internal/search"
	"github.com/pdiddy/cryptanalyst/internal/stats"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

func solveVigenere(_ context.Context, e *Engine, letters string, _ *quadgram.Model) (types.Solution, error) {
	return keywordSolution(types.FamilyVigenere, exact.Vigenere(letters, e.periodOptions())), nil
}

func solveBeaufort(_ context.Context, e *Engine, letters string, _ *quadgram.Model) (types.Solution, error) {
	return keywordSolution(types.FamilyBeaufort, exact.Beaufort(letters, e.periodOptions())), nil
}

func keywordSolution(f types.Family, r exact.KeywordResult) types.Solution {
	sol := types.Solution{Plaintext: r.Plaintext, Converged: true, Degenerate: r.Degenerate()}.
		WithKey(types.KeywordKey{Cipher: f, Keyword: r.Keyword})
	sol.Notes = append(sol.Notes, periodNote(r.Period))
	return sol
}

// solveAutokey hill climbs a priming keyword of every length up to
// MaxPeriod, one letter change per move, and keeps the length whose
// plaintext scores best. The key stream after the primer is the plaintext
// itself, so IC period detection does not apply.
func solveAutokey(ctx context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	maxLen := min(max(e.cfg.Analysis.MaxPeriod, 1), len(letters))
	fitness := func(kw string) float64 {
		pt, _ := cipher.AutokeyDecrypt(letters, kw)
		return model.PerQuadgram(pt)
	}

	var (
		best  search.Result[string]
		total int
	)
	for n := 1; n <= maxLen; n++ {
		p := search.Problem[string]{
			Initial:   func(*rand.Rand) string { return strings.Repeat("a", n) },
			Fitness:   fitness,
			Neighbors: KeywordNeighbors,
		}
		res, err := search.HillClimb(ctx, p, e.hillClimbOptions())
		total += res.Iterations
		if n == 1 || res.Fitness > best.Fitness {
			best = res
		}
		if err != nil {
			return autokeySolution(letters, best, total), err
		}
		e.log.Debug("autokey primer length", zap.Int("length", n), zap.String("keyword", res.Key),
			zap.Float64("fitness", res.Fitness))
	}
	return autokeySolution(letters, best, total), nil
}

func autokeySolution(letters string, best search.Result[string], iterations int) types.Solution {
	pt, _ := cipher.AutokeyDecrypt(letters, best.Key)
	sol := fromResult(types.Solution{Plaintext: pt}, best).
		WithKey(types.KeywordKey{Cipher: types.FamilyAutokey, Keyword: best.Key})
	sol.Iterations = iterations
	return sol
}

func solveAffineVigenere(_ context.Context, e *Engine, letters string, _ *quadgram.Model) (types.Solution, error) {
	r := exact.AffineVigenere(letters, e.periodOptions())
	if r.Key.Keyword == "" {
		return types.Solution{}, fmt.Errorf("%w for %d letters", exact.ErrNoCandidate, len(letters))
	}
	sol := types.Solution{Plaintext: r.Plaintext, Converged: true, Degenerate: r.Period.Degenerate}.WithKey(r.Key)
	sol.Notes = append(sol.Notes, periodNote(r.Period))
	return sol, nil
}

// periodNote describes a detected period for solution notes.
func periodNote(p stats.Period) string {
	if p.Degenerate {
		return "no period passed the IC threshold; solved as period 1"
	}
	return fmt.Sprintf("period %d (mean column IC %.4f)", p.Length, p.AverageIC)
}
