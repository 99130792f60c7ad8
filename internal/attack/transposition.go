// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/exact"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/internal/search"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

func solveScytale(_ context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	r, err := exact.ScytaleLength(letters, e.cfg.Analysis.MaxTranspositionLength, model)
	if err != nil {
		return types.Solution{}, err
	}
	return types.Solution{Plaintext: r.Plaintext, Converged: true}.WithKey(types.ScytaleKey{Turns: r.Turns}), nil
}

func solveScytaleVigenere(_ context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	r, err := exact.ScytaleVigenere(letters, e.cfg.Analysis.MaxTranspositionLength, e.periodOptions(), model)
	if err != nil {
		return types.Solution{}, err
	}
	sol := types.Solution{Plaintext: r.Plaintext, Converged: true, Degenerate: r.Period.Degenerate}.WithKey(r.Key)
	sol.Notes = append(sol.Notes, periodNote(r.Period))
	return sol, nil
}

// solveColumnar tries every key length from 2 to MaxTranspositionLength that
// divides the text (encryption pads to whole rows). Lengths with at most
// ExhaustiveLimit permutations are enumerated; longer ones are annealed.
func solveColumnar(ctx context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	fitness := func(order []int) float64 {
		pt, _ := cipher.ColumnarDecrypt(letters, order)
		return model.PerQuadgram(pt)
	}

	var (
		best       search.Result[[]int]
		found      bool
		iterations int
		skipped    []int
	)
	for n := 2; n <= e.cfg.Analysis.MaxTranspositionLength && n <= len(letters); n++ {
		if len(letters)%n != 0 {
			skipped = append(skipped, n)
			continue
		}
		var (
			res search.Result[[]int]
			err error
		)
		if factorial(n) <= e.cfg.Analysis.ExhaustiveLimit {
			res, err = exhaustiveOrder(ctx, n, fitness)
		} else {
			p := search.Problem[[]int]{
				Initial: func(*rand.Rand) []int { return IdentityOrder(n) },
				Fitness: fitness,
				Mutate:  MutatePermutation,
			}
			res, err = search.AnnealParallel(ctx, p, e.annealOptions(types.FamilyColumnar), e.cfg.Search.Anneal.Starts)
		}
		iterations += res.Iterations
		if res.Key != nil && (!found || res.Fitness > best.Fitness) {
			best, found = res, true
		}
		if err != nil {
			if !found {
				return types.Solution{}, err
			}
			return columnarSolution(letters, best, iterations, skipped), err
		}
		e.log.Debug("columnar key length", zap.Int("length", n), zap.Ints("order", res.Key),
			zap.Float64("fitness", res.Fitness))
	}
	if !found {
		return types.Solution{}, fmt.Errorf("%w: no key length in 2..%d divides %d letters",
			cipher.ErrKeyArity, e.cfg.Analysis.MaxTranspositionLength, len(letters))
	}
	return columnarSolution(letters, best, iterations, skipped), nil
}

func columnarSolution(letters string, best search.Result[[]int], iterations int, skipped []int) types.Solution {
	pt, _ := cipher.ColumnarDecrypt(letters, best.Key)
	sol := fromResult(types.Solution{Plaintext: pt}, best).WithKey(types.ColumnarKey{Order: best.Key})
	sol.Iterations = iterations
	if len(skipped) > 0 {
		sol.Notes = append(sol.Notes, fmt.Sprintf("skipped key lengths %v: they do not divide the text", skipped))
	}
	return sol
}

// exhaustiveOrder scores every permutation of 0..n-1 in lexicographic order
// and keeps the first best.
func exhaustiveOrder(ctx context.Context, n int, fitness func([]int) float64) (search.Result[[]int], error) {
	order := IdentityOrder(n)
	res := search.Result[[]int]{Key: slices.Clone(order), Fitness: fitness(order), Converged: true}
	for nextPermutation(order) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Iterations++
		if f := fitness(order); f > res.Fitness {
			res.Key, res.Fitness = slices.Clone(order), f
		}
	}
	return res, nil
}

// nextPermutation advances p to its lexicographic successor, reporting false
// once p is the last permutation.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}
