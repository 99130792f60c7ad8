// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search implements generic local search over opaque key spaces:
// deterministic steepest-ascent hill climbing and simulated annealing with
// a resume-from-best restart policy.
//
// Fitness is always maximized. Callers that score with a distance (such as
// chi-squared) must negate it before handing it to an optimizer.
package search

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// Problem describes a key space to the optimizers. Keys are values: the
// functions must return fresh keys rather than mutate their argument.
// Fitness may be called from several goroutines at once when parallel
// evaluation is enabled.
type Problem[K any] struct {
	// Initial returns the starting key. rng may be used for random starts.
	Initial func(rng *rand.Rand) K

	// Fitness scores a key; higher is better.
	Fitness func(K) float64

	// Neighbors lists every key one move away, in a stable order. Required
	// by HillClimb.
	Neighbors func(K) []K

	// Mutate returns one random nearby key. Required by Anneal.
	Mutate func(K, *rand.Rand) K
}

// Result is the best key an optimizer found.
type Result[K any] struct {
	Key     K
	Fitness float64

	// Iterations counts hill-climbing rounds or annealing steps across all
	// restarts.
	Iterations int

	// Restarts counts annealing restarts from the best key.
	Restarts int

	// Converged is set when hill climbing reached a local optimum, or when
	// annealing pushed the best fitness past its final threshold.
	Converged bool
}

// NewRand returns the deterministic generator used for a seed and stream.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// evaluate scores keys with up to workers goroutines. Results keep the
// order of keys.
func evaluate[K any](ctx context.Context, fitness func(K) float64, keys []K, workers int) ([]float64, error) {
	scores := make([]float64, len(keys))
	if workers <= 1 || len(keys) < 2 {
		for i, k := range keys {
			scores[i] = fitness(k)
		}
		return scores, nil
	}
	workers = min(workers, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < len(keys); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				scores[i] = fitness(keys[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
