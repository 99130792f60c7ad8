// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// DefaultMaxRounds caps hill climbing when no cap is configured.
const DefaultMaxRounds = 1000

// HillClimbOptions configures HillClimb.
type HillClimbOptions struct {
	// MaxRounds caps the number of moves; zero means DefaultMaxRounds.
	MaxRounds int

	// Workers evaluates neighbors in parallel when greater than one.
	Workers int

	// Seed feeds Problem.Initial.
	Seed uint64

	Logger *zap.Logger
}

// HillClimb starts from p.Initial and repeatedly moves to the best-scoring
// neighbor while it strictly improves on the current key. Ties between
// neighbors go to the earliest in p.Neighbors order, so the result does not
// depend on Workers. When ctx is cancelled the best key so far is returned
// together with the context error.
func HillClimb[K any](ctx context.Context, p Problem[K], opts HillClimbOptions) (Result[K], error) {
	if p.Initial == nil || p.Fitness == nil || p.Neighbors == nil {
		return Result[K]{}, errors.New("hill climb needs Initial, Fitness and Neighbors")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	cur := p.Initial(NewRand(opts.Seed, 0))
	res := Result[K]{Key: cur, Fitness: p.Fitness(cur)}
	for res.Iterations < maxRounds {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		neighbors := p.Neighbors(res.Key)
		scores, err := evaluate(ctx, p.Fitness, neighbors, opts.Workers)
		if err != nil {
			return res, err
		}
		best := -1
		bestFit := res.Fitness
		for i, f := range scores {
			if f > bestFit {
				best, bestFit = i, f
			}
		}
		if best < 0 {
			res.Converged = true
			log.Debug("hill climb reached local optimum",
				zap.Int("rounds", res.Iterations), zap.Float64("fitness", res.Fitness))
			return res, nil
		}
		res.Key, res.Fitness = neighbors[best], bestFit
		res.Iterations++
	}
	log.Debug("hill climb hit round cap",
		zap.Int("rounds", res.Iterations), zap.Float64("fitness", res.Fitness))
	return res, nil
}
