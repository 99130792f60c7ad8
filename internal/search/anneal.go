// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// minTemperature keeps the acceptance test defined on the last iteration.
const minTemperature = 1e-9

// AnnealOptions configures Anneal. Thresholds are in the same units as the
// problem's fitness.
type AnnealOptions struct {
	// InitialTemp is the starting temperature; it decays linearly to zero
	// over Iterations steps.
	InitialTemp float64

	// Iterations is the length of one run.
	Iterations int

	// StaleLimit ends a run early after this many consecutive rejected
	// mutations. Zero disables the early stop.
	StaleLimit int

	// Checkpoint is the iteration at which a run is abandoned, and restarted
	// from the best key, if the best fitness is still at or below
	// StaleThreshold. Zero disables the check.
	Checkpoint     int
	StaleThreshold float64

	// FinalThreshold is the best fitness a finished run must exceed to stop;
	// otherwise annealing restarts from the best key.
	FinalThreshold float64

	// MaxRestarts bounds the number of restarts.
	MaxRestarts int

	// MaxIterations caps steps across all restarts. Zero means no cap.
	MaxIterations int

	Seed uint64

	// Observer, when set, is called after every step.
	Observer func(Step)

	Logger *zap.Logger
}

// Step reports one annealing iteration to an Observer.
type Step struct {
	Start       int
	Restart     int
	Iteration   int
	Temperature float64
	Fitness     float64
	BestFitness float64
	Accepted    bool
}

// Temperature is the linear schedule T0·(1 − i/n), floored just above zero.
func Temperature(t0 float64, i, n int) float64 {
	if n <= 0 {
		return minTemperature
	}
	return math.Max(t0*(1-float64(i)/float64(n)), minTemperature)
}

// Anneal runs simulated annealing from p.Initial. Each step draws one
// mutation: an improvement is always accepted, a worsening move with
// probability exp(dF/T), and an equal or rejected move counts as stale.
// The best key is tracked apart from the current one.
//
// Restarts resume from the best key with a fresh schedule: at Checkpoint
// when the best fitness has not passed StaleThreshold, and after a finished
// run when it has not passed FinalThreshold. Annealing stops once the best
// fitness exceeds FinalThreshold, after MaxRestarts restarts, at
// MaxIterations total steps, or when ctx is done (the best key so far is
// returned with the context error).
func Anneal[K any](ctx context.Context, p Problem[K], opts AnnealOptions) (Result[K], error) {
	return anneal(ctx, p, opts, 0)
}

func anneal[K any](ctx context.Context, p Problem[K], opts AnnealOptions, start int) (Result[K], error) {
	if p.Initial == nil || p.Fitness == nil || p.Mutate == nil {
		return Result[K]{}, errors.New("anneal needs Initial, Fitness and Mutate")
	}
	if opts.Iterations <= 0 {
		return Result[K]{}, errors.New("anneal needs a positive iteration count")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := NewRand(opts.Seed, uint64(start))

	best := p.Initial(rng)
	res := Result[K]{Key: best, Fitness: p.Fitness(best)}
	capped := false
	for {
		cur, curFit := res.Key, res.Fitness
		stale := 0
		for i := 0; i < opts.Iterations; i++ {
			if opts.MaxIterations > 0 && res.Iterations >= opts.MaxIterations {
				capped = true
				break
			}
			if err := ctx.Err(); err != nil {
				return res, err
			}
			temp := Temperature(opts.InitialTemp, i, opts.Iterations)
			child := p.Mutate(cur, rng)
			childFit := p.Fitness(child)
			dF := childFit - curFit

			accepted := dF > 0 || (dF < 0 && rng.Float64() < math.Exp(dF/temp))
			if accepted {
				cur, curFit = child, childFit
				stale = 0
			} else {
				stale++
			}
			if curFit > res.Fitness {
				res.Key, res.Fitness = cur, curFit
			}
			res.Iterations++

			if opts.Observer != nil {
				opts.Observer(Step{
					Start:       start,
					Restart:     res.Restarts,
					Iteration:   i,
					Temperature: temp,
					Fitness:     curFit,
					BestFitness: res.Fitness,
					Accepted:    accepted,
				})
			}
			if opts.StaleLimit > 0 && stale >= opts.StaleLimit {
				log.Debug("annealing run went stale",
					zap.Int("start", start), zap.Int("iteration", i), zap.Float64("best", res.Fitness))
				break
			}
			if opts.Checkpoint > 0 && i+1 == opts.Checkpoint && res.Fitness <= opts.StaleThreshold {
				log.Debug("annealing checkpoint below stale threshold",
					zap.Int("start", start), zap.Float64("best", res.Fitness),
					zap.Float64("threshold", opts.StaleThreshold))
				break
			}
		}

		if res.Fitness > opts.FinalThreshold {
			res.Converged = true
			break
		}
		if capped || res.Restarts >= opts.MaxRestarts {
			break
		}
		res.Restarts++
		log.Debug("annealing restart from best",
			zap.Int("start", start), zap.Int("restart", res.Restarts),
			zap.Int("iterations", res.Iterations), zap.Float64("best", res.Fitness))
	}
	log.Debug("annealing finished",
		zap.Int("start", start), zap.Bool("converged", res.Converged),
		zap.Int("restarts", res.Restarts), zap.Int("iterations", res.Iterations),
		zap.Float64("best", res.Fitness))
	return res, nil
}

// AnnealParallel runs starts independent annealings, each with its own
// random stream derived from opts.Seed, and returns the best. Ties go to the
// lowest start, so the outcome does not depend on scheduling. Observer, if
// set, is called from several goroutines.
func AnnealParallel[K any](ctx context.Context, p Problem[K], opts AnnealOptions, starts int) (Result[K], error) {
	if starts <= 1 {
		return anneal(ctx, p, opts, 0)
	}
	results := make([]Result[K], starts)
	g, gctx := errgroup.WithContext(ctx)
	for s := 0; s < starts; s++ {
		g.Go(func() error {
			res, err := anneal(gctx, p, opts, s)
			if err != nil {
				return err
			}
			results[s] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result[K]{}, err
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Fitness > best.Fitness {
			best = r
		}
	}
	return best, nil
}
