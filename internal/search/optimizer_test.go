// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// sortProblem searches permutations of 0..n-1 for the identity, scoring
// a permutation by minus its total displacement.
func sortProblem(n int) Problem[[]int] {
	return Problem[[]int]{
		Initial: func(_ *rand.Rand) []int {
			k := make([]int, n)
			for i := range k {
				k[i] = n - 1 - i
			}
			return k
		},
		Fitness: func(k []int) float64 {
			d := 0
			for i, v := range k {
				if v > i {
					d += v - i
				} else {
					d += i - v
				}
			}
			return -float64(d)
		},
		Neighbors: func(k []int) [][]int {
			var out [][]int
			for i := 0; i < len(k); i++ {
				for j := i + 1; j < len(k); j++ {
					c := slices.Clone(k)
					c[i], c[j] = c[j], c[i]
					out = append(out, c)
				}
			}
			return out
		},
		Mutate: func(k []int, rng *rand.Rand) []int {
			c := slices.Clone(k)
			i, j := rng.IntN(len(c)), rng.IntN(len(c))
			c[i], c[j] = c[j], c[i]
			return c
		},
	}
}

func identity(n int) []int {
	k := make([]int, n)
	for i := range k {
		k[i] = i
	}
	return k
}

func TestHillClimbReachesOptimum(t *testing.T) {
	p := sortProblem(9)
	res, err := HillClimb(context.Background(), p, HillClimbOptions{Logger: zap.NewNop()})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, identity(9), res.Key)
	assert.Equal(t, 0.0, res.Fitness)
	assert.Positive(t, res.Iterations)
}

func TestHillClimbWorkersDoNotChangeResult(t *testing.T) {
	p := sortProblem(10)
	seq, err := HillClimb(context.Background(), p, HillClimbOptions{Workers: 1})
	require.NoError(t, err)
	for _, workers := range []int{2, 4, 16} {
		par, err := HillClimb(context.Background(), p, HillClimbOptions{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, seq, par, "workers=%d", workers)
	}
}

func TestHillClimbRoundCap(t *testing.T) {
	res, err := HillClimb(context.Background(), sortProblem(9), HillClimbOptions{MaxRounds: 2})
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 2, res.Iterations)
}

func TestHillClimbMovesOnlyOnStrictImprovement(t *testing.T) {
	flat := Problem[int]{
		Initial:   func(*rand.Rand) int { return 0 },
		Fitness:   func(int) float64 { return 1 },
		Neighbors: func(k int) []int { return []int{k + 1, k + 2} },
	}
	res, err := HillClimb(context.Background(), flat, HillClimbOptions{})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 0, res.Key)
	assert.Equal(t, 0, res.Iterations)
}

func TestHillClimbCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := HillClimb(ctx, sortProblem(5), HillClimbOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{4, 3, 2, 1, 0}, res.Key)
}

func TestHillClimbRequiresFunctions(t *testing.T) {
	_, err := HillClimb(context.Background(), Problem[int]{}, HillClimbOptions{})
	assert.Error(t, err)
}

func annealOpts() AnnealOptions {
	return AnnealOptions{
		InitialTemp:    1,
		Iterations:     5000,
		FinalThreshold: -0.5,
		MaxRestarts:    5,
		Seed:           7,
		Logger:         zap.NewNop(),
	}
}

func TestAnnealFindsOptimum(t *testing.T) {
	res, err := Anneal(context.Background(), sortProblem(8), annealOpts())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, identity(8), res.Key)
	assert.Equal(t, 0.0, res.Fitness)
}

func TestAnnealBestIsMonotonic(t *testing.T) {
	opts := annealOpts()
	var steps []Step
	opts.Observer = func(s Step) { steps = append(steps, s) }

	res, err := Anneal(context.Background(), sortProblem(8), opts)
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	worsened := false
	for i := 1; i < len(steps); i++ {
		assert.GreaterOrEqual(t, steps[i].BestFitness, steps[i-1].BestFitness, "step %d", i)
		assert.GreaterOrEqual(t, steps[i].BestFitness, steps[i].Fitness)
		if steps[i].Fitness < steps[i-1].Fitness {
			worsened = true
		}
	}
	assert.True(t, worsened, "annealing should accept some worsening moves")
	assert.Equal(t, res.Fitness, steps[len(steps)-1].BestFitness)
	assert.Equal(t, res.Iterations, len(steps))
}

func TestAnnealIsDeterministic(t *testing.T) {
	a, err := Anneal(context.Background(), sortProblem(8), annealOpts())
	require.NoError(t, err)
	b, err := Anneal(context.Background(), sortProblem(8), annealOpts())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTemperature(t *testing.T) {
	assert.InDelta(t, 10.0, Temperature(10, 0, 100), 1e-12)
	assert.InDelta(t, 5.0, Temperature(10, 50, 100), 1e-12)
	assert.Greater(t, Temperature(10, 100, 100), 0.0)
	assert.Less(t, Temperature(10, 100, 100), 1e-6)
}

// flat never improves: every mutation is an equal move and counts as stale.
func flat(fitness float64) Problem[int] {
	return Problem[int]{
		Initial: func(*rand.Rand) int { return 0 },
		Fitness: func(int) float64 { return fitness },
		Mutate:  func(k int, _ *rand.Rand) int { return k },
	}
}

func TestAnnealRestartPolicy(t *testing.T) {
	tests := []struct {
		name       string
		fitness    float64
		opts       AnnealOptions
		restarts   int
		iterations int
		converged  bool
	}{
		{
			name:       "stale runs restart until the cap",
			opts:       AnnealOptions{Iterations: 100, StaleLimit: 10, FinalThreshold: 1, MaxRestarts: 3},
			restarts:   3,
			iterations: 40,
		},
		{
			name:       "checkpoint below stale threshold",
			opts:       AnnealOptions{Iterations: 100, Checkpoint: 5, StaleThreshold: 0, FinalThreshold: 1, MaxRestarts: 2},
			restarts:   2,
			iterations: 15,
		},
		{
			name:       "checkpoint above stale threshold runs to the end",
			opts:       AnnealOptions{Iterations: 100, Checkpoint: 5, StaleThreshold: -1, FinalThreshold: 1},
			iterations: 100,
		},
		{
			name:       "global iteration cap",
			opts:       AnnealOptions{Iterations: 100, MaxIterations: 250, FinalThreshold: 1, MaxRestarts: 10},
			restarts:   2,
			iterations: 250,
		},
		{
			name:       "final threshold met",
			fitness:    5,
			opts:       AnnealOptions{Iterations: 100, StaleLimit: 10, FinalThreshold: 1, MaxRestarts: 10},
			iterations: 10,
			converged:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Anneal(context.Background(), flat(tt.fitness), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.restarts, res.Restarts)
			assert.Equal(t, tt.iterations, res.Iterations)
			assert.Equal(t, tt.converged, res.Converged)
		})
	}
}

func TestAnnealRestartsFromBest(t *testing.T) {
	// Every mutation is worse, so the best key stays at the start while the
	// hot schedule lets the current key drift away.
	drift := Problem[int]{
		Initial: func(*rand.Rand) int { return 0 },
		Fitness: func(k int) float64 { return -float64(k) },
		Mutate:  func(k int, _ *rand.Rand) int { return k + 1 },
	}
	var steps []Step
	opts := AnnealOptions{
		InitialTemp:    100,
		Iterations:     50,
		FinalThreshold: 1,
		MaxRestarts:    3,
		Observer:       func(s Step) { steps = append(steps, s) },
	}
	res, err := Anneal(context.Background(), drift, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Key)
	assert.Equal(t, 3, res.Restarts)

	minFit := 0.0
	for _, s := range steps {
		if s.Iteration == 0 {
			assert.GreaterOrEqual(t, s.Fitness, -1.0, "restart %d must resume from the best key", s.Restart)
		}
		minFit = min(minFit, s.Fitness)
	}
	assert.Less(t, minFit, -5.0)
}

func TestAnnealCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Anneal(ctx, sortProblem(5), annealOpts())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{4, 3, 2, 1, 0}, res.Key)
}

func TestAnnealValidation(t *testing.T) {
	_, err := Anneal(context.Background(), Problem[int]{}, annealOpts())
	assert.Error(t, err)
	_, err = Anneal(context.Background(), flat(0), AnnealOptions{})
	assert.Error(t, err)
}

func TestAnnealParallel(t *testing.T) {
	p := sortProblem(8)
	single, err := Anneal(context.Background(), p, annealOpts())
	require.NoError(t, err)
	one, err := AnnealParallel(context.Background(), p, annealOpts(), 1)
	require.NoError(t, err)
	assert.Equal(t, single, one)

	a, err := AnnealParallel(context.Background(), p, annealOpts(), 4)
	require.NoError(t, err)
	b, err := AnnealParallel(context.Background(), p, annealOpts(), 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a.Fitness, single.Fitness)
}

func TestAnnealParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AnnealParallel(ctx, sortProblem(6), annealOpts(), 3)
	assert.ErrorIs(t, err, context.Canceled)
}
