// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/normalize"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/internal/search"
	"github.com/pdiddy/cryptanalyst/internal/stats"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// Engine solves ciphertexts with a fixed configuration and quadgram model.
// It is safe for concurrent use.
type Engine struct {
	cfg      types.EngineConfig
	provider *quadgram.Provider
	log      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for solver and optimizer diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithProvider replaces the default file-backed quadgram provider.
func WithProvider(p *quadgram.Provider) Option {
	return func(e *Engine) { e.provider = p }
}

// New returns an Engine. Unless WithProvider is given, the quadgram model
// is loaded from cfg.Corpus.Path on first use.
func New(cfg types.EngineConfig, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, log: zap.NewNop()}
	for _, o := range opts {
		o(e)
	}
	if e.provider == nil {
		e.provider = quadgram.FileProvider(cfg.Corpus.Path, cfg.Corpus.UnseenPenalty)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() types.EngineConfig { return e.cfg }

func (e *Engine) keep() []rune { return []rune(e.cfg.Analysis.Keep) }

func (e *Engine) model() (*quadgram.Model, error) {
	m, err := e.provider.Model()
	if err != nil {
		return nil, fmt.Errorf("loading quadgram model: %w", err)
	}
	return m, nil
}

// Solve recovers the key of raw assuming it was enciphered with family.
// A missing corpus fails the call before any solving starts. When ctx is
// cancelled during a search the best solution found so far is returned with
// the context error.
func (e *Engine) Solve(ctx context.Context, family types.Family, raw string) (types.Solution, error) {
	solve, ok := solvers[family]
	if !ok {
		return types.Solution{}, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	model, err := e.model()
	if err != nil {
		return types.Solution{}, err
	}
	text := normalize.Normalize(raw, e.keep()...)
	if text.Letters == "" {
		return types.Solution{}, ErrNoLetters
	}

	e.log.Debug("solving", zap.String("family", string(family)), zap.Int("letters", len(text.Letters)))
	sol, err := solve(ctx, e, text.Letters, model)
	if err != nil && sol.Key == nil {
		return types.Solution{}, fmt.Errorf("%s: %w", family, err)
	}
	sol.Family = family
	sol = finish(sol, text, model)
	e.log.Debug("solved", zap.String("family", string(family)), zap.String("key", sol.KeyText),
		zap.Float64("per_quadgram", sol.PerQuadgram), zap.Bool("converged", sol.Converged))
	return sol, err
}

// finish scores the plaintext stream and pours it back into the original
// layout when the family keeps letter positions.
func finish(sol types.Solution, text normalize.Text, model *quadgram.Model) types.Solution {
	pt := sol.Plaintext
	sol.Fitness = model.Fitness(pt)
	sol.PerQuadgram = model.PerQuadgram(pt)
	sol.ChiSquared = stats.ChiSquared(pt)
	if !sol.Family.Transposition() {
		sol.Plaintext = text.Mask.Restore(pt)
	}
	return sol
}

// AutoOutput holds ranked solutions and per-family failures.
type AutoOutput struct {
	Solutions    []types.Solution
	FamilyErrors []string
}

// Auto solves raw under every family in families (all families when empty)
// concurrently and ranks the solutions by per-quadgram fitness, best first.
// A family that fails is reported on w and in FamilyErrors; Auto fails only
// when the model cannot be loaded, ctx is done, or every family fails.
func (e *Engine) Auto(ctx context.Context, raw string, families []types.Family, w io.Writer) (AutoOutput, error) {
	if len(families) == 0 {
		families = types.Families()
	}
	for _, f := range families {
		if !Supported(f) {
			return AutoOutput{}, fmt.Errorf("%w: %q", ErrUnknownFamily, f)
		}
	}
	if _, err := e.model(); err != nil {
		return AutoOutput{}, err
	}

	type familyResult struct {
		sol types.Solution
		err error
	}
	results := make([]familyResult, len(families))

	g, gctx := errgroup.WithContext(ctx)
	if e.cfg.Search.Workers > 0 {
		g.SetLimit(e.cfg.Search.Workers)
	}
	for i, f := range families {
		g.Go(func() error {
			sol, err := e.Solve(gctx, f, raw)
			results[i] = familyResult{sol: sol, err: err}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return AutoOutput{}, err
	}

	var out AutoOutput
	for i, r := range results {
		if r.err != nil {
			out.FamilyErrors = append(out.FamilyErrors, fmt.Sprintf("%s: %v", families[i], r.err))
			fmt.Fprintf(w, "warning: family %s failed: %v\n", families[i], r.err)
			continue
		}
		out.Solutions = append(out.Solutions, r.sol)
	}
	if len(out.Solutions) == 0 {
		return out, fmt.Errorf("every family failed (%d)", len(families))
	}
	sort.SliceStable(out.Solutions, func(i, j int) bool {
		return out.Solutions[i].PerQuadgram > out.Solutions[j].PerQuadgram
	})
	return out, nil
}

// Decrypt deciphers raw with a known key. Scores are filled in when the
// quadgram model is available; without it the plaintext is still returned.
func (e *Engine) Decrypt(ctx context.Context, key types.Key, raw string) (types.Solution, error) {
	if err := ctx.Err(); err != nil {
		return types.Solution{}, err
	}
	text := normalize.Normalize(raw, e.keep()...)
	pt, err := cipher.Decrypt(key, text.Letters)
	if err != nil {
		return types.Solution{}, fmt.Errorf("decrypting %s: %w", key.Family(), err)
	}
	sol := types.Solution{Family: key.Family(), Plaintext: pt, Converged: true}.WithKey(key)
	model, err := e.model()
	if err != nil {
		e.log.Debug("decrypting without scores", zap.Error(err))
		sol.ChiSquared = stats.ChiSquared(pt)
		if !sol.Family.Transposition() {
			sol.Plaintext = text.Mask.Restore(pt)
		}
		sol.Notes = append(sol.Notes, "quadgram model unavailable; fitness not scored")
		return sol, nil
	}
	return finish(sol, text, model), nil
}

// Encrypt enciphers raw with key. Formatting is kept when the output has as
// many letters as the input and the family keeps letter positions.
func (e *Engine) Encrypt(ctx context.Context, key types.Key, raw string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := normalize.Normalize(raw, e.keep()...)
	ct, err := cipher.Encrypt(key, text.Letters)
	if err != nil {
		return "", fmt.Errorf("encrypting %s: %w", key.Family(), err)
	}
	if key.Family().Transposition() {
		return ct, nil
	}
	return text.Mask.Restore(ct), nil
}

func (e *Engine) hillClimbOptions() search.HillClimbOptions {
	return search.HillClimbOptions{
		MaxRounds: e.cfg.Search.HillClimb.MaxRounds,
		Workers:   e.cfg.Search.Workers,
		Seed:      e.cfg.Search.Seed,
		Logger:    e.log,
	}
}

func (e *Engine) annealOptions(f types.Family) search.AnnealOptions {
	a := e.cfg.Search.Anneal
	th := e.cfg.ThresholdsFor(f)
	return search.AnnealOptions{
		InitialTemp:    a.InitialTemp,
		Iterations:     a.Iterations,
		StaleLimit:     a.StaleLimit,
		Checkpoint:     a.Checkpoint,
		StaleThreshold: th.StaleThreshold,
		FinalThreshold: th.FinalThreshold,
		MaxRestarts:    a.MaxRestarts,
		MaxIterations:  a.MaxIterations,
		Seed:           e.cfg.Search.Seed,
		Logger:         e.log.With(zap.String("family", string(f))),
	}
}

func (e *Engine) periodOptions() stats.PeriodOptions {
	a := e.cfg.Analysis
	return stats.PeriodOptions{MinPeriod: a.MinPeriod, MaxPeriod: a.MaxPeriod, Threshold: a.ICThreshold}
}

// fromResult copies optimizer statistics onto a solution.
func fromResult[K any](sol types.Solution, r search.Result[K]) types.Solution {
	sol.Iterations = r.Iterations
	sol.Restarts = r.Restarts
	sol.Converged = r.Converged
	return sol
}
