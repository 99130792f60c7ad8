// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/exact"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/internal/search"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

func solveCaesar(_ context.Context, _ *Engine, letters string, _ *quadgram.Model) (types.Solution, error) {
	shift, _ := exact.CaesarChi(letters)
	sol := types.Solution{Plaintext: cipher.Caesar(letters, -shift), Converged: true}.
		WithKey(types.CaesarKey{Shift: shift})
	if modal := exact.CaesarModal(letters); modal != shift {
		sol.Notes = append(sol.Notes, fmt.Sprintf("most frequent letter suggests shift %d", modal))
	}
	return sol, nil
}

func solveAffine(_ context.Context, e *Engine, letters string, _ *quadgram.Model) (types.Solution, error) {
	topK := e.cfg.Analysis.AffineTopK
	if topK <= 0 {
		topK = exact.DefaultTopK
	}
	cands, err := exact.Affine(letters, topK)
	if err != nil {
		return types.Solution{}, err
	}
	best := cands[0]
	sol := types.Solution{Plaintext: best.Plaintext, Converged: true}.WithKey(best.Key)
	sol.Notes = append(sol.Notes, fmt.Sprintf("%d invertible pairings of the top %d symbols", len(cands), topK))
	return sol, nil
}

// substitutionProblem scores keys by the quadgram fitness of the text they
// decrypt, starting from start.
func substitutionProblem(letters string, model *quadgram.Model, start types.SubstitutionKey) search.Problem[types.SubstitutionKey] {
	return search.Problem[types.SubstitutionKey]{
		Initial: func(*rand.Rand) types.SubstitutionKey { return start },
		Fitness: func(k types.SubstitutionKey) float64 {
			return model.PerQuadgram(cipher.ApplyInverse(letters, k))
		},
		Neighbors: SwapNeighbors,
		Mutate:    MutateSubstitution,
	}
}

// solveSubstitution hill climbs from the frequency-order key. If the local
// optimum does not pass the family's final threshold, annealing continues
// from it.
func solveSubstitution(ctx context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	key, res, err := e.substitution(ctx, letters, model)
	sol := types.Solution{Plaintext: cipher.ApplyInverse(letters, key)}.WithKey(key)
	return fromResult(sol, res), err
}

func (e *Engine) substitution(ctx context.Context, letters string, model *quadgram.Model) (types.SubstitutionKey, search.Result[types.SubstitutionKey], error) {
	p := substitutionProblem(letters, model, FrequencyKey(letters))
	climbed, err := search.HillClimb(ctx, p, e.hillClimbOptions())
	if err != nil {
		return climbed.Key, climbed, err
	}
	opts := e.annealOptions(types.FamilySubstitution)
	if climbed.Fitness > opts.FinalThreshold || opts.Iterations <= 0 {
		climbed.Converged = climbed.Fitness > opts.FinalThreshold
		return climbed.Key, climbed, nil
	}

	p = substitutionProblem(letters, model, climbed.Key)
	annealed, err := search.AnnealParallel(ctx, p, opts, e.cfg.Search.Anneal.Starts)
	if err != nil {
		return climbed.Key, climbed, err
	}
	annealed.Iterations += climbed.Iterations
	return annealed.Key, annealed, nil
}

// DuoToMono rewrites a duo-substitution ciphertext as a monoalphabetic one:
// each distinct label bigram becomes a letter, a, b, c, ... in order of
// first appearance. It returns the rewritten text and the bigram behind each
// letter.
func DuoToMono(letters string) (string, [][2]byte, error) {
	if len(letters)%2 != 0 {
		return "", nil, fmt.Errorf("%w: duo ciphertext has odd length %d", cipher.ErrKeyArity, len(letters))
	}
	symbols := make(map[[2]byte]byte)
	var bigrams [][2]byte
	out := make([]byte, 0, len(letters)/2)
	for i := 0; i < len(letters); i += 2 {
		bg := [2]byte{letters[i], letters[i+1]}
		c, ok := symbols[bg]
		if !ok {
			if len(bigrams) == 25 {
				return "", nil, fmt.Errorf("%w: more than 25 distinct bigrams", cipher.ErrInvalidKey)
			}
			c = byte('a' + len(bigrams))
			symbols[bg] = c
			bigrams = append(bigrams, bg)
		}
		out = append(out, c)
	}
	return string(out), bigrams, nil
}

// solveDuo reduces the cipher to a monoalphabetic substitution, solves
// that, and reads the row and column labels back off the recovered mapping.
func solveDuo(ctx context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	mono, bigrams, err := DuoToMono(letters)
	if err != nil {
		return types.Solution{}, err
	}
	key, res, err := e.substitution(ctx, mono, model)
	duo, complete := duoLabels(key, bigrams)
	sol := types.Solution{Plaintext: cipher.ApplyInverse(mono, key)}.WithKey(duo)
	if !complete {
		sol.Notes = append(sol.Notes, "some square labels could not be determined and are shown as ?")
	}
	return fromResult(sol, res), err
}

// duoLabels derives row and column labels from a substitution key over the
// bigram symbols produced by DuoToMono. Labels no plaintext letter pins
// down, or that the mapping contradicts, are left as '?'.
func duoLabels(k types.SubstitutionKey, bigrams [][2]byte) (types.DuoKey, bool) {
	const grid = "abcdefghiklmnopqrstuvwxyz"
	rows := []byte("?????")
	cols := []byte("?????")
	complete := true
	for cell := 0; cell < len(grid); cell++ {
		sym := int(k.Alphabet[grid[cell]-'a'] - 'a')
		if sym >= len(bigrams) {
			continue
		}
		bg := bigrams[sym]
		r, c := cell/5, cell%5
		if rows[r] == '?' {
			rows[r] = bg[0]
		} else if rows[r] != bg[0] {
			complete = false
		}
		if cols[c] == '?' {
			cols[c] = bg[1]
		} else if cols[c] != bg[1] {
			complete = false
		}
	}
	for i := 0; i < 5; i++ {
		if rows[i] == '?' || cols[i] == '?' {
			complete = false
		}
	}
	return types.DuoKey{Rows: string(rows), Cols: string(cols)}, complete
}
