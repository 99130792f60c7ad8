// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/internal/search"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// gridText folds j into i and drops everything but letters, the alphabet
// every 5×5 square cipher works in.
func gridText(letters string) string {
	out := make([]byte, 0, len(letters))
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		switch {
		case c == 'j':
			out = append(out, 'i')
		case c >= 'a' && c <= 'z':
			out = append(out, c)
		}
	}
	return string(out)
}

// annealGrid anneals a square from random starts under decrypt.
func (e *Engine) annealGrid(ctx context.Context, f types.Family, model *quadgram.Model, decrypt func([25]byte) string) (search.Result[[25]byte], error) {
	p := search.Problem[[25]byte]{
		Initial: RandomGrid,
		Fitness: func(g [25]byte) float64 { return model.PerQuadgram(decrypt(g)) },
		Mutate:  MutateGrid,
	}
	return search.AnnealParallel(ctx, p, e.annealOptions(f), e.cfg.Search.Anneal.Starts)
}

func solvePlayfair(ctx context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	text := gridText(letters)
	if len(text)%2 != 0 {
		return types.Solution{}, fmt.Errorf("%w: playfair ciphertext has odd length %d", cipher.ErrKeyArity, len(text))
	}
	decrypt := func(g [25]byte) string {
		pt, _ := cipher.PlayfairDecrypt(text, g)
		return pt
	}
	res, err := e.annealGrid(ctx, types.FamilyPlayfair, model, decrypt)
	if res.Iterations == 0 {
		return types.Solution{}, err
	}
	key := types.GridKey{Cipher: types.FamilyPlayfair, Grid: res.Key}
	return fromResult(types.Solution{Plaintext: decrypt(res.Key)}.WithKey(key), res), err
}

func solveBifid(ctx context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	text := gridText(letters)
	period := e.cfg.Analysis.BifidPeriod
	decrypt := func(g [25]byte) string {
		pt, _ := cipher.BifidDecrypt(text, g, period)
		return pt
	}
	res, err := e.annealGrid(ctx, types.FamilyBifid, model, decrypt)
	if res.Iterations == 0 {
		return types.Solution{}, err
	}
	key := types.GridKey{Cipher: types.FamilyBifid, Grid: res.Key, Period: period}
	return fromResult(types.Solution{Plaintext: decrypt(res.Key)}.WithKey(key), res), err
}

// solveFoursquare anneals both keyed squares together; each mutation
// perturbs one of them.
func solveFoursquare(ctx context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	text := gridText(letters)
	if len(text)%2 != 0 {
		return types.Solution{}, fmt.Errorf("%w: foursquare ciphertext has odd length %d", cipher.ErrKeyArity, len(text))
	}
	decrypt := func(k types.FoursquareKey) string {
		pt, _ := cipher.FoursquareDecrypt(text, k)
		return pt
	}
	p := search.Problem[types.FoursquareKey]{
		Initial: func(rng *rand.Rand) types.FoursquareKey {
			return types.FoursquareKey{Upper: RandomGrid(rng), Lower: RandomGrid(rng)}
		},
		Fitness: func(k types.FoursquareKey) float64 { return model.PerQuadgram(decrypt(k)) },
		Mutate: func(k types.FoursquareKey, rng *rand.Rand) types.FoursquareKey {
			if rng.IntN(2) == 0 {
				k.Upper = MutateGrid(k.Upper, rng)
			} else {
				k.Lower = MutateGrid(k.Lower, rng)
			}
			return k
		},
	}
	res, err := search.AnnealParallel(ctx, p, e.annealOptions(types.FamilyFoursquare), e.cfg.Search.Anneal.Starts)
	if res.Iterations == 0 {
		return types.Solution{}, err
	}
	return fromResult(types.Solution{Plaintext: decrypt(res.Key)}.WithKey(res.Key), res), err
}
