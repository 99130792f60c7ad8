// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"context"
	"fmt"

	"github.com/pdiddy/cryptanalyst/internal/exact"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// solveHill recovers a 2×2 key from the configured crib. Larger matrices
// need more known plaintext than a single crib provides.
func solveHill(_ context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error) {
	crib := e.cfg.Analysis.HillCrib
	if crib == "" {
		crib = exact.DefaultCrib
	}
	r, err := exact.Hill2(letters, crib, e.cfg.Analysis.HillCribOffset, model)
	if err != nil {
		return types.Solution{}, err
	}
	sol := types.Solution{Plaintext: r.Plaintext, Converged: true}.WithKey(r.Key)
	sol.Notes = append(sol.Notes, fmt.Sprintf("crib %q at offset %d", crib, r.Offset))
	return sol, nil
}
