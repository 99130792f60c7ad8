// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package attack recovers keys for every supported cipher family. Each
// family has a solver that picks the cheapest adequate method: a closed-form
// solver from package exact where one exists, otherwise a local search from
// package search over that family's key space, scored with the quadgram
// model. The Engine wraps the solvers with normalization, scoring and
// formatting, and can fan a ciphertext out to many families at once.
package attack

import (
	"context"
	"errors"

	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

var (
	// ErrUnknownFamily is returned for a family without a solver.
	ErrUnknownFamily = errors.New("unknown cipher family")

	// ErrNoLetters is returned when the ciphertext has nothing to solve.
	ErrNoLetters = errors.New("ciphertext contains no letters")
)

// solver recovers a key from a normalized letter stream. It returns a
// Solution with Key and the plaintext letter stream set, plus whatever
// search statistics it has; the Engine fills in the scores.
type solver func(ctx context.Context, e *Engine, letters string, model *quadgram.Model) (types.Solution, error)

var solvers = map[types.Family]solver{
	types.FamilyCaesar:          solveCaesar,
	types.FamilyAffine:          solveAffine,
	types.FamilyVigenere:        solveVigenere,
	types.FamilyBeaufort:        solveBeaufort,
	types.FamilyAutokey:         solveAutokey,
	types.FamilySubstitution:    solveSubstitution,
	types.FamilyDuoSubstitution: solveDuo,
	types.FamilyScytale:         solveScytale,
	types.FamilyColumnar:        solveColumnar,
	types.FamilyPlayfair:        solvePlayfair,
	types.FamilyBifid:           solveBifid,
	types.FamilyFoursquare:      solveFoursquare,
	types.FamilyHill:            solveHill,
	types.FamilyAffineVigenere:  solveAffineVigenere,
	types.FamilyScytaleVigenere: solveScytaleVigenere,
}

// Supported reports whether f has a solver.
func Supported(f types.Family) bool {
	_, ok := solvers[f]
	return ok
}
