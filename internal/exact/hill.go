// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exact

import (
	"errors"
	"fmt"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/modarith"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// DefaultCrib is the plaintext assumed to appear somewhere in a Hill
// ciphertext.
const DefaultCrib = "that"

// ErrBadCrib reports a crib that cannot seed a 2×2 solve.
var ErrBadCrib = errors.New("crib must be four letters forming an invertible matrix")

// HillResult is a Hill key recovered from a crib.
type HillResult struct {
	Key       types.HillKey
	Plaintext string
	Fitness   float64
	Offset    int
}

// Hill2 recovers a 2×2 Hill key from a four-letter crib. The crib's two
// bigrams form the columns of P and the ciphertext bigrams at offset form
// the columns of C; since K·P = C, K = C·P⁻¹. A negative offset drags the
// crib across every block-aligned offset and keeps the key whose decryption
// scores best under model (per-quadgram fitness). Offsets whose ciphertext
// yields a non-invertible key are skipped.
//
// Blocks and offsets count a–z letters only. Any other symbols in letters
// are put back at their positions in the plaintext.
func Hill2(letters, crib string, offset int, model *quadgram.Model) (HillResult, error) {
	stream := letters
	letters = cipher.LettersOnly(letters)
	if len(letters)%2 != 0 {
		return HillResult{}, fmt.Errorf("hill: %w: %d letters is odd", cipher.ErrKeyArity, len(letters))
	}
	p, err := bigramMatrix(crib)
	if err != nil {
		return HillResult{}, err
	}
	pInv, ok := p.Inverse()
	if !ok {
		return HillResult{}, fmt.Errorf("%w: %q", ErrBadCrib, crib)
	}

	offsets := []int{offset}
	if offset < 0 {
		offsets = offsets[:0]
		for o := 0; o+4 <= len(letters); o += 2 {
			offsets = append(offsets, o)
		}
	} else if offset%2 != 0 || offset+4 > len(letters) {
		return HillResult{}, fmt.Errorf("hill: %w: offset %d is not a block boundary inside the text", cipher.ErrKeyArity, offset)
	}

	var best HillResult
	found := false
	for _, o := range offsets {
		c, err := bigramMatrix(letters[o : o+4])
		if err != nil {
			continue
		}
		k := c.Mul(pInv)
		kInv, ok := k.Inverse()
		if !ok {
			continue
		}
		pt := cipher.HillApply(letters, kInv)
		fit := model.PerQuadgram(pt)
		if !found || fit > best.Fitness {
			best = HillResult{
				Key:       types.HillKey{N: 2, Entries: k.Data},
				Plaintext: cipher.Reinsert(stream, pt),
				Fitness:   fit,
				Offset:    o,
			}
			found = true
		}
	}
	if !found {
		return HillResult{}, fmt.Errorf("hill: %w for crib %q", ErrNoCandidate, crib)
	}
	return best, nil
}

// bigramMatrix lays out abcd as the 2×2 matrix with columns (a,b) and (c,d).
func bigramMatrix(s string) (modarith.Matrix, error) {
	if len(s) != 4 {
		return modarith.Matrix{}, fmt.Errorf("%w: %q", ErrBadCrib, s)
	}
	v := make([]int, 4)
	for i := 0; i < 4; i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return modarith.Matrix{}, fmt.Errorf("%w: %q", ErrBadCrib, s)
		}
		v[i] = int(s[i] - 'a')
	}
	return modarith.NewMatrix(2, 26, []int{v[0], v[2], v[1], v[3]})
}
