// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exact

import (
	"fmt"
	"sort"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/modarith"
	"github.com/pdiddy/cryptanalyst/internal/stats"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// DefaultTopK is the number of most frequent ciphertext symbols paired
// against e and t.
const DefaultTopK = 5

// AffineCandidate is one affine key derived from a symbol pairing.
type AffineCandidate struct {
	Key        types.AffineKey
	Plaintext  string
	ChiSquared float64
}

// AffinePairings solves a·c1 + b = e, a·c2 + b = t over Z/26 for every
// ordered pair (c1, c2) of distinct symbols among the topK most frequent
// ciphertext letters. Pairings where c1 − c2 has no inverse are skipped.
// The returned keys are encryption keys, deduplicated, in pairing order.
func AffinePairings(letters string, topK int) []types.AffineKey {
	if topK < 2 {
		topK = DefaultTopK
	}
	top := stats.Frequency(letters).Top(topK)
	const e, t = 4, 19

	var keys []types.AffineKey
	seen := make(map[types.AffineKey]bool)
	for _, s1 := range top {
		for _, s2 := range top {
			if s1 == s2 {
				continue
			}
			c1, c2 := int(s1-'a'), int(s2-'a')
			inv, ok := modarith.Inverse(c1-c2, 26)
			if !ok {
				continue
			}
			// Decryption map p = da·c + db.
			da := modarith.Mod((e-t)*inv, 26)
			db := modarith.Mod(e-da*c1, 26)
			a, ok := modarith.Inverse(da, 26)
			if !ok {
				continue
			}
			key := types.AffineKey{A: a, B: modarith.Mod(-a*db, 26)}
			if seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// Affine ranks every key from AffinePairings by the chi-squared of its
// decryption, lowest first. ErrNoCandidate is returned when no pairing has
// an inverse.
func Affine(letters string, topK int) ([]AffineCandidate, error) {
	keys := AffinePairings(letters, topK)
	if len(keys) == 0 {
		return nil, fmt.Errorf("affine: %w among the top %d symbols", ErrNoCandidate, topK)
	}
	out := make([]AffineCandidate, 0, len(keys))
	for _, k := range keys {
		pt, err := cipher.AffineDecrypt(letters, k)
		if err != nil {
			continue
		}
		out = append(out, AffineCandidate{Key: k, Plaintext: pt, ChiSquared: stats.ChiSquared(pt)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChiSquared < out[j].ChiSquared })
	return out, nil
}
