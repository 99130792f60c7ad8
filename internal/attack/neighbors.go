// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"math/rand/v2"
	"slices"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/stats"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// FrequencyKey guesses a substitution key by matching the ciphertext's
// letter ranking to English frequency order. Letters absent from the
// ciphertext fill the remaining slots alphabetically.
func FrequencyKey(letters string) types.SubstitutionKey {
	ranked := stats.Frequency(letters).Ranked()
	order := make([]byte, 0, 26)
	var used [26]bool
	for _, r := range ranked {
		order = append(order, r.Symbol)
		used[r.Symbol-'a'] = true
	}
	for c := byte('a'); c <= 'z'; c++ {
		if !used[c-'a'] {
			order = append(order, c)
		}
	}
	var k types.SubstitutionKey
	for i := 0; i < 26; i++ {
		k.Alphabet[stats.EnglishOrder[i]-'a'] = order[i]
	}
	return k
}

// SwapNeighbors returns the 325 keys one transposition away from k, in
// (i, j) order with i < j.
func SwapNeighbors(k types.SubstitutionKey) []types.SubstitutionKey {
	out := make([]types.SubstitutionKey, 0, 325)
	for i := 0; i < 26; i++ {
		for j := i + 1; j < 26; j++ {
			out = append(out, k.Swap(i, j))
		}
	}
	return out
}

// MutateSubstitution swaps two random slots.
func MutateSubstitution(k types.SubstitutionKey, rng *rand.Rand) types.SubstitutionKey {
	i := rng.IntN(26)
	j := rng.IntN(25)
	if j >= i {
		j++
	}
	return k.Swap(i, j)
}

// KeywordNeighbors returns every keyword that differs from kw in exactly one
// position, position by position and then alphabetically.
func KeywordNeighbors(kw string) []string {
	out := make([]string, 0, 25*len(kw))
	buf := []byte(kw)
	for i := range buf {
		orig := buf[i]
		for c := byte('a'); c <= 'z'; c++ {
			if c == orig {
				continue
			}
			buf[i] = c
			out = append(out, string(buf))
		}
		buf[i] = orig
	}
	return out
}

// PermutationSwaps returns every permutation one transposition away.
func PermutationSwaps(order []int) [][]int {
	n := len(order)
	out := make([][]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := slices.Clone(order)
			c[i], c[j] = c[j], c[i]
			out = append(out, c)
		}
	}
	return out
}

// MutatePermutation swaps two entries, rotates the whole permutation, or
// reverses a segment.
func MutatePermutation(order []int, rng *rand.Rand) []int {
	c := slices.Clone(order)
	n := len(c)
	if n < 2 {
		return c
	}
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	switch r := rng.IntN(10); {
	case r < 6:
		c[i], c[j] = c[j], c[i]
	case r < 8:
		shift := 1 + rng.IntN(n-1)
		c = append(c[shift:], c[:shift]...)
	default:
		lo, hi := min(i, j), max(i, j)
		slices.Reverse(c[lo : hi+1])
	}
	return c
}

// MutateGrid perturbs a 5×5 square: mostly a single cell swap, sometimes a
// row or column swap, or a flip of rows, columns or the whole square.
func MutateGrid(g [25]byte, rng *rand.Rand) [25]byte {
	switch r := rng.IntN(50); {
	case r < 45:
		i := rng.IntN(25)
		j := rng.IntN(24)
		if j >= i {
			j++
		}
		g[i], g[j] = g[j], g[i]
	case r == 45:
		a, b := distinctPair(rng, 5)
		for c := 0; c < 5; c++ {
			g[a*5+c], g[b*5+c] = g[b*5+c], g[a*5+c]
		}
	case r == 46:
		a, b := distinctPair(rng, 5)
		for row := 0; row < 5; row++ {
			g[row*5+a], g[row*5+b] = g[row*5+b], g[row*5+a]
		}
	case r == 47:
		var out [25]byte
		for row := 0; row < 5; row++ {
			copy(out[row*5:row*5+5], g[(4-row)*5:(4-row)*5+5])
		}
		g = out
	case r == 48:
		var out [25]byte
		for row := 0; row < 5; row++ {
			for c := 0; c < 5; c++ {
				out[row*5+c] = g[row*5+4-c]
			}
		}
		g = out
	default:
		slices.Reverse(g[:])
	}
	return g
}

func distinctPair(rng *rand.Rand, n int) (int, int) {
	a := rng.IntN(n)
	b := rng.IntN(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

// RandomGrid returns a uniformly shuffled square.
func RandomGrid(rng *rand.Rand) [25]byte {
	g := cipher.PlainGrid()
	rng.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })
	return g
}

// IdentityOrder returns 0..n-1.
func IdentityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
