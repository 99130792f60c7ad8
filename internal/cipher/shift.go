// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"fmt"

	"github.com/pdiddy/cryptanalyst/internal/modarith"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// Caesar shifts every letter forward by shift (negative shifts go back).
// Caesar(Caesar(p, k), -k) == p.
func Caesar(letters string, shift int) string {
	out := []byte(letters)
	for i, c := range out {
		if isLetter(c) {
			out[i] = letter(index(c) + shift)
		}
	}
	return string(out)
}

// AffineEncrypt maps each letter p to A·p + B (mod 26).
func AffineEncrypt(letters string, k types.AffineKey) (string, error) {
	if _, ok := modarith.Inverse(k.A, alphabetSize); !ok {
		return "", fmt.Errorf("%w: affine multiplier %d is not coprime with 26", ErrInvalidKey, k.A)
	}
	return affineMap(letters, k.A, k.B), nil
}

// AffineDecrypt maps each letter c to A⁻¹·(c − B) (mod 26).
func AffineDecrypt(letters string, k types.AffineKey) (string, error) {
	inv, ok := modarith.Inverse(k.A, alphabetSize)
	if !ok {
		return "", fmt.Errorf("%w: affine multiplier %d is not coprime with 26", ErrInvalidKey, k.A)
	}
	return affineMap(letters, inv, -inv*k.B), nil
}

// affineMap applies x -> a·x + b to every letter.
func affineMap(letters string, a, b int) string {
	out := []byte(letters)
	for i, c := range out {
		if isLetter(c) {
			out[i] = letter(a*index(c) + b)
		}
	}
	return string(out)
}
