// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"fmt"

	"github.com/pdiddy/cryptanalyst/internal/modarith"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// AffineVigenereEncrypt applies the keyword as a Vigenère and then multiplies
// every letter by A.
func AffineVigenereEncrypt(letters string, k types.AffineVigenereKey) (string, error) {
	if _, ok := modarith.Inverse(k.A, alphabetSize); !ok {
		return "", fmt.Errorf("%w: affine multiplier %d is not coprime with 26", ErrInvalidKey, k.A)
	}
	vig, err := VigenereEncrypt(letters, k.Keyword)
	if err != nil {
		return "", err
	}
	return affineMap(vig, k.A, 0), nil
}

// AffineVigenereDecrypt divides every letter by A and then removes the
// Vigenère keyword.
func AffineVigenereDecrypt(letters string, k types.AffineVigenereKey) (string, error) {
	inv, ok := modarith.Inverse(k.A, alphabetSize)
	if !ok {
		return "", fmt.Errorf("%w: affine multiplier %d is not coprime with 26", ErrInvalidKey, k.A)
	}
	return VigenereDecrypt(affineMap(letters, inv, 0), k.Keyword)
}

// ScytaleVigenereEncrypt applies the keyword as a Vigenère and then winds the
// result on a scytale.
func ScytaleVigenereEncrypt(letters string, k types.ScytaleVigenereKey) (string, error) {
	vig, err := VigenereEncrypt(letters, k.Keyword)
	if err != nil {
		return "", err
	}
	return ScytaleEncrypt(vig, k.Turns)
}

// ScytaleVigenereDecrypt unwinds the scytale and then removes the keyword.
func ScytaleVigenereDecrypt(letters string, k types.ScytaleVigenereKey) (string, error) {
	unwound, err := ScytaleDecrypt(letters, k.Turns)
	if err != nil {
		return "", err
	}
	return VigenereDecrypt(unwound, k.Keyword)
}
