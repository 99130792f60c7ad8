// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"fmt"

	"github.com/pdiddy/cryptanalyst/internal/modarith"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// HillMatrix builds the encryption matrix of a Hill key.
func HillMatrix(k types.HillKey) (modarith.Matrix, error) {
	m, err := modarith.NewMatrix(k.N, alphabetSize, k.Entries)
	if err != nil {
		return modarith.Matrix{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return m, nil
}

// HillEncrypt multiplies each N-letter block by the key matrix. The text is
// padded with Pad to a multiple of N.
func HillEncrypt(letters string, k types.HillKey) (string, error) {
	m, err := HillMatrix(k)
	if err != nil {
		return "", err
	}
	if _, ok := m.Inverse(); !ok {
		return "", fmt.Errorf("%w: hill matrix %s is not invertible mod 26", ErrInvalidKey, k)
	}
	return hillApply(padTo(LettersOnly(letters), k.N), m), nil
}

// HillDecrypt multiplies each block by the inverse key matrix. The
// ciphertext letters must fill whole blocks; other symbols stay where they
// are.
func HillDecrypt(letters string, k types.HillKey) (string, error) {
	m, err := HillMatrix(k)
	if err != nil {
		return "", err
	}
	inv, ok := m.Inverse()
	if !ok {
		return "", fmt.Errorf("%w: hill matrix %s is not invertible mod 26", ErrInvalidKey, k)
	}
	text := LettersOnly(letters)
	if len(text)%k.N != 0 {
		return "", fmt.Errorf("%w: length %d is not a multiple of block size %d", ErrKeyArity, len(text), k.N)
	}
	return Reinsert(letters, hillApply(text, inv)), nil
}

// HillApply multiplies each block of text by m. The text length must be a
// multiple of m.N.
func HillApply(text string, m modarith.Matrix) string { return hillApply(text, m) }

func hillApply(text string, m modarith.Matrix) string {
	out := make([]byte, 0, len(text))
	vec := make([]int, m.N)
	for i := 0; i+m.N <= len(text); i += m.N {
		for j := 0; j < m.N; j++ {
			vec[j] = index(text[i+j])
		}
		for _, v := range m.MulVec(vec) {
			out = append(out, letter(v))
		}
	}
	return string(out)
}
