// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"fmt"
	"math"
	"sort"
)

// readColumns concatenates s[0::n], s[1::n], ..., s[n-1::n].
func readColumns(s string, n int) string {
	out := make([]byte, 0, len(s))
	for r := 0; r < n; r++ {
		for i := r; i < len(s); i += n {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// ScytaleEncrypt winds the plaintext around a rod of the given turns. The
// text is padded with Pad to a multiple of turns first.
func ScytaleEncrypt(letters string, turns int) (string, error) {
	if turns < 1 {
		return "", fmt.Errorf("%w: scytale turns %d must be positive", ErrInvalidKey, turns)
	}
	return readColumns(padTo(letters, turns), turns), nil
}

// ScytaleStep is the stride used to unwind a scytale: len/turns rounded half
// to even, and never below one.
func ScytaleStep(length, turns int) int {
	step := int(math.RoundToEven(float64(length) / float64(turns)))
	if step < 1 {
		step = 1
	}
	return step
}

// ScytaleDecrypt unwinds a scytale by reading every step-th letter. Any
// length is accepted; lengths that are not a multiple of turns simply do not
// invert cleanly.
func ScytaleDecrypt(letters string, turns int) (string, error) {
	if turns < 1 {
		return "", fmt.Errorf("%w: scytale turns %d must be positive", ErrInvalidKey, turns)
	}
	return readColumns(letters, ScytaleStep(len(letters), turns)), nil
}

// ValidateOrder checks that order is a permutation of 0..len(order)-1.
func ValidateOrder(order []int) error {
	if len(order) == 0 {
		return fmt.Errorf("%w: empty column order", ErrInvalidKey)
	}
	seen := make([]bool, len(order))
	for _, c := range order {
		if c < 0 || c >= len(order) || seen[c] {
			return fmt.Errorf("%w: column order %v is not a permutation", ErrInvalidKey, order)
		}
		seen[c] = true
	}
	return nil
}

// ColumnarOrder ranks the letters of a keyword alphabetically, earlier
// positions first on ties, and returns the column reading order.
func ColumnarOrder(keyword string) []int {
	order := make([]int, len(keyword))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keyword[order[a]] < keyword[order[b]]
	})
	return order
}

// ColumnarEncrypt writes the plaintext in rows of len(order) and reads the
// columns in the given order. The text is padded with Pad to fill the last
// row.
func ColumnarEncrypt(letters string, order []int) (string, error) {
	if err := ValidateOrder(order); err != nil {
		return "", err
	}
	n := len(order)
	text := padTo(letters, n)
	out := make([]byte, 0, len(text))
	for _, col := range order {
		for i := col; i < len(text); i += n {
			out = append(out, text[i])
		}
	}
	return string(out), nil
}

// ColumnarDecrypt inverts ColumnarEncrypt. The ciphertext must fill whole
// rows.
func ColumnarDecrypt(letters string, order []int) (string, error) {
	if err := ValidateOrder(order); err != nil {
		return "", err
	}
	n := len(order)
	if len(letters)%n != 0 {
		return "", fmt.Errorf("%w: length %d is not a multiple of %d columns", ErrKeyArity, len(letters), n)
	}
	return columnarDecrypt(letters, order), nil
}

// columnarDecrypt assumes a valid order and a length that fills whole rows.
func columnarDecrypt(letters string, order []int) string {
	n := len(order)
	rows := len(letters) / n
	out := make([]byte, len(letters))
	for i, col := range order {
		chunk := letters[i*rows : (i+1)*rows]
		for r := 0; r < rows; r++ {
			out[r*n+col] = chunk[r]
		}
	}
	return string(out)
}
