// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exact recovers keys in closed form where the cipher's algebra or
// statistics admit it: frequency analysis for shift ciphers, pairing the
// most frequent symbols with e and t for affine ciphers, column-wise
// chi-squared for periodic polyalphabetics, a known-plaintext crib for the
// 2×2 Hill cipher, and brute force over small transposition lengths.
//
// All solvers take and return lower-case a–z letter streams.
package exact

import (
	"errors"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/modarith"
	"github.com/pdiddy/cryptanalyst/internal/stats"
)

// ErrNoCandidate is returned when no candidate key survives filtering, for
// example when every affine pairing lacks a modular inverse.
var ErrNoCandidate = errors.New("no candidate key")

// CaesarModal assumes the most frequent ciphertext letter stands for 'e'
// and returns the encryption shift. Ties between equally frequent letters go
// to the alphabetically first. An empty text yields 0.
func CaesarModal(letters string) int {
	top := stats.Frequency(letters).Top(1)
	if len(top) == 0 {
		return 0
	}
	return modarith.Mod(int(top[0])-'e', 26)
}

// CaesarChi tries every shift and returns the encryption shift whose
// decryption has the lowest chi-squared, with that score.
func CaesarChi(letters string) (int, float64) {
	best, bestChi := 0, 0.0
	for shift := 0; shift < 26; shift++ {
		chi := stats.ChiSquared(cipher.Caesar(letters, -shift))
		if shift == 0 || chi < bestChi {
			best, bestChi = shift, chi
		}
	}
	return best, bestChi
}
