// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"fmt"

	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// gridAlphabet is a–z without j, the fill order of every 5×5 square.
const gridAlphabet = "abcdefghiklmnopqrstuvwxyz"

// DuoSquare returns the plaintext letter for every (row label, column label)
// bigram of a duo-substitution key. Cells are filled row by row in
// gridAlphabet order, so j never appears in the plaintext.
func DuoSquare(k types.DuoKey) (map[[2]byte]byte, error) {
	if err := validateLabels(k.Rows); err != nil {
		return nil, err
	}
	if err := validateLabels(k.Cols); err != nil {
		return nil, err
	}
	square := make(map[[2]byte]byte, 25)
	n := 0
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			square[[2]byte{k.Rows[i], k.Cols[j]}] = gridAlphabet[n]
			n++
		}
	}
	return square, nil
}

func validateLabels(labels string) error {
	if len(labels) != 5 {
		return fmt.Errorf("%w: duo labels %q must be 5 letters", ErrInvalidKey, labels)
	}
	var seen [alphabetSize]bool
	for i := 0; i < len(labels); i++ {
		c := labels[i]
		if !isLetter(c) || seen[index(c)] {
			return fmt.Errorf("%w: duo labels %q must be distinct letters", ErrInvalidKey, labels)
		}
		seen[index(c)] = true
	}
	return nil
}

// DuoEncrypt writes each plaintext letter as its (row, column) label pair.
// j is enciphered as i. Other bytes are dropped.
func DuoEncrypt(letters string, k types.DuoKey) (string, error) {
	square, err := DuoSquare(k)
	if err != nil {
		return "", err
	}
	lookup := make(map[byte][2]byte, len(square))
	for pair, p := range square {
		lookup[p] = pair
	}
	out := make([]byte, 0, 2*len(letters))
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if !isLetter(c) {
			continue
		}
		if c == 'j' {
			c = 'i'
		}
		pair := lookup[c]
		out = append(out, pair[0], pair[1])
	}
	return string(out), nil
}

// DuoDecrypt reads the ciphertext as label bigrams. An odd number of letters
// or a bigram outside the square is an error.
func DuoDecrypt(letters string, k types.DuoKey) (string, error) {
	square, err := DuoSquare(k)
	if err != nil {
		return "", err
	}
	text := LettersOnly(letters)
	if len(text)%2 != 0 {
		return "", fmt.Errorf("%w: duo ciphertext has odd length %d", ErrKeyArity, len(text))
	}
	out := make([]byte, 0, len(text)/2)
	for i := 0; i < len(text); i += 2 {
		p, ok := square[[2]byte{text[i], text[i+1]}]
		if !ok {
			return "", fmt.Errorf("%w: bigram %q is not in the square", ErrInvalidKey, text[i:i+2])
		}
		out = append(out, p)
	}
	return string(out), nil
}
