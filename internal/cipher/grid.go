// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"fmt"

	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// KeywordGrid fills a 5×5 square with the keyword's distinct letters (j read
// as i) followed by the rest of the alphabet.
func KeywordGrid(keyword string) [25]byte {
	var grid [25]byte
	var used [alphabetSize]bool
	used[index('j')] = true
	n := 0
	add := func(c byte) {
		if c == 'j' {
			c = 'i'
		}
		if !isLetter(c) || used[index(c)] {
			return
		}
		used[index(c)] = true
		grid[n] = c
		n++
	}
	for i := 0; i < len(keyword); i++ {
		add(keyword[i])
	}
	for i := 0; i < len(gridAlphabet); i++ {
		add(gridAlphabet[i])
	}
	return grid
}

// PlainGrid is the unkeyed square used as the plaintext squares of
// Foursquare.
func PlainGrid() [25]byte { return KeywordGrid("") }

// ValidateGrid checks that a square holds each letter of gridAlphabet once.
func ValidateGrid(grid [25]byte) error {
	var seen [alphabetSize]bool
	for _, c := range grid {
		if !isLetter(c) || c == 'j' || seen[index(c)] {
			return fmt.Errorf("%w: square %q must hold a-z without j, once each", ErrInvalidKey, string(grid[:]))
		}
		seen[index(c)] = true
	}
	return nil
}

// positions maps each letter to its cell index; j shares i's cell.
func positions(grid [25]byte) [alphabetSize]int {
	var pos [alphabetSize]int
	for i, c := range grid {
		pos[index(c)] = i
	}
	pos[index('j')] = pos[index('i')]
	return pos
}

// gridLetters keeps a–z only and folds j into i.
func gridLetters(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) {
			continue
		}
		if c == 'j' {
			c = 'i'
		}
		out = append(out, c)
	}
	return out
}

// BifidEncrypt writes each letter's row and column coordinates, reads all
// rows then all columns of each period-long block, and regroups the digits
// into letters. A period of zero treats the whole text as one block.
func BifidEncrypt(letters string, grid [25]byte, period int) (string, error) {
	if err := ValidateGrid(grid); err != nil {
		return "", err
	}
	text := gridLetters(letters)
	pos := positions(grid)
	out := make([]byte, 0, len(text))
	for _, block := range blocks(text, period) {
		digits := make([]int, 0, 2*len(block))
		for _, c := range block {
			digits = append(digits, pos[index(c)]/5)
		}
		for _, c := range block {
			digits = append(digits, pos[index(c)]%5)
		}
		for i := 0; i < len(digits); i += 2 {
			out = append(out, grid[digits[i]*5+digits[i+1]])
		}
	}
	return string(out), nil
}

// BifidDecrypt inverts BifidEncrypt with the same period.
func BifidDecrypt(letters string, grid [25]byte, period int) (string, error) {
	if err := ValidateGrid(grid); err != nil {
		return "", err
	}
	return bifidDecrypt(gridLetters(letters), grid, period), nil
}

func bifidDecrypt(text []byte, grid [25]byte, period int) string {
	pos := positions(grid)
	out := make([]byte, 0, len(text))
	for _, block := range blocks(text, period) {
		digits := make([]int, 0, 2*len(block))
		for _, c := range block {
			p := pos[index(c)]
			digits = append(digits, p/5, p%5)
		}
		n := len(block)
		for i := 0; i < n; i++ {
			out = append(out, grid[digits[i]*5+digits[n+i]])
		}
	}
	return string(out)
}

func blocks(text []byte, period int) [][]byte {
	if period <= 0 || period >= len(text) {
		return [][]byte{text}
	}
	var out [][]byte
	for i := 0; i < len(text); i += period {
		end := min(i+period, len(text))
		out = append(out, text[i:end])
	}
	return out
}

// FoursquareEncrypt enciphers digraphs: the first letter is located in the
// upper-left plain square, the second in the lower-right one, and the
// ciphertext letters are read from the keyed squares at the opposite
// corners. An odd-length text is padded with Pad.
func FoursquareEncrypt(letters string, k types.FoursquareKey) (string, error) {
	if err := validateFoursquare(k); err != nil {
		return "", err
	}
	text := gridLetters(letters)
	if len(text)%2 != 0 {
		text = append(text, Pad)
	}
	plain := positions(PlainGrid())
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i += 2 {
		a, b := plain[index(text[i])], plain[index(text[i+1])]
		r1, c1 := a/5, a%5
		r2, c2 := b/5, b%5
		out = append(out, k.Upper[r1*5+c2], k.Lower[r2*5+c1])
	}
	return string(out), nil
}

// FoursquareDecrypt inverts FoursquareEncrypt. The ciphertext must have an
// even number of letters.
func FoursquareDecrypt(letters string, k types.FoursquareKey) (string, error) {
	if err := validateFoursquare(k); err != nil {
		return "", err
	}
	text := gridLetters(letters)
	if len(text)%2 != 0 {
		return "", fmt.Errorf("%w: foursquare ciphertext has odd length %d", ErrKeyArity, len(text))
	}
	return foursquareDecrypt(text, k), nil
}

func foursquareDecrypt(text []byte, k types.FoursquareKey) string {
	plain := PlainGrid()
	upper, lower := positions(k.Upper), positions(k.Lower)
	out := make([]byte, 0, len(text))
	for i := 0; i+1 < len(text); i += 2 {
		a, b := upper[index(text[i])], lower[index(text[i+1])]
		r1, c2 := a/5, a%5
		r2, c1 := b/5, b%5
		out = append(out, plain[r1*5+c1], plain[r2*5+c2])
	}
	return string(out)
}

func validateFoursquare(k types.FoursquareKey) error {
	if err := ValidateGrid(k.Upper); err != nil {
		return fmt.Errorf("upper square: %w", err)
	}
	if err := ValidateGrid(k.Lower); err != nil {
		return fmt.Errorf("lower square: %w", err)
	}
	return nil
}
