// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"fmt"

	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// IdentityAlphabet returns the substitution key that maps every letter to
// itself.
func IdentityAlphabet() types.SubstitutionKey {
	var k types.SubstitutionKey
	for i := range k.Alphabet {
		k.Alphabet[i] = letter(i)
	}
	return k
}

// KeywordAlphabet derives a cipher alphabet from a keyword: the keyword's
// distinct letters come first, then the unused letters in alphabetical order
// starting after the keyword's highest letter and wrapping around.
func KeywordAlphabet(keyword string) types.SubstitutionKey {
	var k types.SubstitutionKey
	var used [alphabetSize]bool
	n := 0
	start := 0
	for i := 0; i < len(keyword); i++ {
		c := keyword[i]
		if !isLetter(c) || used[index(c)] {
			continue
		}
		used[index(c)] = true
		k.Alphabet[n] = c
		n++
		if index(c) > start {
			start = index(c)
		}
	}
	for i := 0; i < alphabetSize; i++ {
		c := (start + i) % alphabetSize
		if used[c] {
			continue
		}
		used[c] = true
		k.Alphabet[n] = letter(c)
		n++
	}
	return k
}

// ValidateAlphabet checks that a substitution key is a bijection over a–z.
func ValidateAlphabet(k types.SubstitutionKey) error {
	var seen [alphabetSize]bool
	for _, c := range k.Alphabet {
		if !isLetter(c) || seen[index(c)] {
			return fmt.Errorf("%w: substitution alphabet %q is not a permutation of a-z", ErrInvalidKey, string(k.Alphabet[:]))
		}
		seen[index(c)] = true
	}
	return nil
}

// Invert returns the decryption table of a substitution key: entry c is the
// plaintext letter that encrypts to c.
func Invert(k types.SubstitutionKey) [26]byte {
	var inv [26]byte
	for p, c := range k.Alphabet {
		inv[index(c)] = letter(p)
	}
	return inv
}

// SubstitutionEncrypt replaces each plaintext letter p with Alphabet[p].
func SubstitutionEncrypt(letters string, k types.SubstitutionKey) (string, error) {
	if err := ValidateAlphabet(k); err != nil {
		return "", err
	}
	return applyTable(letters, k.Alphabet), nil
}

// SubstitutionDecrypt inverts SubstitutionEncrypt.
func SubstitutionDecrypt(letters string, k types.SubstitutionKey) (string, error) {
	if err := ValidateAlphabet(k); err != nil {
		return "", err
	}
	return applyTable(letters, Invert(k)), nil
}

// ApplyInverse decrypts with a key already known to be a bijection. Search
// loops call it on every candidate, so it skips validation.
func ApplyInverse(letters string, k types.SubstitutionKey) string {
	return applyTable(letters, Invert(k))
}

func applyTable(letters string, table [26]byte) string {
	out := []byte(letters)
	for i, c := range out {
		if isLetter(c) {
			out[i] = table[index(c)]
		}
	}
	return string(out)
}
