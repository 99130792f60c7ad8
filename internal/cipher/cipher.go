// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cipher implements the encode/decode transforms of the supported
// classical cipher families over lower-case a–z letter streams.
//
// Monoalphabetic and polyalphabetic transforms pass any other byte through
// unchanged (and polyalphabetic keys advance on letters only), so a keep-set
// symbol such as '_' survives them. Block transforms pad on encryption and
// reject streams that do not fill whole blocks on decryption; see each
// function for its padding policy.
package cipher

import (
	"errors"
	"fmt"

	"github.com/pdiddy/cryptanalyst/pkg/types"
)

const alphabetSize = 26

// Pad is the filler appended by block transforms on encryption.
const Pad = 'x'

var (
	// ErrInvalidKey reports a key that cannot drive its transform (for
	// example a non-invertible affine multiplier or Hill matrix).
	ErrInvalidKey = errors.New("invalid key")

	// ErrKeyArity reports a text whose length does not fit the key's block
	// shape.
	ErrKeyArity = errors.New("text length does not fit key")
)

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' }

func index(c byte) int { return int(c - 'a') }

func letter(i int) byte { return byte(((i%alphabetSize)+alphabetSize)%alphabetSize) + 'a' }

// LettersOnly drops every byte outside a–z. Kept symbols take no key
// position in the stream ciphers, so key statistics are taken over this.
func LettersOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// Reinsert lays letters over the a–z positions of template and copies
// every other byte of template through. It returns letters unchanged when
// the counts differ.
func Reinsert(template, letters string) string {
	if len(template) == len(letters) {
		return letters
	}
	out := []byte(template)
	j := 0
	for i, c := range out {
		if !isLetter(c) {
			continue
		}
		if j >= len(letters) {
			return letters
		}
		out[i] = letters[j]
		j++
	}
	if j != len(letters) {
		return letters
	}
	return string(out)
}

func padTo(s string, n int) string {
	if n <= 1 || len(s)%n == 0 {
		return s
	}
	out := []byte(s)
	for len(out)%n != 0 {
		out = append(out, Pad)
	}
	return string(out)
}

// Encrypt enciphers letters with any key variant.
func Encrypt(key types.Key, letters string) (string, error) {
	switch k := key.(type) {
	case types.CaesarKey:
		return Caesar(letters, k.Shift), nil
	case types.AffineKey:
		return AffineEncrypt(letters, k)
	case types.KeywordKey:
		switch k.Cipher {
		case types.FamilyVigenere:
			return VigenereEncrypt(letters, k.Keyword)
		case types.FamilyBeaufort:
			return Beaufort(letters, k.Keyword)
		case types.FamilyAutokey:
			return AutokeyEncrypt(letters, k.Keyword)
		}
	case types.SubstitutionKey:
		return SubstitutionEncrypt(letters, k)
	case types.DuoKey:
		return DuoEncrypt(letters, k)
	case types.ScytaleKey:
		return ScytaleEncrypt(letters, k.Turns)
	case types.ColumnarKey:
		return ColumnarEncrypt(letters, k.Order)
	case types.GridKey:
		switch k.Cipher {
		case types.FamilyPlayfair:
			return PlayfairEncrypt(letters, k.Grid)
		case types.FamilyBifid:
			return BifidEncrypt(letters, k.Grid, k.Period)
		}
	case types.FoursquareKey:
		return FoursquareEncrypt(letters, k)
	case types.HillKey:
		return HillEncrypt(letters, k)
	case types.AffineVigenereKey:
		return AffineVigenereEncrypt(letters, k)
	case types.ScytaleVigenereKey:
		return ScytaleVigenereEncrypt(letters, k)
	}
	return "", fmt.Errorf("%w: unsupported key %T", ErrInvalidKey, key)
}

// Decrypt deciphers letters with any key variant.
func Decrypt(key types.Key, letters string) (string, error) {
	switch k := key.(type) {
	case types.CaesarKey:
		return Caesar(letters, -k.Shift), nil
	case types.AffineKey:
		return AffineDecrypt(letters, k)
	case types.KeywordKey:
		switch k.Cipher {
		case types.FamilyVigenere:
			return VigenereDecrypt(letters, k.Keyword)
		case types.FamilyBeaufort:
			return Beaufort(letters, k.Keyword)
		case types.FamilyAutokey:
			return AutokeyDecrypt(letters, k.Keyword)
		}
	case types.SubstitutionKey:
		return SubstitutionDecrypt(letters, k)
	case types.DuoKey:
		return DuoDecrypt(letters, k)
	case types.ScytaleKey:
		return ScytaleDecrypt(letters, k.Turns)
	case types.ColumnarKey:
		return ColumnarDecrypt(letters, k.Order)
	case types.GridKey:
		switch k.Cipher {
		case types.FamilyPlayfair:
			return PlayfairDecrypt(letters, k.Grid)
		case types.FamilyBifid:
			return BifidDecrypt(letters, k.Grid, k.Period)
		}
	case types.FoursquareKey:
		return FoursquareDecrypt(letters, k)
	case types.HillKey:
		return HillDecrypt(letters, k)
	case types.AffineVigenereKey:
		return AffineVigenereDecrypt(letters, k)
	case types.ScytaleVigenereKey:
		return ScytaleVigenereDecrypt(letters, k)
	}
	return "", fmt.Errorf("%w: unsupported key %T", ErrInvalidKey, key)
}
