// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cryptanalyst engine.
// Implements: cipher families, the Key sum type (one variant per family),
// Solution records and engine configuration.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Family identifies a classical cipher family.
type Family string

const (
	FamilyCaesar          Family = "caesar"
	FamilyAffine          Family = "affine"
	FamilyVigenere        Family = "vigenere"
	FamilyBeaufort        Family = "beaufort"
	FamilyAutokey         Family = "autokey"
	FamilySubstitution    Family = "substitution"
	FamilyDuoSubstitution Family = "duo-substitution"
	FamilyScytale         Family = "scytale"
	FamilyColumnar        Family = "columnar"
	FamilyPlayfair        Family = "playfair"
	FamilyBifid           Family = "bifid"
	FamilyFoursquare      Family = "foursquare"
	FamilyHill            Family = "hill"
	FamilyAffineVigenere  Family = "affine-vigenere"
	FamilyScytaleVigenere Family = "scytale-vigenere"
)

var allFamilies = []Family{
	FamilyCaesar, FamilyAffine, FamilyVigenere, FamilyBeaufort, FamilyAutokey,
	FamilySubstitution, FamilyDuoSubstitution, FamilyScytale, FamilyColumnar,
	FamilyPlayfair, FamilyBifid, FamilyFoursquare, FamilyHill,
	FamilyAffineVigenere, FamilyScytaleVigenere,
}

// Families returns every supported family in a stable order.
func Families() []Family {
	out := make([]Family, len(allFamilies))
	copy(out, allFamilies)
	return out
}

// ParseFamily resolves a family name, accepting a few common aliases.
func ParseFamily(s string) (Family, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "shift":
		return FamilyCaesar, nil
	case "vigenère", "viginere":
		return FamilyVigenere, nil
	case "mono", "monoalphabetic":
		return FamilySubstitution, nil
	case "duo", "duosub":
		return FamilyDuoSubstitution, nil
	case "four-square":
		return FamilyFoursquare, nil
	}
	for _, f := range allFamilies {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown cipher family %q", s)
}

// Transposition reports whether the family rearranges letter positions, in
// which case original formatting cannot be reapplied position for position.
func (f Family) Transposition() bool {
	switch f {
	case FamilyScytale, FamilyColumnar, FamilyScytaleVigenere:
		return true
	}
	return false
}

// Key is a cipher key. Each variant belongs to exactly one family (or, for
// shared shapes, carries its family explicitly). Keys are values: search
// replaces them, it never mutates one in place.
type Key interface {
	Family() Family
	String() string
}

// CaesarKey is a scalar shift applied on encryption.
type CaesarKey struct {
	Shift int
}

func (k CaesarKey) Family() Family { return FamilyCaesar }
func (k CaesarKey) String() string { return strconv.Itoa(k.Shift) }

// AffineKey encrypts p as A·p + B (mod 26). A must be coprime with 26.
type AffineKey struct {
	A int
	B int
}

func (k AffineKey) Family() Family { return FamilyAffine }
func (k AffineKey) String() string { return fmt.Sprintf("%d,%d", k.A, k.B) }

// KeywordKey is a repeating or priming keyword for Vigenère, Beaufort and
// Autokey.
type KeywordKey struct {
	Cipher  Family
	Keyword string
}

func (k KeywordKey) Family() Family { return k.Cipher }
func (k KeywordKey) String() string { return k.Keyword }

// SubstitutionKey maps each plaintext letter (by index) to its ciphertext
// letter. It is a bijection over a–z.
type SubstitutionKey struct {
	Alphabet [26]byte
}

func (k SubstitutionKey) Family() Family { return FamilySubstitution }
func (k SubstitutionKey) String() string { return string(k.Alphabet[:]) }

// Swap returns a copy of the key with two plaintext slots exchanged.
func (k SubstitutionKey) Swap(i, j int) SubstitutionKey {
	k.Alphabet[i], k.Alphabet[j] = k.Alphabet[j], k.Alphabet[i]
	return k
}

// DuoKey labels the rows and columns of a 5×5 square; each ciphertext
// bigram (row label, column label) stands for one plaintext letter.
type DuoKey struct {
	Rows string
	Cols string
}

func (k DuoKey) Family() Family { return FamilyDuoSubstitution }
func (k DuoKey) String() string { return k.Rows + "/" + k.Cols }

// ScytaleKey is the number of turns of the strip around the rod.
type ScytaleKey struct {
	Turns int
}

func (k ScytaleKey) Family() Family { return FamilyScytale }
func (k ScytaleKey) String() string { return strconv.Itoa(k.Turns) }

// ColumnarKey is a permutation of 0..n-1: Order[i] is the column read i-th.
type ColumnarKey struct {
	Order []int
}

func (k ColumnarKey) Family() Family { return FamilyColumnar }
func (k ColumnarKey) String() string { return joinInts(k.Order) }

// GridKey is a 5×5 Polybius square (25 letters, j merged into i) used by
// Playfair and Bifid. Period applies to Bifid only; zero means the whole
// message forms one block.
type GridKey struct {
	Cipher Family
	Grid   [25]byte
	Period int
}

func (k GridKey) Family() Family { return k.Cipher }

func (k GridKey) String() string {
	if k.Cipher == FamilyBifid && k.Period > 0 {
		return fmt.Sprintf("%s:%d", k.Grid[:], k.Period)
	}
	return string(k.Grid[:])
}

// FoursquareKey holds the two keyed squares of a Foursquare cipher (upper
// right and lower left); the plain squares are the fixed alphabet.
type FoursquareKey struct {
	Upper [25]byte
	Lower [25]byte
}

func (k FoursquareKey) Family() Family { return FamilyFoursquare }
func (k FoursquareKey) String() string { return string(k.Upper[:]) + "," + string(k.Lower[:]) }

// HillKey is an N×N encryption matrix over Z/26 in row-major order.
type HillKey struct {
	N       int
	Entries []int
}

func (k HillKey) Family() Family { return FamilyHill }
func (k HillKey) String() string { return joinInts(k.Entries) }

// AffineVigenereKey applies a Vigenère keyword and then multiplies each
// letter by A (mod 26) on encryption.
type AffineVigenereKey struct {
	A       int
	Keyword string
}

func (k AffineVigenereKey) Family() Family { return FamilyAffineVigenere }
func (k AffineVigenereKey) String() string { return fmt.Sprintf("%d:%s", k.A, k.Keyword) }

// ScytaleVigenereKey applies a Vigenère keyword and then a scytale of the
// given turns on encryption.
type ScytaleVigenereKey struct {
	Turns   int
	Keyword string
}

func (k ScytaleVigenereKey) Family() Family { return FamilyScytaleVigenere }
func (k ScytaleVigenereKey) String() string { return fmt.Sprintf("%d:%s", k.Turns, k.Keyword) }

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
