// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/cryptanalyst/internal/modarith"
	"github.com/pdiddy/cryptanalyst/internal/normalize"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// ParseKey reads the textual form of a key for family. Accepted forms:
//
//	caesar            3
//	affine            5,8
//	vigenere etc.     lemon
//	substitution      a 26-letter alphabet or a keyword
//	duo-substitution  rows/cols (five labels each)
//	scytale           4
//	columnar          2,0,1 or a keyword
//	playfair          a keyword or 25-letter square
//	bifid             keyword[:period]
//	foursquare        upper,lower
//	hill              row-major entries of a square matrix
//	affine-vigenere   a:keyword
//	scytale-vigenere  turns:keyword
//
// The returned key is validated by encrypting an empty text.
func ParseKey(family types.Family, text string) (types.Key, error) {
	key, err := parseKey(family, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	if _, err := Encrypt(key, ""); err != nil {
		return nil, err
	}
	return key, nil
}

func parseKey(family types.Family, text string) (types.Key, error) {
	switch family {
	case types.FamilyCaesar:
		n, err := atoi(text)
		if err != nil {
			return nil, err
		}
		return types.CaesarKey{Shift: modarith.Mod(n, alphabetSize)}, nil
	case types.FamilyAffine:
		nums, err := ints(text)
		if err != nil {
			return nil, err
		}
		if len(nums) != 2 {
			return nil, fmt.Errorf("%w: affine key %q must be a,b", ErrInvalidKey, text)
		}
		return types.AffineKey{A: modarith.Mod(nums[0], alphabetSize), B: modarith.Mod(nums[1], alphabetSize)}, nil
	case types.FamilyVigenere, types.FamilyBeaufort, types.FamilyAutokey:
		return types.KeywordKey{Cipher: family, Keyword: normalize.Letters(text)}, nil
	case types.FamilySubstitution:
		letters := normalize.Letters(text)
		if len(letters) == alphabetSize {
			var k types.SubstitutionKey
			copy(k.Alphabet[:], letters)
			if ValidateAlphabet(k) == nil {
				return k, nil
			}
		}
		if letters == "" {
			return nil, fmt.Errorf("%w: empty substitution key", ErrInvalidKey)
		}
		return KeywordAlphabet(letters), nil
	case types.FamilyDuoSubstitution:
		rows, cols, ok := strings.Cut(text, "/")
		if !ok {
			return nil, fmt.Errorf("%w: duo key %q must be rows/cols", ErrInvalidKey, text)
		}
		return types.DuoKey{Rows: normalize.Letters(rows), Cols: normalize.Letters(cols)}, nil
	case types.FamilyScytale:
		n, err := atoi(text)
		if err != nil {
			return nil, err
		}
		return types.ScytaleKey{Turns: n}, nil
	case types.FamilyColumnar:
		if nums, err := ints(text); err == nil {
			return types.ColumnarKey{Order: nums}, nil
		}
		return types.ColumnarKey{Order: ColumnarOrder(normalize.Letters(text))}, nil
	case types.FamilyPlayfair:
		return types.GridKey{Cipher: family, Grid: KeywordGrid(normalize.Letters(text))}, nil
	case types.FamilyBifid:
		kw, p, hasPeriod := strings.Cut(text, ":")
		key := types.GridKey{Cipher: family, Grid: KeywordGrid(normalize.Letters(kw))}
		if hasPeriod {
			period, err := atoi(p)
			if err != nil {
				return nil, err
			}
			if period < 0 {
				return nil, fmt.Errorf("%w: bifid period %d must not be negative", ErrInvalidKey, period)
			}
			key.Period = period
		}
		return key, nil
	case types.FamilyFoursquare:
		upper, lower, ok := strings.Cut(text, ",")
		if !ok {
			return nil, fmt.Errorf("%w: foursquare key %q must be upper,lower", ErrInvalidKey, text)
		}
		return types.FoursquareKey{
			Upper: KeywordGrid(normalize.Letters(upper)),
			Lower: KeywordGrid(normalize.Letters(lower)),
		}, nil
	case types.FamilyHill:
		nums, err := ints(text)
		if err != nil {
			return nil, err
		}
		n := int(math.Round(math.Sqrt(float64(len(nums)))))
		if n < 1 || n*n != len(nums) {
			return nil, fmt.Errorf("%w: hill key needs a square number of entries, got %d", ErrInvalidKey, len(nums))
		}
		for i := range nums {
			nums[i] = modarith.Mod(nums[i], alphabetSize)
		}
		return types.HillKey{N: n, Entries: nums}, nil
	case types.FamilyAffineVigenere:
		a, kw, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("%w: affine-vigenere key %q must be a:keyword", ErrInvalidKey, text)
		}
		n, err := atoi(a)
		if err != nil {
			return nil, err
		}
		return types.AffineVigenereKey{A: modarith.Mod(n, alphabetSize), Keyword: normalize.Letters(kw)}, nil
	case types.FamilyScytaleVigenere:
		t, kw, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("%w: scytale-vigenere key %q must be turns:keyword", ErrInvalidKey, text)
		}
		n, err := atoi(t)
		if err != nil {
			return nil, err
		}
		return types.ScytaleVigenereKey{Turns: n, Keyword: normalize.Letters(kw)}, nil
	}
	return nil, fmt.Errorf("%w: unknown family %q", ErrInvalidKey, family)
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidKey, s)
	}
	return n, nil
}

func ints(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty integer list", ErrInvalidKey)
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
