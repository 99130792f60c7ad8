// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import "fmt"

// keywordShifts validates a keyword and returns its letter indices.
func keywordShifts(keyword string) ([]int, error) {
	if keyword == "" {
		return nil, fmt.Errorf("%w: empty keyword", ErrInvalidKey)
	}
	shifts := make([]int, len(keyword))
	for i := 0; i < len(keyword); i++ {
		if !isLetter(keyword[i]) {
			return nil, fmt.Errorf("%w: keyword %q must be lower-case letters", ErrInvalidKey, keyword)
		}
		shifts[i] = index(keyword[i])
	}
	return shifts, nil
}

// VigenereEncrypt adds the repeating keyword to the plaintext letters.
func VigenereEncrypt(letters, keyword string) (string, error) {
	return vigenere(letters, keyword, 1)
}

// VigenereDecrypt subtracts the repeating keyword from the ciphertext letters.
func VigenereDecrypt(letters, keyword string) (string, error) {
	return vigenere(letters, keyword, -1)
}

func vigenere(letters, keyword string, sign int) (string, error) {
	shifts, err := keywordShifts(keyword)
	if err != nil {
		return "", err
	}
	out := []byte(letters)
	j := 0
	for i, c := range out {
		if !isLetter(c) {
			continue
		}
		out[i] = letter(index(c) + sign*shifts[j%len(shifts)])
		j++
	}
	return string(out), nil
}

// Beaufort computes k − x for every letter. The transform is its own
// inverse, so the same call encrypts and decrypts.
func Beaufort(letters, keyword string) (string, error) {
	shifts, err := keywordShifts(keyword)
	if err != nil {
		return "", err
	}
	out := []byte(letters)
	j := 0
	for i, c := range out {
		if !isLetter(c) {
			continue
		}
		out[i] = letter(shifts[j%len(shifts)] - index(c))
		j++
	}
	return string(out), nil
}

// AutokeyEncrypt primes the key stream with keyword and continues it with
// the plaintext itself.
func AutokeyEncrypt(letters, keyword string) (string, error) {
	return autokey(letters, keyword, false)
}

// AutokeyDecrypt reverses AutokeyEncrypt, feeding each recovered plaintext
// letter back into the key stream.
func AutokeyDecrypt(letters, keyword string) (string, error) {
	return autokey(letters, keyword, true)
}

func autokey(letters, keyword string, decrypt bool) (string, error) {
	shifts, err := keywordShifts(keyword)
	if err != nil {
		return "", err
	}
	out := []byte(letters)
	plain := make([]int, 0, len(letters))
	for i, c := range out {
		if !isLetter(c) {
			continue
		}
		j := len(plain)
		var k int
		if j < len(shifts) {
			k = shifts[j]
		} else {
			k = plain[j-len(shifts)]
		}
		if decrypt {
			out[i] = letter(index(c) - k)
			plain = append(plain, index(out[i]))
		} else {
			plain = append(plain, index(c))
			out[i] = letter(index(c) + k)
		}
	}
	return string(out), nil
}
