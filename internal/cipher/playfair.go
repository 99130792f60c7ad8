// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import "fmt"

// PlayfairPrepare folds j into i and splits the text into digraphs: a
// doubled letter inside a digraph is separated by Pad (or 'q' when the
// letter is Pad itself), and an odd tail is padded the same way.
func PlayfairPrepare(letters string) string {
	text := gridLetters(letters)
	out := make([]byte, 0, len(text)+len(text)/2+1)
	for i := 0; i < len(text); {
		a := text[i]
		if i+1 < len(text) && text[i+1] != a {
			out = append(out, a, text[i+1])
			i += 2
			continue
		}
		out = append(out, a, filler(a))
		i++
	}
	return string(out)
}

func filler(a byte) byte {
	if a == Pad {
		return 'q'
	}
	return Pad
}

// PlayfairEncrypt prepares the plaintext with PlayfairPrepare and enciphers
// each digraph: same row shifts right, same column shifts down, otherwise the
// rectangle's other corners are taken.
func PlayfairEncrypt(letters string, grid [25]byte) (string, error) {
	if err := ValidateGrid(grid); err != nil {
		return "", err
	}
	return playfair([]byte(PlayfairPrepare(letters)), grid, 1), nil
}

// PlayfairDecrypt inverts PlayfairEncrypt. Fillers are left in place. The
// ciphertext must have an even number of letters.
func PlayfairDecrypt(letters string, grid [25]byte) (string, error) {
	if err := ValidateGrid(grid); err != nil {
		return "", err
	}
	text := gridLetters(letters)
	if len(text)%2 != 0 {
		return "", fmt.Errorf("%w: playfair ciphertext has odd length %d", ErrKeyArity, len(text))
	}
	return playfair(text, grid, -1), nil
}

// playfair applies the digraph rules with dir +1 (encrypt) or -1 (decrypt).
// A doubled ciphertext digraph is treated as a same-row pair.
func playfair(text []byte, grid [25]byte, dir int) string {
	pos := positions(grid)
	out := make([]byte, len(text))
	for i := 0; i+1 < len(text); i += 2 {
		a, b := pos[index(text[i])], pos[index(text[i+1])]
		r1, c1 := a/5, a%5
		r2, c2 := b/5, b%5
		switch {
		case r1 == r2:
			c1, c2 = (c1+dir+5)%5, (c2+dir+5)%5
		case c1 == c2:
			r1, r2 = (r1+dir+5)%5, (r2+dir+5)%5
		default:
			c1, c2 = c2, c1
		}
		out[i], out[i+1] = grid[r1*5+c1], grid[r2*5+c2]
	}
	return string(out)
}
