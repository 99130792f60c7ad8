// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize extracts the letter stream from raw ciphertext and keeps
// a formatting mask (case and non-letter positions) so any letter stream of
// the same length can be poured back into the original layout.
package normalize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLengthMismatch is returned when a mask is applied to a letter stream
// whose length differs from the one it was recorded from.
var ErrLengthMismatch = errors.New("letter stream length does not match mask")

// slot is one rune of the original input: either a literal that is copied
// back verbatim, or a position in the letter stream.
type slot struct {
	literal rune
	letter  bool
	upper   bool
}

// Mask records the layout of the original text around its letter stream.
type Mask struct {
	slots   []slot
	letters int
}

// Text is a normalized ciphertext: the lower-case letter stream plus the
// mask that restores the original formatting.
type Text struct {
	Letters string
	Mask    Mask
}

// Normalize lower-cases the ASCII letters of raw into the letter stream.
// Runes listed in keep also join the stream (verbatim); everything else is
// recorded as a literal.
func Normalize(raw string, keep ...rune) Text {
	var (
		b     strings.Builder
		slots = make([]slot, 0, len(raw))
		n     int
	)
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			slots = append(slots, slot{letter: true})
			n++
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + 'a' - 'A')
			slots = append(slots, slot{letter: true, upper: true})
			n++
		case containsRune(keep, r):
			b.WriteRune(r)
			slots = append(slots, slot{letter: true})
			n++
		default:
			slots = append(slots, slot{literal: r})
		}
	}
	return Text{Letters: b.String(), Mask: Mask{slots: slots, letters: n}}
}

// Letters is shorthand for Normalize(raw, keep...).Letters.
func Letters(raw string, keep ...rune) string {
	return Normalize(raw, keep...).Letters
}

// Len returns the number of letter-stream positions in the mask.
func (m Mask) Len() int { return m.letters }

// Apply pours letters back into the recorded layout: literals are restored
// in place and letters regain their original case. The stream must have
// exactly Len() runes.
func (m Mask) Apply(letters string) (string, error) {
	stream := []rune(letters)
	if len(stream) != m.letters {
		return "", fmt.Errorf("%w: mask has %d letters, got %d", ErrLengthMismatch, m.letters, len(stream))
	}

	var b strings.Builder
	b.Grow(len(letters) + len(m.slots))
	i := 0
	for _, s := range m.slots {
		if !s.letter {
			b.WriteRune(s.literal)
			continue
		}
		r := stream[i]
		i++
		if s.upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Restore is Apply that falls back to the bare letter stream when lengths
// differ (transposition and fractionation output).
func (m Mask) Restore(letters string) string {
	out, err := m.Apply(letters)
	if err != nil {
		return letters
	}
	return out
}

func containsRune(set []rune, r rune) bool {
	for _, k := range set {
		if k == r {
			return true
		}
	}
	return false
}
