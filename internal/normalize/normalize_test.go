// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		keep    []rune
		letters string
	}{
		{"plain lower", "attack", nil, "attack"},
		{"mixed case and punctuation", "Attack, at DAWN!", nil, "attackatdawn"},
		{"digits and newlines dropped", "HVMTVH,\n DO 42 DN", nil, "hvmtvhdodn"},
		{"keep set joins the stream", "ab_cd e_f", []rune{'_'}, "ab_cdef"},
		{"non-ascii letters are literals", "café’s", nil, "cafs"},
		{"empty", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.keep...)
			assert.Equal(t, tt.letters, got.Letters)
			assert.Equal(t, len([]rune(tt.letters)), got.Mask.Len())
		})
	}
}

func TestApplyIsInverse(t *testing.T) {
	inputs := []string{
		"Attack, at DAWN!",
		"  leading space and trailing.  ",
		"O'Brien said: \"Hello\" — twice.",
		"ab_cd e_f",
		"",
	}
	for _, raw := range inputs {
		n := Normalize(raw, '_')
		out, err := n.Mask.Apply(n.Letters)
		require.NoError(t, err)
		assert.Equal(t, raw, out)
	}
}

func TestApplyReplacedLetters(t *testing.T) {
	n := Normalize("Dwwdfn, dw GDZQ!")
	out, err := n.Mask.Apply("attackatdawn")
	require.NoError(t, err)
	assert.Equal(t, "Attack, at DAWN!", out)
	assert.Equal(t, len([]rune("Dwwdfn, dw GDZQ!")), len([]rune(out)))
}

func TestApplyLengthMismatch(t *testing.T) {
	n := Normalize("Hello, World")
	_, err := n.Mask.Apply("short")
	assert.ErrorIs(t, err, ErrLengthMismatch)

	assert.Equal(t, "short", n.Mask.Restore("short"))
	assert.Equal(t, "Abcde, Fghij", n.Mask.Restore("abcdefghij"))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, raw := range []string{"Attack, at DAWN!", "x-y-z", "THE quick Brown fox."} {
		once := Normalize(raw)
		twice := Normalize(once.Letters)
		assert.Equal(t, once.Letters, twice.Letters)
		out, err := twice.Mask.Apply(once.Letters)
		require.NoError(t, err)
		assert.Equal(t, once.Letters, out)
	}
}
