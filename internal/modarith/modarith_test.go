// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package modarith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMod(t *testing.T) {
	assert.Equal(t, 3, Mod(29, 26))
	assert.Equal(t, 23, Mod(-3, 26))
	assert.Equal(t, 0, Mod(-26, 26))
}

func TestGCD(t *testing.T) {
	assert.Equal(t, 1, GCD(5, 26))
	assert.Equal(t, 13, GCD(-13, 26))
	assert.Equal(t, 26, GCD(0, 26))
}

func TestInverseMatchesBruteForce(t *testing.T) {
	for a := -30; a < 60; a++ {
		x, ok := Inverse(a, 26)
		want, wantOK := -1, false
		for c := 0; c < 26; c++ {
			if Mod(a*c, 26) == 1 {
				want, wantOK = c, true
				break
			}
		}
		require.Equal(t, wantOK, ok, "a=%d", a)
		if ok {
			assert.Equal(t, want, x, "a=%d", a)
			assert.Equal(t, 1, Mod(a*x, 26))
		}
	}
}

func TestInverseEdgeCases(t *testing.T) {
	_, ok := Inverse(0, 26)
	assert.False(t, ok)
	_, ok = Inverse(13, 26)
	assert.False(t, ok)
	_, ok = Inverse(3, 1)
	assert.False(t, ok)
}

func TestUnits(t *testing.T) {
	assert.Equal(t, []int{1, 3, 5, 7, 9, 11, 15, 17, 19, 21, 23, 25}, Units(26))
}

func TestMatrixInverse(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		entries []int
		want    []int
	}{
		{"2x2 hill", 2, []int{7, 8, 11, 11}, []int{25, 22, 1, 23}},
		{"2x2 small", 2, []int{3, 3, 2, 5}, []int{15, 17, 20, 9}},
		{"3x3", 3, []int{6, 24, 1, 13, 16, 10, 20, 17, 15}, []int{8, 5, 10, 21, 8, 21, 21, 12, 8}},
		{"1x1", 1, []int{5}, []int{21}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatrix(tt.n, 26, tt.entries)
			require.NoError(t, err)
			inv, ok := m.Inverse()
			require.True(t, ok)
			assert.Equal(t, tt.want, inv.Data)
			assert.True(t, m.Mul(inv).Equal(Identity(tt.n, 26)))
			assert.True(t, inv.Mul(m).Equal(Identity(tt.n, 26)))
		})
	}
}

func TestMatrixSingular(t *testing.T) {
	m, err := NewMatrix(2, 26, []int{2, 4, 1, 3}) // det 2
	require.NoError(t, err)
	_, ok := m.Inverse()
	assert.False(t, ok)
}

func TestNewMatrixValidation(t *testing.T) {
	_, err := NewMatrix(2, 26, []int{1, 2, 3})
	assert.Error(t, err)
	_, err = NewMatrix(0, 26, nil)
	assert.Error(t, err)

	m, err := NewMatrix(2, 26, []int{-1, 27, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{25, 1, 0, 1}, m.Data)
	assert.Equal(t, []int{Mod(25*7+1*4, 26), 4}, m.MulVec([]int{7, 4}))
}
