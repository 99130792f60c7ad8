// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package modarith

import "fmt"

// Matrix is an N×N matrix over Z/M, stored row-major. Entries are kept
// reduced into [0, M).
type Matrix struct {
	N    int
	M    int
	Data []int
}

// NewMatrix builds an n×n matrix over Z/m from row-major entries.
func NewMatrix(n, m int, entries []int) (Matrix, error) {
	if n < 1 {
		return Matrix{}, fmt.Errorf("matrix size %d must be positive", n)
	}
	if len(entries) != n*n {
		return Matrix{}, fmt.Errorf("matrix of size %d needs %d entries, got %d", n, n*n, len(entries))
	}
	data := make([]int, len(entries))
	for i, v := range entries {
		data[i] = Mod(v, m)
	}
	return Matrix{N: n, M: m, Data: data}, nil
}

// At returns the entry at row i, column j.
func (a Matrix) At(i, j int) int { return a.Data[i*a.N+j] }

// Mul returns a·b. Both must share N and M.
func (a Matrix) Mul(b Matrix) Matrix {
	out := make([]int, a.N*a.N)
	for i := 0; i < a.N; i++ {
		for j := 0; j < a.N; j++ {
			sum := 0
			for k := 0; k < a.N; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out[i*a.N+j] = Mod(sum, a.M)
		}
	}
	return Matrix{N: a.N, M: a.M, Data: out}
}

// MulVec returns a·v for a column vector v of length N.
func (a Matrix) MulVec(v []int) []int {
	out := make([]int, a.N)
	for i := 0; i < a.N; i++ {
		sum := 0
		for k := 0; k < a.N; k++ {
			sum += a.At(i, k) * v[k]
		}
		out[i] = Mod(sum, a.M)
	}
	return out
}

// Det returns the determinant mod M by cofactor expansion. Hill keys are
// small, so the factorial cost does not matter.
func (a Matrix) Det() int {
	return Mod(det(a.Data, a.N), a.M)
}

func det(d []int, n int) int {
	switch n {
	case 1:
		return d[0]
	case 2:
		return d[0]*d[3] - d[1]*d[2]
	}
	total := 0
	sign := 1
	for col := 0; col < n; col++ {
		total += sign * d[col] * det(minor(d, n, 0, col), n-1)
		sign = -sign
	}
	return total
}

func minor(d []int, n, row, col int) []int {
	out := make([]int, 0, (n-1)*(n-1))
	for i := 0; i < n; i++ {
		if i == row {
			continue
		}
		for j := 0; j < n; j++ {
			if j == col {
				continue
			}
			out = append(out, d[i*n+j])
		}
	}
	return out
}

// Inverse returns the matrix inverse over Z/M via the adjugate. The boolean
// is false when the determinant has no inverse mod M.
func (a Matrix) Inverse() (Matrix, bool) {
	dInv, ok := Inverse(a.Det(), a.M)
	if !ok {
		return Matrix{}, false
	}
	if a.N == 1 {
		return Matrix{N: 1, M: a.M, Data: []int{dInv}}, true
	}
	out := make([]int, a.N*a.N)
	for i := 0; i < a.N; i++ {
		for j := 0; j < a.N; j++ {
			cof := det(minor(a.Data, a.N, i, j), a.N-1)
			if (i+j)%2 == 1 {
				cof = -cof
			}
			// adj = transpose of the cofactor matrix.
			out[j*a.N+i] = Mod(cof*dInv, a.M)
		}
	}
	return Matrix{N: a.N, M: a.M, Data: out}, true
}

// Identity returns the n×n identity over Z/m.
func Identity(n, m int) Matrix {
	data := make([]int, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return Matrix{N: n, M: m, Data: data}
}

// Equal reports whether two matrices have the same shape and entries.
func (a Matrix) Equal(b Matrix) bool {
	if a.N != b.N || a.M != b.M || len(a.Data) != len(b.Data) {
		return false
	}
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			return false
		}
	}
	return true
}
