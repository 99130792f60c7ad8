// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package modarith implements integer arithmetic modulo m: reduction,
// greatest common divisors, modular inverses and square matrices over Z/m.
//
// A missing inverse is an ordinary outcome, reported through a boolean, so
// solvers can filter candidates without error handling.
package modarith

// Mod reduces a into [0, m).
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Inverse returns the unique x in [0, m) with a·x ≡ 1 (mod m). The boolean
// is false when gcd(a, m) ≠ 1 and no inverse exists.
func Inverse(a, m int) (int, bool) {
	if m <= 1 {
		return 0, false
	}
	// Extended Euclid on (a mod m, m).
	oldR, r := Mod(a, m), m
	oldS, s := 1, 0
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, false
	}
	return Mod(oldS, m), true
}

// Units returns every a in [1, m) coprime with m, ascending.
func Units(m int) []int {
	var out []int
	for a := 1; a < m; a++ {
		if GCD(a, m) == 1 {
			out = append(out, a)
		}
	}
	return out
}
