// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Solution is the best candidate a solver produced for one ciphertext: the
// recovered key, the resulting plaintext and the scores that justify it.
type Solution struct {
	// Family is the cipher family the solver assumed.
	Family Family `json:"family" yaml:"family"`

	// Key is the recovered key. It is not serialized directly; KeyText
	// carries its canonical string form.
	Key Key `json:"-" yaml:"-"`

	// KeyText is Key.String(), kept for reports.
	KeyText string `json:"key" yaml:"key"`

	// Plaintext is the decryption, re-cased and re-punctuated when the family
	// preserves letter positions; otherwise the raw letter stream.
	Plaintext string `json:"plaintext" yaml:"plaintext"`

	// Fitness is the total quadgram log-likelihood of the plaintext letters
	// (higher is better). Zero when no model was needed or available.
	Fitness float64 `json:"fitness" yaml:"fitness"`

	// PerQuadgram is Fitness divided by the number of quadgram windows, so
	// that texts of different lengths compare.
	PerQuadgram float64 `json:"per_quadgram" yaml:"per_quadgram"`

	// ChiSquared is the unigram chi-squared statistic against English
	// (lower is better).
	ChiSquared float64 `json:"chi_squared" yaml:"chi_squared"`

	// Degenerate marks a result whose structural detection fell back to a
	// default (e.g. key period 1) instead of passing its threshold.
	Degenerate bool `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`

	// Converged is true when a heuristic search reached its final
	// threshold. Exact solvers always set it.
	Converged bool `json:"converged" yaml:"converged"`

	// Restarts counts annealing restarts.
	Restarts int `json:"restarts,omitempty" yaml:"restarts,omitempty"`

	// Iterations counts optimizer rounds or annealing iterations.
	Iterations int `json:"iterations,omitempty" yaml:"iterations,omitempty"`

	// Notes carries solver remarks (fallbacks, skipped lengths).
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// WithKey sets Key and KeyText together.
func (s Solution) WithKey(k Key) Solution {
	s.Key = k
	if k != nil {
		s.KeyText = k.String()
	}
	return s
}
