// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

// PeriodOptions bounds polyalphabetic period detection.
type PeriodOptions struct {
	MinPeriod int
	MaxPeriod int
	Threshold float64
}

// DefaultPeriodOptions tests periods 2..20 against the English
// monoalphabetic IC floor of 0.06.
var DefaultPeriodOptions = PeriodOptions{MinPeriod: 2, MaxPeriod: 20, Threshold: 0.06}

// Period is the outcome of period detection.
type Period struct {
	// Length is the detected period.
	Length int

	// AverageIC is the mean column IC at Length.
	AverageIC float64

	// Degenerate is set when no tested period passed the threshold and
	// Length fell back to 1.
	Degenerate bool
}

// Columns splits letters into n interleaved subsequences: column i holds
// positions i, i+n, i+2n, ...
func Columns(letters string, n int) []string {
	if n < 1 {
		n = 1
	}
	cols := make([][]byte, n)
	for i := 0; i < len(letters); i++ {
		cols[i%n] = append(cols[i%n], letters[i])
	}
	out := make([]string, n)
	for i, c := range cols {
		out[i] = string(c)
	}
	return out
}

// Interleave is the inverse of Columns.
func Interleave(cols []string) string {
	total := 0
	for _, c := range cols {
		total += len(c)
	}
	out := make([]byte, 0, total)
	for row := 0; len(out) < total; row++ {
		for _, c := range cols {
			if row < len(c) {
				out = append(out, c[row])
			}
		}
	}
	return string(out)
}

// AverageIC is the mean index of coincidence of the n columns of letters.
func AverageIC(letters string, n int) float64 {
	cols := Columns(letters, n)
	var sum float64
	for _, c := range cols {
		sum += IndexOfCoincidence(c)
	}
	return sum / float64(len(cols))
}

// DetectPeriod returns the smallest period in [MinPeriod, MaxPeriod] whose
// mean column IC exceeds Threshold. When none qualifies the result is period
// 1 with Degenerate set.
func DetectPeriod(letters string, opts PeriodOptions) Period {
	lo := opts.MinPeriod
	if lo < 1 {
		lo = 1
	}
	hi := opts.MaxPeriod
	if max := len(letters) / 2; hi > max {
		hi = max
	}
	for n := lo; n <= hi; n++ {
		ic := AverageIC(letters, n)
		if ic > opts.Threshold {
			return Period{Length: n, AverageIC: ic}
		}
	}
	return Period{Length: 1, AverageIC: IndexOfCoincidence(letters), Degenerate: true}
}
