// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exact

import (
	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/stats"
)

// KeywordResult is a recovered periodic keyword.
type KeywordResult struct {
	Keyword   string
	Plaintext string
	Period    stats.Period
}

// Degenerate reports that no period passed the IC threshold and the text
// was solved as a single column.
func (r KeywordResult) Degenerate() bool { return r.Period.Degenerate }

// Vigenere detects the period by index of coincidence and then picks, per
// column, the key letter whose Caesar decryption is closest to English by
// chi-squared. Non-letters take no key position; they are left out of the
// statistics and passed through to the plaintext.
func Vigenere(letters string, opts stats.PeriodOptions) KeywordResult {
	return solvePeriodic(letters, opts, false)
}

// Beaufort is Vigenere for the reciprocal p = k − c transform.
func Beaufort(letters string, opts stats.PeriodOptions) KeywordResult {
	return solvePeriodic(letters, opts, true)
}

func solvePeriodic(letters string, opts stats.PeriodOptions, beaufort bool) KeywordResult {
	az := cipher.LettersOnly(letters)
	period := stats.DetectPeriod(az, opts)
	keyword := KeywordForPeriod(az, period.Length, beaufort)
	var pt string
	if beaufort {
		pt, _ = cipher.Beaufort(letters, keyword)
	} else {
		pt, _ = cipher.VigenereDecrypt(letters, keyword)
	}
	return KeywordResult{Keyword: keyword, Plaintext: pt, Period: period}
}

// KeywordForPeriod solves each of the period columns of letters
// independently by chi-squared and returns the keyword. Columns are taken
// over the a–z letters only.
func KeywordForPeriod(letters string, period int, beaufort bool) string {
	if period < 1 {
		period = 1
	}
	letters = cipher.LettersOnly(letters)
	key := make([]byte, period)
	for i, col := range stats.Columns(letters, period) {
		best, bestChi := 0, 0.0
		for k := 0; k < 26; k++ {
			var pt string
			if beaufort {
				pt, _ = cipher.Beaufort(col, string(rune('a'+k)))
			} else {
				pt = cipher.Caesar(col, -k)
			}
			chi := stats.ChiSquared(pt)
			if k == 0 || chi < bestChi {
				best, bestChi = k, chi
			}
		}
		key[i] = byte('a' + best)
	}
	return string(key)
}
