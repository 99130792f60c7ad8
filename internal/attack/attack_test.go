// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package attack

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/fixtures"
	"github.com/pdiddy/cryptanalyst/internal/normalize"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/internal/search"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sample(n int) string {
	letters := normalize.Letters(fixtures.English)
	if n > 0 && n < len(letters) {
		return letters[:n]
	}
	return letters
}

// rawPrefix returns the shortest prefix of the fixture text, formatting
// included, that holds n letters.
func rawPrefix(n int) string {
	count := 0
	for i := 0; i < len(fixtures.English); i++ {
		c := fixtures.English[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			count++
			if count == n {
				return fixtures.English[:i+1]
			}
		}
	}
	return fixtures.English
}

var fixtureModel = func() *quadgram.Model {
	counts, err := quadgram.Count(strings.NewReader(fixtures.English))
	if err != nil {
		panic(err)
	}
	m, err := quadgram.New(counts, quadgram.DefaultUnseenPenalty)
	if err != nil {
		panic(err)
	}
	return m
}()

func testConfig() types.EngineConfig {
	cfg := types.DefaultEngineConfig()
	cfg.Analysis.MaxPeriod = 10
	cfg.Analysis.MaxTranspositionLength = 7
	cfg.Search.Workers = 4
	cfg.Search.Anneal.Iterations = 300
	cfg.Search.Anneal.StaleLimit = 0
	cfg.Search.Anneal.Checkpoint = 0
	cfg.Search.Anneal.MaxRestarts = 0
	cfg.Search.Anneal.MaxIterations = 0
	return cfg
}

func newEngine(cfg types.EngineConfig) *Engine {
	return New(cfg, WithProvider(quadgram.Static(fixtureModel)), WithLogger(zap.NewNop()))
}

func encryptRaw(t *testing.T, e *Engine, key types.Key, raw string) string {
	t.Helper()
	ct, err := e.Encrypt(context.Background(), key, raw)
	require.NoError(t, err)
	return ct
}

// --- neighbors and mutations ---

func TestFrequencyKeyIsPermutation(t *testing.T) {
	ct, err := cipher.SubstitutionEncrypt(sample(1000), cipher.KeywordAlphabet("cairo"))
	require.NoError(t, err)
	k := FrequencyKey(ct)
	require.NoError(t, cipher.ValidateAlphabet(k))

	counts := map[byte]int{}
	for i := 0; i < len(ct); i++ {
		counts[ct[i]]++
	}
	for c, n := range counts {
		assert.LessOrEqual(t, n, counts[k.Alphabet['e'-'a']], "e must map to the most frequent symbol, %c is more frequent", c)
	}
}

func TestSwapNeighbors(t *testing.T) {
	k := cipher.IdentityAlphabet()
	ns := SwapNeighbors(k)
	require.Len(t, ns, 325)
	seen := map[types.SubstitutionKey]bool{}
	for _, n := range ns {
		diff := 0
		for i := range n.Alphabet {
			if n.Alphabet[i] != k.Alphabet[i] {
				diff++
			}
		}
		assert.Equal(t, 2, diff)
		seen[n] = true
	}
	assert.Len(t, seen, 325)
	assert.Equal(t, k.Swap(0, 1), ns[0])
}

func TestKeywordNeighbors(t *testing.T) {
	ns := KeywordNeighbors("ab")
	require.Len(t, ns, 50)
	assert.Equal(t, "bb", ns[0])
	assert.Equal(t, "zb", ns[24])
	assert.Equal(t, "aa", ns[25])
	assert.NotContains(t, ns, "ab")
}

func TestPermutationSwaps(t *testing.T) {
	ns := PermutationSwaps([]int{0, 1, 2, 3})
	require.Len(t, ns, 6)
	assert.Equal(t, []int{1, 0, 2, 3}, ns[0])
	assert.Equal(t, []int{0, 1, 3, 2}, ns[5])
}

func TestMutationsKeepKeysValid(t *testing.T) {
	rng := search.NewRand(1, 0)
	order := IdentityOrder(7)
	grid := RandomGrid(rng)
	for i := 0; i < 500; i++ {
		order = MutatePermutation(order, rng)
		require.NoError(t, cipher.ValidateOrder(order))
		grid = MutateGrid(grid, rng)
		require.NoError(t, cipher.ValidateGrid(grid))
	}
	k := cipher.IdentityAlphabet()
	for i := 0; i < 100; i++ {
		next := MutateSubstitution(k, rng)
		require.NoError(t, cipher.ValidateAlphabet(next))
		assert.NotEqual(t, k, next)
		k = next
	}
}

func TestNextPermutation(t *testing.T) {
	p := IdentityOrder(4)
	require.True(t, nextPermutation(p))
	assert.Equal(t, []int{0, 1, 3, 2}, p)

	count := 2
	for nextPermutation(p) {
		count++
	}
	assert.Equal(t, 24, count)
	assert.Equal(t, []int{3, 2, 1, 0}, p)
	assert.Equal(t, 5040, factorial(7))
}

func TestDuoToMono(t *testing.T) {
	mono, bigrams, err := DuoToMono("abcdabef")
	require.NoError(t, err)
	assert.Equal(t, "abac", mono)
	assert.Equal(t, [][2]byte{{'a', 'b'}, {'c', 'd'}, {'e', 'f'}}, bigrams)

	_, _, err = DuoToMono("abc")
	assert.ErrorIs(t, err, cipher.ErrKeyArity)
}

func TestDuoLabelsFromTrueMapping(t *testing.T) {
	key := types.DuoKey{Rows: "qwert", Cols: "asdfg"}
	const grid = "abcdefghiklmnopqrstuvwxyz"
	ct, err := cipher.DuoEncrypt(grid, key)
	require.NoError(t, err)
	mono, bigrams, err := DuoToMono(ct)
	require.NoError(t, err)
	require.Equal(t, "abcdefghijklmnopqrstuvwxy", mono)

	var sub types.SubstitutionKey
	for cell := 0; cell < len(grid); cell++ {
		sub.Alphabet[grid[cell]-'a'] = byte('a' + cell)
	}
	sub.Alphabet['j'-'a'] = 'z'

	got, complete := duoLabels(sub, bigrams)
	assert.True(t, complete)
	assert.Equal(t, key, got)

	partial, complete := duoLabels(sub, bigrams[:3])
	assert.False(t, complete)
	assert.Equal(t, "q????", partial.Rows)
	assert.Equal(t, "asd??", partial.Cols)
}

// --- engine ---

func TestSolveExactFamilies(t *testing.T) {
	tests := []struct {
		name    string
		family  types.Family
		key     types.Key
		letters int
	}{
		{"caesar", types.FamilyCaesar, types.CaesarKey{Shift: 17}, 400},
		{"affine", types.FamilyAffine, types.AffineKey{A: 5, B: 8}, 600},
		{"vigenere", types.FamilyVigenere, types.KeywordKey{Cipher: types.FamilyVigenere, Keyword: "lemon"}, 1500},
		{"beaufort", types.FamilyBeaufort, types.KeywordKey{Cipher: types.FamilyBeaufort, Keyword: "cipher"}, 1500},
		{"affine-vigenere", types.FamilyAffineVigenere, types.AffineVigenereKey{A: 7, Keyword: "lemon"}, 1500},
		{"hill", types.FamilyHill, types.HillKey{N: 2, Entries: []int{3, 3, 2, 5}}, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(testConfig())
			raw := rawPrefix(tt.letters)
			ct := encryptRaw(t, e, tt.key, raw)

			sol, err := e.Solve(context.Background(), tt.family, ct)
			require.NoError(t, err)
			assert.Equal(t, tt.family, sol.Family)
			assert.Equal(t, tt.key.String(), sol.KeyText)
			assert.Equal(t, raw, sol.Plaintext)
			assert.True(t, sol.Converged)
			assert.False(t, sol.Degenerate)
			assert.Greater(t, sol.PerQuadgram, -5.0)
			assert.InDelta(t, fixtureModel.Fitness(sample(tt.letters)), sol.Fitness, 1e-9)
		})
	}
}

func TestSolveVigenereDegenerate(t *testing.T) {
	cfg := testConfig()
	cfg.Analysis.MaxPeriod = 3
	e := newEngine(cfg)
	ct := encryptRaw(t, e, types.KeywordKey{Cipher: types.FamilyVigenere, Keyword: "lemon"}, rawPrefix(1500))

	sol, err := e.Solve(context.Background(), types.FamilyVigenere, ct)
	require.NoError(t, err)
	assert.True(t, sol.Degenerate)
	assert.Len(t, sol.KeyText, 1)
	require.NotEmpty(t, sol.Notes)
	assert.Contains(t, sol.Notes[0], "period 1")
}

func TestSolveSubstitution(t *testing.T) {
	tests := []struct {
		keyword string
		letters int
	}{
		{"cairo", 1000},
		{"decoy", 600},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			e := newEngine(testConfig())
			key := cipher.KeywordAlphabet(tt.keyword)
			raw := rawPrefix(tt.letters)
			ct := encryptRaw(t, e, key, raw)

			sol, err := e.Solve(context.Background(), types.FamilySubstitution, ct)
			require.NoError(t, err)
			if diff := cmp.Diff(key.String(), sol.KeyText); diff != "" {
				t.Errorf("key mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, raw, sol.Plaintext)
			assert.True(t, sol.Converged)
			assert.Positive(t, sol.Iterations)
		})
	}
}

func TestSolveSubstitutionWorkersAgree(t *testing.T) {
	key := cipher.KeywordAlphabet("decoy")
	ct, err := cipher.SubstitutionEncrypt(sample(600), key)
	require.NoError(t, err)

	seqCfg := testConfig()
	seqCfg.Search.Workers = 1
	seq, err := newEngine(seqCfg).Solve(context.Background(), types.FamilySubstitution, ct)
	require.NoError(t, err)
	par, err := newEngine(testConfig()).Solve(context.Background(), types.FamilySubstitution, ct)
	require.NoError(t, err)
	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("worker count changed the result (-seq +par):\n%s", diff)
	}
}

func TestSolveAutokey(t *testing.T) {
	tests := []struct {
		keyword string
		letters int
	}{
		{"queenly", 800},
		{"key", 500},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			e := newEngine(testConfig())
			key := types.KeywordKey{Cipher: types.FamilyAutokey, Keyword: tt.keyword}
			raw := rawPrefix(tt.letters)
			ct := encryptRaw(t, e, key, raw)

			sol, err := e.Solve(context.Background(), types.FamilyAutokey, ct)
			require.NoError(t, err)
			assert.Equal(t, tt.keyword, sol.KeyText)
			assert.Equal(t, raw, sol.Plaintext)
		})
	}
}

func TestSolveTransposition(t *testing.T) {
	tests := []struct {
		name    string
		family  types.Family
		key     types.Key
		letters int
	}{
		{"scytale", types.FamilyScytale, types.ScytaleKey{Turns: 6}, 300},
		{"columnar 5", types.FamilyColumnar, types.ColumnarKey{Order: []int{4, 2, 1, 3, 0}}, 300},
		{"columnar padded", types.FamilyColumnar, types.ColumnarKey{Order: []int{2, 0, 3, 1}}, 203},
		{"columnar 7", types.FamilyColumnar, types.ColumnarKey{Order: []int{5, 3, 0, 6, 1, 4, 2}}, 350},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(testConfig())
			ct, err := cipher.Encrypt(tt.key, sample(tt.letters))
			require.NoError(t, err)

			sol, err := e.Solve(context.Background(), tt.family, ct)
			require.NoError(t, err)
			assert.Equal(t, tt.key.String(), sol.KeyText)
			require.GreaterOrEqual(t, len(sol.Plaintext), tt.letters)
			assert.Equal(t, sample(tt.letters), sol.Plaintext[:tt.letters])
		})
	}
}

func TestSolveColumnarNoDivisor(t *testing.T) {
	cfg := testConfig()
	cfg.Analysis.MaxTranspositionLength = 4
	_, err := newEngine(cfg).Solve(context.Background(), types.FamilyColumnar, sample(11))
	assert.ErrorIs(t, err, cipher.ErrKeyArity)
}

func TestSolveScytaleVigenere(t *testing.T) {
	e := newEngine(testConfig())
	key := types.ScytaleVigenereKey{Turns: 3, Keyword: "dog"}
	ct, err := cipher.Encrypt(key, sample(900))
	require.NoError(t, err)

	sol, err := e.Solve(context.Background(), types.FamilyScytaleVigenere, ct)
	require.NoError(t, err)
	assert.Equal(t, key.String(), sol.KeyText)
	assert.Equal(t, sample(900), sol.Plaintext[:900])
}

func TestSolveAnnealedGrids(t *testing.T) {
	tests := []struct {
		family types.Family
		key    types.Key
	}{
		{types.FamilyPlayfair, types.GridKey{Cipher: types.FamilyPlayfair, Grid: cipher.KeywordGrid("playfair")}},
		{types.FamilyBifid, types.GridKey{Cipher: types.FamilyBifid, Grid: cipher.KeywordGrid("bifid")}},
		{types.FamilyFoursquare, types.FoursquareKey{Upper: cipher.KeywordGrid("example"), Lower: cipher.KeywordGrid("keyword")}},
	}
	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			ct, err := cipher.Encrypt(tt.key, sample(300))
			require.NoError(t, err)

			e := newEngine(testConfig())
			a, err := e.Solve(context.Background(), tt.family, ct)
			require.NoError(t, err)
			b, err := e.Solve(context.Background(), tt.family, ct)
			require.NoError(t, err)

			assert.Equal(t, a.KeyText, b.KeyText, "annealing must be reproducible for a fixed seed")
			assert.Equal(t, 300, a.Iterations)
			assert.False(t, a.Converged)
			parsed, err := cipher.ParseKey(tt.family, a.KeyText)
			require.NoError(t, err)
			assert.Equal(t, a.Key, parsed)
		})
	}
}

func TestSolveGridOddLength(t *testing.T) {
	e := newEngine(testConfig())
	for _, f := range []types.Family{types.FamilyPlayfair, types.FamilyFoursquare} {
		_, err := e.Solve(context.Background(), f, "abc")
		assert.ErrorIs(t, err, cipher.ErrKeyArity, "family %s", f)
	}
}

func TestSolveErrors(t *testing.T) {
	e := newEngine(testConfig())
	_, err := e.Solve(context.Background(), "enigma", "abc")
	assert.ErrorIs(t, err, ErrUnknownFamily)

	_, err = e.Solve(context.Background(), types.FamilyCaesar, "1234 !!")
	assert.ErrorIs(t, err, ErrNoLetters)

	cfg := testConfig()
	cfg.Corpus.Path = filepath.Join(t.TempDir(), "missing.txt")
	_, err = New(cfg).Solve(context.Background(), types.FamilyCaesar, "abc")
	assert.ErrorIs(t, err, quadgram.ErrCorpusMissing)
}

func TestSolveCancelledReturnsBestSoFar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ct, err := cipher.SubstitutionEncrypt(sample(300), cipher.KeywordAlphabet("cairo"))
	require.NoError(t, err)

	sol, err := newEngine(testConfig()).Solve(ctx, types.FamilySubstitution, ct)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, FrequencyKey(ct).String(), sol.KeyText)
	assert.Len(t, sol.Plaintext, 300)
}

func TestAuto(t *testing.T) {
	e := newEngine(testConfig())
	raw := rawPrefix(601)
	ct := encryptRaw(t, e, types.CaesarKey{Shift: 3}, raw)

	var w bytes.Buffer
	families := []types.Family{types.FamilyCaesar, types.FamilyVigenere, types.FamilyHill}
	out, err := e.Auto(context.Background(), ct, families, &w)
	require.NoError(t, err)

	require.Len(t, out.Solutions, 2)
	assert.Equal(t, types.FamilyCaesar, out.Solutions[0].Family)
	assert.Equal(t, raw, out.Solutions[0].Plaintext)
	assert.GreaterOrEqual(t, out.Solutions[0].PerQuadgram, out.Solutions[1].PerQuadgram)

	require.Len(t, out.FamilyErrors, 1)
	assert.Contains(t, out.FamilyErrors[0], "hill")
	assert.Contains(t, w.String(), "warning: family hill failed")
}

func TestAutoErrors(t *testing.T) {
	e := newEngine(testConfig())
	var w bytes.Buffer
	_, err := e.Auto(context.Background(), "abc", []types.Family{"enigma"}, &w)
	assert.ErrorIs(t, err, ErrUnknownFamily)

	_, err = e.Auto(context.Background(), "abc", []types.Family{types.FamilyHill}, &w)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Auto(ctx, sample(100), []types.Family{types.FamilyCaesar}, &w)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncryptDecryptKeepFormatting(t *testing.T) {
	e := newEngine(testConfig())
	key := types.KeywordKey{Cipher: types.FamilyVigenere, Keyword: "lemon"}

	ct, err := e.Encrypt(context.Background(), key, "Attack at dawn!")
	require.NoError(t, err)
	assert.Equal(t, "Lxfopv ef rnhr!", ct)

	sol, err := e.Decrypt(context.Background(), key, ct)
	require.NoError(t, err)
	assert.Equal(t, "Attack at dawn!", sol.Plaintext)
	assert.Equal(t, "lemon", sol.KeyText)
	assert.NotZero(t, sol.Fitness)

	col := types.ColumnarKey{Order: []int{1, 0}}
	ct, err = e.Encrypt(context.Background(), col, "AB CD e")
	require.NoError(t, err)
	assert.Equal(t, "bdxace", ct)
}

func TestDecryptWithoutCorpus(t *testing.T) {
	cfg := testConfig()
	cfg.Corpus.Path = filepath.Join(t.TempDir(), "missing.txt")
	sol, err := New(cfg).Decrypt(context.Background(), types.CaesarKey{Shift: 3}, "Dwwdfn dw gdzq")
	require.NoError(t, err)
	assert.Equal(t, "Attack at dawn", sol.Plaintext)
	assert.Zero(t, sol.Fitness)
	assert.NotEmpty(t, sol.Notes)
}

func TestKeepSymbolsPassThrough(t *testing.T) {
	cfg := testConfig()
	cfg.Analysis.Keep = "_"
	e := newEngine(cfg)
	ct, err := e.Encrypt(context.Background(), types.CaesarKey{Shift: 1}, "Ab_c d")
	require.NoError(t, err)
	assert.Equal(t, "Bc_d e", ct)
}

// keptStream returns the first n letters of the fixture text with its words
// joined by underscores, as the letter stream looks when "_" is kept.
func keptStream(n int) string {
	return normalize.Letters(strings.Join(strings.Fields(rawPrefix(n)), "_"), '_')
}

func TestSolveWithKeepSymbols(t *testing.T) {
	hill := types.HillKey{N: 2, Entries: []int{3, 3, 2, 5}}
	tests := []struct {
		name    string
		family  types.Family
		key     types.Key
		letters int
	}{
		{"vigenere", types.FamilyVigenere, types.KeywordKey{Cipher: types.FamilyVigenere, Keyword: "lemon"}, 1500},
		{"beaufort", types.FamilyBeaufort, types.KeywordKey{Cipher: types.FamilyBeaufort, Keyword: "cipher"}, 1500},
		{"affine-vigenere", types.FamilyAffineVigenere, types.AffineVigenereKey{A: 7, Keyword: "lemon"}, 1500},
		{"scytale", types.FamilyScytale, types.ScytaleKey{Turns: 6}, 300},
		{"scytale-vigenere", types.FamilyScytaleVigenere, types.ScytaleVigenereKey{Turns: 3, Keyword: "dog"}, 900},
		{"hill", types.FamilyHill, hill, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Analysis.Keep = "_"
			e := newEngine(cfg)
			stream := keptStream(tt.letters)
			require.Contains(t, stream, "_")

			ct, err := cipher.Encrypt(tt.key, stream)
			require.NoError(t, err)
			if tt.family == types.FamilyHill {
				// Hill blocks take letters only; lay the separators back over
				// the ciphertext.
				ct = cipher.Reinsert(stream, ct)
				require.Equal(t, len(stream), len(ct))
			}

			sol, err := e.Solve(context.Background(), tt.family, ct)
			require.NoError(t, err)
			assert.Equal(t, tt.key.String(), sol.KeyText)
			assert.False(t, sol.Degenerate)
			require.GreaterOrEqual(t, len(sol.Plaintext), len(stream))
			assert.Equal(t, stream, sol.Plaintext[:len(stream)])
		})
	}

	t.Run("hill decrypt keeps separators", func(t *testing.T) {
		cfg := testConfig()
		cfg.Analysis.Keep = "_"
		e := newEngine(cfg)
		stream := keptStream(400)
		ct, err := cipher.Encrypt(hill, stream)
		require.NoError(t, err)

		sol, err := e.Decrypt(context.Background(), hill, cipher.Reinsert(stream, ct))
		require.NoError(t, err)
		assert.Equal(t, stream, sol.Plaintext)
	})
}

// --- reports ---

func TestReportRoundTrip(t *testing.T) {
	e := newEngine(testConfig())
	raw := rawPrefix(400)
	ct := encryptRaw(t, e, types.CaesarKey{Shift: 11}, raw)
	families := []types.Family{types.FamilyCaesar, types.FamilyAffine}
	out, err := e.Auto(context.Background(), ct, families, &bytes.Buffer{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.yaml")
	rep := NewReport(ct, families, out, 1)
	require.NoError(t, WriteReport(path, rep))

	got, err := ReadReport(path)
	require.NoError(t, err)
	_, err = uuid.Parse(got.RunID)
	assert.NoError(t, err)
	assert.Equal(t, rep.RunID, got.RunID)
	assert.Equal(t, ct, got.Ciphertext)
	assert.Equal(t, families, got.Families)
	assert.Equal(t, 2, got.Summary.Total)
	assert.True(t, rep.Summary.Timestamp.Equal(got.Summary.Timestamp))

	require.Len(t, got.Solutions, 2)
	assert.Equal(t, types.CaesarKey{Shift: 11}, got.Solutions[0].Key)
	assert.Equal(t, out.Solutions[0].Plaintext, got.Solutions[0].Plaintext)
	assert.Equal(t, out.Solutions[0].PerQuadgram, got.Solutions[0].PerQuadgram)
}

func TestReadReportMissing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestFormatTable(t *testing.T) {
	out := AutoOutput{
		Solutions: []types.Solution{
			{Family: types.FamilyCaesar, KeyText: "3", Plaintext: "attackatdawn", PerQuadgram: -3.5},
		},
		FamilyErrors: []string{"hill: odd"},
	}
	var w bytes.Buffer
	FormatTable(out, &w)
	assert.Contains(t, w.String(), "caesar")
	assert.Contains(t, w.String(), "attackatdawn")
	assert.Contains(t, w.String(), "1 solutions (1 families failed)")

	w.Reset()
	FormatTable(AutoOutput{}, &w)
	assert.Equal(t, "No solutions.\n", w.String())

	w.Reset()
	quoted := strings.Repeat("“we’re here” ", 6)
	FormatTable(AutoOutput{Solutions: []types.Solution{
		{Family: types.FamilyCaesar, KeyText: "3", Plaintext: quoted},
	}}, &w)
	assert.True(t, utf8.ValidString(w.String()))
	assert.Contains(t, w.String(), "...")

	w.Reset()
	require.NoError(t, FormatJSON(out, &w))
	assert.Contains(t, w.String(), `"family": "caesar"`)
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "“ab”", truncate("“ab”", 4))
	assert.Equal(t, "“’...", truncate("“’”’”’", 5))
	assert.Equal(t, "short", truncate("short", 40))
}
