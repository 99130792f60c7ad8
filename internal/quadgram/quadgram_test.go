// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quadgram

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cryptanalyst/internal/fixtures"
)

const tinyCorpus = `TION 300
THAT 100
NTHE 50
THER 50
`

func tinyModel(t *testing.T) *Model {
	t.Helper()
	m, err := Load(strings.NewReader(tinyCorpus), DefaultUnseenPenalty)
	require.NoError(t, err)
	return m
}

func TestParseCounts(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]int64
		errLine string
	}{
		{
			name:  "well formed",
			input: "TION 3\nTHAT 1\n",
			want:  map[string]int64{"TION": 3, "THAT": 1},
		},
		{
			name:  "blank lines and CRLF",
			input: "TION 3\r\n\r\nTHAT 1\r\n",
			want:  map[string]int64{"TION": 3, "THAT": 1},
		},
		{
			name:  "lower case is folded",
			input: "tion 3\nTION 2\n",
			want:  map[string]int64{"TION": 5},
		},
		{name: "missing count", input: "TION\n", errLine: "line 1"},
		{name: "tab separator", input: "TION 3\nTHAT\t1\n", errLine: "line 2"},
		{name: "three letters", input: "THE 3\n", errLine: "line 1"},
		{name: "negative count", input: "TION -3\n", errLine: "line 1"},
		{name: "non numeric", input: "TION many\n", errLine: "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCounts(strings.NewReader(tt.input))
			if tt.errLine != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errLine)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCounts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModelLogProbabilities(t *testing.T) {
	m := tinyModel(t)
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, int64(500), m.Total())

	lp, ok := m.LogProb("TION")
	require.True(t, ok)
	assert.InDelta(t, math.Log10(300.0/500), lp, 1e-12)

	lp, ok = m.LogProb("that")
	require.True(t, ok)
	assert.InDelta(t, math.Log10(100.0/500), lp, 1e-12)

	lp, ok = m.LogProb("QZXW")
	assert.False(t, ok)
	assert.Equal(t, DefaultUnseenPenalty, lp)
}

func TestFitnessCommonBeatsAbsent(t *testing.T) {
	m := tinyModel(t)
	assert.Greater(t, m.Fitness("that"), m.Fitness("qzxw"))
	assert.Equal(t, DefaultUnseenPenalty, m.Fitness("qzxw"))
}

func TestFitnessSlidesOverLetters(t *testing.T) {
	m := tinyModel(t)
	// "nther": NTHE + THER
	want := math.Log10(50.0/500) * 2
	assert.InDelta(t, want, m.Fitness("nther"), 1e-12)
	assert.InDelta(t, want, m.Fitness("N-THER!"), 1e-12)
	assert.InDelta(t, want/2, m.PerQuadgram("nther"), 1e-12)

	assert.Equal(t, 0.0, m.Fitness("abc"))
	assert.Equal(t, DefaultUnseenPenalty, m.PerQuadgram("abc"))
}

func TestNewRejectsEmptyAndInvalid(t *testing.T) {
	_, err := New(map[string]int64{}, DefaultUnseenPenalty)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = New(map[string]int64{"TION": 0}, DefaultUnseenPenalty)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = New(map[string]int64{"TI0N": 4}, DefaultUnseenPenalty)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"), DefaultUnseenPenalty)
	assert.ErrorIs(t, err, ErrCorpusMissing)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadgrams.txt")
	require.NoError(t, os.WriteFile(path, []byte(tinyCorpus), 0o644))

	m, err := LoadFile(path, -12)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, -12.0, m.Penalty())
}

func TestCountAndWrite(t *testing.T) {
	counts, err := Count(strings.NewReader("The them, THEN."))
	require.NoError(t, err)
	// THETHEMTHEN: windows may span word boundaries.
	assert.Len(t, counts, 8)
	for _, q := range []string{"THET", "HETH", "ETHE", "THEM", "HEMT", "EMTH", "MTHE", "THEN"} {
		assert.Equal(t, int64(1), counts[q], q)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCounts(&buf, counts))
	reparsed, err := ParseCounts(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(counts, reparsed); diff != "" {
		t.Errorf("WriteCounts/ParseCounts mismatch (-want +got):\n%s", diff)
	}

	sorted := Sorted(map[string]int64{"BBBB": 1, "AAAA": 1, "CCCC": 5})
	assert.Equal(t, []string{"CCCC", "AAAA", "BBBB"}, []string{sorted[0].Gram, sorted[1].Gram, sorted[2].Gram})
}

func TestEnglishModelPrefersEnglish(t *testing.T) {
	counts, err := Count(strings.NewReader(fixtures.English))
	require.NoError(t, err)
	m, err := New(counts, DefaultUnseenPenalty)
	require.NoError(t, err)

	english := m.PerQuadgram("the keeper wrote in his journal")
	scrambled := m.PerQuadgram("qkx vjjzwo ywrfh ul qlp zxbakmq")
	assert.Greater(t, english, scrambled)
	assert.Greater(t, m.Fitness("that"), m.Fitness("qzxw"))
}

func TestProviderBuildsOnce(t *testing.T) {
	var calls atomic.Int32
	p := NewProvider(func() (*Model, error) {
		calls.Add(1)
		return New(map[string]int64{"TION": 1}, DefaultUnseenPenalty)
	})

	var wg sync.WaitGroup
	models := make([]*Model, 16)
	for i := range models {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := p.Model()
			assert.NoError(t, err)
			models[i] = m
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, m := range models {
		assert.Same(t, models[0], m)
	}
}

func TestProviderCachesError(t *testing.T) {
	var calls int
	boom := errors.New("boom")
	p := NewProvider(func() (*Model, error) {
		calls++
		return nil, boom
	})
	for i := 0; i < 3; i++ {
		_, err := p.Model()
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 1, calls)

	missing := FileProvider(filepath.Join(t.TempDir(), "absent.txt"), DefaultUnseenPenalty)
	_, err := missing.Model()
	assert.ErrorIs(t, err, ErrCorpusMissing)
}

func TestStaticProvider(t *testing.T) {
	m := tinyModel(t)
	got, err := Static(m).Model()
	require.NoError(t, err)
	assert.Same(t, m, got)
}
