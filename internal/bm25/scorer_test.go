package bm25

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultParams())
	require.NoError(t, err)
	return s
}

func indexes(hits []Hit) []int {
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.Index
	}
	return out
}

func TestNewScorer_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"negative k1", Params{K1: -0.1, B: 0.75}},
		{"nan k1", Params{K1: math.NaN(), B: 0.75}},
		{"inf k1", Params{K1: math.Inf(1), B: 0.75}},
		{"b above one", Params{K1: 1.2, B: 1.01}},
		{"negative b", Params{K1: 1.2, B: -0.5}},
		{"nan b", Params{K1: 1.2, B: math.NaN()}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewScorer(tc.p)
			assert.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)
		})
	}
}

func TestNewScorer_Boundaries(t *testing.T) {
	for _, p := range []Params{{K1: 0, B: 0}, {K1: 2, B: 1}} {
		s, err := NewScorer(p)
		require.NoError(t, err)
		assert.Equal(t, p, s.Params())
	}
}

func TestScore_EmptyCorpus(t *testing.T) {
	s := newDefaultScorer(t)

	assert.Empty(t, s.Score([]string{"blue"}, BuildCorpus(nil)))
	assert.Empty(t, s.Score([]string{"blue"}, nil))
	// Documents that tokenize to nothing also leave avgdl at 0.
	assert.Empty(t, s.Score([]string{"blue"}, BuildCorpus([]string{"", "a"})))
}

func TestScore_SingleDocumentFormula(t *testing.T) {
	s := newDefaultScorer(t)
	hits := s.Score([]string{"blue"}, BuildCorpus([]string{"blue palette"}))

	require.Len(t, hits, 1)
	// N=1, df=1, |d|=avgdl=2: the length factor is 1, so score = idf * 2.5/2.5.
	want := math.Log(0.5/1.5 + 1)
	assert.InDelta(t, want, hits[0].Score, 1e-12)
}

func TestScore_TermFrequencySaturates(t *testing.T) {
	s := newDefaultScorer(t)
	hits := s.Score([]string{"blue"}, BuildCorpus([]string{"blue red", "blue blue"}))

	require.Len(t, hits, 2)
	assert.Equal(t, []int{1, 0}, indexes(hits))

	idf := math.Log(0.5/2.5 + 1)
	assert.InDelta(t, idf*(2*2.5)/(2+1.5), hits[0].Score, 1e-12)
	assert.InDelta(t, idf*(1*2.5)/(1+1.5), hits[1].Score, 1e-12)
}

func TestScore_LengthNormalization(t *testing.T) {
	s := newDefaultScorer(t)
	hits := s.Score([]string{"blue"}, BuildCorpus([]string{
		"blue with many other extra words here",
		"blue short",
	}))

	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Index, "shorter document should win on equal tf")
}

func TestScore_UnknownTokensContributeNothing(t *testing.T) {
	s := newDefaultScorer(t)
	hits := s.Score([]string{"nonexistent", "zzz"}, BuildCorpus([]string{"blue palette", "red palette"}))

	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Zero(t, h.Score)
	}
	assert.Equal(t, []int{0, 1}, indexes(hits))
}

func TestScore_TiesKeepIndexOrder(t *testing.T) {
	s := newDefaultScorer(t)
	docs := []string{
		"unrelated words entirely",
		"alpha beta",
		"something else again",
		"alpha beta",
		"alpha beta",
	}
	hits := s.Score(Tokenize("alpha"), BuildCorpus(docs))

	assert.Equal(t, []int{1, 3, 4, 0, 2}, indexes(hits))
	assert.Equal(t, hits[0].Score, hits[1].Score)
	assert.Equal(t, hits[1].Score, hits[2].Score)
}

func TestScore_SortedDescendingWithoutNaN(t *testing.T) {
	s := newDefaultScorer(t)
	docs := []string{
		"minimal clean layout whitespace",
		"dark mode neon glow cyberpunk",
		"glass blur transparency layers glass",
		"clean dark dashboard layout",
		"",
	}
	hits := s.Score(Tokenize("clean dark glass layout"), BuildCorpus(docs))

	require.Len(t, hits, len(docs))
	for i, h := range hits {
		assert.False(t, math.IsNaN(h.Score), "hit %d is NaN", i)
		if i > 0 {
			prev := hits[i-1]
			assert.GreaterOrEqual(t, prev.Score, h.Score)
			if prev.Score == h.Score {
				assert.Less(t, prev.Index, h.Index)
			}
		}
	}
}

func TestScore_ExactDocumentRanksFirst(t *testing.T) {
	s := newDefaultScorer(t)
	docs := []string{
		"minimal clean layout whitespace",
		"dark mode neon glow",
		"glass blur transparency layers",
		"brutalist raw typography grid",
	}
	for want, doc := range docs {
		hits := s.Rank(doc, docs)
		require.NotEmpty(t, hits)
		assert.Equal(t, want, hits[0].Index, "query %q", doc)
		assert.Greater(t, hits[0].Score, 0.0)
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := newDefaultScorer(t)
	docs := []string{"saas dashboard blue", "fintech dashboard trust", "gaming neon dashboard"}

	first := s.Rank("dashboard trust", docs)
	second := s.Rank("dashboard trust", docs)
	assert.Equal(t, first, second)
}

func TestScore_ZeroK1IgnoresFrequency(t *testing.T) {
	s, err := NewScorer(Params{K1: 0, B: 0.75})
	require.NoError(t, err)

	hits := s.Score([]string{"blue"}, BuildCorpus([]string{"blue blue", "blue red"}))
	require.Len(t, hits, 2)
	assert.Equal(t, hits[0].Score, hits[1].Score)
	assert.Equal(t, []int{0, 1}, indexes(hits))
}
