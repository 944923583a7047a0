package bm25

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidParams signals out-of-range BM25 parameters.
var ErrInvalidParams = errors.New("bm25: invalid parameters")

// Default BM25 parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Params configures a Scorer.
type Params struct {
	// K1 controls term-frequency saturation.
	K1 float64
	// B controls document-length normalization: 0 disables it, 1 normalizes fully.
	B float64
}

// DefaultParams returns k1=1.5, b=0.75.
func DefaultParams() Params {
	return Params{K1: DefaultK1, B: DefaultB}
}

// Validate checks that K1 >= 0 and 0 <= B <= 1.
func (p Params) Validate() error {
	if math.IsNaN(p.K1) || math.IsInf(p.K1, 0) || p.K1 < 0 {
		return fmt.Errorf("%w: k1 must be a finite non-negative number, got %v", ErrInvalidParams, p.K1)
	}
	if math.IsNaN(p.B) || p.B < 0 || p.B > 1 {
		return fmt.Errorf("%w: b must be between 0 and 1, got %v", ErrInvalidParams, p.B)
	}
	return nil
}

// Hit is the score of one document, identified by its index in the corpus.
type Hit struct {
	Index int
	Score float64
}

// Scorer ranks a Corpus against a query. Its parameters are fixed at construction.
type Scorer struct {
	params Params
}

// NewScorer creates a Scorer after validating p.
func NewScorer(p Params) (*Scorer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{params: p}, nil
}

// Params returns the scorer configuration.
func (s *Scorer) Params() Params { return s.params }

// Score computes the BM25 score of every document for the query tokens and
// returns hits sorted by score descending, ties in ascending index order.
// Query tokens unseen in the corpus contribute nothing. An empty corpus
// (avgdl == 0) yields no hits.
func (s *Scorer) Score(query []string, c *Corpus) []Hit {
	if c == nil || c.avgdl == 0 {
		return nil
	}

	k1, b := s.params.K1, s.params.B
	hits := make([]Hit, len(c.tokens))
	for i, toks := range c.tokens {
		tf := make(map[string]int, len(toks))
		for _, t := range toks {
			tf[t]++
		}

		norm := k1 * (1 - b + b*float64(c.lengths[i])/c.avgdl)
		score := 0.0
		for _, t := range query {
			idf, ok := c.idf[t]
			if !ok {
				continue
			}
			f := float64(tf[t])
			if f == 0 {
				continue
			}
			score += idf * (f * (k1 + 1)) / (f + norm)
		}
		hits[i] = Hit{Index: i, Score: score}
	}

	// Hits start in index order, so a stable sort keeps index order among equal scores.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}

// Rank tokenizes query, builds a corpus from docs and scores it.
func (s *Scorer) Rank(query string, docs []string) []Hit {
	return s.Score(Tokenize(query), BuildCorpus(docs))
}
