package bm25

import "math"

// Corpus holds tokenized documents and their term statistics.
// It is immutable after BuildCorpus returns and safe for concurrent reads.
type Corpus struct {
	tokens  [][]string
	lengths []int
	avgdl   float64
	docFreq map[string]int
	idf     map[string]float64
}

// BuildCorpus tokenizes docs and computes document frequency and IDF for
// every observed term:
//
//	idf(t) = ln((N - df(t) + 0.5) / (df(t) + 0.5) + 1)
//
// IDF is left negative for terms that occur in more than half of the
// documents. An empty input produces an empty corpus with avgdl 0.
func BuildCorpus(docs []string) *Corpus {
	c := &Corpus{
		tokens:  make([][]string, len(docs)),
		lengths: make([]int, len(docs)),
		docFreq: make(map[string]int),
		idf:     make(map[string]float64),
	}
	if len(docs) == 0 {
		return c
	}

	// Pass 1: tokenize and count each term once per document.
	total := 0
	for i, doc := range docs {
		toks := Tokenize(doc)
		c.tokens[i] = toks
		c.lengths[i] = len(toks)
		total += len(toks)

		seen := make(map[string]struct{}, len(toks))
		for _, t := range toks {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			c.docFreq[t]++
		}
	}

	// Pass 2: statistics over the complete corpus.
	n := float64(len(docs))
	c.avgdl = float64(total) / n
	for term, df := range c.docFreq {
		f := float64(df)
		c.idf[term] = math.Log((n-f+0.5)/(f+0.5) + 1)
	}

	return c
}

// N returns the number of documents.
func (c *Corpus) N() int { return len(c.tokens) }

// AvgDL returns the mean document length in tokens (0 for an empty corpus).
func (c *Corpus) AvgDL() float64 { return c.avgdl }

// Tokens returns the token list of document i.
func (c *Corpus) Tokens(i int) []string { return c.tokens[i] }

// DocLength returns the token count of document i.
func (c *Corpus) DocLength(i int) int { return c.lengths[i] }

// DocFreq returns how many documents contain term (0 if unseen).
func (c *Corpus) DocFreq(term string) int { return c.docFreq[term] }

// IDF returns the inverse document frequency of term and whether it was observed.
func (c *Corpus) IDF(term string) (float64, bool) {
	v, ok := c.idf[term]
	return v, ok
}

// Terms returns the vocabulary size.
func (c *Corpus) Terms() int { return len(c.idf) }
