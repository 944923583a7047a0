// Package detect picks a knowledge domain for a free-text query by keyword containment.
package detect

import "strings"

// Rule is a domain id and the keywords that vote for it.
type Rule struct {
	Domain   string
	Keywords []string
}

// Score is the number of keywords of Domain found in a query.
type Score struct {
	Domain string
	Hits   int
}

// Detector chooses the domain whose keywords occur most often in a query.
// Rules keep their registration order, which decides ties.
type Detector struct {
	rules    []Rule
	fallback string
}

// New creates a Detector. Keywords are lowercased; empty keywords are ignored.
// fallback is returned when no keyword matches.
func New(rules []Rule, fallback string) *Detector {
	rs := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(k); k != "" {
				kw = append(kw, k)
			}
		}
		rs = append(rs, Rule{Domain: r.Domain, Keywords: kw})
	}
	return &Detector{rules: rs, fallback: fallback}
}

// Fallback returns the domain used when nothing matches.
func (d *Detector) Fallback() string { return d.fallback }

// Detect returns the best matching domain for query. It never fails.
//
// Matching is plain substring containment on the lowercased query, so
// "fitts" matches "Fitts's law". The first-registered domain wins ties.
func (d *Detector) Detect(query string) string {
	best, bestHits := d.fallback, 0
	for _, s := range d.Scores(query) {
		if s.Hits > bestHits {
			best, bestHits = s.Domain, s.Hits
		}
	}
	return best
}

// Scores returns the keyword hit count of every rule, in registration order.
func (d *Detector) Scores(query string) []Score {
	q := strings.ToLower(query)
	out := make([]Score, len(d.rules))
	for i, r := range d.rules {
		hits := 0
		for _, k := range r.Keywords {
			if strings.Contains(q, k) {
				hits++
			}
		}
		out[i] = Score{Domain: r.Domain, Hits: hits}
	}
	return out
}

// Domains returns the registered domain ids in order.
func (d *Detector) Domains() []string {
	ids := make([]string, len(d.rules))
	for i, r := range d.rules {
		ids[i] = r.Domain
	}
	return ids
}
