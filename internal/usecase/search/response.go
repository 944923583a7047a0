package search

import "github.com/kailas-cloud/designkb/internal/domain/search/result"

// StackDomain is the Domain value of responses produced by SearchStack.
const StackDomain = "stack"

// Response is the outcome of one domain or stack search.
type Response struct {
	Domain   string          `json:"domain"`
	Stack    string          `json:"stack,omitempty"`
	Query    string          `json:"query"`
	Source   string          `json:"source"`
	Count    int             `json:"count"`
	Results  []result.Result `json:"results"`
	Detected bool            `json:"detected,omitempty"`
}
