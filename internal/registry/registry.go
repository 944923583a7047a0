// Package registry holds the static table of knowledge domains and stacks.
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/designkb/internal/detect"
	"github.com/kailas-cloud/designkb/internal/domain"
)

// Registry maps domain and stack ids to their descriptors.
// Domain order is the auto-detection order. Immutable after construction.
type Registry struct {
	domains   []domain.Descriptor
	byID      map[string]int
	stacks    []domain.Stack
	stackByID map[string]int
	fallback  string
}

// New validates and creates a Registry.
func New(domains []domain.Descriptor, stacks []domain.Stack, fallback string) (*Registry, error) {
	r := &Registry{
		byID:      make(map[string]int, len(domains)),
		stackByID: make(map[string]int, len(stacks)),
		fallback:  fallback,
	}
	if len(domains) == 0 {
		return nil, fmt.Errorf("at least one domain is required")
	}
	for i, d := range domains {
		if _, dup := r.byID[d.ID()]; dup {
			return nil, fmt.Errorf("duplicate domain %q", d.ID())
		}
		r.byID[d.ID()] = i
	}
	for i, s := range stacks {
		if _, dup := r.stackByID[s.ID()]; dup {
			return nil, fmt.Errorf("duplicate stack %q", s.ID())
		}
		r.stackByID[s.ID()] = i
	}
	if _, ok := r.byID[fallback]; !ok {
		return nil, fmt.Errorf("fallback domain %q is not registered", fallback)
	}
	r.domains = domains
	r.stacks = stacks
	return r, nil
}

// Lookup returns the descriptor of a domain.
func (r *Registry) Lookup(id string) (domain.Descriptor, error) {
	i, ok := r.byID[id]
	if !ok {
		return domain.Descriptor{}, fmt.Errorf("%w: %q", domain.ErrDomainNotFound, id)
	}
	return r.domains[i], nil
}

// Stack returns the descriptor of a stack.
func (r *Registry) Stack(id string) (domain.Stack, error) {
	i, ok := r.stackByID[id]
	if !ok {
		return domain.Stack{}, fmt.Errorf("%w: %q", domain.ErrStackNotFound, id)
	}
	return r.stacks[i], nil
}

// Domains returns all domains in registration order.
func (r *Registry) Domains() []domain.Descriptor { return r.domains }

// Stacks returns all stacks in registration order.
func (r *Registry) Stacks() []domain.Stack { return r.stacks }

// Fallback returns the domain chosen when auto-detection finds no keyword.
func (r *Registry) Fallback() string { return r.fallback }

// DetectRules returns one detection rule per domain, in registration order.
func (r *Registry) DetectRules() []detect.Rule {
	rules := make([]detect.Rule, len(r.domains))
	for i, d := range r.domains {
		rules[i] = detect.Rule{Domain: d.ID(), Keywords: d.Keywords()}
	}
	return rules
}

// Sources returns every distinct data-source locator, domains first.
func (r *Registry) Sources() []string {
	seen := make(map[string]bool, len(r.domains)+len(r.stacks))
	var out []string
	add := func(src string) {
		if !seen[src] {
			seen[src] = true
			out = append(out, src)
		}
	}
	for _, d := range r.domains {
		add(d.Source())
	}
	for _, s := range r.stacks {
		add(s.Source())
	}
	return out
}

// file is the YAML shape of a registry override.
type file struct {
	Fallback string       `yaml:"fallback"`
	Domains  []domainFile `yaml:"domains"`
	Stacks   []stackFile  `yaml:"stacks"`
}

type domainFile struct {
	ID       string   `yaml:"id"`
	Source   string   `yaml:"source"`
	Search   []string `yaml:"search"`
	Output   []string `yaml:"output"`
	Keywords []string `yaml:"keywords"`
}

type stackFile struct {
	ID     string `yaml:"id"`
	Source string `yaml:"source"`
}

// Load reads a registry from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	domains := make([]domain.Descriptor, 0, len(f.Domains))
	for _, df := range f.Domains {
		d, err := domain.NewDescriptor(df.ID, df.Source, df.Search, df.Output, df.Keywords)
		if err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}

	stacks := make([]domain.Stack, 0, len(f.Stacks))
	for _, sf := range f.Stacks {
		s, err := domain.NewStack(sf.ID, sf.Source)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, s)
	}

	return New(domains, stacks, f.Fallback)
}
