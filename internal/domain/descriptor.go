package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ReservedPrefix marks column names the engine keeps for itself (e.g. the score field).
const ReservedPrefix = "_"

// Columns shared by every stack knowledge base.
var (
	StackSearchColumns = []string{"Category", "Guideline", "Description", "Do", "Don't"}
	StackOutputColumns = []string{
		"Category", "Guideline", "Description", "Do", "Don't", "Code Good", "Code Bad", "Severity",
	}
)

// Descriptor describes one knowledge domain (immutable value object).
type Descriptor struct {
	id            string
	source        string
	searchColumns []string
	outputColumns []string
	keywords      []string
}

// NewDescriptor validates and creates a Descriptor.
// Keywords are lowercased; they drive domain auto-detection and may be empty.
func NewDescriptor(id, source string, searchColumns, outputColumns, keywords []string) (Descriptor, error) {
	if err := validateID(id); err != nil {
		return Descriptor{}, err
	}
	if strings.TrimSpace(source) == "" {
		return Descriptor{}, fmt.Errorf("domain %q: source is required", id)
	}
	if err := validateColumns(searchColumns); err != nil {
		return Descriptor{}, fmt.Errorf("domain %q: search columns: %w", id, err)
	}
	if err := validateColumns(outputColumns); err != nil {
		return Descriptor{}, fmt.Errorf("domain %q: output columns: %w", id, err)
	}

	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(k); k != "" {
			kw = append(kw, k)
		}
	}

	return Descriptor{
		id:            id,
		source:        source,
		searchColumns: slices.Clone(searchColumns),
		outputColumns: slices.Clone(outputColumns),
		keywords:      kw,
	}, nil
}

// ID returns the domain identifier.
func (d Descriptor) ID() string { return d.id }

// Source returns the data-source locator.
func (d Descriptor) Source() string { return d.source }

// SearchColumns returns the columns concatenated into the searchable document.
func (d Descriptor) SearchColumns() []string { return d.searchColumns }

// OutputColumns returns the columns projected into results.
func (d Descriptor) OutputColumns() []string { return d.outputColumns }

// Keywords returns the lowercase detection keywords.
func (d Descriptor) Keywords() []string { return d.keywords }

// Stack describes a framework-specific guideline base. Columns are shared across stacks.
type Stack struct {
	id     string
	source string
}

// NewStack validates and creates a Stack.
func NewStack(id, source string) (Stack, error) {
	if err := validateID(id); err != nil {
		return Stack{}, err
	}
	if strings.TrimSpace(source) == "" {
		return Stack{}, fmt.Errorf("stack %q: source is required", id)
	}
	return Stack{id: id, source: source}, nil
}

// ID returns the stack identifier.
func (s Stack) ID() string { return s.id }

// Source returns the data-source locator.
func (s Stack) Source() string { return s.source }

// Descriptor returns the stack as a searchable domain descriptor.
func (s Stack) Descriptor() Descriptor {
	return Descriptor{
		id:            s.id,
		source:        s.source,
		searchColumns: StackSearchColumns,
		outputColumns: StackOutputColumns,
	}
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("id %q must be lowercase alphanumeric with underscores and hyphens", id)
	}
	return nil
}

func validateColumns(cols []string) error {
	if len(cols) == 0 {
		return fmt.Errorf("at least one column is required")
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("empty column name")
		}
		if strings.HasPrefix(c, ReservedPrefix) {
			return fmt.Errorf("column %q uses reserved prefix %q", c, ReservedPrefix)
		}
		if seen[c] {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	return nil
}
