// Package source loads knowledge-base CSV files into rows.
package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/row"
)

// Provider yields the rows of a data source identified by locator.
type Provider interface {
	Load(ctx context.Context, locator string) ([]row.Row, error)
}

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\uFEFF"

// Parse decodes CSV with a header line into rows.
// Ragged records and empty, duplicate or reserved header names are malformed.
func Parse(data []byte) ([]row.Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 0

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", domain.ErrMalformedDataSource)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDataSource, err)
	}
	columns, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []row.Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDataSource, err)
		}
		rows = append(rows, row.New(columns, rec))
	}
	return rows, nil
}

func parseHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		switch {
		case h == "":
			return nil, fmt.Errorf("%w: empty column name at position %d", domain.ErrMalformedDataSource, i)
		case strings.HasPrefix(h, domain.ReservedPrefix):
			return nil, fmt.Errorf("%w: reserved column name %q", domain.ErrMalformedDataSource, h)
		case seen[h]:
			return nil, fmt.Errorf("%w: duplicate column %q", domain.ErrMalformedDataSource, h)
		}
		seen[h] = true
		columns[i] = h
	}
	return columns, nil
}
