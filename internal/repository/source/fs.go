package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/row"
)

// FS reads CSV data sources from a file system.
type FS struct {
	fsys fs.FS
}

// NewFS creates a provider over fsys (os.DirFS or an embedded FS).
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Load reads and parses the CSV file at locator.
func (p *FS) Load(ctx context.Context, locator string) ([]row.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Clean(locator)
	if !fs.ValidPath(name) {
		return nil, domain.NewSourceError(locator, fmt.Errorf("%w: invalid locator", domain.ErrDataSourceMissing))
	}

	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewSourceError(locator, domain.ErrDataSourceMissing)
		}
		return nil, domain.NewSourceError(locator, fmt.Errorf("%w: %w", domain.ErrDataSourceMissing, err))
	}

	rows, err := Parse(data)
	if err != nil {
		return nil, domain.NewSourceError(locator, err)
	}
	return rows, nil
}

// Ping checks that the root of the file system is readable.
func (p *FS) Ping(_ context.Context) error {
	if _, err := fs.Stat(p.fsys, "."); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	return nil
}
