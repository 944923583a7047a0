package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/designkb/data"
	"github.com/kailas-cloud/designkb/internal/config"
	"github.com/kailas-cloud/designkb/internal/db"
	"github.com/kailas-cloud/designkb/internal/repository/source"
)

type seedFlags struct {
	from   string
	force  bool
	delete bool
}

func newSeedCmd(g *globalFlags) *cobra.Command {
	f := &seedFlags{}
	c := &cobra.Command{
		Use:   "seed",
		Short: "Upload knowledge-base CSV files into Redis",
		Long: "Stores every registered data source under <key_prefix><locator> so the redis data driver\n" +
			"can serve them. Files come from the built-in data unless --from names a directory.\n" +
			"Existing keys are kept unless --force is given; --delete removes them instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), &globalFlags{
				configPath: g.configPath,
				env:        g.env,
				logLevel:   g.logLevel,
			}, "info")
			if err != nil {
				return err
			}
			defer a.Close()
			if a.cfg.Data.Driver != config.DriverRedis {
				return fmt.Errorf("seed requires data.driver %q, got %q", config.DriverRedis, a.cfg.Data.Driver)
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			s := seeder{
				store:   store,
				keys:    source.NewKV(store, a.cfg.Data.KeyPrefix),
				sources: a.registry.Sources(),
				log:     a.log,
			}

			if f.delete {
				n, err := s.remove(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d data source(s)\n", n)
				return nil
			}

			var fsys fs.FS = data.FS
			if f.from != "" {
				fsys = os.DirFS(f.from)
			}
			st, err := s.seed(cmd.Context(), fsys, f.force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d, kept %d, missing %d data source(s)\n",
				st.seeded, st.kept, st.missing)
			return nil
		},
	}
	c.Flags().StringVar(&f.from, "from", "", "Read CSV files from this directory instead of the built-in data")
	c.Flags().BoolVar(&f.force, "force", false, "Overwrite data sources that already exist")
	c.Flags().BoolVar(&f.delete, "delete", false, "Delete the seeded data sources instead of writing them")
	c.MarkFlagsMutuallyExclusive("force", "delete")
	return c
}

type keyer interface {
	Key(locator string) string
}

// seeder copies data-source files into a key-value store.
type seeder struct {
	store   db.KVStore
	keys    keyer
	sources []string
	log     *zap.Logger
}

type seedStats struct {
	seeded, kept, missing int
}

// seed uploads every source found in fsys. Files are validated before upload so
// the store never holds a blob the provider would reject.
func (s seeder) seed(ctx context.Context, fsys fs.FS, force bool) (seedStats, error) {
	var st seedStats
	for _, locator := range s.sources {
		key := s.keys.Key(locator)

		blob, err := fs.ReadFile(fsys, locator)
		if err != nil {
			s.log.Warn("Skipping data source", zap.String("locator", locator), zap.Error(err))
			st.missing++
			continue
		}
		if _, err := source.Parse(blob); err != nil {
			return st, fmt.Errorf("%s: %w", locator, err)
		}

		if !force {
			exists, err := s.store.Exists(ctx, key)
			if err != nil {
				return st, fmt.Errorf("check %s: %w", key, err)
			}
			if exists {
				s.log.Debug("Data source already seeded", zap.String("key", key))
				st.kept++
				continue
			}
		}

		if err := s.store.Set(ctx, key, blob); err != nil {
			return st, fmt.Errorf("store %s: %w", locator, err)
		}
		s.log.Debug("Seeded data source", zap.String("key", key), zap.Int("bytes", len(blob)))
		st.seeded++
	}
	return st, nil
}

// remove deletes every registered source key and returns how many existed.
func (s seeder) remove(ctx context.Context) (int, error) {
	n := 0
	for _, locator := range s.sources {
		key := s.keys.Key(locator)
		exists, err := s.store.Exists(ctx, key)
		if err != nil {
			return n, fmt.Errorf("check %s: %w", key, err)
		}
		if !exists {
			continue
		}
		if err := s.store.Del(ctx, key); err != nil {
			return n, fmt.Errorf("delete %s: %w", key, err)
		}
		n++
	}
	return n, nil
}
