package cmd

import (
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	env        string
	dataDir    string
	logLevel   string
}

// NewRootCmd builds the designkb command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "designkb",
		Short:         "designkb: searchable UI/UX design knowledge",
		Long:          "BM25 search over curated design knowledge bases, domain detection and composite design-system recommendations.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to a YAML config file (default: config/<env>.yaml)")
	pf.StringVar(&g.env, "env", "", "Environment name: local, dev, docker, prod (default: $ENV or local)")
	pf.StringVar(&g.dataDir, "data-dir", "", "Read knowledge-base CSV files from this directory")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(newSearchCmd(g))
	root.AddCommand(newDetectCmd(g))
	root.AddCommand(newRecommendCmd(g))
	root.AddCommand(newDomainsCmd(g))
	root.AddCommand(newServeCmd(g))
	root.AddCommand(newSeedCmd(g))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
