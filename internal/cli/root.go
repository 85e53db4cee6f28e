package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookdex/config"
	"bookdex/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	dataDir string

	logCleanup = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "bookdex",
	Short: "Incremental inverted index over a plain-text book corpus",
	Long: `bookdex maintains a persistent, incrementally updatable inverted index
over a corpus of plain-text books, with lemma-normalized lookup and
per-occurrence position tracking.

Example usage:
  bookdex crawl -n 5        # Download the next 5 books into the datalake
  bookdex index             # Index everything downloaded but not yet indexed
  bookdex search whale      # Look a word up, with highlighted source lines`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if dataDir == "" {
			dataDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(dataDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		_, logCleanup, err = logging.Setup(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logCleanup()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bookdex.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "data directory (default is current directory)")
}
