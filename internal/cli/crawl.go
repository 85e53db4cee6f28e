package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"bookdex/internal/adapter/gutenberg"
	"bookdex/internal/usecase"
)

var crawlBooks int

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Download books into the datalake",
	Long: `Download the next batch of plain-text books from Project Gutenberg,
extract their metadata into the catalog and record the highest available
book ID for the indexer to pick up.

IDs with no plain-text edition are skipped and do not count toward the
batch size.`,
	Args: cobra.NoArgs,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	crawlCmd.Flags().IntVarP(&crawlBooks, "books", "n", 0, "number of books to download (default from config)")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	count := cfg.Crawl.Books
	if crawlBooks > 0 {
		count = crawlBooks
	}

	fetcher := gutenberg.NewClient(cfg.Crawl.BaseURL, time.Duration(cfg.Crawl.TimeoutSeconds)*time.Second)
	acquireUC := usecase.NewAcquireUseCase(fetcher, newLibrary(), cat, st, slog.Default())

	progress, finish := newProgressBar("[cyan]Downloading[reset]")
	result, err := acquireUC.Run(cmd.Context(), count, progress)
	finish()
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	fmt.Printf("Downloaded %d books (%d IDs skipped), last available ID is now %d\n",
		len(result.Downloaded), len(result.Skipped), result.LastID)
	return nil
}
