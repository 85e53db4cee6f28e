package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"bookdex/internal/adapter/analyzer"
	"bookdex/internal/adapter/extractor"
	"bookdex/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index downloaded books into the inverted index",
	Long: `Index every book the crawler has made available but the indexer has not
yet processed. Progress is tracked by a cursor, so repeated runs pick up
exactly where the last successful run finished.

A failure on any book (for example a missing body file) aborts the whole
run and leaves the cursor untouched; the next run retries the same range.`,
	Args: cobra.NoArgs,
	RunE: runIndexCmd,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndexCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	ex := extractor.New(analyzer.NewRuleLemmatizer(), cfg.Index.Language)
	indexUC := usecase.NewIndexUseCase(st, newLibrary(), ex, slog.Default())

	progress, finish := newProgressBar("[cyan]Indexing[reset]")
	result, err := indexUC.Run(progress)
	finish()
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if result.Indexed == 0 {
		fmt.Println("Nothing to index: every available book is already indexed.")
		return nil
	}
	fmt.Printf("Indexed books %d through %d:\n", result.From, result.To)
	fmt.Printf("  Books indexed: %d\n", result.Indexed)
	fmt.Printf("  Words merged:  %d\n", result.Words)
	return nil
}
