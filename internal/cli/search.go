package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"bookdex/internal/adapter/analyzer"
	"bookdex/internal/usecase"
)

var searchNoColor bool

var matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)

var searchCmd = &cobra.Command{
	Use:   "search <word>",
	Short: "Look a word up across all indexed books",
	Long: `Search the inverted index for a word. The term goes through the same
canonicalization and lemma folding as indexing, so "Cats" finds the
entry for "cat". Every occurrence is rendered with its source line and
the matched token highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchNoColor, "no-color", false, "disable match highlighting")
}

func runSearch(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	highlight := usecase.Highlighter(nil)
	if cfg.Search.Color && !searchNoColor {
		highlight = func(span string) string { return matchStyle.Render(span) }
	}

	searchUC := usecase.NewSearchUseCase(st, cat, newLibrary(),
		analyzer.NewRuleLemmatizer(), cfg.Index.Language, highlight)

	result, err := searchUC.Search(args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if result.NotIndexed {
		fmt.Printf("The word %q has not been indexed.\n", result.Term)
		return nil
	}

	fmt.Printf("%q appears %d times in %d books:\n", result.Canonical, result.Total, len(result.Books))
	for _, book := range result.Books {
		fmt.Printf("\n%s (book %d, %d occurrences)\n", book.Title, book.BookID, book.Times)
		for _, line := range book.Lines {
			fmt.Printf("  Line %d: %s (position %d)\n", line.Line, line.Text, line.Offset)
		}
	}
	return nil
}
