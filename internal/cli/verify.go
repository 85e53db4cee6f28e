package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookdex/internal/usecase"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Audit index invariants and catalog coverage",
	Long: `Check that every word record's counts match its position sets, that
totals match allocation sums, that the global index and the word records
agree exactly, and that every stored book body has a catalog row.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	result, err := usecase.NewVerifyUseCase(st, cat, newLibrary()).Run()
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	fmt.Printf("Checked %d words, %d books.\n", result.WordsChecked, result.BooksChecked)
	if len(result.Problems) == 0 {
		fmt.Println("Index is consistent.")
		return nil
	}
	for _, p := range result.Problems {
		fmt.Printf("  - %s\n", p)
	}
	return fmt.Errorf("found %d consistency problems", len(result.Problems))
}
