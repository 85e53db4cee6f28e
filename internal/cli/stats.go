package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index and corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("failed to gather stats: %w", err)
	}
	books, err := cat.Count()
	if err != nil {
		return fmt.Errorf("failed to count catalog rows: %w", err)
	}
	stats.Books = books

	fmt.Printf("Corpus:\n")
	fmt.Printf("  Books in catalog:   %d\n", stats.Books)
	fmt.Printf("  Last available ID:  %d\n", stats.Cursor.LastAvailable)
	fmt.Printf("  Next to index ID:   %d\n", stats.Cursor.NextToIndex)
	fmt.Printf("Index:\n")
	fmt.Printf("  Distinct words:     %d\n", stats.Words)
	fmt.Printf("  Total occurrences:  %d\n", stats.Occurrences)
	fmt.Printf("  Global entries:     %d\n", stats.GlobalEntries)

	if len(stats.ShardWords) > 0 {
		shards := make([]string, 0, len(stats.ShardWords))
		for shard := range stats.ShardWords {
			shards = append(shards, shard)
		}
		sort.Strings(shards)
		fmt.Printf("  Words per shard:\n")
		for _, shard := range shards {
			fmt.Printf("    %s: %d\n", shard, stats.ShardWords[shard])
		}
	}
	return nil
}
