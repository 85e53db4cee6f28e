package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"bookdex/config"
	"bookdex/internal/adapter/catalog"
	"bookdex/internal/adapter/library"
	"bookdex/internal/adapter/store"
	"bookdex/internal/usecase"
)

// openStore opens the index database, creating the data directories when
// create is set. Read paths want a missing index to be an error instead.
func openStore(create bool) (*store.BoltStore, error) {
	path := config.IndexDBPath(dataDir)
	if create {
		if err := config.EnsureDataDirs(dataDir); err != nil {
			return nil, fmt.Errorf("failed to create data directories: %w", err)
		}
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no index found at %s. Run 'bookdex index' first", path)
	}
	return store.NewBoltStore(path, slog.Default())
}

func openCatalog() (*catalog.SQLiteCatalog, error) {
	return catalog.Open(config.CatalogDBPath(dataDir))
}

func newLibrary() *library.Library {
	return library.New(config.BooksDir(dataDir))
}

// newProgressBar builds the batch progress callback used by crawl and
// index, in the usual theme.
func newProgressBar(description string) (usecase.ProgressFunc, func()) {
	var bar *progressbar.ProgressBar

	progress := func(done, total int, bookID int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription(description),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	finish := func() {
		if bar != nil {
			bar.Finish()
		}
	}
	return progress, finish
}
