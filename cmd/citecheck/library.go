package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citecheck/internal/library"
	"github.com/pdiddy/citecheck/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local reference library",
	Long: `Library manages a local SQLite index of trusted references. When the
library exists, verify consults it as the "local" source, which answers
DOI, arXiv id, and title lookups without network access.`,
}

// --- import subcommand ---

var libraryImportCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import BibTeX or CSL references into the library",
	Long: `Import reads trusted BibTeX or CSL bibliographies and stores each record in the
library. Records are keyed by DOI, then arXiv id, then normalized title, so
importing the same file twice updates rather than duplicates.`,
	RunE: runLibraryImport,
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more bibliography files (or - for stdin)")
	}
	store, err := openLibraryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := loadEntries(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	recs := make([]types.CandidateMetadata, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, library.FromEntry(e))
	}

	summary, err := store.Import(context.Background(), recs)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Imported %d references (%d skipped)\n", summary.Added, summary.Skipped)
	return nil
}

// --- stats subcommand ---

var libraryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the number of references in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibraryStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Count(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d references in %s\n", n, libraryPath(cmd))
		return nil
	},
}

func libraryPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("library"); p != "" {
		return p
	}
	return viper.GetString("library_path")
}

func openLibraryStore(cmd *cobra.Command) (*library.Store, error) {
	path := libraryPath(cmd)
	if path == "" {
		return nil, fmt.Errorf("no library path configured")
	}
	return library.Open(path)
}

func init() {
	libraryCmd.PersistentFlags().String("library", "", "library database path (default $XDG_DATA_HOME/citecheck/library.db)")

	libraryCmd.AddCommand(libraryImportCmd)
	libraryCmd.AddCommand(libraryStatsCmd)
	rootCmd.AddCommand(libraryCmd)
}
