package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/citecheck/internal/bibliography"
	"github.com/pdiddy/citecheck/internal/library"
	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/internal/report"
	"github.com/pdiddy/citecheck/internal/source"
	"github.com/pdiddy/citecheck/internal/verify"
	"github.com/pdiddy/citecheck/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [files...]",
	Short: "Verify the entries of BibTeX, CSL, or plain-text bibliographies",
	Long: `Verify loads bibliography entries from BibTeX (.bib), CSL-YAML, CSL-JSON, or
numbered plain-text reference lists (.txt, .md). Use "-" for stdin; the
format is then detected from the content. Each entry is checked against the
configured sources in priority order.
Every entry is classified as verified, mismatch, not_found, or malformed;
duplicates are grouped, and arXiv preprints are matched to their official
publication when one exists.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringP("format", "f", "table", "output format: table, json, yaml, or bibtex")
	verifyCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	verifyCmd.Flags().StringSlice("sources", nil, "only consult these sources (e.g. crossref,dblp)")
	verifyCmd.Flags().Int("workers", 0, "number of entries verified concurrently")
	verifyCmd.Flags().Duration("timeout", 0, "deadline for the whole batch (0 = none)")
	verifyCmd.Flags().Bool("exact-year", false, "require the exact year for a verified match")
	verifyCmd.Flags().Bool("no-cache", false, "disable the query cache")
	verifyCmd.Flags().String("library", "", "SQLite reference library used by the local source")
	verifyCmd.Flags().Bool("strict", false, "exit non-zero when any entry is not verified")
	verifyCmd.Flags().StringSlice("keys", nil, "only verify entries with these citation keys")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more bibliography files (or - for stdin)")
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if err := applyVerifyFlags(cmd, &cfg); err != nil {
		return err
	}

	format := report.Format(mustString(cmd, "format"))
	if !isFormat(format) {
		return fmt.Errorf("unsupported format %q: use table, json, yaml, or bibtex", format)
	}

	entries, err := loadEntries(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if keys, _ := cmd.Flags().GetStringSlice("keys"); len(keys) > 0 {
		var missing []string
		entries, missing = bibliography.FilterKeys(entries, keys)
		if len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "warning: keys not found: %s\n", strings.Join(missing, ", "))
		}
	}
	fmt.Fprintf(os.Stderr, "Verifying %d entries\n", len(entries))

	var opts []verify.Option
	opts = append(opts, verify.WithLogger(logger))
	if cfg.VenuesFile != "" {
		table, err := normalize.LoadVenueFile(cfg.VenuesFile)
		if err != nil {
			return err
		}
		opts = append(opts, verify.WithVenueTable(table))
	}

	var index source.Index
	if store, err := openLibrary(cfg.LibraryPath); err != nil {
		logger.Warn("local library unavailable", zap.String("path", cfg.LibraryPath), zap.Error(err))
	} else if store != nil {
		defer store.Close()
		index = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := verify.NewEngine(cfg, source.Build(cfg, index), opts...)
	rep := eng.Verify(ctx, entries)

	out := cmd.OutOrStdout()
	if path := mustString(cmd, "output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.Write(out, rep, format, cfg.Report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && rep.VerifiedCount < rep.TotalCount {
		return fmt.Errorf("%d of %d entries not verified", rep.TotalCount-rep.VerifiedCount, rep.TotalCount)
	}
	return nil
}

// applyVerifyFlags overrides configuration with explicitly set flags.
func applyVerifyFlags(cmd *cobra.Command, cfg *types.VerifyConfig) error {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("timeout") {
		cfg.BatchTimeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("exact-year") {
		cfg.Thresholds.ExactYear, _ = flags.GetBool("exact-year")
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	if flags.Changed("library") {
		cfg.LibraryPath, _ = flags.GetString("library")
	}
	if flags.Changed("sources") {
		only, _ := flags.GetStringSlice("sources")
		return restrictSources(cfg, only)
	}
	return nil
}

// restrictSources disables every source not named in only.
func restrictSources(cfg *types.VerifyConfig, only []string) error {
	keep := make(map[types.SourceID]bool, len(only))
	for _, name := range only {
		id := types.SourceID(strings.TrimSpace(strings.ToLower(name)))
		if _, ok := cfg.Sources[id]; !ok {
			return fmt.Errorf("unknown source %q", name)
		}
		keep[id] = true
	}
	for id, sc := range cfg.Sources {
		sc.Enabled = keep[id]
		cfg.Sources[id] = sc
	}
	for i := range cfg.Steps {
		if keep[cfg.Steps[i].Source] {
			cfg.Steps[i].Enabled = true
		}
	}
	return nil
}

func loadEntries(paths []string, stdin io.Reader) ([]types.ClaimedEntry, error) {
	var all []types.ClaimedEntry
	for _, p := range paths {
		var (
			entries []types.ClaimedEntry
			err     error
		)
		if p == "-" {
			entries, err = bibliography.Parse(stdin, bibliography.FormatAuto)
		} else {
			entries, err = bibliography.Load(p)
		}
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// openLibrary opens the reference library when the file exists. A missing
// library is not an error; the local source is simply not registered.
func openLibrary(path string) (*library.Store, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return library.Open(path)
}

func isFormat(f report.Format) bool {
	for _, known := range report.Formats {
		if f == known {
			return true
		}
	}
	return false
}

func mustString(cmd *cobra.Command, name string) string {
	s, _ := cmd.Flags().GetString(name)
	return s
}
