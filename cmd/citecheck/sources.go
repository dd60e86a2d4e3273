package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citecheck/pkg/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show the configured sources and the query plan",
	Long: `Sources prints each metadata source with its policy (enabled, timeout,
retries, rate interval) and the priority plan verify walks for every entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "%-18s  %-7s  %-8s  %-7s  %-8s  %s\n",
			"Source", "Enabled", "Timeout", "Retries", "Interval", "Credentials")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
		for _, id := range types.AllSources {
			sc, ok := cfg.Sources[id]
			if !ok {
				continue
			}
			fmt.Fprintf(os.Stdout, "%-18s  %-7t  %-8s  %-7d  %-8s  %s\n",
				id, sc.Enabled, sc.Timeout, sc.Retries, sc.RateInterval, credentials(sc))
		}

		fmt.Fprintln(os.Stdout, "\nQuery plan:")
		for i, st := range cfg.Steps {
			state := ""
			if !st.Enabled || !cfg.Sources[st.Source].Enabled {
				state = " (disabled)"
			}
			fmt.Fprintf(os.Stdout, "%2d. %s by %s%s\n", i+1, st.Source, st.Lookup, state)
		}
		return nil
	},
}

func credentials(sc types.SourceConfig) string {
	var parts []string
	if sc.APIKey != "" {
		parts = append(parts, "api key")
	}
	if sc.Mailto != "" {
		parts = append(parts, "mailto "+sc.Mailto)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
