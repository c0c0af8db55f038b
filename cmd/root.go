package cmd

import (
	"fmt"
	"os"

	"github.com/matheuskafuri/hotwatch/internal/update"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig       string
	flagKeyword      string
	flagVersionCheck bool
)

var rootCmd = &cobra.Command{
	Use:   "hotwatch",
	Short: "Terminal board for a trending search list",
	Long: `hotwatch fetches a public trending list, ranks its entries by heat and shows
them in a terminal board. Results are cached for cache_ttl; r forces a refetch.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVarP(&flagKeyword, "keyword", "k", "", "start with titles filtered by keyword")

	versionCmd.Flags().BoolVar(&flagVersionCheck, "check", false, "check for a newer release")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hotwatch %s (commit: %s, built: %s)\n", version, commit, date)
		if !flagVersionCheck {
			return
		}
		if r := update.Check(cmd.Context(), version); r != nil {
			fmt.Printf("A newer version is available: %s\n", r.LatestVersion)
		} else {
			fmt.Println("No newer release found.")
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
