package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/hotwatch/internal/config"
	"github.com/matheuskafuri/hotwatch/internal/history"
)

var (
	flagHistorySince string
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history [title]",
	Short: "Show archived snapshots or one title's trajectory",
	Long: `Without arguments, list archived snapshots, newest first. With a title, show
every archived rank and score of that exact title, oldest first.

Snapshots are only archived while history.enabled is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := history.QueryOpts{Limit: flagHistoryLimit}
		if flagHistorySince != "" {
			d, err := config.ParseDays(flagHistorySince)
			if err != nil {
				return fmt.Errorf("invalid --since value: %w", err)
			}
			opts.Since = time.Now().Add(-d)
		}

		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)

		if len(args) == 0 {
			snaps, err := store.Snapshots(opts)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("No snapshots archived. Set history.enabled: true to start.")
				return nil
			}
			t.AppendHeader(table.Row{"Snapshot", "Fetched", "Entries"})
			for _, sn := range snaps {
				t.AppendRow(table.Row{sn.ID[:8], fetchedLabel(sn.FetchedAt), sn.Count})
			}
			t.Render()
			return nil
		}

		title := args[0]
		points, err := store.Trajectory(title, opts)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			fmt.Printf("No archived positions for %q.\n", title)
			return nil
		}

		fmt.Println(title)
		t.AppendHeader(table.Row{"Fetched", "Rank", "Heat"})
		for _, p := range points {
			t.AppendRow(table.Row{fetchedLabel(p.FetchedAt), p.Rank, p.DisplayScore})
		}
		best := points[0]
		for _, p := range points[1:] {
			if p.Rank < best.Rank {
				best = p
			}
		}
		t.AppendFooter(table.Row{fmt.Sprintf("%d snapshots", len(points)), fmt.Sprintf("best #%d", best.Rank), ""})
		t.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&flagHistorySince, "since", "", "only snapshots from the last duration (e.g. 1d, 6h)")
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 0, "maximum rows")
}

func fetchedLabel(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Local().Format("Jan 2 15:04"), humanize.Time(t))
}
