package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/hotwatch/internal/board"
)

var (
	flagListKeyword string
	flagListTop     int
	flagListAll     bool
)

// errUnavailable is returned when there is nothing at all to show.
var errUnavailable = errors.New("trending list unavailable")

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the current trending list",
	Long: `Fetch the trending list and print the top entries as a table, led by the
current #1. Use --keyword to keep only titles containing a substring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		top := s.cfg.TopN()
		if flagListTop > 0 {
			top = flagListTop
		}
		if flagListAll {
			top = 0
		}

		v, _ := s.view(cmd.Context(), flagListKeyword, false)
		return printView(os.Stdout, v, top, time.Now())
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagListKeyword, "keyword", "k", "", "only titles containing this substring (case-sensitive)")
	listCmd.Flags().IntVarP(&flagListTop, "top", "n", 0, "number of entries to print (default from config)")
	listCmd.Flags().BoolVar(&flagListAll, "all", false, "print every entry")
}

// printView renders v for a terminal. It returns an error only when the view
// has nothing to show because the source could not be reached.
func printView(w io.Writer, v board.View, top int, now time.Time) error {
	switch v.State {
	case board.Unavailable:
		return fmt.Errorf("%w: %v", errUnavailable, v.Err)
	case board.Empty:
		fmt.Fprintln(w, "No trending entries right now. The page may be serving a visitor check; try again later.")
		return nil
	case board.Stale:
		fmt.Fprintf(w, "Showing data fetched %s; the latest refresh failed: %v\n\n",
			humanize.RelTime(v.FetchedAt, now, "ago", "from now"), v.Err)
	}

	if v.Dataset.Empty() {
		fmt.Fprintf(w, "No entries match %q.\n", v.Keyword)
		return nil
	}

	if leader, ok := v.Dataset.Leader(); ok {
		fmt.Fprintf(w, "#1 %s (%s)\n", leader.Title, leader.DisplayScore)
	}

	shown := v.Dataset.Top(top)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Title", "Score"})
	for _, r := range shown.Records {
		t.AppendRow(table.Row{r.Rank, r.Title, r.DisplayScore})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d of %d", shown.Len(), v.Dataset.Len()), ""})
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.Render()
	return nil
}
