package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/hotwatch/internal/board"
	"github.com/matheuskafuri/hotwatch/internal/export"
)

var (
	flagExportOutput  string
	flagExportKeyword string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the trending list as CSV",
	Long: `Write every entry of the trending list, in rank order, as a UTF-8 CSV with a
byte order mark so spreadsheet tools detect the encoding. Use -o - for stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		v, err := s.view(cmd.Context(), flagExportKeyword, false)
		if v.State == board.Unavailable {
			return fmt.Errorf("%w: %v", errUnavailable, err)
		}

		if flagExportOutput == "-" {
			return s.svc.ExportCSV(os.Stdout, v.Dataset)
		}

		f, err := os.Create(flagExportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagExportOutput, err)
		}
		if err := s.svc.ExportCSV(f, v.Dataset); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", flagExportOutput, err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Wrote %d entries to %s", v.Dataset.Len(), flagExportOutput)
		if v.State == board.Stale {
			fmt.Fprintf(os.Stderr, " (stale, fetched %s)", v.FetchedAt.Format("15:04:05"))
		}
		fmt.Fprintln(os.Stderr)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", export.DefaultFilename, "output file, - for stdout")
	exportCmd.Flags().StringVarP(&flagExportKeyword, "keyword", "k", "", "only titles containing this substring")
}
