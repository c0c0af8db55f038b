package cmd

import (
	"github.com/matheuskafuri/hotwatch/internal/tui"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.Run(tui.RunOpts{
		Service: s.svc,
		Top:     s.cfg.TopN(),
		Keyword: flagKeyword,
	})
}
