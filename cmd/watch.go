package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/hotwatch/internal/board"
	"github.com/matheuskafuri/hotwatch/internal/scheduler"
)

var flagWatchSchedule string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refetch the trending list on a schedule",
	Long: `Refetch the trending list on a cron schedule (watch.schedule, default every
minute) and log each cycle. With history.enabled every cycle is archived.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchSchedule, "schedule", "", "cron spec overriding watch.schedule (e.g. \"*/5 * * * *\")")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	spec := s.cfg.Watch.Schedule
	if flagWatchSchedule != "" {
		spec = flagWatchSchedule
	}

	sched, err := scheduler.New(s.cfg.Watch.Timezone)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cycle := func() { watchCycle(ctx, s) }
	if err := sched.Schedule(spec, cycle); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	cycle()
	sched.Start()
	slog.Info("watching", "schedule", spec, "next", sched.Next().Format("15:04:05"), "tz", sched.Location())

	<-ctx.Done()
	slog.Info("stopping")
	sched.Stop()
	return nil
}

// watchCycle forces one refetch and logs its outcome.
func watchCycle(ctx context.Context, s *session) {
	v, err := s.view(ctx, "", true)
	switch v.State {
	case board.Fresh:
		leader, _ := v.Dataset.Leader()
		slog.Info("refreshed",
			"entries", v.Dataset.Len(),
			"anomalies", v.Dataset.Anomalies,
			"leader", leader.Title,
			"leader_score", leader.DisplayScore,
		)
	case board.Empty:
		slog.Warn("refreshed with no entries")
	default:
		slog.Error("refresh failed", "state", v.State, "err", err)
	}
}
