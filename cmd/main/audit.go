package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	audit "github.com/nivschuman/ElectionResults/internal/audit"
	health "github.com/nivschuman/ElectionResults/internal/health"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

var (
	logStation string
	logAfter   uint64
	logLimit   int
	liveOnly   bool
)

func init() {
	logCmd.Flags().StringVar(&logStation, "station", "", "only events of this station")
	logCmd.Flags().Uint64Var(&logAfter, "after", 0, "only events after this sequence")
	logCmd.Flags().IntVar(&logLimit, "limit", 50, "maximum number of events, -1 for all")
	rootCmd.AddCommand(logCmd)

	rootCmd.AddCommand(verifyCmd)

	healthCmd.Flags().BoolVar(&liveOnly, "live", false, "liveness only, skip database and audit checks")
	rootCmd.AddCommand(healthCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print audit events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			events []*models.AuditEvent
			err    error
		)

		if logStation != "" {
			events, err = node.AuditLog.StationEvents(logStation)
		} else {
			events, err = node.AuditLog.Events(logAfter, logLimit)
		}

		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SEQ\tTIME\tKIND\tSTATION\tACTOR\tROLE\tHASH")
		for _, event := range events {
			role := "-"
			if event.Role.IsValid() {
				role = event.Role.String()
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				event.Sequence,
				time.Unix(0, event.Timestamp).UTC().Format(time.RFC3339),
				event.Kind,
				event.StationId,
				shortId(event.ActorId),
				role,
				shortId(hexOrDash(event.Hash)),
			)
		}
		return w.Flush()
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify [station-id]",
	Short: "Verify the audit chain and replay it against the stored records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		events, err := node.AuditLog.Events(0, -1)
		if err != nil {
			return err
		}

		if err := audit.VerifyChain(events); err != nil {
			return err
		}
		fmt.Fprintf(out, "chain ok, %d events\n", len(events))

		replayed, _, err := audit.Replay(events)
		if err != nil {
			return err
		}

		stored, err := node.Repos.Results.GetRecords()
		if err != nil {
			return err
		}

		if mismatched := audit.Diff(replayed, stored); len(mismatched) > 0 {
			return errors.Errorf("replay differs from stored records at stations %v", mismatched)
		}
		fmt.Fprintf(out, "replay ok, %d records\n", len(stored))

		if len(args) == 1 {
			stationEvents, err := node.AuditLog.StationEvents(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "evidence root of %s: %s\n", args[0], hexOrDash(audit.StationEvidenceRoot(stationEvents)))
		}

		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report liveness and readiness as json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status := health.Liveness()
		if !liveOnly {
			status = node.Health()
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(status); err != nil {
			return err
		}

		if !status.Healthy() {
			return errors.New("node is unhealthy")
		}
		return nil
	},
}
