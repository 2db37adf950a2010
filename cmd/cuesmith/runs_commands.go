package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cuesmith/internal/generation"
	"cuesmith/internal/runlog"
)

const defaultPruneAge = 30 * 24 * time.Hour

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run log",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsPruneCommand(ctx))
	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var webinarID string
	var status string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, closeStore, err := ctx.openService(cmd, true)
			if err != nil {
				return err
			}
			defer closeStore()

			runs, err := svc.Runs(cmd.Context(), runlog.ListFilter{
				WebinarID: strings.TrimSpace(webinarID),
				Status:    runlog.Status(strings.TrimSpace(status)),
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					string(run.Status),
					run.WebinarID,
					yesNo(run.HasScript),
					strconv.Itoa(run.CueCount),
					strconv.Itoa(run.IssueCount),
				})
			}
			return renderTable(out, []column{
				left("Run"), left("Created"), left("Status"), left("Webinar"),
				left("Script"), right("Cues"), right("Issues"),
			}, rows)
		},
	}
	cmd.Flags().StringVar(&webinarID, "webinar", "", "Only runs for this webinar")
	cmd.Flags().StringVar(&status, "status", "", "Only runs with this status (running, succeeded, failed, rejected)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a run and its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, closeStore, err := ctx.openService(cmd, true)
			if err != nil {
				return err
			}
			defer closeStore()

			detail, err := svc.Run(cmd.Context(), args[0])
			if errors.Is(err, generation.ErrNotFound) {
				return fmt.Errorf("run %s not found", strings.TrimSpace(args[0]))
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, detail)
			}

			run := detail.Run
			fmt.Fprintf(out, "Run:       %s\n", run.ID)
			fmt.Fprintf(out, "Status:    %s\n", run.Status)
			if run.WebinarID != "" {
				fmt.Fprintf(out, "Webinar:   %s\n", run.WebinarID)
			}
			fmt.Fprintf(out, "Script:    %s (strict %s, CJK %s)\n", yesNo(run.HasScript), yesNo(run.Strict), yesNo(run.IsCJK))
			fmt.Fprintf(out, "Cues:      %d (%d issues)\n", run.CueCount, run.IssueCount)
			fmt.Fprintf(out, "Created:   %s\n", run.CreatedAt.Local().Format(time.RFC3339))
			if run.FinishedAt != nil {
				fmt.Fprintf(out, "Finished:  %s (%s)\n", run.FinishedAt.Local().Format(time.RFC3339),
					run.FinishedAt.Sub(run.CreatedAt).Round(time.Millisecond))
			}
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:     %s\n", run.ErrorMessage)
			}

			rows := make([][]string, 0, len(detail.Events))
			for _, event := range detail.Events {
				rows = append(rows, []string{
					strconv.Itoa(event.Seq),
					event.Time.Local().Format("15:04:05.000"),
					event.Level,
					event.Stage,
					event.Message,
				})
			}
			return renderTable(out, []column{right("#"), left("Time"), left("Level"), left("Stage"), left("Message")}, rows)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newRunsPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete finished runs older than a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return errors.New("--older-than must be positive")
			}
			_, store, closeStore, err := ctx.openService(cmd, true)
			if err != nil {
				return err
			}
			defer closeStore()

			removed, err := store.PruneRuns(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return fmt.Errorf("prune runs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s) older than %s\n", removed, olderThan)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", defaultPruneAge, "Age cutoff for finished runs")
	return cmd
}
