package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cuesmith/internal/subtitles"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check <file.srt>",
		Short: "Validate cue timing and layout of an existing SubRip file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(format, formatTable, formatJSON)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			content, err := readText(args[0])
			if err != nil {
				return err
			}
			cues, err := subtitles.ReadSRT(bytes.NewReader([]byte(content)))
			if err != nil {
				return err
			}
			opts := cfg.SubtitleOptions()
			if format == formatJSON {
				issues := subtitles.ValidateCues(cues, opts)
				if issues == nil {
					issues = []subtitles.Issue{}
				}
				if err := writeJSON(cmd.OutOrStdout(), map[string]any{"cues": len(cues), "issues": issues}); err != nil {
					return err
				}
				return issueError(issues)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checked %d cues\n", len(cues))
			return checkCues(cmd.OutOrStdout(), cues, opts)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table or json")
	return cmd
}

// checkCues prints ValidateCues findings and fails when any are errors.
func checkCues(out io.Writer, cues []subtitles.Cue, opts subtitles.Options) error {
	issues := subtitles.ValidateCues(cues, opts)
	if len(issues) == 0 {
		fmt.Fprintln(out, "No issues found")
		return nil
	}
	if err := renderIssueTable(out, issues); err != nil {
		return err
	}
	return issueError(issues)
}

func issueError(issues []subtitles.Issue) error {
	var errs int
	for _, issue := range issues {
		if issue.Severity == subtitles.SeverityError {
			errs++
		}
	}
	if errs > 0 {
		return fmt.Errorf("check failed: %d error issue(s)", errs)
	}
	return nil
}
