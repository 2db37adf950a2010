package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cuesmith/internal/fileutil"
	"cuesmith/internal/generation"
	"cuesmith/internal/subtitles"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var script scriptFlags
	var cjk bool
	var noStrict bool
	var format string
	var outPath string
	var webinarID string
	var persist bool
	var check bool
	var maxChars int
	var maxLines int
	var maxCPS float64

	cmd := &cobra.Command{
		Use:   "generate <transcript.json>",
		Short: "Generate subtitle cues from a recognizer transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(format, formatJSON, formatSRT, formatVTT, formatTable)
			if err != nil {
				return err
			}
			tr, err := loadTranscript(args[0])
			if err != nil {
				return err
			}
			scriptText, scriptTokens, err := script.load()
			if err != nil {
				return err
			}

			req := generation.Request{
				Transcript:   tr,
				ScriptText:   scriptText,
				ScriptTokens: scriptTokens,
				WebinarID:    strings.TrimSpace(webinarID),
				Persist:      persist,
			}
			flags := cmd.Flags()
			if flags.Changed("cjk") {
				req.IsCJK = &cjk
			}
			if noStrict {
				strict := false
				req.StrictAlignment = &strict
			}
			if flags.Changed("max-chars-per-line") {
				req.Options.MaxCharsPerLine = &maxChars
			}
			if flags.Changed("max-lines") {
				req.Options.MaxLines = &maxLines
			}
			if flags.Changed("max-cps") {
				req.Options.MaxCPS = &maxCPS
			}

			svc, _, closeStore, err := ctx.openService(cmd, true)
			if err != nil {
				return err
			}
			defer closeStore()

			stderr := cmd.ErrOrStderr()
			resp, genErr := svc.Generate(cmd.Context(), req)
			if genErr != nil {
				if resp != nil && resp.Alignment != nil {
					renderAlignmentSummary(stderr, *resp.Alignment)
				}
				if errors.Is(genErr, generation.ErrAlignmentRejected) {
					return fmt.Errorf("%w (rerun with --no-strict to accept the alignment)", genErr)
				}
				return genErr
			}

			toFile := strings.TrimSpace(outPath) != ""
			emit := func(out io.Writer) error {
				if format == formatJSON {
					return writeJSON(out, resp)
				}
				if err := writeCues(out, format, resp.Cues); err != nil {
					return err
				}
				if format != formatTable || toFile {
					return nil
				}
				return renderSummary(out, resp)
			}
			if toFile {
				if err := fileutil.WriteAtomic(strings.TrimSpace(outPath), 0o644, emit); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
			} else if err := emit(cmd.OutOrStdout()); err != nil {
				return err
			}
			if format != formatJSON && (format != formatTable || toFile) {
				if err := renderSummary(stderr, resp); err != nil {
					return err
				}
			}
			if resp.Persisted {
				fmt.Fprintf(stderr, "Saved subtitles for webinar %s (run %s)\n", req.WebinarID, resp.RunID)
			}

			for _, issue := range resp.Issues {
				if issue.Severity == subtitles.SeverityError {
					return fmt.Errorf("generation failed: %s", issue.Message)
				}
			}
			if check {
				return checkCues(stderr, resp.Cues, req.Options.Apply(svc.SubtitleOptions()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&script.scriptPath, "script", "", "Script text file to align against the transcript")
	cmd.Flags().StringVar(&script.tokensPath, "script-tokens", "", "Pre-tokenized script (JSON array or one token per line)")
	cmd.Flags().BoolVar(&cjk, "cjk", false, "Treat the script as CJK (default: detect)")
	cmd.Flags().BoolVar(&noStrict, "no-strict", false, "Accept alignments below the configured coverage")
	cmd.Flags().StringVarP(&format, "format", "f", formatSRT, "Output format: json, srt, vtt, or table")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().StringVar(&webinarID, "webinar", "", "Webinar id recorded with the run")
	cmd.Flags().BoolVar(&persist, "persist", false, "Save the cues as the webinar's subtitles (requires --webinar)")
	cmd.Flags().BoolVar(&check, "check", false, "Re-validate the generated cues and fail on problems")
	cmd.Flags().IntVar(&maxChars, "max-chars-per-line", 0, "Override the line length budget")
	cmd.Flags().IntVar(&maxLines, "max-lines", 0, "Override the lines per cue")
	cmd.Flags().Float64Var(&maxCPS, "max-cps", 0, "Override the reading speed limit")
	return cmd
}

// renderSummary prints alignment, metrics, and issues for a response.
func renderSummary(out io.Writer, resp *generation.Response) error {
	if resp.Alignment != nil {
		renderAlignmentSummary(out, *resp.Alignment)
	}
	if resp.Metrics != nil {
		renderMetrics(out, *resp.Metrics)
	}
	if len(resp.Issues) > 0 {
		return renderIssueTable(out, resp.Issues)
	}
	return nil
}
