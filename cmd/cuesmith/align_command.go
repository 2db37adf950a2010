package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cuesmith/internal/alignment"
	"cuesmith/internal/textutil"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var script scriptFlags
	var cjk bool
	var format string

	cmd := &cobra.Command{
		Use:   "align <transcript.json>",
		Short: "Align a script to recognizer word timings",
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
			tr, err := loadTranscript(args[0])
			if err != nil {
				return err
			}
			scriptText, scriptTokens, err := script.load()
			if err != nil {
				return err
			}
			if scriptText == "" && len(scriptTokens) == 0 {
				return errors.New("provide --script or --script-tokens")
			}

			isCJK := cjk
			if !cmd.Flags().Changed("cjk") {
				sample := scriptText
				if sample == "" {
					sample = tr.Text()
				}
				isCJK = textutil.LooksCJK(sample)
			}

			result := alignment.Align(alignment.Request{
				ScriptTokens: scriptTokens,
				ScriptText:   scriptText,
				Words:        tr.Words(),
				IsCJK:        isCJK,
			}, cfg.AlignmentOptions())

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, result)
			}
			if err := renderTokenTable(out, result.Tokens); err != nil {
				return err
			}
			fmt.Fprintf(out, "CJK: %s\n", yesNo(isCJK))
			renderAlignmentSummary(out, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&script.scriptPath, "script", "", "Script text file")
	cmd.Flags().StringVar(&script.tokensPath, "script-tokens", "", "Pre-tokenized script (JSON array or one token per line)")
	cmd.Flags().BoolVar(&cjk, "cjk", false, "Treat the script as CJK (default: detect)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table or json")
	return cmd
}
