package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/caresoft-ricent/beaverbuild/internal/exporter"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Evaluate and print the Android build descriptor",
	Long: "Evaluate the Android build settings and print the descriptor. Passwords are masked\n" +
		"unless --include-secrets is given with --format properties.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatRaw, _ := cmd.Flags().GetString("format")
		format, err := exporter.ParseFormat(formatRaw)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("out")
		label, _ := cmd.Flags().GetString("label")
		noRecord, _ := cmd.Flags().GetBool("no-record")
		secrets, _ := cmd.Flags().GetBool("include-secrets")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ev, err := a.evaluate()
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("open output: %w", err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}
		if err := exporter.WriteDescriptor(w, ev.desc, format, exporter.Options{IncludeSecrets: secrets}); err != nil {
			return err
		}
		if !noRecord {
			if _, err := a.record(ev, label); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	describeCmd.Flags().StringP("format", "f", "json", "Output format: json, yaml, properties")
	describeCmd.Flags().StringP("out", "o", "", "Write the descriptor to a file instead of stdout")
	describeCmd.Flags().String("label", "", "Label stored with the history record")
	describeCmd.Flags().Bool("no-record", false, "Do not record this evaluation in history")
	describeCmd.Flags().Bool("include-secrets", false, "Keep signing passwords (properties format only)")
	rootCmd.AddCommand(describeCmd)
}
