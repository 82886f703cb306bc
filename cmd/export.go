package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caresoft-ricent/beaverbuild/internal/exporter"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history database or a rendered descriptor",
}

var exportDbCmd = &cobra.Command{
	Use:   "db [--dst <path>]",
	Short: "Export the history database to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		dst, _ := cmd.Flags().GetString("dst")
		// default destination: ./beaverbuild-YYYY-MM-DD.db, suffixed to avoid overwrite
		if dst == "" {
			if dst, err = exporter.DefaultDatabaseDst(".", time.Now()); err != nil {
				return err
			}
		}
		// make sure the database exists before copying it
		dbConn, err := a.openHistory()
		if err != nil {
			return err
		}
		_ = dbConn.Close()
		if err := exporter.ExportDatabase(dst); err != nil {
			return err
		}
		a.log.Info("history exported", zap.String("dst", dst))
		fmt.Fprintf(cmd.OutOrStdout(), "exported database to %s\n", dst)
		return nil
	},
}

var exportDescriptorCmd = &cobra.Command{
	Use:   "descriptor --dst <path>",
	Short: "Evaluate and write the descriptor to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dst, _ := cmd.Flags().GetString("dst")
		if dst == "" {
			return fmt.Errorf("--dst is required")
		}
		formatRaw, _ := cmd.Flags().GetString("format")
		format, err := exporter.ParseFormat(formatRaw)
		if err != nil {
			return err
		}
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

		f, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("create %s: %w", dst, err)
		}
		if err := exporter.WriteDescriptor(f, ev.desc, format, exporter.Options{IncludeSecrets: secrets}); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s descriptor (%s signing) to %s\n", format, ev.sel.Config.Name, dst)
		return nil
	},
}

func init() {
	exportDbCmd.Flags().String("dst", "", "Destination file path for the exported DB")
	exportDescriptorCmd.Flags().String("dst", "", "Destination file path (required)")
	exportDescriptorCmd.Flags().StringP("format", "f", "properties", "Output format: json, yaml, properties")
	exportDescriptorCmd.Flags().Bool("include-secrets", false, "Keep signing passwords (properties format only)")
	exportCmd.AddCommand(exportDbCmd)
	exportCmd.AddCommand(exportDescriptorCmd)
	rootCmd.AddCommand(exportCmd)
}
