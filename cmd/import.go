package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caresoft-ricent/beaverbuild/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import evaluation history into the active database",
}

var importDbCmd = &cobra.Command{
	Use:   "db <path>",
	Short: "Merge evaluations from an exported history database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		if !a.cfg.History.Enabled {
			return errHistoryDisabled
		}
		dbConn, err := a.openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		res, err := importer.MergeDatabase(dbConn, args[0])
		if err != nil {
			return err
		}
		a.log.Info("history imported",
			zap.String("source", args[0]),
			zap.Int("imported", res.Imported),
			zap.Int("skipped", res.Skipped))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d evaluation(s), skipped %d duplicate(s) from %s\n", res.Imported, res.Skipped, args[0])
		return nil
	},
}

func init() {
	importCmd.AddCommand(importDbCmd)
	rootCmd.AddCommand(importCmd)
}
