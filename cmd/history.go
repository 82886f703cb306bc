package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caresoft-ricent/beaverbuild/internal/history"
	"github.com/caresoft-ricent/beaverbuild/internal/utils"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded descriptor evaluations",
	Long:  "Inspect recorded descriptor evaluations (timestamp, label, signing kind, fingerprint)",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded evaluations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		dbConn, err := a.openHistory()
		if err != nil {
			return err
		}
		r := history.NewRepository(dbConn)
		defer func() { _ = r.Close() }()

		evs, err := r.List(limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(evs) == 0 {
			fmt.Fprintln(out, "no evaluations recorded")
			return nil
		}
		for _, ev := range evs {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n", ev.ID, ev.CreatedAt, ev.Label, ev.Kind, short(ev.Fingerprint))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded evaluation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		dbConn, err := a.openHistory()
		if err != nil {
			return err
		}
		r := history.NewRepository(dbConn)
		defer func() { _ = r.Close() }()

		ev, err := r.Get(id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID: %d\n", ev.ID)
		fmt.Fprintf(out, "Label: %s\n", ev.Label)
		fmt.Fprintf(out, "Created: %s\n", ev.CreatedAt)
		fmt.Fprintf(out, "Signing: %s\n", ev.Kind)
		fmt.Fprintf(out, "Inputs: keystore=%s alias=%s password=%s\n",
			presentWord(ev.Presence.Keystore), presentWord(ev.Presence.Alias), presentWord(ev.Presence.Password))
		if ev.KeystorePath.Valid {
			fmt.Fprintf(out, "Keystore: %s (%s)\n", ev.KeystorePath.String, ev.KeyAlias.String)
		}
		fmt.Fprintf(out, "Application: %s\n", ev.ApplicationID)
		if ev.VersionName.Valid {
			fmt.Fprintf(out, "Version: %s (%d)\n", ev.VersionName.String, ev.VersionCode.Int64)
		}
		fmt.Fprintf(out, "Fingerprint: %s\n", ev.Fingerprint)
		fmt.Fprintf(out, "Descriptor: %s\n", ev.Descriptor)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded evaluation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !utils.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete all recorded evaluations? [y/N]: ") {
			fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return nil
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		dbConn, err := a.openHistory()
		if err != nil {
			return err
		}
		r := history.NewRepository(dbConn)
		defer func() { _ = r.Close() }()

		n, err := r.Clear()
		if err != nil {
			return err
		}
		a.log.Info("history cleared", zap.Int64("deleted", n))
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d evaluation(s)\n", n)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Maximum number of evaluations to list (0 for all)")
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not prompt for confirmation")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func short(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
