package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caresoft-ricent/beaverbuild/internal/descriptor"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Evaluate the descriptor and check it for structural problems",
	Long:  "Check SDK level ordering, identifiers and signing references. The keystore file itself is not read.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ev, err := a.evaluate()
		if err != nil {
			return err
		}
		if err := descriptor.Validate(ev.desc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %s signed with %s\n", ev.desc.ApplicationID, ev.sel.Config.Name)
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the build descriptor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := descriptor.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return err
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
}
