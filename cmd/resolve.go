package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caresoft-ricent/beaverbuild/internal/signing"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print which signing config the release build uses",
	Long: "Print 'release' when RICENT_KEYSTORE, RICENT_KEYSTORE_ALIAS and RICENT_KEYSTORE_PASS\n" +
		"are all set and 'debug' otherwise. Missing credentials are not an error.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		sel := signing.NewSelector(nil, "").Select()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sel.Config.Name)
		if explain, _ := cmd.Flags().GetBool("explain"); explain {
			fmt.Fprintf(out, "%s\t%s\n", signing.EnvKeystore, presentWord(sel.Presence.Keystore))
			fmt.Fprintf(out, "%s\t%s\n", signing.EnvKeystoreAlias, presentWord(sel.Presence.Alias))
			fmt.Fprintf(out, "%s\t%s\n", signing.EnvKeystorePass, presentWord(sel.Presence.Password))
			fmt.Fprintf(out, "storeFile\t%s\n", sel.Config.StoreFile)
			fmt.Fprintf(out, "keyAlias\t%s\n", sel.Config.KeyAlias)
		}
		return nil
	},
}

func presentWord(ok bool) string {
	if ok {
		return "set"
	}
	return "missing"
}

func init() {
	resolveCmd.Flags().Bool("explain", false, "Report each signing input and the chosen keystore")
	rootCmd.AddCommand(resolveCmd)
}
