package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "beaverbuild",
	Short: "beaverbuild evaluates the Android build configuration of BeaverAI",
	Long: "beaverbuild evaluates the Android build settings of the BeaverAI app and selects\n" +
		"release or debug signing from RICENT_KEYSTORE, RICENT_KEYSTORE_ALIAS and RICENT_KEYSTORE_PASS.",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "beaverbuild: run 'beaverbuild --help' to see available commands")
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to beaverbuild.yaml (default: search ., ./android, data dir)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override: debug, info, warn, error")
	rootCmd.PersistentFlags().String("project-dir", "", "Flutter project directory (default from config, else .)")
}
