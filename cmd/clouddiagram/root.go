package main

import (
	"fmt"
	"os"

	"github.com/BenKalegin/clouddiagram-sub004/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clouddiagram",
	Short: "clouddiagram replays diagram edit scripts against the editing core",
	Long: `clouddiagram builds a diagram from a YAML edit script (inserts, moves,
reparenting, selection, undo and redo) and reports the resulting document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
}

// options reads the persistent flags and the script argument.
func options(cmd *cobra.Command, args []string) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{
		ScriptPath: args[0],
		ConfigPath: configPath,
		Debug:      debug,
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
	}
}
