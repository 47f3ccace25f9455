package main

import (
	"os"

	"github.com/BenKalegin/clouddiagram-sub004/internal/cli"
	"github.com/BenKalegin/clouddiagram-sub004/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <script>",
	Short: "Describe the session built by an edit script",
	Long:  `Replays the edit script and prints a markdown report of the cells, the history, the view cache and the selection. The report is rendered when stdout is a terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		return cli.Inspect(options(cmd, args), !plain && tui.IsTerminal(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("plain", false, "Print raw markdown")
}
