package main

import (
	"context"
	"os"

	"github.com/BenKalegin/clouddiagram-sub004"
	"github.com/BenKalegin/clouddiagram-sub004/internal/cli"
	"github.com/BenKalegin/clouddiagram-sub004/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Replay an edit script and report the result",
	Long:  `Replays the YAML edit script and prints a summary, or a JSON dump of the document, history and view states with --json.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd, args)
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Metrics, _ = cmd.Flags().GetBool("metrics")
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		if opts.Watch && !opts.JSON && tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(opts.Out, clouddiagram.Version)
		}

		ctx, stop := cli.WithInterrupt(context.Background())
		err := cli.Run(ctx, opts)
		cli.ReportInterrupt(cmd.ErrOrStderr(), stop())
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Print the result as JSON")
	runCmd.Flags().Bool("metrics", false, "Print Prometheus metrics after the run")
	runCmd.Flags().BoolP("watch", "w", false, "Replay the script every time it changes")
}
