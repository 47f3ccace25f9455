package main

import (
	"github.com/BenKalegin/clouddiagram-sub004/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <script>",
	Short: "Export the diagram as a Mermaid flowchart",
	Long:  `Replays the edit script and outputs a Mermaid diagram (graph TD) of the cell tree, highlighting the selection and the drilled-into cell.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Graph(options(cmd, args))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
