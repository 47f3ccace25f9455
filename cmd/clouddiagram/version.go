package main

import (
	"fmt"
	"strings"

	"github.com/BenKalegin/clouddiagram-sub004"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of clouddiagram",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "clouddiagram version %s\n", strings.TrimSpace(clouddiagram.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
