package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at release time with -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the record-composer version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("record-composer %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
