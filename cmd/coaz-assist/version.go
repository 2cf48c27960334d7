// Copyright COAZ Digital, 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of coaz-assist",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coaz-assist %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
