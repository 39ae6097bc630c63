package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/storypath"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of storypath",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("storypath version %s\n", strings.TrimSpace(storypath.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
