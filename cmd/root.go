// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookverse/bookverse-core/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bookverse-core",
	Short: "BookVerse shared authentication service",
	Long:  `Validates identity-provider bearer tokens for the BookVerse platform services`,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Println(version.Version)
			return
		}
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Show the app version and exit")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
