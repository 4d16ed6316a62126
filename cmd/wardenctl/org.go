package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// orgCmd represents the org command
var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations",
	Long:  `Manage organizations and their default roles.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'org' requires a subcommand (create)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(orgCmd)
}
