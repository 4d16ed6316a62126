package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/veridian-labs/warden/pkg/db"
	gormstore "github.com/veridian-labs/warden/pkg/store/gorm"
)

// userSetTimeoutCmd represents the user set-timeout command
var userSetTimeoutCmd = &cobra.Command{
	Use:   "set-timeout LOGIN MINUTES",
	Short: "Set a user's idle session timeout",
	Long: `Set the idle timeout, in minutes, after which a user's session
expires. Takes effect on the next session issue or refresh.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		login := args[0]
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes <= 0 {
			fmt.Fprintln(os.Stderr, "MINUTES must be a positive integer")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			os.Exit(1)
		}

		var userID int64
		database.Raw(`SELECT id FROM users WHERE login = ?`, login).Scan(&userID)
		if userID == 0 {
			fmt.Fprintf(os.Stderr, "User not found: %s\n", login)
			os.Exit(1)
		}

		provisioning := gormstore.NewProvisioningStore(database)
		if err := provisioning.SetSessionTimeout(userID, minutes); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set timeout: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Set session timeout for '%s' to %d minutes\n", login, minutes)
	},
}

func init() {
	userCmd.AddCommand(userSetTimeoutCmd)
}
