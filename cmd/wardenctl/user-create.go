package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridian-labs/warden/pkg/db"
	gormstore "github.com/veridian-labs/warden/pkg/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create LOGIN",
	Short: "Create a user",
	Long: `Create a user with the given login.

The user starts with no memberships; until one is granted, sessions carry
only the self-service fallback permissions. Requires the DATABASE_URL
environment variable.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		login := args[0]
		displayName, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")
		if displayName == "" {
			displayName = login
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

		provisioning := gormstore.NewProvisioningStore(database)
		userID, err := provisioning.EnsureUser(login, displayName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		if password != "" {
			credentials := gormstore.NewCredentialStore(database)
			if err := credentials.UpdatePassword(userID, []byte(password)); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to set password: %v\n", err)
				os.Exit(1)
			}
		}

		fmt.Printf("Created user '%s' (id %d)\n", login, userID)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("name", "", "Display name (defaults to the login)")
	userCreateCmd.Flags().String("password", "", "Initial password (omit to set later with reset-password)")
}
