package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridian-labs/warden/pkg/db"
	gormstore "github.com/veridian-labs/warden/pkg/store/gorm"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password LOGIN",
	Short: "Reset a user's password",
	Long: `Reset the password for a user.

With --password the given value is stored; otherwise a random password is
generated and printed to stdout. Active sessions are not revoked; use the
admin revoke endpoint for that.

Example:
  wardenctl user reset-password admin@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		login := args[0]
		password, _ := cmd.Flags().GetString("password")

		generated, err := resetUserPassword(login, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", login, err)
			os.Exit(1)
		}
		if generated != "" {
			fmt.Println(generated)
		}
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
	userResetPasswordCmd.Flags().String("password", "", "New password (omit to generate one)")
}

func resetUserPassword(login, password string) (string, error) {
	if os.Getenv("DATABASE_URL") == "" {
		return "", fmt.Errorf("DATABASE_URL environment variable is required")
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	var userID int64
	database.Raw(`SELECT id FROM users WHERE login = ?`, login).Scan(&userID)
	if userID == 0 {
		return "", fmt.Errorf("user not found: %s", login)
	}

	generated := ""
	if password == "" {
		raw := make([]byte, 24)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		generated = base64.RawURLEncoding.EncodeToString(raw)
		password = generated
	}

	credentials := gormstore.NewCredentialStore(database)
	if err := credentials.UpdatePassword(userID, []byte(password)); err != nil {
		return "", err
	}
	return generated, nil
}
