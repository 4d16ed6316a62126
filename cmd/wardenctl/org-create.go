package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridian-labs/warden/pkg/config"
	"github.com/veridian-labs/warden/pkg/db"
	"github.com/veridian-labs/warden/pkg/store"
	gormstore "github.com/veridian-labs/warden/pkg/store/gorm"
)

// orgCreateCmd represents the org create command
var orgCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an organization and its owner",
	Long: `Create an organization with the default Owner and Admin roles and
grant the Owner role to a bootstrap user.

Syncs the permission catalog into the database first, so the default role
bundles have policies to reference. Requires the DATABASE_URL environment
variable.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		orgName := args[0]
		ownerLogin, _ := cmd.Flags().GetString("owner-login")
		ownerName, _ := cmd.Flags().GetString("owner-name")
		ownerPassword, _ := cmd.Flags().GetString("owner-password")

		if ownerLogin == "" {
			fmt.Fprintln(os.Stderr, "--owner-login is required")
			os.Exit(1)
		}
		if ownerName == "" {
			ownerName = ownerLogin
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		cat, err := loadCatalog(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			os.Exit(1)
		}

		provisioning := gormstore.NewProvisioningStore(database)

		records := make([]store.PolicyRecord, 0, len(cat.Policies()))
		for _, p := range cat.Policies() {
			records = append(records, store.PolicyRecord{
				Slug:        p.Slug,
				Name:        p.Name,
				Description: p.Description,
				Category:    p.Category,
			})
		}
		if err := provisioning.SyncPolicies(records); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sync catalog: %v\n", err)
			os.Exit(1)
		}

		orgID, err := provisioning.EnsureOrganization(orgName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create organization: %v\n", err)
			os.Exit(1)
		}

		ownerRoleID, err := provisioning.CreateRole(orgID, "Owner", cat.DefaultBundle("owner"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create Owner role: %v\n", err)
			os.Exit(1)
		}
		if _, err := provisioning.CreateRole(orgID, "Admin", cat.DefaultBundle("admin")); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create Admin role: %v\n", err)
			os.Exit(1)
		}

		userID, err := provisioning.EnsureUser(ownerLogin, ownerName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create owner user: %v\n", err)
			os.Exit(1)
		}

		if err := provisioning.GrantMembership(userID, orgID, ownerRoleID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to grant Owner role: %v\n", err)
			os.Exit(1)
		}

		if ownerPassword != "" {
			credentials := gormstore.NewCredentialStore(database)
			if err := credentials.UpdatePassword(userID, []byte(ownerPassword)); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to set owner password: %v\n", err)
				os.Exit(1)
			}
		}

		fmt.Printf("Created organization '%s' (id %d)\n", orgName, orgID)
		fmt.Printf("Granted Owner role to '%s' (id %d)\n", ownerLogin, userID)
		if ownerPassword == "" {
			fmt.Printf("No password set; run 'wardenctl user reset-password %s' before logging in\n", ownerLogin)
		}
	},
}

func init() {
	orgCmd.AddCommand(orgCreateCmd)
	orgCreateCmd.Flags().String("owner-login", "", "Login of the bootstrap owner user (required)")
	orgCreateCmd.Flags().String("owner-name", "", "Display name of the owner (defaults to the login)")
	orgCreateCmd.Flags().String("owner-password", "", "Initial owner password (prompted use discouraged; omit to set later)")
}
