package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridian-labs/warden/pkg/catalog"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the permission catalog",
	Long:  `Inspect the permission catalog known to this build.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'catalog' requires a subcommand (list, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// catalogListCmd represents the catalog list command
var catalogListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List catalog permissions grouped by category",
	Long: `List catalog permissions grouped by category.

Without arguments, lists the built-in catalog. With a file argument,
lists the built-in catalog merged with the YAML overlay.

Example:
  wardenctl catalog list
  wardenctl catalog list /etc/warden/catalog.yml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cat := catalog.Builtin()
		if len(args) > 0 {
			var err error
			cat, err = catalog.Load(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
				os.Exit(1)
			}
		}

		printCatalog(cat)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
}

func printCatalog(cat *catalog.Catalog) {
	grouped := cat.ByCategory()
	for _, category := range cat.Categories() {
		fmt.Printf("%s:\n", category)
		for _, p := range grouped[category] {
			fmt.Printf("  %-44s %s\n", p.Slug, p.Name)
		}
		fmt.Println()
	}
	fmt.Printf("%d permissions\n", len(cat.Policies()))
}
