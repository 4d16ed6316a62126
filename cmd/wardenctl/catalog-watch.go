package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/veridian-labs/warden/pkg/catalog"
)

// catalogWatchCmd represents the catalog watch command
var catalogWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a catalog file and validate it on change",
	Long: `Watch a YAML catalog overlay and re-validate it whenever it changes.

Useful while authoring a catalog overlay: every write to the file is
parsed and merged against the built-in catalog, and validation errors
are reported immediately.

Example:
  wardenctl catalog watch /etc/warden/catalog.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchCatalog(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch catalog: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogWatchCmd)
}

func watchCatalog(filename string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	// Validate once up front so a broken file is reported before the
	// first write event
	reloadCatalog(filename)

	fmt.Printf("Watching %s for catalog changes\n", filename)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] File modified, revalidating catalog...\n", time.Now().Format(time.RFC3339))
				reloadCatalog(filename)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

func reloadCatalog(filename string) {
	cat, err := catalog.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return
	}
	fmt.Printf("Catalog OK: %d permissions across %d categories\n",
		len(cat.Policies()), len(cat.Categories()))
}
