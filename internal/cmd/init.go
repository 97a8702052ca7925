package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hargabyte/liftoff/internal/config"
	"github.com/hargabyte/liftoff/internal/store"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .liftoff workspace and database",
	Long: `Initialize the .liftoff workspace in the current directory.

This creates the liftoff.db database that stores projects, launch progress,
and archived reports, and writes a config.yaml seeded with defaults
(report template, output format, readiness weights).

Examples:
  liftoff init          # Initialize in current directory
  liftoff init --force  # Reinitialize (overwrites existing database)`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize even if .liftoff already exists")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	liftoffDir := filepath.Join(cwd, config.WorkspaceDirName)
	dbPath := filepath.Join(liftoffDir, "liftoff.db")

	// Check if database already exists
	_, err = os.Stat(dbPath)
	if err == nil {
		// Database exists
		if !initForce {
			// Not forcing, so report status and exit cleanly
			relPath, _ := filepath.Rel(cwd, liftoffDir)
			fmt.Printf("Already initialized at %s\n", relPath)
			return nil
		}
		// Force flag set, remove old database to reinitialize
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("removing existing database: %w", err)
		}
	} else if !os.IsNotExist(err) {
		// Some other error occurred checking the file
		return fmt.Errorf("checking database path: %w", err)
	}

	// Open store to create the .liftoff directory and initialize schema
	storeDB, err := store.Open(liftoffDir)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer storeDB.Close()

	// Seed a default config.yaml next to the database. An existing config
	// is left alone, even under --force.
	cfgPath := filepath.Join(liftoffDir, config.ConfigFileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if _, err := config.SaveDefault(cwd); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	// Print success message with workspace path
	relPath, _ := filepath.Rel(cwd, liftoffDir)
	fmt.Printf("Initialized liftoff workspace at %s\n", relPath)

	return nil
}
