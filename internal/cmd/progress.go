package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/store"
	"github.com/spf13/cobra"
)

// progressCmd is the parent command for all progress subcommands
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Manage launch progress records",
	Long: `Manage per-user launch progress for a project.

A progress record tracks one user's work through the eight launch phases:
which steps are done, per-phase completion percentages, and phase start
and finish times. Reports combine this record with the project data.

Examples:
  liftoff progress import progress.yaml           # Load a progress file
  liftoff progress show --project proj-1 --user user-1
  liftoff progress list --project proj-1          # Users with progress`,
}

// progressImportCmd loads a progress data file into the store
var progressImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a progress record from a YAML or JSON file",
	Long: `Import a launch progress file into the workspace.

The file format is chosen by extension: .json parses as JSON, anything
else as YAML. The record must carry both a user id and a project id;
re-importing the same pair replaces the stored record.

Examples:
  liftoff progress import progress.yaml
  liftoff progress import exports/user-1.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProgressImport,
}

// progressShowCmd shows one progress record
var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a progress record",
	RunE:  runProgressShow,
}

// progressListCmd lists users with progress on a project
var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with progress records",
	RunE:  runProgressList,
}

// progressDeleteCmd removes one progress record
var progressDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a progress record",
	RunE:  runProgressDelete,
}

// Progress flags
var (
	progressProject string // --project id
	progressUser    string // --user id
)

func init() {
	rootCmd.AddCommand(progressCmd)

	progressCmd.AddCommand(progressImportCmd)
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressListCmd)
	progressCmd.AddCommand(progressDeleteCmd)

	// Record selector flags shared by show, list, and delete
	progressCmd.PersistentFlags().StringVar(&progressProject, "project", "", "Project id")
	progressCmd.PersistentFlags().StringVar(&progressUser, "user", "", "User id")

	progressShowCmd.MarkPersistentFlagRequired("project")
}

func runProgressImport(cmd *cobra.Command, args []string) error {
	var progress launch.UserProgress
	if err := decodeDataFile(args[0], &progress); err != nil {
		return err
	}
	if progress.UserID == "" || progress.ProjectID == "" {
		return fmt.Errorf("progress file %s must carry both user_id and project_id", args[0])
	}

	// Stored records always cover the full framework, even when the file
	// only lists the phases worked so far.
	recorded := len(progress.PresentPhases())
	progress.Normalize()

	if verbose {
		for _, phase := range launch.CanonicalPhases() {
			for _, step := range progress.Phases[phase].Steps {
				if !launch.KnownStepID(phase, step.ID) {
					fmt.Fprintf(os.Stderr, "warning: %s step %q is not in the framework catalog\n",
						phase, step.ID)
				}
			}
		}
	}

	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	// Progress can arrive before its project; warn rather than reject.
	if _, err := storeDB.GetProject(progress.ProjectID); errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "warning: project %s is not in the workspace yet\n", progress.ProjectID)
	}

	if err := storeDB.SaveProgress(&progress); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "  current phase: %s, phases in file: %d\n",
			progress.CurrentPhase, recorded)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported progress for %s on %s\n",
		progress.UserID, progress.ProjectID)
	return nil
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	userID, err := resolveProgressUser(storeDB, progressProject, progressUser)
	if err != nil {
		return err
	}

	progress, err := storeDB.GetProgress(userID, progressProject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no progress for %s on %s", userID, progressProject)
		}
		return err
	}

	return writeRecord(progress)
}

func runProgressList(cmd *cobra.Command, args []string) error {
	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	users, err := storeDB.ListProgressUsers(progressProject)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No progress records found.")
		return nil
	}
	for _, u := range users {
		fmt.Fprintln(cmd.OutOrStdout(), u)
	}
	return nil
}

func runProgressDelete(cmd *cobra.Command, args []string) error {
	if progressProject == "" || progressUser == "" {
		return fmt.Errorf("both --project and --user are required")
	}

	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	if err := storeDB.DeleteProgress(progressUser, progressProject); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no progress for %s on %s", progressUser, progressProject)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted progress for %s on %s\n",
		progressUser, progressProject)
	return nil
}

// resolveProgressUser fills in a missing --user value. With a single
// progress record on the project the choice is unambiguous; otherwise
// the user must be named.
func resolveProgressUser(storeDB *store.Store, projectID, userID string) (string, error) {
	if userID != "" {
		return userID, nil
	}

	users, err := storeDB.ListProgressUsers(projectID)
	if err != nil {
		return "", err
	}
	switch len(users) {
	case 0:
		return "", fmt.Errorf("no progress records for project %s", projectID)
	case 1:
		return users[0], nil
	default:
		return "", fmt.Errorf("multiple users have progress on %s: pass --user (one of %v)",
			projectID, users)
	}
}
