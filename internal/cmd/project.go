package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/store"
	"github.com/spf13/cobra"
)

// projectCmd is the parent command for all project subcommands
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage startup projects in the workspace",
	Long: `Manage the startup projects tracked in the liftoff workspace.

A project record carries the venture's profile (name, industry, target
market, stage) plus the per-phase facts collected during launch
preparation: validation data, financial projections, the risk register,
and so on. Reports are generated from this data.

Examples:
  liftoff project import project.yaml     # Load a project from file
  liftoff project list                    # List tracked projects
  liftoff project show proj-1             # Show one project
  liftoff project delete proj-1           # Remove a project and its data`,
}

// projectImportCmd loads a project data file into the store
var projectImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a project from a YAML or JSON file",
	Long: `Import a project data file into the workspace.

The file format is chosen by extension: .json parses as JSON, anything
else as YAML. Re-importing a project with the same id replaces the
stored record but keeps its original creation time.

Examples:
  liftoff project import project.yaml
  liftoff project import exports/proj-1.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectImport,
}

// projectListCmd lists tracked projects
var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked projects",
	RunE:  runProjectList,
}

// projectShowCmd shows one project record
var projectShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project record",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

// projectDeleteCmd removes a project and its dependent records
var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project, its progress records, and its reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.AddCommand(projectImportCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectImport(cmd *cobra.Command, args []string) error {
	var project launch.ProjectData
	if err := decodeDataFile(args[0], &project); err != nil {
		return err
	}
	if project.ID == "" {
		return fmt.Errorf("project file %s has no id", args[0])
	}

	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	if err := storeDB.SaveProject(&project); err != nil {
		return err
	}

	if verbose {
		risks := project.Facts.IdentifiedRisks()
		fmt.Fprintf(cmd.OutOrStdout(), "  owner: %s, stage: %s, risks: %d\n",
			project.OwnerID, project.Stage, len(risks))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s (%s)\n", project.ID, project.Name)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	projects, err := storeDB.ListProjects()
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects in workspace. Run 'liftoff project import <file>' to add one.")
		return nil
	}

	for _, p := range projects {
		stage := p.Stage
		if stage == "" {
			stage = "unknown"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-28s %-12s %s\n",
			p.ID, p.Name, stage, p.CreatedAt.Format(time.DateOnly))
	}
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	project, err := storeDB.GetProject(args[0])
	if err != nil {
		return err
	}

	return writeRecord(project)
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	if err := storeDB.DeleteProject(args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("project %s not found", args[0])
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
	return nil
}
