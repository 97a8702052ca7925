package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/hargabyte/liftoff/internal/config"
	"github.com/hargabyte/liftoff/internal/store"
	"github.com/spf13/cobra"
)

// statusCmd represents the liftoff status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace status",
	Long: `Show the current status of the liftoff workspace.

Displays information about:
- Workspace location and database size
- Tracked projects, progress records, and archived reports
- Active report configuration

Examples:
  liftoff status           # Show status
  liftoff status --json    # JSON output for scripts`,
	RunE: runStatus,
}

var statusJSON bool

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}

// StatusOutput represents the status output structure
type StatusOutput struct {
	// Workspace information
	Workspace WorkspaceStatus `json:"workspace" yaml:"workspace"`

	// Record counts
	Records RecordStatus `json:"records" yaml:"records"`

	// Active report configuration
	Config ConfigStatus `json:"config" yaml:"config"`
}

// WorkspaceStatus represents workspace-specific status
type WorkspaceStatus struct {
	Initialized  bool   `json:"initialized" yaml:"initialized"`
	Path         string `json:"path,omitempty" yaml:"path,omitempty"`
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty"`
	DatabaseSize int64  `json:"database_size_bytes,omitempty" yaml:"database_size_bytes,omitempty"`
}

// RecordStatus represents stored record counts
type RecordStatus struct {
	Projects int64 `json:"projects" yaml:"projects"`
	Progress int64 `json:"progress" yaml:"progress"`
	Reports  int64 `json:"reports" yaml:"reports"`
}

// ConfigStatus represents the active report configuration
type ConfigStatus struct {
	DefaultTemplate string `json:"default_template" yaml:"default_template"`
	Format          string `json:"format" yaml:"format"`
	IncludeCharts   bool   `json:"include_charts" yaml:"include_charts"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := StatusOutput{}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out.Config.DefaultTemplate = cfg.Report.DefaultTemplate
	out.Config.Format = cfg.Report.Format
	out.Config.IncludeCharts = cfg.Report.ChartsEnabled()

	liftoffDir, err := config.FindWorkspaceDir(".")
	if err != nil {
		out.Workspace.Initialized = false

		if statusJSON {
			return outputStatusJSON(cmd, out)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Liftoff Status:")
		fmt.Fprintln(cmd.OutOrStdout(), "")
		fmt.Fprintln(cmd.OutOrStdout(), "  Workspace: not initialized")
		fmt.Fprintln(cmd.OutOrStdout(), "             Run 'liftoff init' to create one")
		return nil
	}

	out.Workspace.Initialized = true
	out.Workspace.Path = liftoffDir

	storeDB, err := store.Open(liftoffDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer storeDB.Close()

	out.Workspace.DatabasePath = storeDB.Path()

	stats, err := storeDB.GetStats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	out.Workspace.DatabaseSize = stats.SizeBytes
	out.Records.Projects = stats.ProjectCount
	out.Records.Progress = stats.ProgressCount
	out.Records.Reports = stats.ReportCount

	if statusJSON {
		return outputStatusJSON(cmd, out)
	}

	// Human-readable output
	fmt.Fprintln(cmd.OutOrStdout(), "Liftoff Status:")
	fmt.Fprintln(cmd.OutOrStdout(), "")
	fmt.Fprintf(cmd.OutOrStdout(), "  Workspace: %s\n", out.Workspace.Path)
	fmt.Fprintf(cmd.OutOrStdout(), "  Database:  %s (%s)\n",
		out.Workspace.DatabasePath, formatByteSize(out.Workspace.DatabaseSize))
	fmt.Fprintln(cmd.OutOrStdout(), "")
	fmt.Fprintf(cmd.OutOrStdout(), "  Projects:  %d\n", out.Records.Projects)
	fmt.Fprintf(cmd.OutOrStdout(), "  Progress:  %d records\n", out.Records.Progress)
	fmt.Fprintf(cmd.OutOrStdout(), "  Reports:   %d archived\n", out.Records.Reports)
	fmt.Fprintln(cmd.OutOrStdout(), "")
	charts := "on"
	if !out.Config.IncludeCharts {
		charts = "off"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Config:    template %s, format %s, charts %s\n",
		out.Config.DefaultTemplate, out.Config.Format, charts)

	return nil
}

func outputStatusJSON(cmd *cobra.Command, out StatusOutput) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// formatByteSize renders a byte count with a binary unit suffix.
func formatByteSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
