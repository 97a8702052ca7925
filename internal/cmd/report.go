package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hargabyte/liftoff/internal/config"
	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/output"
	"github.com/hargabyte/liftoff/internal/report"
	"github.com/hargabyte/liftoff/internal/store"
	"github.com/spf13/cobra"
)

// reportCmd is the parent command for all report subcommands
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and manage launch readiness reports",
	Long: `Generate launch readiness reports from project and progress data.

A report combines the project's profile and per-phase facts with one
user's launch progress: completion metrics, per-phase analysis, risk
level, a 0-100 readiness score, extracted findings, and audience-fitted
recommendations. Generated reports are archived in the workspace.

Report Templates:
  executive-summary   High-level status for stakeholders
  detailed-analysis   Full phase-by-phase breakdown for the team
  investor-pitch      Investment case framing for investors

Examples:
  liftoff report generate --project proj-1               # Default template
  liftoff report generate --project proj-1 --template investor-pitch
  liftoff report generate --project proj-1 --no-charts --format json
  liftoff report generate --project proj-1 -o report.md  # Write to file
  liftoff report templates                               # List templates
  liftoff report list --project proj-1                   # Archived reports
  liftoff report show report-1742040000000-a1b2c3d4      # Re-render one`,
}

// Report flags
var (
	reportProject     string // --project id
	reportUser        string // --user id (defaults to the project owner)
	reportTemplate    string // --template id (defaults from config)
	reportNoCharts    bool   // --no-charts suppresses chart data
	reportStakeholder bool   // --stakeholder omits internal challenges
	reportSections    string // --sections comma-separated section filter
	reportOutput      string // -o/--output file path
	reportNoSave      bool   // --no-save skips archiving
)

// reportGenerateCmd generates a report from workspace data
var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a report for a project",
	Long: `Generate a launch readiness report for a project.

The report draws on the project record and the launch progress of one
user. Without --user the project owner's progress is used. The template
defaults from config.yaml. Unless --no-save is given the generated
report is archived and can be re-rendered later with 'report show'.

The --sections flag limits which template sections the Markdown
rendering includes; sections the template marks required are always
kept. YAML and JSON output always carry the full report record.

Examples:
  liftoff report generate --project proj-1
  liftoff report generate --project proj-1 --user user-2
  liftoff report generate --project proj-1 --template detailed-analysis
  liftoff report generate --project proj-1 --sections overview,insights
  liftoff report generate --project proj-1 --stakeholder --no-charts`,
	RunE: runReportGenerate,
}

// reportTemplatesCmd lists the available templates
var reportTemplatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available report templates",
	RunE:  runReportTemplates,
}

// reportListCmd lists archived reports
var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived reports",
	RunE:  runReportList,
}

// reportShowCmd re-renders one archived report
var reportShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show an archived report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

// reportDeleteCmd removes one archived report
var reportDeleteCmd = &cobra.Command{
	Use:   "delete <report-id>",
	Short: "Delete an archived report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDelete,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	// Add subcommands
	reportCmd.AddCommand(reportGenerateCmd)
	reportCmd.AddCommand(reportTemplatesCmd)
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportDeleteCmd)

	// Generate flags
	reportGenerateCmd.Flags().StringVar(&reportProject, "project", "", "Project id to report on")
	reportGenerateCmd.Flags().StringVar(&reportUser, "user", "", "User whose progress to use (default: project owner)")
	reportGenerateCmd.Flags().StringVar(&reportTemplate, "template", "", "Template id (default from config)")
	reportGenerateCmd.Flags().BoolVar(&reportNoCharts, "no-charts", false, "Omit chart data from the report")
	reportGenerateCmd.Flags().BoolVar(&reportStakeholder, "stakeholder", false, "Stakeholder view: omit internal challenges")
	reportGenerateCmd.Flags().StringVar(&reportSections, "sections", "", "Comma-separated section ids to render (markdown only)")
	reportGenerateCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file path (default: stdout)")
	reportGenerateCmd.Flags().BoolVar(&reportNoSave, "no-save", false, "Do not archive the generated report")
	reportGenerateCmd.MarkFlagRequired("project")

	// Show shares the output and section flags
	reportShowCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file path (default: stdout)")
	reportShowCmd.Flags().StringVar(&reportSections, "sections", "", "Comma-separated section ids to render (markdown only)")

	// List filter
	reportListCmd.Flags().StringVar(&reportProject, "project", "", "Only list reports for this project")
}

func runReportGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	project, err := storeDB.GetProject(reportProject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("project %s not found: run 'liftoff project import' first", reportProject)
		}
		return err
	}

	progress, err := loadReportProgress(storeDB, project)
	if err != nil {
		return err
	}

	templateID := reportTemplate
	if templateID == "" {
		templateID = cfg.Report.DefaultTemplate
	}

	opts := report.Options{
		IncludeCharts:   cfg.Report.IncludeCharts,
		StakeholderView: reportStakeholder,
		Sections:        splitCommaList(reportSections),
	}
	if reportNoCharts {
		off := false
		opts.IncludeCharts = &off
	}

	composer := report.NewComposer(report.NewRegistry())
	composer.SetReadinessWeights(cfg.Readiness.Weights())

	rep, err := composer.GenerateReport(project, progress, templateID, opts)
	if err != nil {
		return err
	}

	if !reportNoSave {
		if err := storeDB.SaveReport(rep); err != nil {
			return fmt.Errorf("archive report: %w", err)
		}
		// Stdout carries the rendered report, so the archive notice
		// goes to stderr.
		fmt.Fprintf(os.Stderr, "Saved report %s\n", rep.ID)
	}

	return renderReport(cfg, rep, opts.Sections)
}

// loadReportProgress fetches the progress record the report should use.
// A missing record is not fatal: the report degrades to zero progress.
func loadReportProgress(storeDB *store.Store, project *launch.ProjectData) (*launch.UserProgress, error) {
	userID := reportUser
	if userID == "" {
		userID = project.OwnerID
	}
	if userID == "" {
		// No owner on record; a lone progress record still identifies
		// the user unambiguously.
		users, err := storeDB.ListProgressUsers(project.ID)
		if err != nil {
			return nil, err
		}
		if len(users) != 1 {
			return nil, nil
		}
		userID = users[0]
	}

	progress, err := storeDB.GetProgress(userID, project.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "warning: no progress recorded for %s on %s\n", userID, project.ID)
			return nil, nil
		}
		return nil, err
	}
	return progress, nil
}

// renderReport writes the report in the configured format, to stdout or
// the --output file. Format priority: --format flag, then config, then
// the markdown default.
func renderReport(cfg *config.Config, rep *report.Report, sections []string) error {
	formatStr := outputFormat
	if !rootCmd.PersistentFlags().Changed("format") && cfg.Report.Format != "" {
		formatStr = cfg.Report.Format
	}
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	registry := report.NewRegistry()
	tmpl, ok := registry.Get(rep.TemplateID)
	if !ok {
		// Archived reports always carry a known template id, but degrade
		// to the default layout rather than failing the render.
		tmpl, _ = registry.Get("executive-summary")
	}
	tmpl = output.FilterSections(tmpl, sections)

	formatter, err := output.GetFormatter(format)
	if err != nil {
		return err
	}

	var out *os.File
	if reportOutput != "" {
		out, err = os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	} else {
		out = os.Stdout
	}

	return formatter.FormatToWriter(out, rep, tmpl)
}

func runReportTemplates(cmd *cobra.Command, args []string) error {
	registry := report.NewRegistry()

	fmt.Fprintln(cmd.OutOrStdout(), "Available report templates:")
	fmt.Fprintln(cmd.OutOrStdout())
	for _, tmpl := range registry.List() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-19s %s (audience: %s)\n", tmpl.ID, tmpl.Name, tmpl.Audience)
		fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", tmpl.Description)
		var ids []string
		for _, section := range tmpl.Sections {
			if section.Required {
				ids = append(ids, section.ID+"*")
			} else {
				ids = append(ids, section.ID)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "      sections: %s\n", strings.Join(ids, ", "))
		fmt.Fprintln(cmd.OutOrStdout())
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Sections marked * are always rendered.")
	return nil
}

func runReportList(cmd *cobra.Command, args []string) error {
	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	summaries, err := storeDB.ListReports(reportProject)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived reports. Run 'liftoff report generate' to create one.")
		return nil
	}

	for _, s := range summaries {
		fmt.Fprintf(cmd.OutOrStdout(), "%-32s %-14s %-19s %s\n",
			s.ID, s.ProjectID, s.TemplateID, s.GeneratedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	rep, err := storeDB.GetReport(args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("report %s not found", args[0])
		}
		return err
	}

	return renderReport(cfg, rep, splitCommaList(reportSections))
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	storeDB, err := openStore()
	if err != nil {
		return err
	}
	defer storeDB.Close()

	if err := storeDB.DeleteReport(args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("report %s not found", args[0])
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %s\n", args[0])
	return nil
}
