// Package mcp provides an MCP (Model Context Protocol) server for liftoff.
// This allows AI agents to query launch data and generate reports through
// MCP tools instead of CLI commands.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hargabyte/liftoff/internal/config"
	"github.com/hargabyte/liftoff/internal/insight"
	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/metrics"
	"github.com/hargabyte/liftoff/internal/report"
	"github.com/hargabyte/liftoff/internal/scoring"
	"github.com/hargabyte/liftoff/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with liftoff-specific functionality
type Server struct {
	mcpServer    *server.MCPServer
	store        *store.Store
	composer     *report.Composer
	cfg          *config.Config
	liftoffDir   string
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
}

// AllTools lists all available tools
var AllTools = []string{"launch_templates", "launch_status", "launch_readiness", "launch_findings", "launch_report"}

// New creates a new MCP server for liftoff
func New(cfg Config) (*Server, error) {
	// Find .liftoff workspace
	liftoffDir, err := config.FindWorkspaceDir(".")
	if err != nil {
		return nil, fmt.Errorf("liftoff not initialized: run 'liftoff init' first")
	}

	// Open store
	storeDB, err := store.Open(liftoffDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Load workspace config for template default and readiness weights
	wsCfg, err := config.Load(".")
	if err != nil {
		storeDB.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	composer := report.NewComposer(report.NewRegistry())
	composer.SetReadinessWeights(wsCfg.Readiness.Weights())

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"liftoff",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		store:        storeDB,
		composer:     composer,
		cfg:          wsCfg,
		liftoffDir:   liftoffDir,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	// Determine which tools to register
	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}

	// Register tools
	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			storeDB.Close()
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "launch_templates":
		return s.registerTemplatesTool()
	case "launch_status":
		return s.registerStatusTool()
	case "launch_readiness":
		return s.registerReadinessTool()
	case "launch_findings":
		return s.registerFindingsTool()
	case "launch_report":
		return s.registerReportTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	// Start timeout checker if timeout is set
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "liftoff serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// Close closes the server and its resources
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// ListTools returns the list of registered tools
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Parameters  []ParameterSchema `json:"parameters" yaml:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// toolSchemaRegistry holds the schema definitions for all tools.
// These mirror the mcp.NewTool() definitions in the register*Tool() functions.
var toolSchemaRegistry = map[string]ToolSchema{
	"launch_templates": {
		Name:        "launch_templates",
		Description: "List the available report templates with their audiences and section layouts.",
		Parameters:  []ParameterSchema{},
	},
	"launch_status": {
		Name:        "launch_status",
		Description: "Summarize workspace contents, or one project's launch progress.",
		Parameters: []ParameterSchema{
			{Name: "project_id", Type: "string", Description: "Project to summarize (omit for a workspace overview)"},
			{Name: "user_id", Type: "string", Description: "User whose progress to use (default: project owner)"},
		},
	},
	"launch_readiness": {
		Name:        "launch_readiness",
		Description: "Compute the launch readiness score (0-100) and overall risk level for a project.",
		Parameters: []ParameterSchema{
			{Name: "project_id", Type: "string", Description: "Project to score", Required: true},
			{Name: "user_id", Type: "string", Description: "User whose progress to use (default: project owner)"},
		},
	},
	"launch_findings": {
		Name:        "launch_findings",
		Description: "Extract key findings from a project's captured facts, plus the user's upcoming steps.",
		Parameters: []ParameterSchema{
			{Name: "project_id", Type: "string", Description: "Project to inspect", Required: true},
			{Name: "user_id", Type: "string", Description: "User whose progress to use (default: project owner)"},
		},
	},
	"launch_report": {
		Name:        "launch_report",
		Description: "Generate a full launch readiness report. Returns the report record as JSON without archiving it.",
		Parameters: []ParameterSchema{
			{Name: "project_id", Type: "string", Description: "Project to report on", Required: true},
			{Name: "user_id", Type: "string", Description: "User whose progress to use (default: project owner)"},
			{Name: "template_id", Type: "string", Description: "Template id (default from config)"},
			{Name: "include_charts", Type: "boolean", Description: "Include chart data (default: true)"},
			{Name: "stakeholder_view", Type: "boolean", Description: "Omit internal challenges from phase analysis"},
		},
	},
}

// GetToolSchemas returns schemas for all registered tools.
func (s *Server) GetToolSchemas() []ToolSchema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schemas := make([]ToolSchema, 0, len(s.tools))
	for name := range s.tools {
		if schema, ok := toolSchemaRegistry[name]; ok {
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// CallTool dispatches a tool call by name with the given arguments.
// Returns the JSON result string or an error.
func (s *Server) CallTool(name string, args map[string]interface{}) (string, error) {
	s.mu.RLock()
	registered := s.tools[name]
	s.mu.RUnlock()

	if !registered {
		return "", fmt.Errorf("unknown tool: %s (run 'liftoff call --list' to see available tools)", name)
	}

	switch name {
	case "launch_templates":
		return s.executeTemplates()

	case "launch_status":
		projectID, _ := args["project_id"].(string)
		userID, _ := args["user_id"].(string)
		return s.executeStatus(projectID, userID)

	case "launch_readiness":
		projectID, _ := args["project_id"].(string)
		if projectID == "" {
			return "", fmt.Errorf("project_id parameter is required")
		}
		userID, _ := args["user_id"].(string)
		return s.executeReadiness(projectID, userID)

	case "launch_findings":
		projectID, _ := args["project_id"].(string)
		if projectID == "" {
			return "", fmt.Errorf("project_id parameter is required")
		}
		userID, _ := args["user_id"].(string)
		return s.executeFindings(projectID, userID)

	case "launch_report":
		projectID, _ := args["project_id"].(string)
		if projectID == "" {
			return "", fmt.Errorf("project_id parameter is required")
		}
		userID, _ := args["user_id"].(string)
		templateID, _ := args["template_id"].(string)
		includeCharts := true
		if v, ok := args["include_charts"].(bool); ok {
			includeCharts = v
		}
		stakeholderView, _ := args["stakeholder_view"].(bool)
		return s.executeReport(projectID, userID, templateID, includeCharts, stakeholderView)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// registerTemplatesTool registers the launch_templates tool
func (s *Server) registerTemplatesTool() error {
	tool := mcp.NewTool("launch_templates",
		mcp.WithDescription("List the available report templates with their audiences and section layouts."),
	)

	s.mcpServer.AddTool(tool, s.handleTemplates)
	return nil
}

// registerStatusTool registers the launch_status tool
func (s *Server) registerStatusTool() error {
	tool := mcp.NewTool("launch_status",
		mcp.WithDescription("Summarize workspace contents, or one project's launch progress."),
		mcp.WithString("project_id",
			mcp.Description("Project to summarize (omit for a workspace overview)"),
		),
		mcp.WithString("user_id",
			mcp.Description("User whose progress to use (default: project owner)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleStatus)
	return nil
}

// registerReadinessTool registers the launch_readiness tool
func (s *Server) registerReadinessTool() error {
	tool := mcp.NewTool("launch_readiness",
		mcp.WithDescription("Compute the launch readiness score (0-100) and overall risk level for a project."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project to score"),
		),
		mcp.WithString("user_id",
			mcp.Description("User whose progress to use (default: project owner)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleReadiness)
	return nil
}

// registerFindingsTool registers the launch_findings tool
func (s *Server) registerFindingsTool() error {
	tool := mcp.NewTool("launch_findings",
		mcp.WithDescription("Extract key findings from a project's captured facts, plus the user's upcoming steps."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project to inspect"),
		),
		mcp.WithString("user_id",
			mcp.Description("User whose progress to use (default: project owner)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleFindings)
	return nil
}

// registerReportTool registers the launch_report tool
func (s *Server) registerReportTool() error {
	tool := mcp.NewTool("launch_report",
		mcp.WithDescription("Generate a full launch readiness report. Returns the report record as JSON without archiving it."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project to report on"),
		),
		mcp.WithString("user_id",
			mcp.Description("User whose progress to use (default: project owner)"),
		),
		mcp.WithString("template_id",
			mcp.Description("Template id (default from config)"),
		),
		mcp.WithBoolean("include_charts",
			mcp.Description("Include chart data (default: true)"),
		),
		mcp.WithBoolean("stakeholder_view",
			mcp.Description("Omit internal challenges from phase analysis"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleReport)
	return nil
}

// Tool handlers

func (s *Server) handleTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	result, err := s.executeTemplates()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	projectID, _ := args["project_id"].(string)
	userID, _ := args["user_id"].(string)

	result, err := s.executeStatus(projectID, userID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleReadiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	projectID, ok := args["project_id"].(string)
	if !ok || projectID == "" {
		return mcp.NewToolResultError("project_id parameter is required"), nil
	}
	userID, _ := args["user_id"].(string)

	result, err := s.executeReadiness(projectID, userID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleFindings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	projectID, ok := args["project_id"].(string)
	if !ok || projectID == "" {
		return mcp.NewToolResultError("project_id parameter is required"), nil
	}
	userID, _ := args["user_id"].(string)

	result, err := s.executeFindings(projectID, userID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	projectID, ok := args["project_id"].(string)
	if !ok || projectID == "" {
		return mcp.NewToolResultError("project_id parameter is required"), nil
	}
	userID, _ := args["user_id"].(string)
	templateID, _ := args["template_id"].(string)

	includeCharts := true
	if v, ok := args["include_charts"].(bool); ok {
		includeCharts = v
	}
	stakeholderView, _ := args["stakeholder_view"].(bool)

	result, err := s.executeReport(projectID, userID, templateID, includeCharts, stakeholderView)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

// Execution functions (implementations)

func (s *Server) executeTemplates() (string, error) {
	return toJSON(map[string]interface{}{
		"templates": s.composer.Registry().List(),
	})
}

func (s *Server) executeStatus(projectID, userID string) (string, error) {
	if projectID == "" {
		return s.executeWorkspaceStatus()
	}

	project, err := s.store.GetProject(projectID)
	if err != nil {
		return "", err
	}

	result := map[string]interface{}{
		"project": map[string]interface{}{
			"id":            project.ID,
			"name":          project.Name,
			"owner_id":      project.OwnerID,
			"industry":      project.Industry,
			"target_market": project.TargetMarket,
			"stage":         project.Stage,
		},
	}

	progress, resolvedUser := s.loadProgress(project, userID)
	if progress == nil {
		result["progress"] = nil
		return toJSON(result)
	}

	phases := make(map[string]float64, len(progress.Phases))
	for phase, pp := range progress.Phases {
		phases[phase.String()] = pp.Completion
	}

	result["progress"] = map[string]interface{}{
		"user_id":       resolvedUser,
		"current_phase": progress.CurrentPhase.String(),
		"overview":      metrics.BuildOverview(progress, time.Now().UTC()),
		"phases":        phases,
	}
	return toJSON(result)
}

func (s *Server) executeWorkspaceStatus() (string, error) {
	projects, err := s.store.ListProjects()
	if err != nil {
		return "", err
	}

	summaries := make([]map[string]interface{}, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, map[string]interface{}{
			"id":    p.ID,
			"name":  p.Name,
			"stage": p.Stage,
		})
	}

	stats, err := s.store.GetStats()
	if err != nil {
		return "", err
	}

	return toJSON(map[string]interface{}{
		"projects": summaries,
		"counts": map[string]int64{
			"projects": stats.ProjectCount,
			"progress": stats.ProgressCount,
			"reports":  stats.ReportCount,
		},
	})
}

func (s *Server) executeReadiness(projectID, userID string) (string, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return "", err
	}

	progress, resolvedUser := s.loadProgress(project, userID)

	weights := s.cfg.Readiness.Weights()
	readiness := scoring.CalculateLaunchReadinessWithWeights(project, progress, weights)
	riskLevel := scoring.AssessOverallRisk(project)

	return toJSON(map[string]interface{}{
		"project_id":      projectID,
		"user_id":         resolvedUser,
		"readiness_score": readiness,
		"risk_level":      riskLevel,
		"weights": map[string]float64{
			"completion": weights.Completion,
			"risk":       weights.Risk,
			"artifacts":  weights.Artifacts,
		},
	})
}

func (s *Server) executeFindings(projectID, userID string) (string, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return "", err
	}

	result := map[string]interface{}{
		"project_id":   projectID,
		"key_findings": insight.ExtractKeyFindings(project),
	}

	if progress, resolvedUser := s.loadProgress(project, userID); progress != nil {
		result["user_id"] = resolvedUser
		result["next_steps"] = insight.IdentifyNextSteps(progress)
	}

	return toJSON(result)
}

func (s *Server) executeReport(projectID, userID, templateID string, includeCharts, stakeholderView bool) (string, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return "", err
	}

	progress, _ := s.loadProgress(project, userID)

	if templateID == "" {
		templateID = s.cfg.Report.DefaultTemplate
	}

	opts := report.Options{
		IncludeCharts:   &includeCharts,
		StakeholderView: stakeholderView,
	}

	rep, err := s.composer.GenerateReport(project, progress, templateID, opts)
	if err != nil {
		return "", err
	}

	return toJSON(rep)
}

// loadProgress resolves the progress record for a tool call. An empty
// userID falls back to the project owner, then to the only user with
// progress on the project. Missing progress yields nil, never an error.
func (s *Server) loadProgress(project *launch.ProjectData, userID string) (*launch.UserProgress, string) {
	if userID == "" {
		userID = project.OwnerID
	}
	if userID == "" {
		users, err := s.store.ListProgressUsers(project.ID)
		if err != nil || len(users) != 1 {
			return nil, ""
		}
		userID = users[0]
	}

	progress, err := s.store.GetProgress(userID, project.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "liftoff serve: load progress: %v\n", err)
		}
		return nil, userID
	}
	return progress, userID
}

// Helper functions

func toJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
