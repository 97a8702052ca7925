package report

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hargabyte/liftoff/internal/insight"
	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/metrics"
	"github.com/hargabyte/liftoff/internal/scoring"
)

// Options control optional report content.
type Options struct {
	// IncludeCharts toggles chart generation. Nil means the default,
	// which is on.
	IncludeCharts *bool `yaml:"include_charts,omitempty" json:"includeCharts,omitempty"`

	// StakeholderView omits team-internal detail (open challenges)
	// from the phase analysis
	StakeholderView bool `yaml:"stakeholder_view,omitempty" json:"stakeholderView,omitempty"`

	// Sections limits which template sections the export layer renders.
	// Content assembly ignores it; an empty list renders everything.
	Sections []string `yaml:"sections,omitempty" json:"sections,omitempty"`
}

// chartsEnabled reports whether charts should be attached.
func (o Options) chartsEnabled() bool {
	return o.IncludeCharts == nil || *o.IncludeCharts
}

// Composer assembles reports from project and progress data. It is a pure
// computation over its inputs: safe for concurrent use, no I/O, and the
// only failure mode is an unknown template id.
type Composer struct {
	registry *Registry
	weights  scoring.ReadinessWeights

	// now supplies the report clock; swapped in tests for determinism
	now func() time.Time
}

// NewComposer creates a Composer over the given template registry with
// default readiness weights.
func NewComposer(registry *Registry) *Composer {
	return &Composer{
		registry: registry,
		weights:  scoring.DefaultReadinessWeights(),
		now:      time.Now,
	}
}

// SetReadinessWeights overrides the readiness blend, typically from the
// workspace configuration.
func (c *Composer) SetReadinessWeights(w scoring.ReadinessWeights) {
	c.weights = w
}

// Registry returns the composer's template registry.
func (c *Composer) Registry() *Registry {
	return c.registry
}

// GenerateReport builds a report for the project and progress data using
// the named template. The unknown template id is the only error; every
// other gap in the input degrades to empty or zero content so a
// best-effort report always comes back.
func (c *Composer) GenerateReport(project *launch.ProjectData, progress *launch.UserProgress, templateID string, opts Options) (*Report, error) {
	template, ok := c.registry.Get(templateID)
	if !ok {
		return nil, fmt.Errorf("Template not found: %s", templateID)
	}

	if project == nil {
		project = &launch.ProjectData{}
	}

	now := c.now().UTC()
	overview := metrics.BuildOverview(progress, now)
	riskLevel := scoring.AssessOverallRisk(project)
	readiness := scoring.CalculateLaunchReadinessWithWeights(project, progress, c.weights)

	content := Content{
		Overview:      overview,
		PhaseAnalysis: buildPhaseAnalysis(progress, opts.StakeholderView),
		Insights: Insights{
			KeyFindings:    insight.ExtractKeyFindings(project),
			NextSteps:      insight.IdentifyNextSteps(progress),
			RiskLevel:      riskLevel,
			ReadinessScore: readiness,
		},
		Recommendations: insight.GenerateRecommendations(template.Audience, riskLevel, readiness, overview),
	}
	content.ExecutiveSummary = buildExecutiveSummary(project, template, overview, readiness)

	if opts.chartsEnabled() {
		content.Charts = buildCharts(project, progress, overview, riskLevel, readiness)
	}
	if template.Audience == launch.AudienceInternal {
		content.Appendices = buildAppendices(project, progress, template, overview, now)
	}

	return &Report{
		ID:          newReportID(now),
		ProjectID:   project.ID,
		TemplateID:  template.ID,
		Title:       buildTitle(project, template),
		GeneratedAt: now,
		Content:     content,
	}, nil
}

// buildTitle derives the report title from the project and template names.
func buildTitle(project *launch.ProjectData, template Template) string {
	name := project.Name
	if name == "" {
		name = "Untitled Project"
	}
	return fmt.Sprintf("%s - %s", name, template.Name)
}

// buildExecutiveSummary writes the templated opening paragraph. Missing
// descriptive fields fall back to neutral wording instead of failing.
// Investor-pitch summaries always frame the report as an investment case.
func buildExecutiveSummary(project *launch.ProjectData, template Template, overview metrics.ProgressOverview, readiness int) string {
	name := project.Name
	if name == "" {
		name = "This project"
	}
	industry := project.Industry
	if industry == "" {
		industry = "new"
	}
	market := project.TargetMarket
	if market == "" {
		market = "its target market"
	}
	stage := project.Stage
	if stage == "" {
		stage = "planning"
	}

	completion := int(math.Round(overview.OverallCompletion))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s is a %s venture targeting %s, currently at the %s stage. ",
		name, industry, market, stage)
	fmt.Fprintf(&sb, "Launch preparation stands at %d%% overall completion with %d of %d phases fully complete.",
		completion, overview.PhasesCompleted, overview.TotalPhases)

	if template.ID == "investor-pitch" || template.Audience == launch.AudienceInvestor {
		fmt.Fprintf(&sb, " This report presents the investment case: launch readiness currently scores %d of 100.",
			readiness)
	}
	return sb.String()
}

// buildPhaseAnalysis produces one analysis entry per phase present in the
// progress record, in framework order. Challenges surface only for the
// active phase while it sits below 50% complete, and stakeholder view
// suppresses them entirely.
func buildPhaseAnalysis(progress *launch.UserProgress, stakeholderView bool) []PhaseAnalysis {
	if progress == nil {
		return nil
	}

	var analyses []PhaseAnalysis
	for _, phase := range progress.PresentPhases() {
		pp := progress.PhaseFor(phase)

		analysis := PhaseAnalysis{
			Phase:           phase,
			Completion:      pp.Completion,
			KeyAchievements: humanizeStepIDs(pp.CompletedSteps()),
			NextSteps:       pp.UpcomingSteps(3),
		}
		if !stakeholderView {
			analysis.Challenges = buildChallenges(pp, phase == progress.CurrentPhase)
		}
		analyses = append(analyses, analysis)
	}
	return analyses
}

// buildChallenges flags an active phase that is falling behind.
func buildChallenges(pp launch.PhaseProgress, current bool) []string {
	if !current || pp.Completion >= 50 {
		return nil
	}

	open := 0
	stalled := ""
	for _, step := range pp.Steps {
		if step.IsCompleted() {
			continue
		}
		open++
		if stalled == "" && step.Status == launch.StatusInProgress {
			stalled = step.ID
		}
	}
	if open == 0 {
		return nil
	}

	challenges := []string{
		fmt.Sprintf("Current phase is %d%% complete with %d steps still open",
			int(math.Round(pp.Completion)), open),
	}
	if stalled != "" {
		challenges = append(challenges,
			fmt.Sprintf("%s has been started but not finished", humanizeStepID(stalled)))
	}
	return challenges
}

// humanizeStepID turns a step id like "value-proposition" into a
// readable "Value Proposition".
func humanizeStepID(id string) string {
	words := strings.ReplaceAll(id, "-", " ")
	// A fresh caser per call keeps this safe under concurrent report
	// generation; casers carry internal transform state.
	return cases.Title(language.English).String(words)
}

// humanizeStepIDs maps humanizeStepID over a list of step ids.
func humanizeStepIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = humanizeStepID(id)
	}
	return out
}

// newReportID generates a fresh report id: a millisecond timestamp plus a
// random suffix so two reports in the same millisecond stay distinct.
func newReportID(now time.Time) string {
	return fmt.Sprintf("report-%d-%s", now.UnixMilli(), randomSuffix(4))
}

// randomSuffix returns n random bytes hex-encoded, falling back on the
// clock if the system randomness source is unavailable.
func randomSuffix(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}
