package launch

import (
	"fmt"
	"strings"
	"time"
)

// RiskImpact represents how severely a risk would affect the launch.
type RiskImpact string

const (
	// ImpactLow marks a risk with minor consequences
	ImpactLow RiskImpact = "low"

	// ImpactMedium marks a risk with material consequences
	ImpactMedium RiskImpact = "medium"

	// ImpactHigh marks a risk that threatens the launch
	ImpactHigh RiskImpact = "high"
)

// Ordinal returns the numeric weight of the impact on the low=1,
// medium=2, high=3 scale. Unknown values weigh 0.
func (i RiskImpact) Ordinal() int {
	switch i {
	case ImpactLow:
		return 1
	case ImpactMedium:
		return 2
	case ImpactHigh:
		return 3
	default:
		return 0
	}
}

// ParseRiskImpact parses an impact string into a RiskImpact value.
func ParseRiskImpact(s string) (RiskImpact, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return ImpactLow, nil
	case "medium":
		return ImpactMedium, nil
	case "high":
		return ImpactHigh, nil
	default:
		return "", fmt.Errorf("invalid risk impact: %q (expected low, medium, or high)", s)
	}
}

// String returns the string representation of the impact.
func (i RiskImpact) String() string {
	return string(i)
}

// RiskProbability represents how likely a risk is to occur.
type RiskProbability string

const (
	// ProbabilityLow marks an unlikely risk
	ProbabilityLow RiskProbability = "low"

	// ProbabilityMedium marks a plausible risk
	ProbabilityMedium RiskProbability = "medium"

	// ProbabilityHigh marks a likely risk
	ProbabilityHigh RiskProbability = "high"
)

// Ordinal returns the numeric weight of the probability on the low=1,
// medium=2, high=3 scale. Unknown values weigh 0.
func (p RiskProbability) Ordinal() int {
	switch p {
	case ProbabilityLow:
		return 1
	case ProbabilityMedium:
		return 2
	case ProbabilityHigh:
		return 3
	default:
		return 0
	}
}

// ParseRiskProbability parses a probability string into a RiskProbability value.
func ParseRiskProbability(s string) (RiskProbability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return ProbabilityLow, nil
	case "medium":
		return ProbabilityMedium, nil
	case "high":
		return ProbabilityHigh, nil
	default:
		return "", fmt.Errorf("invalid risk probability: %q (expected low, medium, or high)", s)
	}
}

// String returns the string representation of the probability.
func (p RiskProbability) String() string {
	return string(p)
}

// RiskLevel represents an overall risk assessment for a project.
type RiskLevel string

const (
	// RiskLow indicates no significant risk exposure
	RiskLow RiskLevel = "low"

	// RiskMedium indicates risks that need active management
	RiskMedium RiskLevel = "medium"

	// RiskHigh indicates risks that should block launch until addressed
	RiskHigh RiskLevel = "high"
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// ValidateRiskLevel checks if a risk level value is valid.
func ValidateRiskLevel(r RiskLevel) bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// RiskEntry is one identified risk in a project's risk register.
type RiskEntry struct {
	// ID is a stable identifier for the risk
	ID string `yaml:"id" json:"id"`

	// Description explains the risk in plain language
	Description string `yaml:"description" json:"description"`

	// Impact rates the severity if the risk occurs
	Impact RiskImpact `yaml:"impact" json:"impact"`

	// Probability rates the likelihood of the risk occurring
	Probability RiskProbability `yaml:"probability" json:"probability"`

	// Category groups related risks (market, technical, financial, ...)
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// ValidationFacts holds validation-phase findings. Empty string means the
// fact has not been captured yet.
type ValidationFacts struct {
	MarketSize         string `yaml:"market_size,omitempty" json:"marketSize,omitempty"`
	CompetitorAnalysis string `yaml:"competitor_analysis,omitempty" json:"competitorAnalysis,omitempty"`
	UserInterviews     string `yaml:"user_interviews,omitempty" json:"userInterviews,omitempty"`
	ProblemStatement   string `yaml:"problem_statement,omitempty" json:"problemStatement,omitempty"`
}

// DefinitionFacts holds product-definition decisions.
type DefinitionFacts struct {
	ValueProposition string `yaml:"value_proposition,omitempty" json:"valueProposition,omitempty"`
	MissionStatement string `yaml:"mission_statement,omitempty" json:"missionStatement,omitempty"`
	TargetAudience   string `yaml:"target_audience,omitempty" json:"targetAudience,omitempty"`
	SuccessCriteria  string `yaml:"success_criteria,omitempty" json:"successCriteria,omitempty"`
}

// TechnicalFacts holds build and architecture decisions.
type TechnicalFacts struct {
	TechStack           []string `yaml:"tech_stack,omitempty" json:"techStack,omitempty"`
	Architecture        string   `yaml:"architecture,omitempty" json:"architecture,omitempty"`
	DevelopmentTimeline string   `yaml:"development_timeline,omitempty" json:"developmentTimeline,omitempty"`
}

// MarketingFacts holds launch-marketing decisions.
type MarketingFacts struct {
	LaunchStrategy string   `yaml:"launch_strategy,omitempty" json:"launchStrategy,omitempty"`
	Channels       []string `yaml:"channels,omitempty" json:"channels,omitempty"`
	BrandIdentity  string   `yaml:"brand_identity,omitempty" json:"brandIdentity,omitempty"`
}

// OperationsFacts holds team and delivery decisions.
type OperationsFacts struct {
	TeamStructure string `yaml:"team_structure,omitempty" json:"teamStructure,omitempty"`
	SupportPlan   string `yaml:"support_plan,omitempty" json:"supportPlan,omitempty"`
	DeliveryModel string `yaml:"delivery_model,omitempty" json:"deliveryModel,omitempty"`
}

// FinancialFacts holds revenue and funding projections.
type FinancialFacts struct {
	ProjectedRevenue   string `yaml:"projected_revenue,omitempty" json:"projectedRevenue,omitempty"`
	FundingRequirement string `yaml:"funding_requirement,omitempty" json:"fundingRequirement,omitempty"`
	PricingModel       string `yaml:"pricing_model,omitempty" json:"pricingModel,omitempty"`
	BreakEvenPoint     string `yaml:"break_even_point,omitempty" json:"breakEvenPoint,omitempty"`
}

// RiskFacts holds the project's risk register.
type RiskFacts struct {
	IdentifiedRisks      []RiskEntry `yaml:"identified_risks,omitempty" json:"identifiedRisks,omitempty"`
	MitigationStrategies []string    `yaml:"mitigation_strategies,omitempty" json:"mitigationStrategies,omitempty"`
}

// OptimizationFacts holds post-launch growth plans.
type OptimizationFacts struct {
	GrowthTargets string   `yaml:"growth_targets,omitempty" json:"growthTargets,omitempty"`
	KeyMetrics    []string `yaml:"key_metrics,omitempty" json:"keyMetrics,omitempty"`
}

// ProjectFacts groups the phase-specific facts a project has captured.
// A nil phase pointer means no facts exist for that phase; individual
// fields use their zero value for "not captured". Presence is always a
// typed check, never a dynamic property probe.
type ProjectFacts struct {
	Validation   *ValidationFacts   `yaml:"validation,omitempty" json:"validation,omitempty"`
	Definition   *DefinitionFacts   `yaml:"definition,omitempty" json:"definition,omitempty"`
	Technical    *TechnicalFacts    `yaml:"technical,omitempty" json:"technical,omitempty"`
	Marketing    *MarketingFacts    `yaml:"marketing,omitempty" json:"marketing,omitempty"`
	Operations   *OperationsFacts   `yaml:"operations,omitempty" json:"operations,omitempty"`
	Financial    *FinancialFacts    `yaml:"financial,omitempty" json:"financial,omitempty"`
	Risks        *RiskFacts         `yaml:"risks,omitempty" json:"risks,omitempty"`
	Optimization *OptimizationFacts `yaml:"optimization,omitempty" json:"optimization,omitempty"`
}

// IdentifiedRisks returns the risk register, or nil when the risks phase
// has no captured facts.
func (f *ProjectFacts) IdentifiedRisks() []RiskEntry {
	if f == nil || f.Risks == nil {
		return nil
	}
	return f.Risks.IdentifiedRisks
}

// ProjectData is one launch project: identity, descriptive fields, and the
// typed per-phase facts. Treated as read-only for the duration of a report
// computation.
type ProjectData struct {
	// ID uniquely identifies the project
	ID string `yaml:"id" json:"id"`

	// OwnerID identifies the user who owns the project
	OwnerID string `yaml:"owner_id,omitempty" json:"ownerId,omitempty"`

	// Name is the product or project name
	Name string `yaml:"name" json:"name"`

	// Description is a short free-form summary
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Industry names the market vertical (e.g. "fintech")
	Industry string `yaml:"industry,omitempty" json:"industry,omitempty"`

	// TargetMarket describes the intended customer segment
	TargetMarket string `yaml:"target_market,omitempty" json:"targetMarket,omitempty"`

	// Stage is the lifecycle stage (e.g. "idea", "mvp", "growth")
	Stage string `yaml:"stage,omitempty" json:"stage,omitempty"`

	// Facts holds the typed per-phase data captured so far
	Facts ProjectFacts `yaml:"facts,omitempty" json:"facts,omitempty"`

	// CreatedAt is when the project was created
	CreatedAt time.Time `yaml:"created_at,omitempty" json:"createdAt,omitempty"`

	// UpdatedAt is when the project was last modified
	UpdatedAt time.Time `yaml:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
