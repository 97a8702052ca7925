package report

import "github.com/hargabyte/liftoff/internal/launch"

// Section is one ordered section of a report template.
type Section struct {
	// ID is the stable section identifier
	ID string `yaml:"id" json:"id"`

	// Title is the section heading
	Title string `yaml:"title" json:"title"`

	// Required marks sections every rendering must include
	Required bool `yaml:"required" json:"required"`
}

// Template describes a named, audience-scoped report layout.
type Template struct {
	// ID is the stable template identifier
	ID string `yaml:"id" json:"id"`

	// Name is the display name
	Name string `yaml:"name" json:"name"`

	// Description summarizes what the template is for
	Description string `yaml:"description" json:"description"`

	// Audience is who the template writes for
	Audience launch.Audience `yaml:"target_audience" json:"targetAudience"`

	// Sections is the ordered section layout
	Sections []Section `yaml:"sections" json:"sections"`
}

// clone returns a deep copy so callers can never reach the registry's
// backing storage through a returned template.
func (t Template) clone() Template {
	out := t
	out.Sections = make([]Section, len(t.Sections))
	copy(out.Sections, t.Sections)
	return out
}

// Registry is the fixed catalog of report templates. It is constructed
// once, holds exactly three templates, and is immutable afterwards: List
// and Get hand out copies, never the backing slice.
type Registry struct {
	templates []Template
}

// NewRegistry constructs the template catalog.
func NewRegistry() *Registry {
	return &Registry{
		templates: []Template{
			{
				ID:          "executive-summary",
				Name:        "Executive Summary",
				Description: "High-level launch overview for sponsors and executives",
				Audience:    launch.AudienceStakeholder,
				Sections: []Section{
					{ID: "overview", Title: "Project Overview", Required: true},
					{ID: "progress", Title: "Progress Summary", Required: true},
					{ID: "insights", Title: "Key Insights", Required: true},
					{ID: "recommendations", Title: "Recommendations", Required: false},
				},
			},
			{
				ID:          "detailed-analysis",
				Name:        "Detailed Analysis",
				Description: "Comprehensive phase-by-phase analysis for the launch team",
				Audience:    launch.AudienceInternal,
				Sections: []Section{
					{ID: "overview", Title: "Project Overview", Required: true},
					{ID: "progress", Title: "Progress Summary", Required: true},
					{ID: "phases", Title: "Phase Analysis", Required: true},
					{ID: "insights", Title: "Key Insights", Required: true},
					{ID: "risks", Title: "Risk Assessment", Required: true},
					{ID: "recommendations", Title: "Recommendations", Required: false},
					{ID: "appendices", Title: "Appendices", Required: false},
				},
			},
			{
				ID:          "investor-pitch",
				Name:        "Investor Pitch",
				Description: "Investment-focused presentation of the launch plan",
				Audience:    launch.AudienceInvestor,
				Sections: []Section{
					{ID: "overview", Title: "Project Overview", Required: true},
					{ID: "opportunity", Title: "Market Opportunity", Required: true},
					{ID: "traction", Title: "Traction", Required: true},
					{ID: "financials", Title: "Financial Projections", Required: true},
					{ID: "ask", Title: "The Ask", Required: false},
				},
			},
		},
	}
}

// List returns every template in catalog order. The returned slice and
// its templates are copies; mutating them does not touch the registry.
func (r *Registry) List() []Template {
	out := make([]Template, len(r.templates))
	for i, t := range r.templates {
		out[i] = t.clone()
	}
	return out
}

// Get looks up a template by id. The second return is false when no
// template has that id; absence is not an error here, the caller decides
// how to surface it.
func (r *Registry) Get(id string) (Template, bool) {
	for _, t := range r.templates {
		if t.ID == id {
			return t.clone(), true
		}
	}
	return Template{}, false
}

// Count returns the number of templates in the catalog.
func (r *Registry) Count() int {
	return len(r.templates)
}
