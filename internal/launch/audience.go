package launch

import (
	"fmt"
	"strings"
)

// Audience identifies who a report is written for.
type Audience string

const (
	// AudienceStakeholder targets executives and sponsors
	AudienceStakeholder Audience = "stakeholder"

	// AudienceInvestor targets current and prospective investors
	AudienceInvestor Audience = "investor"

	// AudienceInternal targets the launch team itself
	AudienceInternal Audience = "internal"
)

// ParseAudience parses an audience string into an Audience value.
// Accepts: "stakeholder", "investor", "internal" (case-insensitive).
// Returns an error for invalid audience values.
func ParseAudience(s string) (Audience, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stakeholder":
		return AudienceStakeholder, nil
	case "investor":
		return AudienceInvestor, nil
	case "internal":
		return AudienceInternal, nil
	default:
		return "", fmt.Errorf("invalid audience: %q (expected stakeholder, investor, or internal)", s)
	}
}

// String returns the string representation of the audience.
func (a Audience) String() string {
	return string(a)
}

// ValidateAudience checks if an audience value is valid.
func ValidateAudience(a Audience) bool {
	switch a {
	case AudienceStakeholder, AudienceInvestor, AudienceInternal:
		return true
	default:
		return false
	}
}
