package domain

import "strings"

// Seniority is the coarse career-stage bucket used to pick template sets.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// ParseSeniority maps free text onto a Seniority, defaulting to mid.
func ParseSeniority(s string) Seniority {
	switch Seniority(strings.ToLower(strings.TrimSpace(s))) {
	case SeniorityJunior:
		return SeniorityJunior
	case SenioritySenior:
		return SenioritySenior
	default:
		return SeniorityMid
	}
}

// ProspectProfile is the scraped view of a prospect. Only Name is required.
type ProspectProfile struct {
	Name           string    `json:"name"`
	Headline       string    `json:"headline,omitempty"`
	Company        string    `json:"company,omitempty"`
	Industry       string    `json:"industry,omitempty"`
	Location       string    `json:"location,omitempty"`
	SeniorityLevel Seniority `json:"seniorityLevel"`
}

// Seniority returns the profile's level with unknown values folded into mid.
func (p ProspectProfile) Seniority() Seniority {
	return ParseSeniority(string(p.SeniorityLevel))
}

// ScrapedProfile is a profile plus the raw payload it was derived from.
type ScrapedProfile struct {
	Profile ProspectProfile
	RawData map[string]string
}

// Prospect is a persisted prospect keyed by its LinkedIn URL.
type Prospect struct {
	ID          string            `json:"id"`
	LinkedInURL string            `json:"linkedinUrl"`
	Profile     ProspectProfile   `json:"profile"`
	RawData     map[string]string `json:"rawData,omitempty"`
	UpdatedAt   string            `json:"updatedAt"`
}
