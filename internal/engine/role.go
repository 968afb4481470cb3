package engine

import "strings"

const defaultRole = "Professional"

// roleKeywords is ordered by priority; the first listed keyword found in a
// headline wins regardless of where it occurs in the text.
var roleKeywords = []string{
	"Manager",
	"Director",
	"VP",
	"CEO",
	"CTO",
	"Developer",
	"Engineer",
	"Specialist",
}

// ExtractRole derives a coarse role label from a free-text headline.
func ExtractRole(headline string) string {
	lower := strings.ToLower(headline)
	for _, role := range roleKeywords {
		if strings.Contains(lower, strings.ToLower(role)) {
			return role
		}
	}
	return defaultRole
}
