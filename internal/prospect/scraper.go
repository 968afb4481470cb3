package prospect

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"

	"outreach-agent/internal/domain"
)

const (
	unknownName  = "Unknown Professional"
	scrapeMethod = "mock_data"
	scrapeNote   = "This is mock data for development/demo purposes"
)

var slugPattern = regexp.MustCompile(`/in/([^/?]+)`)

var (
	companies = []string{
		"Microsoft", "Google", "Amazon", "Salesforce", "HubSpot",
		"Slack", "Zoom", "Dropbox", "Stripe", "Shopify",
	}
	industries = []string{
		"Technology", "Software", "SaaS", "E-commerce",
		"Financial Services", "Healthcare", "Marketing",
	}
	locations = []string{
		"San Francisco, CA", "New York, NY", "Seattle, WA", "Austin, TX",
		"Boston, MA", "Chicago, IL", "Los Angeles, CA",
	}
	titles = []string{
		"VP of Sales",
		"Director of Marketing",
		"Head of Business Development",
		"Senior Account Executive",
		"Marketing Manager",
		"Sales Manager",
		"Chief Technology Officer",
		"Product Manager",
		"Customer Success Director",
	}

	seniorMarkers = []string{"VP", "Director", "Head", "Chief", "CTO", "CEO"}
	juniorMarkers = []string{"Associate", "Junior", "Coordinator", "Specialist"}
)

// Picker returns a value in [0, n).
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// Scraper builds prospect profiles from profile URLs. It never calls out to
// the network; every field except the name is drawn from fixed lists.
type Scraper struct {
	picker Picker
}

// NewScraper returns a Scraper. A nil picker uses the process-wide source.
func NewScraper(picker Picker) *Scraper {
	if picker == nil {
		picker = globalPicker{}
	}
	return &Scraper{picker: picker}
}

func (s *Scraper) Scrape(ctx context.Context, url string) (domain.ScrapedProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScrapedProfile{}, err
	}
	if strings.TrimSpace(url) == "" {
		return domain.ScrapedProfile{}, fmt.Errorf("profile url is required")
	}

	company := pick(s.picker, companies)
	title := pick(s.picker, titles)

	profile := domain.ProspectProfile{
		Name:           NameFromURL(url),
		Headline:       fmt.Sprintf("%s at %s | Driving Growth & Innovation", title, company),
		Company:        company,
		Industry:       pick(s.picker, industries),
		Location:       pick(s.picker, locations),
		SeniorityLevel: SeniorityFromTitle(title),
	}

	return domain.ScrapedProfile{
		Profile: profile,
		RawData: map[string]string{
			"url":    url,
			"method": scrapeMethod,
			"note":   scrapeNote,
		},
	}, nil
}

// NameFromURL turns the /in/<slug> segment of a profile URL into a display
// name: hyphens become spaces, words are capitalized and digits dropped.
func NameFromURL(url string) string {
	m := slugPattern.FindStringSubmatch(url)
	if m == nil {
		return unknownName
	}

	slug := strings.Map(func(r rune) rune {
		switch {
		case r == '-':
			return ' '
		case unicode.IsDigit(r):
			return -1
		default:
			return r
		}
	}, m[1])

	words := strings.Fields(slug)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	if len(words) == 0 {
		return unknownName
	}
	return strings.Join(words, " ")
}

// SeniorityFromTitle buckets a job title. Senior markers win over junior ones.
func SeniorityFromTitle(title string) domain.Seniority {
	for _, m := range seniorMarkers {
		if strings.Contains(title, m) {
			return domain.SenioritySenior
		}
	}
	for _, m := range juniorMarkers {
		if strings.Contains(title, m) {
			return domain.SeniorityJunior
		}
	}
	return domain.SeniorityMid
}

func pick(p Picker, values []string) string {
	return values[p.IntN(len(values))]
}
