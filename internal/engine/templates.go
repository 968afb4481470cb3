package engine

import "outreach-agent/internal/domain"

// MessageTemplate is a message skeleton with {name}, {company}, {industry}
// and {role} placeholders.
type MessageTemplate struct {
	Purpose        string
	Text           string
	BaseConfidence float64
}

// SeniorityTemplateSet holds the three ordered templates and the insights for
// one seniority level: introduction, value or problem follow-up, meeting ask.
type SeniorityTemplateSet struct {
	Templates [3]MessageTemplate
	Insights  domain.Insights
}

// Template returns the template for a 1-based sequence position. Positions
// past the end reuse the last template.
func (s SeniorityTemplateSet) Template(position int) MessageTemplate {
	idx := min(position-1, len(s.Templates)-1)
	if idx < 0 {
		idx = 0
	}
	return s.Templates[idx]
}

// TemplateLibrary is the immutable seniority-keyed template table.
type TemplateLibrary struct {
	sets map[domain.Seniority]SeniorityTemplateSet
}

// Lookup returns the set for a seniority level; unknown levels get mid.
func (l TemplateLibrary) Lookup(s domain.Seniority) SeniorityTemplateSet {
	if set, ok := l.sets[s]; ok {
		return set
	}
	set, ok := l.sets[domain.SeniorityMid]
	if !ok {
		panic("engine: template library has no mid set")
	}
	return set
}

// DefaultTemplates is built once at package init and only ever read.
var DefaultTemplates = TemplateLibrary{sets: map[domain.Seniority]SeniorityTemplateSet{
	domain.SenioritySenior: {
		Templates: [3]MessageTemplate{
			{
				Purpose:        "Initial connection with credibility",
				Text:           "Hi {name}, noticed {company}'s growth in {industry}. We help {industry} leaders turn that momentum into predictable revenue. Worth exploring?",
				BaseConfidence: 0.85,
			},
			{
				Purpose:        "Value reinforcement with social proof",
				Text:           "{name}, following up - we recently helped similar {industry} leaders cut their sales cycle by a third. Happy to share specifics on how it could apply at {company}.",
				BaseConfidence: 0.82,
			},
			{
				Purpose:        "Direct meeting request",
				Text:           "{name}, have 15 minutes this week to walk through exactly how we achieved those results for teams like {company}'s? Available Thursday 2-3pm?",
				BaseConfidence: 0.88,
			},
		},
		Insights: domain.Insights{
			KeyChallenges:         []string{"Scaling operations efficiently", "Driving strategic growth", "Maximizing ROI"},
			PersonalizationAngles: []string{"Executive-level strategic focus", "Proven business outcomes", "Industry leadership"},
			DecisionMakingFactors: []string{"Clear ROI demonstration", "Strategic alignment", "Implementation timeline"},
		},
	},
	domain.SeniorityMid: {
		Templates: [3]MessageTemplate{
			{
				Purpose:        "Warm introduction with value",
				Text:           "Hi {name}! Saw your work at {company} in {industry}. We help {role} professionals like you hit their targets with less manual work. Curious about your current challenges?",
				BaseConfidence: 0.78,
			},
			{
				Purpose:        "Problem agitation with solution hint",
				Text:           "{name}, many {industry} {role} leads struggle with scattered processes and slow handoffs. We've built something that addresses exactly this - would love your perspective.",
				BaseConfidence: 0.75,
			},
			{
				Purpose:        "Soft meeting request",
				Text:           "{name}, would you be open to a brief 15-minute chat about how other {role} teams in {industry} are tackling this? I think you'd find it valuable.",
				BaseConfidence: 0.8,
			},
		},
		Insights: domain.Insights{
			KeyChallenges:         []string{"Meeting targets efficiently", "Process optimization", "Team productivity"},
			PersonalizationAngles: []string{"Role-specific pain points", "Career growth impact", "Team success"},
			DecisionMakingFactors: []string{"Ease of implementation", "Team adoption", "Manager buy-in"},
		},
	},
	domain.SeniorityJunior: {
		Templates: [3]MessageTemplate{
			{
				Purpose:        "Friendly introduction",
				Text:           "Hey {name}! Love what {company} is doing in {industry}. We work with {role} professionals to grow their skills faster - thought you might be interested!",
				BaseConfidence: 0.72,
			},
			{
				Purpose:        "Educational value offer",
				Text:           "Hi {name}, putting together insights on {industry} trends that impact {role} work. Would you find a brief overview of what we're seeing valuable?",
				BaseConfidence: 0.7,
			},
			{
				Purpose:        "Casual meeting suggestion",
				Text:           "{name}, would you be up for a quick coffee chat about {industry} trends and how they're affecting {role} work? Always enjoy connecting with professionals at {company}.",
				BaseConfidence: 0.74,
			},
		},
		Insights: domain.Insights{
			KeyChallenges:         []string{"Learning and development", "Proving value", "Building relationships"},
			PersonalizationAngles: []string{"Career development", "Skill building", "Industry insights"},
			DecisionMakingFactors: []string{"Learning opportunity", "Career advancement", "Ease of use"},
		},
	},
}}
