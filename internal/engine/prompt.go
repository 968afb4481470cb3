package engine

import (
	"fmt"
	"strings"

	"outreach-agent/internal/domain"
)

const systemPrompt = "You are an expert sales professional. Always respond with valid JSON matching the requested format."

// ComposePrompt renders the user prompt for a live completion. It is a pure
// function of its inputs.
func ComposePrompt(profile domain.ProspectProfile, tov domain.TovConfig, companyContext string, sequenceLength int) string {
	return strings.Join([]string{
		"You are an expert sales professional creating a personalized LinkedIn messaging sequence.",
		"",
		"PROSPECT ANALYSIS:",
		prospectAnalysis(profile),
		"",
		"COMPANY CONTEXT:",
		companyContext,
		"",
		"TONE OF VOICE INSTRUCTIONS:",
		CompileToneInstructions(tov),
		"",
		"TASK:",
		taskDescription(sequenceLength),
		"",
		"THINKING PROCESS:",
		thinkingQuestions(),
		"",
		"RESPONSE FORMAT:",
		responseFormat(),
		"",
		"Generate the sequence now:",
	}, "\n")
}

func prospectAnalysis(p domain.ProspectProfile) string {
	seniority := string(p.SeniorityLevel)
	return strings.Join([]string{
		"- Name: " + p.Name,
		"- Headline: " + orDefault(p.Headline, "N/A"),
		"- Company: " + orDefault(p.Company, "Unknown"),
		"- Industry: " + orDefault(p.Industry, "Unknown"),
		"- Seniority: " + orDefault(seniority, string(domain.SeniorityMid)),
		"- Location: " + orDefault(p.Location, "Unknown"),
	}, "\n")
}

func taskDescription(sequenceLength int) string {
	return strings.Join([]string{
		fmt.Sprintf("Create a %d-message LinkedIn sequence. Each message should:", sequenceLength),
		"1. Be 150-300 characters (LinkedIn message limit consideration)",
		"2. Have a clear, specific purpose",
		"3. Build progressively toward a meeting request",
		"4. Be highly personalized to this specific prospect",
	}, "\n")
}

func thinkingQuestions() string {
	return strings.Join([]string{
		"Before generating messages, explain your reasoning:",
		"1. What specific insights about this prospect inform your approach?",
		"2. How does their seniority level affect your messaging strategy?",
		"3. What pain points might they have that your company solves?",
		"4. How will you sequence the messages to build rapport and trust?",
	}, "\n")
}

func responseFormat() string {
	return `{
  "thinkingProcess": "Your detailed analysis and strategy...",
  "prospectInsights": {
    "keyChallenges": ["challenge1", "challenge2"],
    "personalizationAngles": ["angle1", "angle2"],
    "decisionMakingFactors": ["factor1", "factor2"]
  },
  "messages": [
    {
      "sequenceNumber": 1,
      "purpose": "Initial connection/value introduction",
      "message": "The actual message text...",
      "confidenceScore": 0.85,
      "reasoning": "Why this approach for message 1..."
    }
  ]
}`
}

// promptMessages wraps a composed prompt into the chat transcript sent to the
// completion service.
func promptMessages(prompt string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
