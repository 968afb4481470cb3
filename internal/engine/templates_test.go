package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"outreach-agent/internal/domain"
)

func TestLookup_KnownLevels(t *testing.T) {
	for _, s := range []domain.Seniority{domain.SeniorityJunior, domain.SeniorityMid, domain.SenioritySenior} {
		set := DefaultTemplates.Lookup(s)
		require.Len(t, set.Templates, 3)
		require.NotEmpty(t, set.Insights.KeyChallenges)
		require.NotEmpty(t, set.Insights.PersonalizationAngles)
		require.NotEmpty(t, set.Insights.DecisionMakingFactors)
	}
	require.NotEqual(t,
		DefaultTemplates.Lookup(domain.SenioritySenior).Templates[0].Text,
		DefaultTemplates.Lookup(domain.SeniorityJunior).Templates[0].Text,
	)
}

func TestLookup_UnknownFallsBackToMid(t *testing.T) {
	mid := DefaultTemplates.Lookup(domain.SeniorityMid)
	require.Equal(t, mid, DefaultTemplates.Lookup("intern"))
	require.Equal(t, mid, DefaultTemplates.Lookup(""))
}

func TestTemplate_ClampsOverflowToLast(t *testing.T) {
	set := DefaultTemplates.Lookup(domain.SenioritySenior)
	require.Equal(t, set.Templates[0], set.Template(1))
	require.Equal(t, set.Templates[2], set.Template(3))
	require.Equal(t, set.Templates[2], set.Template(4))
	require.Equal(t, set.Templates[2], set.Template(5))
}

func TestTemplates_OnlyUseKnownPlaceholders(t *testing.T) {
	for _, s := range []domain.Seniority{domain.SeniorityJunior, domain.SeniorityMid, domain.SenioritySenior} {
		for _, tpl := range DefaultTemplates.Lookup(s).Templates {
			rendered := applyReplacements(tpl.Text, []replacement{
				{"{name}", ""}, {"{company}", ""}, {"{industry}", ""}, {"{role}", ""},
			})
			require.NotContains(t, rendered, "{", "template %q has an unknown placeholder", tpl.Purpose)
			require.True(t, tpl.BaseConfidence >= 0.7 && tpl.BaseConfidence <= 0.9)
		}
	}
}
