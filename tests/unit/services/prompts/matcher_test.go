package prompts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/prompts"
)

func staticRule(prompt, response string) models.PromptRule {
	return models.PromptRule{Prompt: prompt, Response: response, IsDynamic: false}
}

func dynamicRule(response string, keywords ...string) models.PromptRule {
	return models.PromptRule{Response: response, IsDynamic: true, Keywords: keywords}
}

func TestFindMatchingResponse_StaticExactMatch(t *testing.T) {
	rules := []models.PromptRule{
		staticRule("what are your hours", "We are open 9-5."),
	}

	response, ok := prompts.FindMatchingResponse(rules, "What are your hours")

	assert.True(t, ok)
	assert.Equal(t, "We are open 9-5.", response)
}

func TestFindMatchingResponse_StaticRequiresWholeMessage(t *testing.T) {
	rules := []models.PromptRule{
		staticRule("hours", "We are open 9-5."),
	}

	_, ok := prompts.FindMatchingResponse(rules, "what are your hours")

	assert.False(t, ok)
}

func TestFindMatchingResponse_DynamicKeywordSubstring(t *testing.T) {
	rules := []models.PromptRule{
		dynamicRule("Here is our pricing page.", "pricing", "cost"),
	}

	response, ok := prompts.FindMatchingResponse(rules, "How much does the Pro plan COST per month?")

	assert.True(t, ok)
	assert.Equal(t, "Here is our pricing page.", response)
}

func TestFindMatchingResponse_StaticWinsOverDynamic(t *testing.T) {
	// A dynamic rule listed first must still lose to a static exact match.
	rules := []models.PromptRule{
		dynamicRule("Generic hours answer.", "hours"),
		staticRule("what are your hours", "We are open 9-5."),
	}

	response, ok := prompts.FindMatchingResponse(rules, "what are your hours")

	assert.True(t, ok)
	assert.Equal(t, "We are open 9-5.", response)
}

func TestFindMatchingResponse_ListOrderBreaksTies(t *testing.T) {
	rules := []models.PromptRule{
		dynamicRule("First answer.", "open"),
		dynamicRule("Second answer.", "hours"),
	}

	// "when are you open during holiday hours" matches both; the first
	// listed rule wins.
	response, ok := prompts.FindMatchingResponse(rules, "when are you open during holiday hours")

	assert.True(t, ok)
	assert.Equal(t, "First answer.", response)
}

func TestFindMatchingResponse_EmptyKeywordsSkipped(t *testing.T) {
	rules := []models.PromptRule{
		dynamicRule("Should not fire.", ""),
		dynamicRule("Pricing answer.", "pricing"),
	}

	response, ok := prompts.FindMatchingResponse(rules, "pricing please")

	assert.True(t, ok)
	assert.Equal(t, "Pricing answer.", response)
}

func TestFindMatchingResponse_NoMatch(t *testing.T) {
	rules := []models.PromptRule{
		staticRule("what are your hours", "We are open 9-5."),
		dynamicRule("Pricing answer.", "pricing"),
	}

	response, ok := prompts.FindMatchingResponse(rules, "tell me about your team")

	assert.False(t, ok)
	assert.Empty(t, response)
}

func TestFindMatchingResponse_NoRules(t *testing.T) {
	response, ok := prompts.FindMatchingResponse(nil, "anything")

	assert.False(t, ok)
	assert.Empty(t, response)
}

func TestFindMatchingResponse_CaseInsensitiveKeyword(t *testing.T) {
	rules := []models.PromptRule{
		dynamicRule("Demo link.", "DEMO"),
	}

	response, ok := prompts.FindMatchingResponse(rules, "can i book a demo?")

	assert.True(t, ok)
	assert.Equal(t, "Demo link.", response)
}
