// Package prompts provides prompt-rule matching and management for agents.
package prompts

import (
	"strings"

	"github.com/vcro/widget-service/internal/domain/models"
)

// FindMatchingResponse scans the agent's prompt rules for a canned
// response to the message. Matching is two-pass, first-match-wins, and
// case-insensitive on both sides:
//
//  1. static rules: the rule's prompt equals the whole message exactly;
//  2. dynamic rules: any rule keyword is a substring of the message.
//
// Static answers are authored for precision and must win over loose
// keyword matches, which exist to catch paraphrases. Ties within a pass
// are broken by list order; authors rely on ordering to prioritize
// overlapping keyword sets.
//
// Returns ("", false) when nothing matches and the caller should fall
// through to the completion backend.
func FindMatchingResponse(rules []models.PromptRule, message string) (string, bool) {
	if len(rules) == 0 {
		return "", false
	}

	normalized := strings.ToLower(message)

	for _, rule := range rules {
		if rule.IsDynamic {
			continue
		}
		if strings.ToLower(rule.Prompt) == normalized {
			return rule.Response, true
		}
	}

	for _, rule := range rules {
		if !rule.IsDynamic {
			continue
		}
		for _, keyword := range rule.Keywords {
			keyword = strings.ToLower(keyword)
			if keyword == "" {
				continue
			}
			if strings.Contains(normalized, keyword) {
				return rule.Response, true
			}
		}
	}

	return "", false
}
