// Package engagement decides when the widget interrupts normal chat flow
// with a lead-collection form or a personalization prompt.
package engagement

import (
	"strings"

	"github.com/vcro/widget-service/internal/domain/models"
)

// Decision is the outcome of evaluating a conversation turn.
type Decision string

const (
	// DecisionNone leaves the turn uninterrupted.
	DecisionNone Decision = "none"
	// DecisionShowLeadForm surfaces the lead-collection form.
	DecisionShowLeadForm Decision = "show_lead_form"
	// DecisionShowLinkedInPrompt surfaces the personalization prompt.
	DecisionShowLinkedInPrompt Decision = "show_linkedin_prompt"
)

// Evaluate decides whether to interrupt the next turn, in precedence
// order: keyword triggers, then the backup message-count trigger, then
// the LinkedIn prompt. The lead form outranks the LinkedIn prompt as the
// higher-value conversion point.
//
// A firing decision flips the corresponding flag on counters, so each
// interruption happens at most once per session even when its condition
// keeps holding on later turns. The lead-form-shown flag short-circuits
// only the lead-form checks; the LinkedIn branch is evaluated regardless.
//
// The backup trigger fires only at the exact threshold message, so a
// session that sailed past the threshold while triggers were disabled is
// not interrupted retroactively. The LinkedIn prompt uses a >= check:
// it is gated by its own flag, not by count equality.
func Evaluate(
	counters *models.ConversationCounters,
	triggers []models.EngagementTrigger,
	backup models.BackupTrigger,
	linkedinThreshold int,
	lastUserMessage string,
) Decision {
	if counters == nil {
		return DecisionNone
	}

	if !counters.LeadFormShown {
		message := strings.ToLower(lastUserMessage)

		for _, trigger := range triggers {
			if !trigger.Enabled {
				continue
			}
			for _, keyword := range trigger.Keywords {
				keyword = strings.ToLower(keyword)
				if keyword == "" {
					continue
				}
				if strings.Contains(message, keyword) {
					counters.LeadFormShown = true
					return DecisionShowLeadForm
				}
			}
		}

		if backup.Enabled && backup.MessageCount > 0 && counters.UserMessageCount == backup.MessageCount {
			counters.LeadFormShown = true
			return DecisionShowLeadForm
		}
	}

	if linkedinThreshold > 0 && !counters.LinkedInPromptShown && counters.UserMessageCount >= linkedinThreshold {
		counters.LinkedInPromptShown = true
		return DecisionShowLinkedInPrompt
	}

	return DecisionNone
}
