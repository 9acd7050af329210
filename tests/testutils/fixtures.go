// Package testutils provides test utilities and helpers.
package testutils

import (
	"time"

	"github.com/vcro/widget-service/internal/domain/models"
)

// Test constants
const (
	TestTenantID  = "tenant-test-123"
	TestAgentID   = "agent-test-abc"
	TestSessionID = "3f2c8a9e-1b4d-4c6f-9a2e-7d5b8c1f0a3e"
	TestRuleID    = "rule-test-456"
	TestTriggerID = "trigger-test-789"
	TestLeadID    = "lead-test-def"
)

// NewTestAgent creates a test agent with default values.
func NewTestAgent() *models.Agent {
	now := time.Now().UTC()
	return &models.Agent{
		ID:       TestAgentID,
		TenantID: TestTenantID,
		Name:     "Test Agent",
		Settings: models.AgentSettings{
			Prompt:                     "You are a helpful assistant.",
			Persona:                    models.NewTextPersona("Friendly support persona"),
			LinkedInPromptMessageCount: 3,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestPromptRule creates a static test rule with default values.
func NewTestPromptRule() *models.PromptRule {
	rule := models.NewPromptRule(TestTenantID, TestAgentID, "what are your hours", "We are open 9-5, Monday to Friday.", false, nil)
	rule.ID = TestRuleID
	return rule
}

// NewTestDynamicRule creates a dynamic keyword rule.
func NewTestDynamicRule(keywords ...string) *models.PromptRule {
	rule := models.NewPromptRule(TestTenantID, TestAgentID, "", "Here is our pricing page.", true, keywords)
	rule.ID = TestRuleID + "-dynamic"
	return rule
}

// NewTestTrigger creates an enabled keyword trigger.
func NewTestTrigger(keywords ...string) *models.EngagementTrigger {
	trigger := models.NewEngagementTrigger(TestTenantID, TestAgentID, keywords, true)
	trigger.ID = TestTriggerID
	return trigger
}

// NewTestBackupTrigger creates an enabled backup trigger.
func NewTestBackupTrigger(messageCount int) *models.BackupTrigger {
	return &models.BackupTrigger{
		TenantID:     TestTenantID,
		AgentID:      TestAgentID,
		Enabled:      true,
		MessageCount: messageCount,
		UpdatedAt:    time.Now().UTC(),
	}
}

// NewTestCounters creates zeroed counters for the test session.
func NewTestCounters() *models.ConversationCounters {
	return models.NewConversationCounters(TestTenantID, TestAgentID, TestSessionID)
}

// NewTestLead creates a test lead with default values.
func NewTestLead() *models.Lead {
	lead := models.NewLead(TestTenantID, TestAgentID, TestSessionID, map[string]interface{}{
		"name":  "Jamie Doe",
		"email": "jamie@example.com",
	})
	lead.ID = TestLeadID
	return lead
}

// NewTestUserMessage creates a test user message.
func NewTestUserMessage(content string) *models.Message {
	msg := models.NewUserMessage(TestTenantID, TestAgentID, TestSessionID, content)
	msg.ID = "msg-user-1"
	return msg
}

// NewTestAssistantMessage creates a test assistant message.
func NewTestAssistantMessage(content string) *models.Message {
	msg := models.NewAssistantMessage(TestTenantID, TestAgentID, TestSessionID, content, models.SourceCompletion)
	msg.ID = "msg-assistant-1"
	return msg
}
