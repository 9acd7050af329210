// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vcro/widget-service/internal/api/dto"
	"github.com/vcro/widget-service/internal/api/middleware"
	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/engagement"
	"github.com/vcro/widget-service/internal/services/leads"
	"github.com/vcro/widget-service/internal/services/prompts"
)

// AdminHandler handles the tenant management endpoints.
type AdminHandler struct {
	prompts    prompts.Service
	engagement engagement.Service
	leads      leads.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(promptsSvc prompts.Service, engagementSvc engagement.Service, leadsSvc leads.Service) *AdminHandler {
	return &AdminHandler{
		prompts:    promptsSvc,
		engagement: engagementSvc,
		leads:      leadsSvc,
	}
}

// ListPromptRules handles GET /tenants/{tenantId}/agents/{agentId}/prompt-rules
// @Summary List prompt rules
// @Tags Admin
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Success 200 {object} dto.GetPromptRulesResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/prompt-rules [get]
func (h *AdminHandler) ListPromptRules(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	rules, err := h.prompts.ListRules(c.Request.Context(), tenantCtx.TenantID, tenantCtx.AgentID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	out := make([]*dto.PromptRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toPromptRuleResponse(&r))
	}
	c.JSON(http.StatusOK, dto.GetPromptRulesResponse{Rules: out, Total: len(out)})
}

// CreatePromptRule handles POST /tenants/{tenantId}/agents/{agentId}/prompt-rules
// @Summary Create a prompt rule
// @Tags Admin
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param request body dto.PromptRuleRequest true "Rule"
// @Success 201 {object} dto.PromptRuleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/prompt-rules [post]
func (h *AdminHandler) CreatePromptRule(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	var req dto.PromptRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	rule := models.NewPromptRule(tenantCtx.TenantID, tenantCtx.AgentID, req.Prompt, req.Response, req.IsDynamic, req.Keywords)
	if err := h.prompts.CreateRule(c.Request.Context(), rule); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPromptRuleResponse(rule))
}

// UpdatePromptRule handles PUT /tenants/{tenantId}/agents/{agentId}/prompt-rules/{ruleId}
// @Summary Update a prompt rule
// @Tags Admin
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param ruleId path string true "Rule ID"
// @Param request body dto.PromptRuleRequest true "Rule"
// @Success 200 {object} dto.PromptRuleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/prompt-rules/{ruleId} [put]
func (h *AdminHandler) UpdatePromptRule(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)
	ruleID := c.Param("ruleId")

	var req dto.PromptRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	rule := models.NewPromptRule(tenantCtx.TenantID, tenantCtx.AgentID, req.Prompt, req.Response, req.IsDynamic, req.Keywords)
	rule.ID = ruleID
	if err := h.prompts.UpdateRule(c.Request.Context(), rule); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPromptRuleResponse(rule))
}

// DeletePromptRule handles DELETE /tenants/{tenantId}/agents/{agentId}/prompt-rules/{ruleId}
// @Summary Delete a prompt rule
// @Tags Admin
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param ruleId path string true "Rule ID"
// @Success 204 "Rule deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/prompt-rules/{ruleId} [delete]
func (h *AdminHandler) DeletePromptRule(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	if err := h.prompts.DeleteRule(c.Request.Context(), tenantCtx.TenantID, tenantCtx.AgentID, c.Param("ruleId")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTriggers handles GET /tenants/{tenantId}/agents/{agentId}/triggers
// @Summary List engagement triggers
// @Tags Admin
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Success 200 {object} dto.GetTriggersResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/triggers [get]
func (h *AdminHandler) ListTriggers(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	triggers, err := h.engagement.ListTriggers(c.Request.Context(), tenantCtx.TenantID, tenantCtx.AgentID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	out := make([]*dto.TriggerResponse, 0, len(triggers))
	for _, t := range triggers {
		out = append(out, toTriggerResponse(&t))
	}
	c.JSON(http.StatusOK, dto.GetTriggersResponse{Triggers: out, Total: len(out)})
}

// CreateTrigger handles POST /tenants/{tenantId}/agents/{agentId}/triggers
// @Summary Create an engagement trigger
// @Tags Admin
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param request body dto.TriggerRequest true "Trigger"
// @Success 201 {object} dto.TriggerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/triggers [post]
func (h *AdminHandler) CreateTrigger(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	var req dto.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	trigger := models.NewEngagementTrigger(tenantCtx.TenantID, tenantCtx.AgentID, req.Keywords, req.Enabled)
	if err := h.engagement.CreateTrigger(c.Request.Context(), trigger); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTriggerResponse(trigger))
}

// UpdateTrigger handles PUT /tenants/{tenantId}/agents/{agentId}/triggers/{triggerId}
// @Summary Update an engagement trigger
// @Tags Admin
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param triggerId path string true "Trigger ID"
// @Param request body dto.TriggerRequest true "Trigger"
// @Success 200 {object} dto.TriggerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/triggers/{triggerId} [put]
func (h *AdminHandler) UpdateTrigger(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)
	triggerID := c.Param("triggerId")

	var req dto.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	trigger := models.NewEngagementTrigger(tenantCtx.TenantID, tenantCtx.AgentID, req.Keywords, req.Enabled)
	trigger.ID = triggerID
	if err := h.engagement.UpdateTrigger(c.Request.Context(), trigger); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTriggerResponse(trigger))
}

// DeleteTrigger handles DELETE /tenants/{tenantId}/agents/{agentId}/triggers/{triggerId}
// @Summary Delete an engagement trigger
// @Tags Admin
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param triggerId path string true "Trigger ID"
// @Success 204 "Trigger deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/triggers/{triggerId} [delete]
func (h *AdminHandler) DeleteTrigger(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	if err := h.engagement.DeleteTrigger(c.Request.Context(), tenantCtx.TenantID, c.Param("triggerId")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetBackupTrigger handles GET /tenants/{tenantId}/agents/{agentId}/backup-trigger
// @Summary Get the backup trigger
// @Tags Admin
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Success 200 {object} dto.BackupTriggerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/backup-trigger [get]
func (h *AdminHandler) GetBackupTrigger(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	backup, err := h.engagement.GetBackupTrigger(c.Request.Context(), tenantCtx.TenantID, tenantCtx.AgentID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BackupTriggerResponse{
		Enabled:      backup.Enabled,
		MessageCount: backup.MessageCount,
		UpdatedAt:    backup.UpdatedAt,
	})
}

// SetBackupTrigger handles PUT /tenants/{tenantId}/agents/{agentId}/backup-trigger
// @Summary Set the backup trigger
// @Tags Admin
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param request body dto.BackupTriggerRequest true "Backup trigger"
// @Success 200 {object} dto.BackupTriggerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/backup-trigger [put]
func (h *AdminHandler) SetBackupTrigger(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	var req dto.BackupTriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	backup := &models.BackupTrigger{
		TenantID:     tenantCtx.TenantID,
		AgentID:      tenantCtx.AgentID,
		Enabled:      req.Enabled,
		MessageCount: req.MessageCount,
	}
	if err := h.engagement.SetBackupTrigger(c.Request.Context(), backup); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BackupTriggerResponse{
		Enabled:      backup.Enabled,
		MessageCount: backup.MessageCount,
		UpdatedAt:    backup.UpdatedAt,
	})
}

// ListLeads handles GET /tenants/{tenantId}/agents/{agentId}/leads
// @Summary List leads
// @Description Returns the agent's lead submissions, newest first
// @Tags Admin
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param limit query int false "Maximum number of leads" default(50) minimum(1) maximum(200)
// @Param offset query int false "Offset for pagination" default(0) minimum(0)
// @Success 200 {object} dto.GetLeadsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/leads [get]
func (h *AdminHandler) ListLeads(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	var req paginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid query parameters", err.Error()))
		return
	}
	if req.Limit == 0 {
		req.Limit = 50
	}

	ctx := c.Request.Context()
	total, err := h.leads.Count(ctx, tenantCtx.TenantID, tenantCtx.AgentID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	items, err := h.leads.List(ctx, tenantCtx.TenantID, tenantCtx.AgentID, req.Limit, req.Offset)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	out := make([]*dto.LeadResponse, 0, len(items))
	for i := range items {
		out = append(out, toLeadResponse(&items[i]))
	}
	c.JSON(http.StatusOK, dto.GetLeadsResponse{
		Leads:  out,
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

func toPromptRuleResponse(rule *models.PromptRule) *dto.PromptRuleResponse {
	return &dto.PromptRuleResponse{
		ID:        rule.ID,
		Prompt:    rule.Prompt,
		Response:  rule.Response,
		IsDynamic: rule.IsDynamic,
		Keywords:  rule.Keywords,
		CreatedAt: rule.CreatedAt,
		UpdatedAt: rule.UpdatedAt,
	}
}

func toTriggerResponse(trigger *models.EngagementTrigger) *dto.TriggerResponse {
	return &dto.TriggerResponse{
		ID:        trigger.ID,
		Keywords:  trigger.Keywords,
		Enabled:   trigger.Enabled,
		CreatedAt: trigger.CreatedAt,
		UpdatedAt: trigger.UpdatedAt,
	}
}
