// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vcro/widget-service/internal/api/dto"
	"github.com/vcro/widget-service/internal/api/middleware"
	"github.com/vcro/widget-service/internal/api/sse"
	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/conversation"
	"github.com/vcro/widget-service/internal/services/leads"
	"github.com/vcro/widget-service/internal/services/session"
)

// WidgetHandler handles the public widget endpoints.
type WidgetHandler struct {
	identity     *session.IdentityManager
	conversation conversation.Service
	leads        leads.Service
}

// NewWidgetHandler creates a new WidgetHandler.
func NewWidgetHandler(identity *session.IdentityManager, conversationSvc conversation.Service, leadsSvc leads.Service) *WidgetHandler {
	return &WidgetHandler{
		identity:     identity,
		conversation: conversationSvc,
		leads:        leadsSvc,
	}
}

// GetSession handles GET /tenants/{tenantId}/agents/{agentId}/session
// @Summary Get or issue the widget session
// @Description Returns the current session identifier, issuing a fresh one when absent or invalid
// @Tags Widget
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Success 200 {object} dto.SessionResponse
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/session [get]
func (h *WidgetHandler) GetSession(c *gin.Context) {
	store := NewCookieStore(c)
	sessionID, issued := h.identity.EnsureSessionID(store)

	c.JSON(http.StatusOK, dto.SessionResponse{
		SessionID: sessionID,
		Issued:    issued,
	})
}

// ClearSession handles DELETE /tenants/{tenantId}/agents/{agentId}/session
// @Summary Clear the widget session
// @Description Expires the session cookie and resets the conversation counters
// @Tags Widget
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Success 204 "Session cleared"
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/session [delete]
func (h *WidgetHandler) ClearSession(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)
	store := NewCookieStore(c)

	if sessionID, ok := h.identity.SessionID(store); ok {
		if err := h.conversation.Reset(c.Request.Context(), tenantCtx.TenantID, tenantCtx.AgentID, sessionID); err != nil {
			log.Warn().Err(err).Str("tenant_id", tenantCtx.TenantID).Msg("Failed to reset conversation counters")
		}
	}
	h.identity.ClearSession(store)

	c.Status(http.StatusNoContent)
}

// SendMessage handles POST /tenants/{tenantId}/agents/{agentId}/messages
// @Summary Send a chat message
// @Description Processes a widget chat turn; set stream=true for an SSE response
// @Tags Widget
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 200 {object} dto.SendMessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/messages [post]
func (h *WidgetHandler) SendMessage(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	store := NewCookieStore(c)
	sessionID, _ := h.identity.EnsureSessionID(store)

	turnReq := &conversation.TurnRequest{
		TenantID:  tenantCtx.TenantID,
		AgentID:   tenantCtx.AgentID,
		SessionID: sessionID,
		Message:   req.Message,
	}

	if req.Stream {
		h.streamTurn(c, turnReq)
		return
	}

	result, err := h.conversation.HandleTurn(c.Request.Context(), turnReq)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SendMessageResponse{
		Reply:      result.Reply,
		Source:     string(result.Source),
		Engagement: string(result.Engagement),
		SessionID:  result.SessionID,
		ThreadID:   result.ThreadID,
	})
}

// streamTurn writes the turn as an SSE stream.
func (h *WidgetHandler) streamTurn(c *gin.Context, turnReq *conversation.TurnRequest) {
	stream, err := h.conversation.HandleTurnStream(c.Request.Context(), turnReq)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer stream.Close()

	writer, err := sse.NewWriter(c.Writer)
	if err != nil {
		middleware.HandleError(c, domainerrors.NewInternalError("streaming not supported", err))
		return
	}

	_ = writer.WriteStreamStart(turnReq.SessionID, stream.ThreadID())

	for {
		chunk, err := stream.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if domainErr, ok := domainerrors.GetDomainError(err); ok {
				_ = writer.WriteStreamError(domainErr.Code, domainErr.Message, domainErr.Details)
			} else {
				_ = writer.WriteStreamError("INTERNAL_ERROR", "stream failed", "")
			}
			_ = writer.WriteDone()
			return
		}
		_ = writer.WriteTextStream(chunk)
	}

	if decision := stream.Engagement(); decision != "" && decision != "none" {
		_ = writer.WriteEngagement(string(decision))
	}

	_ = writer.WriteStreamEnd()
	_ = writer.WriteDone()
}

// GetHistory handles GET /tenants/{tenantId}/agents/{agentId}/messages
// @Summary Get session history
// @Description Returns the session's messages, oldest first
// @Tags Widget
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param limit query int false "Maximum number of messages" default(50) minimum(1) maximum(200)
// @Param offset query int false "Offset for pagination" default(0) minimum(0)
// @Success 200 {object} dto.GetMessagesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/messages [get]
func (h *WidgetHandler) GetHistory(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	var req paginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid query parameters", err.Error()))
		return
	}
	if req.Limit == 0 {
		req.Limit = 50
	}

	store := NewCookieStore(c)
	sessionID, ok := h.identity.SessionID(store)
	if !ok || !session.IsValidUUID(sessionID) {
		// No session yet means no history.
		c.JSON(http.StatusOK, dto.GetMessagesResponse{
			Messages: []*dto.MessageResponse{},
			Limit:    req.Limit,
			Offset:   req.Offset,
		})
		return
	}

	messages, err := h.conversation.History(c.Request.Context(), tenantCtx.TenantID, tenantCtx.AgentID, sessionID, req.Limit, req.Offset)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GetMessagesResponse{
		Messages: toMessageResponses(messages),
		Total:    int64(len(messages)),
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
}

// SubmitLead handles POST /tenants/{tenantId}/agents/{agentId}/leads
// @Summary Submit a lead form
// @Description Stores the lead form submission for the current session
// @Tags Widget
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param agentId path string true "Agent ID"
// @Param request body dto.SubmitLeadRequest true "Lead form data"
// @Success 201 {object} dto.LeadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/widget-service/tenants/{tenantId}/agents/{agentId}/leads [post]
func (h *WidgetHandler) SubmitLead(c *gin.Context) {
	tenantCtx := middleware.GetTenantContext(c)

	var req dto.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	store := NewCookieStore(c)
	sessionID, _ := h.identity.EnsureSessionID(store)

	lead, err := h.leads.Submit(c.Request.Context(), tenantCtx.TenantID, tenantCtx.AgentID, sessionID, req.FormData)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toLeadResponse(lead))
}

// paginationRequest represents common pagination query parameters.
type paginationRequest struct {
	Limit  int64 `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int64 `form:"offset" binding:"omitempty,min=0"`
}

func toMessageResponses(messages []models.Message) []*dto.MessageResponse {
	out := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, &dto.MessageResponse{
			ID:        m.ID,
			SessionID: m.SessionID,
			Role:      string(m.Role),
			Content:   m.Content,
			Source:    string(m.Source),
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func toLeadResponse(lead *models.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:        lead.ID,
		SessionID: lead.SessionID,
		FormData:  lead.FormData,
		CreatedAt: lead.CreatedAt,
	}
}
