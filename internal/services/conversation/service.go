// Package conversation orchestrates a widget chat turn: counters, prompt
// rule matching, engagement evaluation, and the completion fallback.
package conversation

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vcro/widget-service/internal/core/docdb"
	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/completion"
	"github.com/vcro/widget-service/internal/services/engagement"
	"github.com/vcro/widget-service/internal/services/prompts"
	"github.com/vcro/widget-service/internal/services/session"
)

// TurnRequest carries one user message into the orchestrator. SessionID
// must already be resolved and valid; the API layer owns the cookie
// dance.
type TurnRequest struct {
	TenantID  string
	AgentID   string
	SessionID string
	Message   string
}

// TurnResult is the outcome of a completed turn.
type TurnResult struct {
	Reply      string
	Source     models.ReplySource
	Engagement engagement.Decision
	SessionID  string
	ThreadID   string
}

// TurnStream is a streamed turn. Source and Engagement are known before
// the first chunk; Read yields reply content until io.EOF, at which
// point the assistant message and counters have been persisted.
type TurnStream interface {
	Source() models.ReplySource
	Engagement() engagement.Decision
	ThreadID() string

	// Read returns the next reply chunk, or io.EOF when done.
	Read() (string, error)

	// Close abandons the stream and releases resources.
	Close() error
}

// Service orchestrates widget conversation turns.
type Service interface {
	// HandleTurn processes one user message and returns the full reply.
	HandleTurn(ctx context.Context, req *TurnRequest) (*TurnResult, error)

	// HandleTurnStream processes one user message and streams the reply.
	HandleTurnStream(ctx context.Context, req *TurnRequest) (TurnStream, error)

	// History returns the session's messages, oldest first.
	History(ctx context.Context, tenantID, agentID, sessionID string, limit, skip int64) ([]models.Message, error)

	// Reset deletes the session's counters so the next turn starts from
	// zero. Stored messages are kept.
	Reset(ctx context.Context, tenantID, agentID, sessionID string) error
}

// ServiceConfig holds the configuration for the conversation service.
type ServiceConfig struct {
	DocDBClient docdb.Client
	Counters    session.CountersStore
	Prompts     prompts.Service
	Engagement  engagement.Service
	Completion  completion.Client
	Logger      zerolog.Logger
}

type service struct {
	docDBClient docdb.Client
	counters    session.CountersStore
	prompts     prompts.Service
	engagement  engagement.Service
	completion  completion.Client
	logger      zerolog.Logger
}

// NewService creates a new conversation service.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.DocDBClient == nil {
		return nil, fmt.Errorf("docdb client is required")
	}
	if cfg.Counters == nil {
		return nil, fmt.Errorf("counters store is required")
	}
	if cfg.Prompts == nil {
		return nil, fmt.Errorf("prompts service is required")
	}
	if cfg.Engagement == nil {
		return nil, fmt.Errorf("engagement service is required")
	}
	if cfg.Completion == nil {
		return nil, fmt.Errorf("completion client is required")
	}

	return &service{
		docDBClient: cfg.DocDBClient,
		counters:    cfg.Counters,
		prompts:     cfg.Prompts,
		engagement:  cfg.Engagement,
		completion:  cfg.Completion,
		logger:      cfg.Logger,
	}, nil
}

// turnContext is the shared state assembled before the reply is produced.
type turnContext struct {
	agent    *models.Agent
	counters *models.ConversationCounters
	decision engagement.Decision
	response string
	matched  bool
}

// beginTurn validates the request, records the user message, bumps the
// counters, evaluates engagement, and tries the prompt rules. The
// counters are not saved yet; that happens with the assistant reply.
func (s *service) beginTurn(ctx context.Context, req *TurnRequest) (*turnContext, error) {
	if req == nil || req.Message == "" {
		return nil, domainerrors.NewInvalidArgumentError("message is required", "")
	}
	if req.SessionID == "" {
		return nil, domainerrors.NewInvalidArgumentError("session ID is required", "")
	}

	agent, err := s.docDBClient.Agents().Get(ctx, req.TenantID, req.AgentID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to load agent", err)
	}
	if agent == nil {
		return nil, domainerrors.NewNotFoundError("agent", req.AgentID)
	}

	counters, err := s.counters.Get(ctx, req.TenantID, req.AgentID, req.SessionID)
	if err != nil {
		return nil, domainerrors.NewPersistenceUnavailableError("counters", err)
	}
	counters.UserMessageCount++

	userMsg := models.NewUserMessage(req.TenantID, req.AgentID, req.SessionID, req.Message)
	userMsg.ID = uuid.NewString()
	if err := s.docDBClient.Messages().Add(ctx, userMsg); err != nil {
		// A lost transcript entry must not break the visitor's turn.
		s.logger.Warn().Err(err).
			Str("tenant_id", req.TenantID).
			Str("agent_id", req.AgentID).
			Msg("Failed to persist user message")
	}

	triggers, err := s.engagement.ListTriggers(ctx, req.TenantID, req.AgentID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("tenant_id", req.TenantID).
			Str("agent_id", req.AgentID).
			Msg("Failed to list engagement triggers")
		triggers = nil
	}

	backup, err := s.engagement.GetBackupTrigger(ctx, req.TenantID, req.AgentID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("tenant_id", req.TenantID).
			Str("agent_id", req.AgentID).
			Msg("Failed to load backup trigger")
		backup = &models.BackupTrigger{}
	}

	decision := engagement.Evaluate(
		counters,
		triggers,
		*backup,
		agent.Settings.LinkedInPromptMessageCount,
		req.Message,
	)

	response, matched, err := s.prompts.Match(ctx, req.TenantID, req.AgentID, req.Message)
	if err != nil {
		return nil, err
	}

	return &turnContext{
		agent:    agent,
		counters: counters,
		decision: decision,
		response: response,
		matched:  matched,
	}, nil
}

// finishTurn persists the assistant reply and the updated counters.
func (s *service) finishTurn(ctx context.Context, req *TurnRequest, tc *turnContext, reply string, source models.ReplySource, threadID string) {
	assistantMsg := models.NewAssistantMessage(req.TenantID, req.AgentID, req.SessionID, reply, source)
	assistantMsg.ID = uuid.NewString()
	assistantMsg.ThreadID = threadID
	if err := s.docDBClient.Messages().Add(ctx, assistantMsg); err != nil {
		s.logger.Warn().Err(err).
			Str("tenant_id", req.TenantID).
			Str("agent_id", req.AgentID).
			Msg("Failed to persist assistant message")
	}

	if threadID != "" {
		tc.counters.ThreadID = threadID
	}
	if err := s.counters.Save(ctx, tc.counters); err != nil {
		s.logger.Warn().Err(err).
			Str("tenant_id", req.TenantID).
			Str("agent_id", req.AgentID).
			Msg("Failed to save conversation counters")
	}
}

// HandleTurn processes one user message and returns the full reply.
func (s *service) HandleTurn(ctx context.Context, req *TurnRequest) (*TurnResult, error) {
	tc, err := s.beginTurn(ctx, req)
	if err != nil {
		return nil, err
	}

	if tc.matched {
		s.finishTurn(ctx, req, tc, tc.response, models.SourcePromptRule, tc.counters.ThreadID)
		return &TurnResult{
			Reply:      tc.response,
			Source:     models.SourcePromptRule,
			Engagement: tc.decision,
			SessionID:  req.SessionID,
			ThreadID:   tc.counters.ThreadID,
		}, nil
	}

	resp, err := s.completion.Complete(ctx, &completion.CompleteRequest{
		Message:  req.Message,
		Persona:  tc.agent.Settings.Persona,
		ThreadID: tc.counters.ThreadID,
	})
	if err != nil {
		// The counters already advanced; save them so the turn still
		// counts toward engagement thresholds.
		if saveErr := s.counters.Save(ctx, tc.counters); saveErr != nil {
			s.logger.Warn().Err(saveErr).Msg("Failed to save counters after completion failure")
		}
		return nil, err
	}

	s.finishTurn(ctx, req, tc, resp.Content, models.SourceCompletion, resp.ThreadID)
	return &TurnResult{
		Reply:      resp.Content,
		Source:     models.SourceCompletion,
		Engagement: tc.decision,
		SessionID:  req.SessionID,
		ThreadID:   resp.ThreadID,
	}, nil
}

// HandleTurnStream processes one user message and streams the reply.
func (s *service) HandleTurnStream(ctx context.Context, req *TurnRequest) (TurnStream, error) {
	tc, err := s.beginTurn(ctx, req)
	if err != nil {
		return nil, err
	}

	if tc.matched {
		return &ruleStream{svc: s, ctx: ctx, req: req, tc: tc}, nil
	}

	reader, err := s.completion.CompleteStream(ctx, &completion.CompleteRequest{
		Message:  req.Message,
		Persona:  tc.agent.Settings.Persona,
		ThreadID: tc.counters.ThreadID,
	})
	if err != nil {
		if saveErr := s.counters.Save(ctx, tc.counters); saveErr != nil {
			s.logger.Warn().Err(saveErr).Msg("Failed to save counters after completion failure")
		}
		return nil, err
	}

	return &completionStream{
		svc:      s,
		ctx:      ctx,
		req:      req,
		tc:       tc,
		reader:   reader,
		threadID: tc.counters.ThreadID,
	}, nil
}

// History returns the session's messages, oldest first.
func (s *service) History(ctx context.Context, tenantID, agentID, sessionID string, limit, skip int64) ([]models.Message, error) {
	if sessionID == "" {
		return nil, domainerrors.NewInvalidArgumentError("session ID is required", "")
	}
	return s.docDBClient.Messages().ListBySession(ctx, &docdb.ListMessagesOptions{
		TenantID:  tenantID,
		AgentID:   agentID,
		SessionID: sessionID,
		Limit:     limit,
		Skip:      skip,
		OrderBy:   docdb.SortOrderAsc,
	})
}

// Reset deletes the session's counters.
func (s *service) Reset(ctx context.Context, tenantID, agentID, sessionID string) error {
	if sessionID == "" {
		return domainerrors.NewInvalidArgumentError("session ID is required", "")
	}
	return s.counters.Delete(ctx, tenantID, agentID, sessionID)
}

// ruleStream yields a matched canned response as a single chunk.
type ruleStream struct {
	svc  *service
	ctx  context.Context
	req  *TurnRequest
	tc   *turnContext
	done bool
}

func (r *ruleStream) Source() models.ReplySource      { return models.SourcePromptRule }
func (r *ruleStream) Engagement() engagement.Decision { return r.tc.decision }
func (r *ruleStream) ThreadID() string                { return r.tc.counters.ThreadID }

func (r *ruleStream) Read() (string, error) {
	if r.done {
		return "", io.EOF
	}
	r.done = true
	r.svc.finishTurn(r.ctx, r.req, r.tc, r.tc.response, models.SourcePromptRule, r.tc.counters.ThreadID)
	return r.tc.response, nil
}

func (r *ruleStream) Close() error { return nil }

// completionStream wraps the backend stream, accumulating the reply so
// the turn can be persisted on EOF.
type completionStream struct {
	svc      *service
	ctx      context.Context
	req      *TurnRequest
	tc       *turnContext
	reader   completion.StreamReader
	content  string
	threadID string
	finished bool
}

func (c *completionStream) Source() models.ReplySource      { return models.SourceCompletion }
func (c *completionStream) Engagement() engagement.Decision { return c.tc.decision }
func (c *completionStream) ThreadID() string                { return c.threadID }

func (c *completionStream) Read() (string, error) {
	for {
		chunk, err := c.reader.Read()
		if err == io.EOF {
			if !c.finished {
				c.finished = true
				c.svc.finishTurn(c.ctx, c.req, c.tc, c.content, models.SourceCompletion, c.threadID)
			}
			return "", io.EOF
		}
		if err != nil {
			return "", domainerrors.NewUpstreamFailureError("completion", err)
		}

		if chunk.ThreadID != "" {
			c.threadID = chunk.ThreadID
		}

		switch chunk.Type {
		case completion.ChunkTypeError:
			return "", domainerrors.NewUpstreamFailureError("completion", chunk.Error)
		case completion.ChunkTypeContent:
			c.content += chunk.Content
			return chunk.Content, nil
		default:
			// Metadata only; keep reading.
		}
	}
}

func (c *completionStream) Close() error {
	return c.reader.Close()
}
