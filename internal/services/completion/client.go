// Package completion provides the client for the external AI completion
// backend. The widget falls through to this boundary only when no prompt
// rule matched and no engagement decision short-circuited the turn.
package completion

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
)

// ChunkType represents the type of stream chunk.
type ChunkType string

const (
	ChunkTypeContent  ChunkType = "content"
	ChunkTypeMetadata ChunkType = "metadata"
	ChunkTypeError    ChunkType = "error"
)

// StreamChunk represents a chunk of streamed completion content.
type StreamChunk struct {
	Type     ChunkType
	Content  string
	ThreadID string
	Error    error
}

// CompleteRequest represents a request to the completion backend.
type CompleteRequest struct {
	// Message is the user's message content.
	Message string

	// Persona is the optional persona context; resolved to a string
	// exactly once, here at the boundary.
	Persona *models.PersonaSummary

	// ThreadID continues an existing completion thread when set.
	ThreadID string
}

// CompleteResponse represents the backend's completion.
type CompleteResponse struct {
	Content  string
	ThreadID string
}

// StreamReader allows reading stream chunks one at a time.
type StreamReader interface {
	// Read returns the next chunk from the stream.
	// Returns io.EOF when the stream is exhausted.
	Read() (*StreamChunk, error)

	// Close releases resources associated with the reader.
	Close() error
}

// Client defines the interface for the completion backend.
type Client interface {
	// Complete sends a message and returns the full response.
	Complete(ctx context.Context, req *CompleteRequest) (*CompleteResponse, error)

	// CompleteStream sends a message and returns a reader for the
	// streamed response.
	CompleteStream(ctx context.Context, req *CompleteRequest) (StreamReader, error)

	// Close releases any resources held by the client.
	Close() error
}

// ClientConfig holds the configuration for the completion client.
type ClientConfig struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// client implements Client over HTTP with a newline-delimited JSON
// stream response.
type client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new completion client.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("completion URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &client{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// wireRequest is the JSON body sent to the completion backend.
type wireRequest struct {
	Message  string `json:"message"`
	Context  string `json:"context,omitempty"`
	ThreadID string `json:"threadId,omitempty"`
}

// wireChunk is one line of the backend's streamed response.
type wireChunk struct {
	Response string `json:"response,omitempty"`
	ThreadID string `json:"threadId,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Complete sends a message and returns the full response.
func (c *client) Complete(ctx context.Context, req *CompleteRequest) (*CompleteResponse, error) {
	reader, err := c.CompleteStream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var content string
	var threadID string

	for {
		chunk, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domainerrors.NewUpstreamFailureError("completion", err)
		}

		switch chunk.Type {
		case ChunkTypeContent:
			content += chunk.Content
		case ChunkTypeError:
			return nil, domainerrors.NewUpstreamFailureError("completion", chunk.Error)
		}
		if chunk.ThreadID != "" {
			threadID = chunk.ThreadID
		}
	}

	return &CompleteResponse{
		Content:  content,
		ThreadID: threadID,
	}, nil
}

// CompleteStream sends a message and returns a reader for the streamed
// response.
func (c *client) CompleteStream(ctx context.Context, req *CompleteRequest) (StreamReader, error) {
	wireReq := &wireRequest{
		Message:  req.Message,
		Context:  req.Persona.Resolve(),
		ThreadID: req.ThreadID,
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domainerrors.NewUpstreamFailureError("completion", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, domainerrors.NewUpstreamFailureError("completion",
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	return &streamReader{
		response: resp,
		scanner:  bufio.NewScanner(resp.Body),
	}, nil
}

// Close releases any resources held by the client.
func (c *client) Close() error {
	return nil
}

func (c *client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// streamReader implements StreamReader over a newline-delimited JSON body.
type streamReader struct {
	response *http.Response
	scanner  *bufio.Scanner
}

// Read reads the next chunk from the stream.
func (r *streamReader) Read() (*StreamChunk, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			continue
		}

		var wire wireChunk
		if err := json.Unmarshal([]byte(line), &wire); err != nil {
			// Skip non-JSON lines
			continue
		}

		if wire.Error != "" {
			return &StreamChunk{
				Type:  ChunkTypeError,
				Error: fmt.Errorf("completion backend: %s", wire.Error),
			}, nil
		}

		if wire.Response != "" {
			return &StreamChunk{
				Type:     ChunkTypeContent,
				Content:  wire.Response,
				ThreadID: wire.ThreadID,
			}, nil
		}

		if wire.ThreadID != "" {
			return &StreamChunk{
				Type:     ChunkTypeMetadata,
				ThreadID: wire.ThreadID,
			}, nil
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}

// Close closes the underlying response body.
func (r *streamReader) Close() error {
	if r.response != nil && r.response.Body != nil {
		return r.response.Body.Close()
	}
	return nil
}
