package completion_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/completion"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) completion.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := completion.NewClient(&completion.ClientConfig{
		URL:     server.URL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	// Act
	_, nilErr := completion.NewClient(nil)
	_, urlErr := completion.NewClient(&completion.ClientConfig{})

	// Assert
	assert.Error(t, nilErr)
	assert.Error(t, urlErr)
}

func TestComplete_AggregatesChunks(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tell me more", body["message"])
		assert.Equal(t, "Friendly support persona", body["context"])

		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(`{"response":"Hello, "}` + "\n"))
		w.Write([]byte(`{"response":"world."}` + "\n"))
		w.Write([]byte(`{"threadId":"thread-42"}` + "\n"))
	})

	// Act
	resp, err := client.Complete(context.Background(), &completion.CompleteRequest{
		Message: "tell me more",
		Persona: models.NewTextPersona("Friendly support persona"),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Hello, world.", resp.Content)
	assert.Equal(t, "thread-42", resp.ThreadID)
}

func TestComplete_ContinuesThread(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "thread-42", body["threadId"])

		w.Write([]byte(`{"response":"Continuing.","threadId":"thread-42"}` + "\n"))
	})

	// Act
	resp, err := client.Complete(context.Background(), &completion.CompleteRequest{
		Message:  "follow-up",
		ThreadID: "thread-42",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Continuing.", resp.Content)
	assert.Equal(t, "thread-42", resp.ThreadID)
}

func TestComplete_ErrorChunk(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model overloaded"}` + "\n"))
	})

	// Act
	resp, err := client.Complete(context.Background(), &completion.CompleteRequest{Message: "hi"})

	// Assert
	assert.Nil(t, resp)
	assert.True(t, domainerrors.IsUpstreamFailure(err))
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestComplete_Non200Status(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Act
	resp, err := client.Complete(context.Background(), &completion.CompleteRequest{Message: "hi"})

	// Assert
	assert.Nil(t, resp)
	assert.True(t, domainerrors.IsUpstreamFailure(err))
}

func TestCompleteStream_ReadsChunksInOrder(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"one "}` + "\n"))
		w.Write([]byte("not json, skipped\n"))
		w.Write([]byte("\n"))
		w.Write([]byte(`{"response":"two"}` + "\n"))
		w.Write([]byte(`{"threadId":"thread-7"}` + "\n"))
	})

	// Act
	reader, err := client.CompleteStream(context.Background(), &completion.CompleteRequest{Message: "hi"})
	require.NoError(t, err)
	defer reader.Close()

	first, err1 := reader.Read()
	second, err2 := reader.Read()
	third, err3 := reader.Read()
	_, errEOF := reader.Read()

	// Assert
	require.NoError(t, err1)
	assert.Equal(t, completion.ChunkTypeContent, first.Type)
	assert.Equal(t, "one ", first.Content)

	require.NoError(t, err2)
	assert.Equal(t, "two", second.Content)

	require.NoError(t, err3)
	assert.Equal(t, completion.ChunkTypeMetadata, third.Type)
	assert.Equal(t, "thread-7", third.ThreadID)

	assert.Equal(t, io.EOF, errEOF)
}

func TestCompleteStream_NilPersona(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasContext := body["context"]
		assert.False(t, hasContext)

		w.Write([]byte(`{"response":"ok"}` + "\n"))
	})

	// Act
	reader, err := client.CompleteStream(context.Background(), &completion.CompleteRequest{Message: "hi"})

	// Assert
	require.NoError(t, err)
	reader.Close()
}

func TestCompleteStream_ConnectionRefused(t *testing.T) {
	// Arrange
	client, err := completion.NewClient(&completion.ClientConfig{
		URL:     "http://127.0.0.1:1",
		Timeout: time.Second,
	})
	require.NoError(t, err)

	// Act
	reader, err := client.CompleteStream(context.Background(), &completion.CompleteRequest{Message: "hi"})

	// Assert
	assert.Nil(t, reader)
	assert.True(t, domainerrors.IsUpstreamFailure(err))
}
