package callmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	commonerrors "truecheck/internal/common/errors"
	"truecheck/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func createTestConfig(baseURL string) *Config {
	return &Config{
		BaseURL:        baseURL + "/",
		APIVersion:     "v1beta",
		Model:          "gemini-test",
		Timeout:        2 * time.Second,
		MaxRetries:     1,
		InitialBackoff: time.Millisecond,
	}
}

func createModelResponse(text string) string {
	response := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"role":  "model",
				"parts": []map[string]interface{}{{"text": text}},
			}},
		},
	}
	data, _ := json.Marshal(response)
	return string(data)
}

func writeAPIError(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"upstream says no","status":%q}}`, code, status)
}

func TestHandler_Execute_Success(t *testing.T) {
	type requestBody struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	bodies := make(chan requestBody, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1beta/models/gemini-test:generateContent"), r.URL.Path)
		assert.Equal(t, "caller-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.Query().Get("key"), "credential must not travel in the query string")
		var body requestBody
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies <- body

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(createModelResponse(`Sure. {"veracity":"true","confidence":0.9,"reasoning":"valid format"}`)))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), server.Client(), logger.NewTestLogger(t))
	text, err := handler.Execute(context.Background(), "verify this", "caller-key")

	require.NoError(t, err)
	assert.Equal(t, `Sure. {"veracity":"true","confidence":0.9,"reasoning":"valid format"}`, text)
	gotBody := <-bodies
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "verify this", gotBody.Contents[0].Parts[0].Text)
}

func TestHandler_Execute_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), server.Client(), logger.NewTestLogger(t))
	text, err := handler.Execute(context.Background(), "p", "k")

	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestHandler_Execute_RetriesTransientStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			writeAPIError(w, http.StatusServiceUnavailable, "UNAVAILABLE")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(createModelResponse("ok")))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), server.Client(), logger.NewTestLogger(t))
	text, err := handler.Execute(context.Background(), "p", "k")

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHandler_Execute_UpstreamError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCalls int32
	}{
		{"bad request is not retried", http.StatusBadRequest, 1},
		{"forbidden is not retried", http.StatusForbidden, 1},
		{"server error exhausts retries", http.StatusInternalServerError, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				writeAPIError(w, tt.status, "FAILED")
			}))
			defer server.Close()

			handler := NewHandler(createTestConfig(server.URL), server.Client(), logger.NewTestLogger(t))
			_, err := handler.Execute(context.Background(), "p", "k")

			require.Error(t, err)
			assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeUpstream), "got %v", err)
			assert.Equal(t, tt.status, commonerrors.Normalize(err).StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestHandler_Execute_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server only notices the client going away once the body is consumed.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.Timeout = 50 * time.Millisecond
	config.MaxRetries = 0
	handler := NewHandler(config, server.Client(), logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), "p", "k")

	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeLLMTimeout), "got %v", err)
}

func TestHandler_Execute_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	config := createTestConfig(baseURL)
	config.MaxRetries = 0
	handler := NewHandler(config, http.DefaultClient, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), "p", "k")

	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeNetwork), "got %v", err)
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", FirstText(nil))
	assert.Equal(t, "", FirstText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "", FirstText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	}))
	assert.Equal(t, "first", FirstText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{
			{Text: "first"}, {Text: "second"},
		}}}},
	}))
}
