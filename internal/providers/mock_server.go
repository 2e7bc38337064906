package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockServer stands in for the Mistral API in adapter tests. Responses are
// configured per path; every request is counted and the last one recorded
// for header and body assertions.
type MockServer struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]MockResponse
	hits      int
	last      *RecordedRequest
}

// MockResponse configures what the server answers on one path.
type MockResponse struct {
	StatusCode int
	Body       any
	Delay      time.Duration
	Headers    map[string]string
}

// RecordedRequest captures the interesting parts of a received request.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

func NewMockServer() *MockServer {
	ms := &MockServer{responses: make(map[string]MockResponse)}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.serve))
	return ms
}

// URL returns the mock server's base URL.
func (ms *MockServer) URL() string { return ms.server.URL }

func (ms *MockServer) Close() { ms.server.Close() }

// SetResponse configures the answer for a path, replacing any previous one.
func (ms *MockServer) SetResponse(path string, response MockResponse) {
	ms.mu.Lock()
	ms.responses[path] = response
	ms.mu.Unlock()
}

// GetRequestCount returns how many requests the server has received.
func (ms *MockServer) GetRequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.hits
}

// LastRequest returns the most recently received request, or nil if none
// has arrived yet.
func (ms *MockServer) LastRequest() *RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.last
}

func (ms *MockServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	ms.mu.Lock()
	ms.hits++
	ms.last = &RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	}
	response, ok := ms.responses[r.URL.Path]
	ms.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if response.Delay > 0 {
		time.Sleep(response.Delay)
	}
	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(response.StatusCode)

	switch v := response.Body.(type) {
	case nil:
	case string:
		_, _ = io.WriteString(w, v)
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

// chatCompletion builds a chat-completion body in the Mistral wire shape.
func chatCompletion(content, model, finishReason string, withUsage bool) map[string]any {
	body := map[string]any{
		"id":      "cmpl-mock123",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   model,
		"choices": []map[string]any{{
			"index": 0,
			"message": map[string]any{
				"role":    "assistant",
				"content": content,
			},
			"finish_reason": finishReason,
		}},
	}
	if withUsage {
		body["usage"] = map[string]any{
			"prompt_tokens":     10,
			"completion_tokens": 20,
			"total_tokens":      30,
		}
	}
	return body
}

// MockMistralResponse builds a successful completion with a usage block.
func MockMistralResponse(content, model string) map[string]any {
	return chatCompletion(content, model, "stop", true)
}

// MockMistralResponseWithFinish builds a completion with a specific finish
// reason and no usage block.
func MockMistralResponseWithFinish(content, model, finishReason string) map[string]any {
	return chatCompletion(content, model, finishReason, false)
}

// MockRateLimitError builds the 429 answer the API sends when a key is
// over its rate limit.
func MockRateLimitError() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body: map[string]any{
			"message": "Rate limit exceeded",
			"type":    "invalid_request_error",
			"code":    http.StatusTooManyRequests,
		},
	}
}

// ExpectHeader fails when the recorded request lacks value in the named
// header. Substring match, so "Bearer test-key" works against the full
// Authorization header.
func ExpectHeader(r *RecordedRequest, key, value string) error {
	actual := r.Header.Get(key)
	if !strings.Contains(actual, value) {
		return fmt.Errorf("header %q mismatch: expected %q, got %q", key, value, actual)
	}
	return nil
}
