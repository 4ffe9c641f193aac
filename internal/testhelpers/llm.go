package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// FakeLLM is an httptest server speaking enough of the OpenAI chat API for
// the services: chat completions and model listing.
type FakeLLM struct {
	*httptest.Server

	mu       sync.Mutex
	reply    string
	status   int
	requests []openai.ChatCompletionRequest
	auth     []string
}

// NewFakeLLM starts a server that answers every completion with reply.
func NewFakeLLM(t *testing.T, reply string) *FakeLLM {
	t.Helper()
	f := &FakeLLM{reply: reply, status: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", f.handleChat)
	mux.HandleFunc("/models", f.handleModels)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// SetReply changes the completion text.
func (f *FakeLLM) SetReply(reply string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reply = reply
}

// FailWith makes every request answer with status.
func (f *FakeLLM) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Requests returns the completion requests received so far.
func (f *FakeLLM) Requests() []openai.ChatCompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]openai.ChatCompletionRequest(nil), f.requests...)
}

// AuthHeaders returns the Authorization header of every request.
func (f *FakeLLM) AuthHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.auth...)
}

func (f *FakeLLM) fail(w http.ResponseWriter) bool {
	if f.status == http.StatusOK {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": "fake failure", "type": "server_error"},
	})
	return true
}

func (f *FakeLLM) handleChat(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))

	var req openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		f.requests = append(f.requests, req)
	}
	if f.fail(w) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  req.Model,
		Choices: []openai.ChatCompletionChoice{{
			Index:        0,
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.reply},
			FinishReason: openai.FinishReasonStop,
		}},
	})
}

func (f *FakeLLM) handleModels(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	if f.fail(w) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(openai.ModelsList{
		Models: []openai.Model{{ID: "gpt-3.5-turbo", Object: "model"}},
	})
}
