package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const completionBody = `{
	"id":"chatcmpl-1",
	"object":"chat.completion",
	"created":1730366400,
	"model":"gemini-2.0-flash",
	"choices":[
		{
			"index":0,
			"finish_reason":"stop",
			"logprobs":null,
			"message":{"role":"assistant","content":%q}
		}
	],
	"usage":{"prompt_tokens":10,"completion_tokens":12,"total_tokens":22}
}`

type fakeEndpoint struct {
	mu       sync.Mutex
	calls    int
	lastPath string
	lastBody map[string]any
	status   int
	content  string
}

func (f *fakeEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastPath = r.URL.Path
	body, _ := io.ReadAll(r.Body)
	f.lastBody = nil
	_ = json.Unmarshal(body, &f.lastBody)

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
		return
	}
	_, _ = fmt.Fprintf(w, completionBody, f.content)
}

func newTestClient(t *testing.T, endpoint *fakeEndpoint, mutate func(*Config)) *Client {
	t.Helper()
	server := httptest.NewServer(endpoint)
	t.Cleanup(server.Close)

	cfg := &Config{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		DefaultModel: "analysis",
		LogLevel:     "error",
		Models: map[string]ModelConfig{
			"analysis": {ModelName: "gemini-2.0-flash"},
		},
	}
	if mutate != nil {
		mutate(cfg)
	}
	client, err := NewClient(cfg, WithHTTPClient(server.Client()), WithLogger(NopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientChat(t *testing.T) {
	endpoint := &fakeEndpoint{content: "You sound relieved; overall a positive day."}
	client := newTestClient(t, endpoint, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	temp := 0.3
	resp, err := client.Chat(ctx, &ChatRequest{
		Messages:    []Message{{Role: RoleUser, Content: "Finally finished the move."}},
		Temperature: &temp,
	})
	require.NoError(t, err)
	require.Equal(t, "gemini-2.0-flash", resp.Model)
	require.Equal(t, "You sound relieved; overall a positive day.", resp.Text())
	require.Equal(t, 22, resp.Usage.TotalTokens)
	require.NotEmpty(t, resp.RawJSON)

	endpoint.mu.Lock()
	defer endpoint.mu.Unlock()
	require.Equal(t, 1, endpoint.calls)
	require.Equal(t, "/chat/completions", endpoint.lastPath)
	require.Equal(t, "gemini-2.0-flash", endpoint.lastBody["model"])
	require.InDelta(t, 0.3, endpoint.lastBody["temperature"], 0.0001)
	msgs := endpoint.lastBody["messages"].([]any)
	require.Len(t, msgs, 1)
	require.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestClientChatModelDefaults(t *testing.T) {
	endpoint := &fakeEndpoint{content: "ok"}
	tokens := 300
	client := newTestClient(t, endpoint, func(cfg *Config) {
		cfg.Models["analysis"] = ModelConfig{ModelName: "gemini-2.0-flash", MaxCompletionTokens: &tokens}
	})

	_, err := client.Chat(context.Background(), &ChatRequest{
		Model:    "analysis",
		Messages: []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	endpoint.mu.Lock()
	defer endpoint.mu.Unlock()
	require.EqualValues(t, 300, endpoint.lastBody["max_completion_tokens"])
	require.NotContains(t, endpoint.lastBody, "temperature")
}

func TestClientChatDoesNotRetryByDefault(t *testing.T) {
	endpoint := &fakeEndpoint{status: http.StatusServiceUnavailable}
	client := newTestClient(t, endpoint, nil)

	_, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.Error(t, err)

	endpoint.mu.Lock()
	defer endpoint.mu.Unlock()
	require.Equal(t, 1, endpoint.calls)
}

func TestClientChatHonoursConfiguredRetries(t *testing.T) {
	endpoint := &fakeEndpoint{status: http.StatusServiceUnavailable}
	client := newTestClient(t, endpoint, func(cfg *Config) { cfg.MaxRetries = 1 })

	_, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.Error(t, err)

	endpoint.mu.Lock()
	defer endpoint.mu.Unlock()
	require.Equal(t, 2, endpoint.calls)
}

func TestClientChatValidation(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{}, nil)

	_, err := client.Chat(context.Background(), nil)
	require.Error(t, err)

	_, err = client.Chat(context.Background(), &ChatRequest{})
	require.ErrorContains(t, err, "at least one message")

	_, err = client.Chat(context.Background(), &ChatRequest{
		Messages:       []Message{{Role: RoleUser, Content: "x"}},
		ResponseFormat: &ResponseFormat{Type: "xml"},
	})
	require.ErrorContains(t, err, "unsupported response format")
}

func TestClientChatStructured(t *testing.T) {
	endpoint := &fakeEndpoint{content: `{"narrative":"A heavy, negative week.","mood":"Negative"}`}
	client := newTestClient(t, endpoint, nil)

	type Analysis struct {
		Narrative string `json:"narrative"`
		Mood      string `json:"mood"`
	}

	var analysis Analysis
	_, err := client.ChatStructured(context.Background(), &ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "Everything went wrong."}},
	}, &analysis)
	require.NoError(t, err)
	require.Equal(t, "Negative", analysis.Mood)
	require.Equal(t, "A heavy, negative week.", analysis.Narrative)

	endpoint.mu.Lock()
	defer endpoint.mu.Unlock()
	rf, ok := endpoint.lastBody["response_format"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "json_schema", rf["type"])
	js := rf["json_schema"].(map[string]any)
	require.Equal(t, "analysis", js["name"])
	require.Equal(t, true, js["strict"])

	_, err = client.ChatStructured(context.Background(), &ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	}, analysis)
	require.ErrorContains(t, err, "must be a pointer")
}

func TestClientChatStructuredBadPayload(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{content: "not json"}, nil)

	var out struct {
		Mood string `json:"mood"`
	}
	_, err := client.ChatStructured(context.Background(), &ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	}, &out)
	require.ErrorContains(t, err, "decode structured response")
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(nil)
	require.Error(t, err)

	_, err = NewClient(&Config{BaseURL: "https://llm.example.test"})
	require.ErrorContains(t, err, "api_key")

	cfg := &Config{BaseURL: "https://llm.example.test", APIKey: "k", DefaultModel: "m", Timeout: 5 * time.Second}
	logger := NopLogger()
	client, err := NewClient(cfg, WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, logger, client.logger)

	returned := client.GetConfig()
	require.Equal(t, cfg.BaseURL, returned.BaseURL)
	require.NotSame(t, cfg, returned)
	require.NoError(t, client.Close())
}
