package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nareshroyalc/Docify/pkg/configuration"
	"github.com/nareshroyalc/Docify/pkg/prompts"
	"github.com/nareshroyalc/Docify/pkg/utils"
	"github.com/nareshroyalc/Docify/pkg/worklog"
)

func TestValidateGeneration(t *testing.T) {
	entry := &worklog.StructuredEntry{
		Summary: strings.Repeat("word ", 40),
	}

	tests := []struct {
		name           string
		inputTokens    float64
		wantRisk       string
		wantConfidence float64
	}{
		// 40 words -> 52 output tokens.
		{"low risk", 50, "low", 0.9},
		{"medium risk", 15, "medium", 0.75},
		{"high risk", 8, "high", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validateGeneration(tt.inputTokens, entry, 1.234)
			assert.Equal(t, tt.wantRisk, m.HallucinationRisk)
			assert.Equal(t, tt.wantConfidence, m.ConfidenceScore)
			assert.Equal(t, 1.23, m.GenerationTime)
			assert.Equal(t, int(tt.inputTokens), m.InputTokens)
		})
	}
}

func TestValidateGenerationZeroInput(t *testing.T) {
	m := validateGeneration(0, &worklog.StructuredEntry{Summary: "a b c"}, 0)
	assert.Equal(t, "medium", m.HallucinationRisk, "3 words -> 3.9 tokens against floor of 1")
}

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  []string
	}{
		{"base only", "refactoring", []string{"work-log"}},
		{"keyword match", "deployed new api", []string{"work-log", "api-development", "deployment"}},
		{"capped at three", "model api deploy data", []string{"work-log", "machine-learning", "api-development"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.topic, ""))
		})
	}
}

func TestDecodeEntry(t *testing.T) {
	payload := `{"title":"T","summary":"S","task_description":"D","achievements":["a"],"priority":"low"}`

	tests := []struct {
		name string
		raw  string
	}{
		{"plain json", payload},
		{"fenced", "```json\n" + payload + "\n```"},
		{"fenced no language", "```\n" + payload + "\n```"},
		{"surrounding whitespace", "\n  " + payload + "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := decodeEntry(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "T", entry.Title)
			assert.Equal(t, []string{"a"}, entry.Achievements)
		})
	}

	_, err := decodeEntry("not json at all")
	assert.Error(t, err)
}

// stubProvider returns a canned response without any network access.
type stubProvider struct {
	response string
	err      error
	seen     []prompts.Message
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Chat(_ context.Context, messages []prompts.Message) (string, error) {
	s.seen = messages
	return s.response, s.err
}

func TestGeneratorGenerate(t *testing.T) {
	stub := &stubProvider{
		response: `{"title":"Fixed bug","summary":"Corrected null pointer","task_description":"patched /predict","achievements":["fix shipped"],"priority":"high","tags":["model-invented"]}`,
	}
	gen := NewGenerator(stub, "Test Author", utils.GetLogger())

	result, err := gen.Generate(context.Background(), Request{
		Topic:    "Fixed bug in API",
		Details:  "Corrected null pointer in /predict endpoint",
		Priority: worklog.PriorityLow,
	})
	require.NoError(t, err)

	assert.Equal(t, "Fixed bug", result.Entry.Title)
	assert.Equal(t, worklog.PriorityLow, result.Entry.Priority, "request priority overrides model output")
	assert.Equal(t, []string{"work-log", "api-development"}, result.Entry.Tags, "tags come from keyword extraction")
	require.NotNil(t, result.Metrics)
	assert.NotEmpty(t, result.Timestamp)

	require.Len(t, stub.seen, 2)
	assert.Equal(t, "system", stub.seen[0].Role)
	assert.Contains(t, stub.seen[1].Content, "Priority: LOW")
}

func TestGeneratorRejectsEmptyTopic(t *testing.T) {
	gen := NewGenerator(&stubProvider{}, "", utils.GetLogger())
	_, err := gen.Generate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestGeminiProviderChat(t *testing.T) {
	entryJSON := `{"title":"T","summary":"S","task_description":"D","priority":"medium"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Contains(t, r.URL.RawQuery, "key=test-key")

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		assert.Equal(t, "user", req.Contents[0].Role)
		// The system prompt is folded into the first user turn.
		assert.Contains(t, req.Contents[0].Parts[0].Text, "documentation assistant")
		assert.InDelta(t, 0.3, req.GenerationConfig.Temperature, 1e-9)

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": entryJSON}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")

	provider := NewGeminiProvider("gemini-2.5-flash", 5*time.Second)
	provider.baseURL = server.URL

	got, err := provider.Chat(context.Background(),
		prompts.BuildMessages("topic", "", "", "", worklog.PriorityMedium))
	require.NoError(t, err)
	assert.Equal(t, entryJSON, got)
}

func TestGeminiProviderChatErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")

	provider := NewGeminiProvider("gemini-2.5-flash", 5*time.Second)
	provider.baseURL = server.URL

	_, err := provider.Chat(context.Background(), []prompts.Message{{Role: "user", Content: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestNewProvider(t *testing.T) {
	cfg := configuration.DefaultConfig()
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	cfg.Provider = configuration.ProviderOllama
	p, err = NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())

	cfg.Provider = "nope"
	_, err = NewProvider(cfg)
	assert.Error(t, err)
}
