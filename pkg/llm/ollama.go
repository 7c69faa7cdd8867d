package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	ollama "github.com/jmorganca/ollama/api"

	"github.com/nareshroyalc/Docify/pkg/prompts"
)

// OllamaProvider generates entries with a locally running ollama server.
type OllamaProvider struct {
	model   string
	timeout time.Duration
}

// NewOllamaProvider creates an ollama provider for the given model.
func NewOllamaProvider(model string, timeout time.Duration) *OllamaProvider {
	return &OllamaProvider{model: model, timeout: timeout}
}

func (o *OllamaProvider) Name() string { return "ollama" }

// Chat sends the conversation to the local ollama server and collects the
// streamed response into a single string.
func (o *OllamaProvider) Chat(ctx context.Context, messages []prompts.Message) (string, error) {
	client, err := ollama.ClientFromEnvironment()
	if err != nil {
		return "", fmt.Errorf("could not create ollama client: %w", err)
	}

	ollamaMessages := make([]ollama.Message, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = ollama.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := &ollama.ChatRequest{
		Model:    strings.TrimPrefix(o.model, "ollama:"),
		Messages: ollamaMessages,
		Format:   "json",
		Options: map[string]interface{}{
			"temperature": 0.3,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var sb strings.Builder
	respFunc := func(res ollama.ChatResponse) error {
		sb.WriteString(res.Message.Content)
		return nil
	}

	if err := client.Chat(ctx, req, respFunc); err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}
