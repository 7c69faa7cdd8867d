package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nareshroyalc/Docify/pkg/apikeys"
	"github.com/nareshroyalc/Docify/pkg/prompts"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls the Gemini generateContent REST endpoint.
type GeminiProvider struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiProvider creates a Gemini provider for the given model.
func NewGeminiProvider(model string, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *GeminiProvider) Name() string { return "gemini" }

type geminiContent struct {
	Role  string `json:"role"`
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature      float64 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
		ResponseMimeType string  `json:"responseMimeType,omitempty"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Chat sends the messages to Gemini and returns the raw text of the first
// candidate. System messages are folded into the first user turn because the
// v1beta contents array only accepts user and model roles.
func (g *GeminiProvider) Chat(ctx context.Context, messages []prompts.Message) (string, error) {
	apiKey, err := apikeys.GetAPIKey("gemini", false)
	if err != nil {
		return "", err
	}
	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, apiKey)

	var contents []geminiContent
	var pendingSystem string
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			pendingSystem = msg.Content
			continue
		case "assistant":
			contents = append(contents, textContent("model", msg.Content))
		default:
			text := msg.Content
			if pendingSystem != "" {
				text = pendingSystem + "\n\n" + text
				pendingSystem = ""
			}
			contents = append(contents, textContent("user", text))
		}
	}

	reqBodyStruct := geminiRequest{Contents: contents}
	reqBodyStruct.GenerationConfig.Temperature = 0.3
	reqBodyStruct.GenerationConfig.MaxOutputTokens = 2048
	reqBodyStruct.GenerationConfig.ResponseMimeType = "application/json"

	reqBody, err := json.Marshal(reqBodyStruct)
	if err != nil {
		return "", fmt.Errorf("could not marshal gemini request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("could not unmarshal gemini response: %w", err)
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text), nil
	}
	return "", fmt.Errorf("no content in gemini response")
}

func textContent(role, text string) geminiContent {
	return geminiContent{
		Role: role,
		Parts: []struct {
			Text string `json:"text"`
		}{{Text: text}},
	}
}
