package story

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"heritage_routes/internal/models"
)

const promptRevision = "prompt-v1"

// OpenRouterGenerator calls the OpenRouter chat-completions API.
type OpenRouterGenerator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewOpenRouterGenerator(baseURL, apiKey, model string) *OpenRouterGenerator {
	return &OpenRouterGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 25 * time.Second},
	}
}

func (g *OpenRouterGenerator) Source() string {
	return g.model + ":" + promptRevision
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *OpenRouterGenerator) Generate(ctx context.Context, obj models.HeritageObject) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: buildPrompt(obj)},
		},
		Temperature: 0.7,
		MaxTokens:   420,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("openrouter: empty choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("openrouter: empty narrative")
	}
	return text, nil
}

func buildPrompt(obj models.HeritageObject) string {
	var b strings.Builder
	b.WriteString("You are a walking-tour guide. Write a short narrative (5-8 sentences) ")
	b.WriteString("about the heritage site below for a visitor who is already standing next to it. ")
	b.WriteString("Use only the facts in the context; do not invent architects, events or dates. ")
	b.WriteString("Friendly tone, no lists, no generic closing advice.\n\nContext:\n")

	fields := []struct{ label, value string }{
		{"Name", obj.Name},
		{"Address", obj.Address},
		{"District", obj.District},
		{"Administrative area", obj.AdmArea},
		{"Type", obj.ObjectType},
		{"Category", obj.Category},
		{"Protection status", obj.SecurityStatus},
		{"Built", obj.BuildYear},
		{"Description", obj.Description},
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}
