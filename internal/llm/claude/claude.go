package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/azizdeniz890/multi-agent-finance/internal/persona"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
)

const defaultEndpoint = "https://api.anthropic.com/v1/messages"

// Generator dispatches persona prompts to the Anthropic messages API.
type Generator struct {
	cfg      *store.Config
	endpoint string
}

func NewGenerator(cfg *store.Config) *Generator {
	endpoint := defaultEndpoint
	if cfg.LLM.BaseURL != "" {
		endpoint = strings.TrimRight(cfg.LLM.BaseURL, "/") + "/messages"
	}
	return &Generator{cfg: cfg, endpoint: endpoint}
}

// Generate sends the prompt with the persona's system instruction and returns
// the single generated message.
func (g *Generator) Generate(ctx context.Context, p persona.Persona, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	apiKey := os.Getenv(g.cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		return "", fmt.Errorf("%s missing", g.cfg.LLM.APIKeyEnv)
	}

	model := g.cfg.LLM.Model
	if p.Model != "" {
		model = p.Model
	}

	body := map[string]any{
		"model":      model,
		"max_tokens": g.cfg.LLM.MaxTokens,
		"system":     p.Instruction,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("claude http %d", resp.StatusCode)
	}

	var r struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	if len(r.Content) == 0 {
		return "", errors.New("no content")
	}

	out := strings.TrimSpace(r.Content[0].Text)
	if out == "" {
		return "", errors.New("empty completion")
	}
	return out, nil
}
