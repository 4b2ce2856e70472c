package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/time/rate"

	"github.com/azizdeniz890/multi-agent-finance/internal/persona"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
)

const defaultEndpoint = "https://api.openai.com/v1"

// Generator dispatches persona prompts to an OpenAI-compatible chat
// completions endpoint. The base URL is configurable so alternative hosts
// serving the same API shape work unchanged.
type Generator struct {
	cfg     *store.Config
	baseURL string
	limiter *rate.Limiter
	client  *http.Client
}

func NewGenerator(cfg *store.Config) *Generator {
	baseURL := cfg.LLM.BaseURL
	if baseURL == "" {
		baseURL = defaultEndpoint
	}
	return &Generator{
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.LLM.RequestsPerMin)/60.0), 1),
		client:  http.DefaultClient,
	}
}

// Generate sends the prompt with the persona's system instruction and returns
// the single generated message.
func (g *Generator) Generate(ctx context.Context, p persona.Persona, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv(g.cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		return "", fmt.Errorf("%s missing", g.cfg.LLM.APIKeyEnv)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	model := g.cfg.LLM.Model
	if p.Model != "" {
		model = p.Model
	}

	body := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": p.Instruction},
			{"role": "user", "content": prompt},
		},
		"temperature": g.cfg.LLM.Temperature,
		"max_tokens":  g.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/chat/completions", bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("empty completion")
	}
	return out, nil
}
