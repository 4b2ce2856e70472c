package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/azizdeniz890/multi-agent-finance/internal/persona"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
)

func testCfg(baseURL string) *store.Config {
	cfg := store.DefaultConfig()
	cfg.LLM.Provider = "OPENAI"
	cfg.LLM.Model = "gpt-4o"
	cfg.LLM.BaseURL = baseURL
	cfg.LLM.APIKeyEnv = "TEST_OPENAI_KEY"
	cfg.LLM.RequestsPerMin = 6000
	return cfg
}

func TestGenerate(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"  Stance: bullish.  "}}]}`)
	}))
	defer srv.Close()

	g := NewGenerator(testCfg(srv.URL))
	p := persona.Persona{Key: "buffett", Name: "Warren Buffett", Instruction: "You are Warren Buffett."}

	out, err := g.Generate(context.Background(), p, "Financials:\nLast Close: 250.5")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "Stance: bullish." {
		t.Errorf("out = %q, want trimmed completion", out)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["model"] != "gpt-4o" {
		t.Errorf("model = %v", gotBody["model"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	system := msgs[0].(map[string]any)
	if system["role"] != "system" || !strings.Contains(system["content"].(string), "Warren Buffett") {
		t.Errorf("system message = %v", system)
	}
}

func TestGeneratePersonaModelOverride(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		gotModel, _ = body["model"].(string)
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer srv.Close()

	g := NewGenerator(testCfg(srv.URL))
	p := persona.Persona{Key: "lynch", Name: "Peter Lynch", Model: "gpt-4o-mini"}

	if _, err := g.Generate(context.Background(), p, "prompt"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotModel != "gpt-4o-mini" {
		t.Errorf("model = %q, want persona override", gotModel)
	}
}

func TestGenerateMissingKey(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "")

	g := NewGenerator(testCfg("http://127.0.0.1:1"))
	if _, err := g.Generate(context.Background(), persona.Persona{Key: "buffett"}, "prompt"); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestGenerateHTTPError(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGenerator(testCfg(srv.URL))
	if _, err := g.Generate(context.Background(), persona.Persona{Key: "buffett"}, "prompt"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestGenerateEmptyCompletion(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	g := NewGenerator(testCfg(srv.URL))
	if _, err := g.Generate(context.Background(), persona.Persona{Key: "buffett"}, "prompt"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
