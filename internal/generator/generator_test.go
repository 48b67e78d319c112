package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sensefp/internal/fingerprint"
	"sensefp/internal/logging"
	"sensefp/internal/services"
	"sensefp/internal/services/llm"
)

type stubCompleter struct {
	response string
	err      error
	system   string
	user     string
	calls    int
}

func (s *stubCompleter) CompleteJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.system = systemPrompt
	s.user = userPrompt
	return s.response, s.err
}

func defaultConfig() Config {
	return Config{
		Model:     "demo-model",
		WordCount: 5,
		Tiers: []Tier{
			{Label: "Core", Weight: 1.0, Description: "Essential meaning"},
			{Label: "Strong", Weight: 0.7, Description: "Very close nuance"},
			{Label: "Related", Weight: 0.3, Description: "Broad semantic field"},
		},
	}
}

func TestSystemPromptRendersTiers(t *testing.T) {
	prompt := SystemPrompt(defaultConfig())
	for _, fragment := range []string{
		"Generate EXACTLY 5 English synonyms",
		"   - Tier 1 (Core): 1.0 (Essential meaning)\n",
		"   - Tier 2 (Strong): 0.7 (Very close nuance)\n",
		"   - Tier 3 (Related): 0.3 (Broad semantic field)\n",
		"Use Lemma form",
		`"sense_description"`,
		`{"word": "word1", "weight": 1.0},`,
		`{"word": "word3", "weight": 0.7},`,
		`{"word": "word5", "weight": 0.3}` + "\n  ]",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected prompt to contain %q\n%s", fragment, prompt)
		}
	}
}

func TestExampleWeightSpread(t *testing.T) {
	cfg := defaultConfig()
	got := make([]float64, cfg.WordCount)
	for i := range got {
		got[i] = exampleWeight(cfg, i)
	}
	want := []float64{1.0, 0.7, 0.7, 0.3, 0.3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("exampleWeight spread = %v, want %v", got, want)
		}
	}

	single := Config{WordCount: 3, Tiers: []Tier{{Label: "Only", Weight: 0.5}}}
	for i := range 3 {
		if w := exampleWeight(single, i); w != 0.5 {
			t.Fatalf("single tier weight = %v, want 0.5", w)
		}
	}
}

func TestUserPrompt(t *testing.T) {
	if got := userPrompt(Input{Text: " Bank "}); got != "Input: Bank" {
		t.Fatalf("unexpected prompt %q", got)
	}
	got := userPrompt(Input{Text: "Bank", Context: "river side"})
	if got != "Input: Bank\nContext/Description: river side" {
		t.Fatalf("unexpected prompt %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero words", func(c *Config) { c.WordCount = 0 }, "word count"},
		{"no tiers", func(c *Config) { c.Tiers = nil }, "at least one tier"},
		{"blank label", func(c *Config) { c.Tiers[1].Label = " " }, "tier 2: label"},
		{"weight too high", func(c *Config) { c.Tiers[0].Weight = 1.5 }, "tier 1: weight"},
		{"negative weight", func(c *Config) { c.Tiers[2].Weight = -0.1 }, "tier 3: weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewLLMRejectsInvalidConfig(t *testing.T) {
	if _, err := NewLLM(nil, defaultConfig(), nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for nil client, got %v", err)
	}
	cfg := defaultConfig()
	cfg.WordCount = 0
	if _, err := NewLLM(&stubCompleter{}, cfg, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestGenerateDecodesResult(t *testing.T) {
	stub := &stubCompleter{response: "```json\n" + `{
		"sense_description": "A financial institution",
		"fingerprint": [
			{"word": "Finance", "weight": 1.0},
			{"word": "money", "weight": 0.7},
			{"word": "money", "weight": 0.3}
		]
	}` + "\n```"}
	gen, err := NewLLM(stub, defaultConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("NewLLM: %v", err)
	}
	result, err := gen.Generate(context.Background(), Input{Text: "Bank", Context: "money"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.SenseDescription != "A financial institution" || result.Len() != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	// Duplicates are kept as-is.
	if result.Fingerprint[0].Word != "Finance" || result.Fingerprint[2].Weight != 0.3 {
		t.Fatalf("unexpected items: %+v", result.Fingerprint)
	}
	if stub.user != "Input: Bank\nContext/Description: money" {
		t.Fatalf("unexpected user prompt %q", stub.user)
	}
	if stub.system != SystemPrompt(defaultConfig()) {
		t.Fatal("expected rendered system prompt to be sent")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		stub     *stubCompleter
		wantKind string
		wantText string
		wantCall bool
	}{
		{
			name:     "empty input",
			input:    Input{Text: "   "},
			stub:     &stubCompleter{},
			wantKind: "validation",
		},
		{
			name:     "llm failure",
			input:    Input{Text: "Bank"},
			stub:     &stubCompleter{err: errors.New("http 500")},
			wantKind: "external",
			wantText: "http 500",
			wantCall: true,
		},
		{
			name:     "deadline",
			input:    Input{Text: "Bank"},
			stub:     &stubCompleter{err: fmt.Errorf("send: %w", context.DeadlineExceeded)},
			wantKind: "timeout",
			wantCall: true,
		},
		{
			name:     "missing key",
			input:    Input{Text: "Bank"},
			stub:     &stubCompleter{err: fmt.Errorf("llm complete: %w", llm.ErrMissingAPIKey)},
			wantKind: "configuration",
			wantCall: true,
		},
		{
			name:     "canceled",
			input:    Input{Text: "Bank"},
			stub:     &stubCompleter{err: context.Canceled},
			wantKind: "canceled",
			wantCall: true,
		},
		{
			name:     "malformed payload",
			input:    Input{Text: "Bank"},
			stub:     &stubCompleter{response: "I cannot help with that"},
			wantKind: "external",
			wantText: "payload snippet: I cannot help with that",
			wantCall: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewLLM(tt.stub, defaultConfig(), nil)
			if err != nil {
				t.Fatalf("NewLLM: %v", err)
			}
			_, err = gen.Generate(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := services.FailureKind(err); kind != tt.wantKind {
				t.Fatalf("FailureKind = %q, want %q (err %v)", kind, tt.wantKind, err)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Fatalf("expected %q in %v", tt.wantText, err)
			}
			if called := tt.stub.calls > 0; called != tt.wantCall {
				t.Fatalf("completer called = %v, want %v", called, tt.wantCall)
			}
		})
	}
}

func TestGenerateThroughHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"sense_description\":\"season\",\"fingerprint\":[{\"word\":\"spring\",\"weight\":1}]}"}}]}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	gen, err := NewLLM(client, defaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewLLM: %v", err)
	}
	result, err := gen.Generate(context.Background(), Input{Text: "Spring"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.SenseDescription != "season" || result.Len() != 1 || result.Fingerprint[0].Word != "spring" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestFuncAdapter(t *testing.T) {
	var gen Generator = Func(func(_ context.Context, in Input) (fingerprint.Result, error) {
		return fingerprint.Result{SenseDescription: in.Text}, nil
	})
	result, err := gen.Generate(context.Background(), Input{Text: "echo"})
	if err != nil || result.SenseDescription != "echo" {
		t.Fatalf("unexpected result %+v, %v", result, err)
	}
}
