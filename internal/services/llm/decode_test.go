package llm

import (
	"strings"
	"testing"
)

func TestDecodeLLMJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain", `{"word":"bank","weight":1}`},
		{"code fence", "```json\n{\"word\":\"bank\",\"weight\":1}\n```"},
		{"bare fence", "```\n{\"word\":\"bank\",\"weight\":1}\n```"},
		{"prose", "Here is the result: {\"word\":\"bank\",\"weight\":1} Hope it helps."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				Word   string  `json:"word"`
				Weight float64 `json:"weight"`
			}
			if err := DecodeLLMJSON(tt.content, &got); err != nil {
				t.Fatalf("DecodeLLMJSON returned error: %v", err)
			}
			if got.Word != "bank" || got.Weight != 1 {
				t.Fatalf("unexpected decode result: %+v", got)
			}
		})
	}
}

func TestDecodeLLMJSONErrors(t *testing.T) {
	var target map[string]any
	if err := DecodeLLMJSON("   ", &target); err == nil {
		t.Fatal("expected error for empty payload")
	}
	err := DecodeLLMJSON("not json at all", &target)
	if err == nil || !strings.Contains(err.Error(), "payload snippet: not json at all") {
		t.Fatalf("expected snippet in error, got %v", err)
	}
}

func TestSummarizePayloadSnippet(t *testing.T) {
	if got := SummarizePayloadSnippet("  a\n\tb  "); got != "a b" {
		t.Fatalf("unexpected snippet %q", got)
	}
	if got := SummarizePayloadSnippet(""); got != "<empty>" {
		t.Fatalf("unexpected empty snippet %q", got)
	}
	long := strings.Repeat("x", 200)
	if got := SummarizePayloadSnippet(long); len(got) != 163 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation, got %d chars", len(got))
	}
}
