package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sensefp/internal/fingerprint"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// isolateHome points HOME at a temp dir and clears API key variables so the
// developer's own configuration never leaks into a test.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SENSEFP_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Chdir(home)
	return home
}

func writeResult(t *testing.T, dir, name string, result fingerprint.Result) string {
	t.Helper()
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write result: %v", err)
	}
	return path
}

func writeTestConfig(t *testing.T, dir, baseURL, apiKey string) string {
	t.Helper()
	content := fmt.Sprintf(`[llm]
api_key = %q
base_url = %q
model = "test-model"

[session]
concurrency = 2
stagger_ms = 0

[logging]
level = "error"
`, apiKey, baseURL)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// newFingerprintServer answers chat completions with the fixture keyed by the
// text after "Input: " in the user prompt. Unknown inputs get a 400.
func newFingerprintServer(t *testing.T, fixtures map[string]fingerprint.Result) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var user string
		for _, msg := range req.Messages {
			if msg.Role == "user" {
				user = msg.Content
			}
		}
		if strings.Contains(user, `{"ok":true}`) {
			writeCompletion(t, w, `{"ok":true}`)
			return
		}
		input, _, _ := strings.Cut(strings.TrimPrefix(user, "Input: "), "\n")
		result, ok := fixtures[input]
		if !ok {
			http.Error(w, "unknown input", http.StatusBadRequest)
			return
		}
		payload, err := json.Marshal(result)
		if err != nil {
			t.Errorf("marshal fixture: %v", err)
		}
		writeCompletion(t, w, string(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode completion: %v", err)
	}
}

var (
	financeResult = fingerprint.Result{
		SenseDescription: "A financial institution",
		Fingerprint: []fingerprint.Item{
			{Word: "Bank", Weight: 1.0},
			{Word: "finance", Weight: 0.7},
		},
	}
	riverResult = fingerprint.Result{
		SenseDescription: "Sloping land beside water",
		Fingerprint: []fingerprint.Item{
			{Word: "bank", Weight: 0.7},
			{Word: "river", Weight: 1.0},
		},
	}
)
