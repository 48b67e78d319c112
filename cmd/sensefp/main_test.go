package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sensefp/internal/fingerprint"
	"sensefp/internal/scenario"
)

func TestCompareCommand(t *testing.T) {
	home := isolateHome(t)
	a := writeResult(t, home, "finance.json", financeResult)
	b := writeResult(t, home, "river.json", riverResult)

	out, _, err := runCLI(t, []string{"compare", a, b}, "")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	requireContains(t, out, "finance")
	requireContains(t, out, "river")
	requireContains(t, out, "60.0% (Medium)")
	if strings.Contains(out, "\033[") {
		t.Fatalf("expected no ANSI colors when stdout is not a terminal: %q", out)
	}
}

func TestCompareCommandDetails(t *testing.T) {
	home := isolateHome(t)
	a := writeResult(t, home, "finance.json", financeResult)
	b := writeResult(t, home, "river.json", riverResult)

	out, _, err := runCLI(t, []string{"compare", "--details", a, b}, "")
	if err != nil {
		t.Fatalf("compare --details: %v", err)
	}
	requireContains(t, out, "finance vs river")
	requireContains(t, out, "cross")
	requireContains(t, out, "1.020")
}

func TestCompareCommandJSON(t *testing.T) {
	home := isolateHome(t)
	a := writeResult(t, home, "finance.json", financeResult)
	b := writeResult(t, home, "river.json", riverResult)
	c := writeResult(t, home, "empty.json", fingerprint.Result{})

	out, _, err := runCLI(t, []string{"compare", "--json", a, b, c}, "")
	if err != nil {
		t.Fatalf("compare --json: %v", err)
	}
	var payload struct {
		Strategy string `json:"strategy"`
		Entries  []struct {
			Label        string `json:"label"`
			DiscoveryKey string `json:"discovery_key"`
		} `json:"entries"`
		Comparisons []struct {
			Score    float64 `json:"score"`
			Bucket   string  `json:"bucket"`
			Analysis struct {
				Matches []struct {
					Word      string `json:"word"`
					BonusType string `json:"bonusType"`
				} `json:"matches"`
			} `json:"analysis"`
		} `json:"comparisons"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if payload.Strategy != "tiered" || len(payload.Entries) != 3 || len(payload.Comparisons) != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Entries[0].DiscoveryKey != "1E352052" {
		t.Fatalf("unexpected discovery key %q", payload.Entries[0].DiscoveryKey)
	}
	first := payload.Comparisons[0]
	if math.Abs(first.Score-0.6) > 1e-9 || first.Bucket != "medium" {
		t.Fatalf("unexpected first comparison: %+v", first)
	}
	if len(first.Analysis.Matches) != 1 || first.Analysis.Matches[0].BonusType != "cross" {
		t.Fatalf("unexpected matches: %+v", first.Analysis.Matches)
	}
	for _, cmp := range payload.Comparisons[1:] {
		if cmp.Score != 0 || cmp.Bucket != "low" {
			t.Fatalf("expected empty fingerprint to score 0, got %+v", cmp)
		}
	}
}

func TestCompareCommandStrategy(t *testing.T) {
	home := isolateHome(t)
	a := writeResult(t, home, "a.json", financeResult)
	b := writeResult(t, home, "b.json", financeResult)

	out, _, err := runCLI(t, []string{"compare", "--strategy", "jaccard", a, b}, "")
	if err != nil {
		t.Fatalf("compare --strategy: %v", err)
	}
	requireContains(t, out, "Strategy: jaccard")
	requireContains(t, out, "100.0% (High)")

	_, _, err = runCLI(t, []string{"compare", "--strategy", "levenshtein", a, b}, "")
	if err == nil || !strings.Contains(err.Error(), "unknown similarity strategy") {
		t.Fatalf("expected unknown strategy error, got %v", err)
	}
}

func TestCompareCommandErrors(t *testing.T) {
	home := isolateHome(t)
	a := writeResult(t, home, "a.json", financeResult)

	if _, _, err := runCLI(t, []string{"compare", a}, ""); err == nil {
		t.Fatal("expected error for a single file")
	}
	if _, _, err := runCLI(t, []string{"compare", a, filepath.Join(home, "missing.json")}, ""); err == nil {
		t.Fatal("expected error for a missing file")
	}
	bad := filepath.Join(home, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, []string{"compare", a, bad}, "")
	if err == nil || !strings.Contains(err.Error(), "decode fingerprint") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestKeyCommand(t *testing.T) {
	home := isolateHome(t)
	a := writeResult(t, home, "finance.json", financeResult)
	shuffled := writeResult(t, home, "shuffled.json", fingerprint.Result{Fingerprint: []fingerprint.Item{
		{Word: "FINANCE", Weight: 0.7},
		{Word: "bank", Weight: 1.0},
	}})

	out, _, err := runCLI(t, []string{"key", a, shuffled}, "")
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", out)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "1E352052  ") {
			t.Fatalf("unexpected key line %q", line)
		}
	}
}

func TestExtractCommand(t *testing.T) {
	home := isolateHome(t)
	server := newFingerprintServer(t, map[string]fingerprint.Result{"Bank": financeResult})
	cfgPath := writeTestConfig(t, home, server.URL, "test-key")

	out, _, err := runCLI(t, []string{"extract", "Bank", "--context", "money"}, cfgPath)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	requireContains(t, out, "A financial institution")
	requireContains(t, out, "ID:    1E352052")
	requireContains(t, out, "finance")

	out, _, err = runCLI(t, []string{"extract", "--json", "Bank"}, cfgPath)
	if err != nil {
		t.Fatalf("extract --json: %v", err)
	}
	requireContains(t, out, `"discovery_key": "1E352052"`)
}

func TestExtractCommandRequiresAPIKey(t *testing.T) {
	home := isolateHome(t)
	cfgPath := writeTestConfig(t, home, "http://127.0.0.1:1", "")

	_, _, err := runCLI(t, []string{"extract", "Bank"}, cfgPath)
	if err == nil || !strings.Contains(err.Error(), "llm.api_key is required") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestScenarioCommands(t *testing.T) {
	home := isolateHome(t)

	out, _, err := runCLI(t, []string{"scenario", "list"}, "")
	if err != nil {
		t.Fatalf("scenario list: %v", err)
	}
	for _, id := range scenario.IDs() {
		requireContains(t, out, id)
	}

	suite, err := scenario.Lookup("disambiguation")
	if err != nil {
		t.Fatal(err)
	}
	server := newFingerprintServer(t, map[string]fingerprint.Result{
		suite.Items[0].Input: financeResult,
		suite.Items[1].Input: riverResult,
	})
	cfgPath := writeTestConfig(t, home, server.URL, "test-key")

	out, _, err = runCLI(t, []string{"scenario", "run", "disambiguation"}, cfgPath)
	if err != nil {
		t.Fatalf("scenario run: %v", err)
	}
	requireContains(t, out, suite.Title)
	requireContains(t, out, "Bank (Financial)")
	requireContains(t, out, "Sloping land beside water")
	requireContains(t, out, "60.0% (Medium)")

	_, _, err = runCLI(t, []string{"scenario", "run", "missing"}, cfgPath)
	if err == nil || !strings.Contains(err.Error(), "unknown scenario") {
		t.Fatalf("expected unknown scenario error, got %v", err)
	}
}

func TestScenarioRunRecordsFailures(t *testing.T) {
	home := isolateHome(t)
	suite, err := scenario.Lookup("disambiguation")
	if err != nil {
		t.Fatal(err)
	}
	server := newFingerprintServer(t, map[string]fingerprint.Result{suite.Items[1].Input: riverResult})
	cfgPath := writeTestConfig(t, home, server.URL, "test-key")

	out, _, err := runCLI(t, []string{"scenario", "run", "disambiguation"}, cfgPath)
	if err != nil {
		t.Fatalf("scenario run: %v", err)
	}
	requireContains(t, out, "Failed to generate fingerprint (external)")
	requireContains(t, out, "Need at least two fingerprints to compare.")
}

func TestConfigInitAndValidate(t *testing.T) {
	home := isolateHome(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config file did not exist; defaults were used")
	requireContains(t, out, "Warning: llm.api_key is required")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(home, "sensefp", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate with sample: %v", err)
	}
	requireContains(t, out, "Config path: "+target)
}

func TestLLMHealthCommand(t *testing.T) {
	home := isolateHome(t)
	server := newFingerprintServer(t, nil)
	cfgPath := writeTestConfig(t, home, server.URL, "test-key")

	out, _, err := runCLI(t, []string{"llm", "health"}, cfgPath)
	if err != nil {
		t.Fatalf("llm health: %v", err)
	}
	requireContains(t, out, "LLM healthy (model test-model")
}

func TestScenarioRunSaveFeedsCompare(t *testing.T) {
	home := isolateHome(t)
	suite, err := scenario.Lookup("disambiguation")
	if err != nil {
		t.Fatal(err)
	}
	server := newFingerprintServer(t, map[string]fingerprint.Result{
		suite.Items[0].Input: financeResult,
		suite.Items[1].Input: riverResult,
	})
	cfgPath := writeTestConfig(t, home, server.URL, "test-key")
	saveDir := filepath.Join(home, "results")

	_, stderr, err := runCLI(t, []string{"scenario", "run", "disambiguation", "--json", "--save", saveDir}, cfgPath)
	if err != nil {
		t.Fatalf("scenario run --save: %v", err)
	}
	financePath := filepath.Join(saveDir, "bank_financial-1e352052.json")
	requireContains(t, stderr, "Saved "+financePath)

	saved, err := filepath.Glob(filepath.Join(saveDir, "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved results, got %v", saved)
	}
	out, _, err := runCLI(t, append([]string{"compare"}, saved...), "")
	if err != nil {
		t.Fatalf("compare saved results: %v", err)
	}
	requireContains(t, out, "60.0% (Medium)")
}
