package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("ucp %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestProcessCommand_Stdin(t *testing.T) {
	store := filepath.Join(t.TempDir(), "patterns.json")

	out := execute(t, "Our deploy process is slow and manual",
		"process", "--store", store)

	var res struct {
		SessionID string `json:"session_id"`
		Analysis  struct {
			ProblemsDetected int `json:"problems_detected"`
		} `json:"autonomous_analysis"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !strings.HasPrefix(res.SessionID, "ucp_") {
		t.Errorf("session id = %q, want ucp_ prefix", res.SessionID)
	}
	if res.Analysis.ProblemsDetected != 1 {
		t.Errorf("problems detected = %d, want 1", res.Analysis.ProblemsDetected)
	}
}

func TestPatternsBootstrapThenList(t *testing.T) {
	store := filepath.Join(t.TempDir(), "patterns.json")

	out := execute(t, "", "patterns", "bootstrap", "--store", store)
	if !strings.Contains(out, "store now holds 2 patterns") {
		t.Errorf("bootstrap output = %q, want 2 seeded patterns", out)
	}

	out = execute(t, "", "patterns", "list", "--store", store)
	if !strings.Contains(out, "2 patterns") {
		t.Errorf("list output = %q, want 2 patterns", out)
	}
}

func TestStatusCommand_EmptyStore(t *testing.T) {
	store := filepath.Join(t.TempDir(), "patterns.json")

	out := execute(t, "", "status", "--store", store)
	if !strings.Contains(out, "Pattern library size: 0") {
		t.Errorf("status output = %q, want empty library line", out)
	}
}
