package mcp

import (
	"context"
	"strings"
	"testing"

	"ucp/internal/pattern"
	"ucp/internal/session"
)

func newTestServer() *Server {
	return NewServer(session.NewSystem(pattern.NewMemLibrary()))
}

func TestHandleProcess_RequiresText(t *testing.T) {
	srv := newTestServer()
	_, _, err := srv.handleProcess(context.Background(), nil, processInput{})
	if err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestHandleProcess_RunsPipeline(t *testing.T) {
	srv := newTestServer()

	_, res, err := srv.handleProcess(context.Background(), nil, processInput{
		Text:       "Our deploy process is slow and manual",
		Autonomous: true,
	})
	if err != nil {
		t.Fatalf("handleProcess: %v", err)
	}
	if res.Analysis.ProblemsDetected != 1 {
		t.Errorf("problems detected = %d, want 1", res.Analysis.ProblemsDetected)
	}
	if res.Analysis.SolutionsGenerated != 1 {
		t.Errorf("solutions generated = %d, want 1", res.Analysis.SolutionsGenerated)
	}
	if !strings.HasPrefix(res.SessionID, "ucp_") {
		t.Errorf("session id = %q, want ucp_ prefix", res.SessionID)
	}
}

func TestHandleStatus_ReflectsSessions(t *testing.T) {
	srv := newTestServer()

	_, st, err := srv.handleStatus(context.Background(), nil, statusInput{})
	if err != nil {
		t.Fatalf("handleStatus: %v", err)
	}
	if st.TotalSessions != 0 {
		t.Errorf("total sessions = %d, want 0", st.TotalSessions)
	}

	if _, _, err := srv.handleProcess(context.Background(), nil, processInput{Text: "The sky is blue"}); err != nil {
		t.Fatalf("handleProcess: %v", err)
	}

	_, st, err = srv.handleStatus(context.Background(), nil, statusInput{})
	if err != nil {
		t.Fatalf("handleStatus: %v", err)
	}
	if st.TotalSessions != 1 {
		t.Errorf("total sessions = %d, want 1", st.TotalSessions)
	}
}

func TestHandleBootstrapAndListPatterns(t *testing.T) {
	srv := newTestServer()

	_, boot, err := srv.handleBootstrap(context.Background(), nil, bootstrapInput{})
	if err != nil {
		t.Fatalf("handleBootstrap: %v", err)
	}
	if len(boot.Seeded) != 2 {
		t.Errorf("seeded %d patterns, want 2", len(boot.Seeded))
	}

	_, list, err := srv.handleListPatterns(context.Background(), nil, listPatternsInput{})
	if err != nil {
		t.Fatalf("handleListPatterns: %v", err)
	}
	if list.Total != 2 {
		t.Errorf("listed %d patterns, want 2", list.Total)
	}
	for i := 1; i < len(list.Patterns); i++ {
		if list.Patterns[i-1].ID > list.Patterns[i].ID {
			t.Error("patterns not ordered by ID")
		}
	}
}

func TestHandleRunLoop_DefaultsIterations(t *testing.T) {
	srv := newTestServer()

	_, report, err := srv.handleRunLoop(context.Background(), nil, runLoopInput{})
	if err != nil {
		t.Fatalf("handleRunLoop: %v", err)
	}
	if len(report.Iterations) != 3 {
		t.Errorf("ran %d iterations, want the default 3", len(report.Iterations))
	}
}
