package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"microscope/internal/adapters/sqlite"
	"microscope/internal/application/layout"
	"microscope/internal/domain"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	idx, err := sqlite.Open()
	if err != nil {
		t.Fatalf("sqlite.Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess, err := NewSession(domain.NewDemoTimeline(), layout.DefaultConfig(), idx, log)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	for _, c := range res.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			return tc.Text, res.IsError
		}
	}
	t.Fatal("result has no text content")
	return "", false
}

func TestTools_EditTimeline(t *testing.T) {
	sess := newSession(t)

	steps := []struct {
		name    string
		handler server.ToolHandlerFunc
		args    map[string]any
		want    string
		isError bool
	}{
		{"insert event", insertHandler(sess), map[string]any{"parent": "2", "label": "Fusion online"}, "Inserted Event 2.1: Fusion online", false},
		{"insert scene", insertHandler(sess), map[string]any{"parent": "2.1", "question": "Who owns the grid?", "tone": "dark"}, "Inserted Scene 2.1.1", false},
		{"insert period first", insertHandler(sess), map[string]any{"position": 1, "label": "Prologue"}, "Inserted Period 1: Prologue", false},
		{"edit moved event", editHandler(sess), map[string]any{"path": "3.1", "label": "Fusion everywhere"}, "Updated Event 3.1: Fusion everywhere", false},
		{"show event", showHandler(sess), map[string]any{"path": "3.1"}, "scenes: 1", false},
		{"search", searchHandler(sess), map[string]any{"query": "grid"}, "3.1.1  Scene  Who owns the grid?", false},
		{"select scene", selectHandler(sess), map[string]any{"path": "3.1.1"}, "Selected Scene 3.1.1", false},
		{"scene layout", layoutHandler(sess), map[string]any{"canvas": "scenes"}, "Who owns the grid?", false},
		{"delete period", deleteHandler(sess), map[string]any{"path": "3"}, "Deleted Period 3", false},
		{"search after delete", searchHandler(sess), map[string]any{"query": "grid"}, "No results found.", false},
		{"bad path", deleteHandler(sess), map[string]any{"path": "x.y"}, "invalid path", true},
		{"missing card", editHandler(sess), map[string]any{"path": "9", "label": "x"}, "not found", true},
		{"bad canvas", layoutHandler(sess), map[string]any{"canvas": "walls"}, "invalid canvas", true},
	}

	for _, step := range steps {
		got, isError := call(t, step.handler, step.args)
		if isError != step.isError {
			t.Errorf("%s: isError = %v, want %v (%s)", step.name, isError, step.isError, got)
		}
		if !strings.Contains(got, step.want) {
			t.Errorf("%s: result %q does not contain %q", step.name, got, step.want)
		}
	}
}

func TestOutlineTool(t *testing.T) {
	sess := newSession(t)
	call(t, insertHandler(sess), map[string]any{"parent": "1", "label": "Spark"})
	call(t, insertHandler(sess), map[string]any{"parent": "1.1", "question": "Why now?"})

	got, _ := call(t, outlineHandler(sess), map[string]any{})
	if !strings.Contains(got, "  1.1 Spark [light] (1 scene)") || !strings.Contains(got, "1.1.1 Why now?") {
		t.Errorf("outline = %q", got)
	}

	got, _ = call(t, outlineHandler(sess), map[string]any{"scenes": false})
	if strings.Contains(got, "Why now?") {
		t.Errorf("outline without scenes = %q", got)
	}
}
