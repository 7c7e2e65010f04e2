package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"defindex/internal/definition"
)

func TestToolDefinition(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tool := newQueryDefinitionTool(definition.NewResolver(&fakeEngine{}, "index.db", logger), logger)

	def := tool.Definition()
	if def.Name != "query_definition" {
		t.Fatalf("expected tool name query_definition, got %q", def.Name)
	}
	required := map[string]bool{}
	for _, f := range def.InputSchema.Required {
		required[f] = true
	}
	for _, f := range []string{"source_path", "line", "column"} {
		if !required[f] {
			t.Fatalf("expected %s to be required, schema requires %v", f, def.InputSchema.Required)
		}
	}
	if required["source_dir"] {
		t.Fatalf("source_dir must be optional")
	}
	for _, f := range []string{"source_path", "line", "column", "source_dir"} {
		if _, ok := def.InputSchema.Properties[f]; !ok {
			t.Fatalf("schema is missing property %s", f)
		}
	}
}

func TestNewServer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(definition.NewResolver(&fakeEngine{}, "index.db", logger), logger)
	if s == nil {
		t.Fatalf("expected server")
	}
}

// Unknown capability names are rejected at the protocol layer: the
// response names the requested tool and the engine is never touched.
func TestUnknownToolName(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := &fakeEngine{}
	s := New(definition.NewResolver(eng, "index.db", logger), logger)

	resp := s.HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"find_references","arguments":{}}}`))
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	if !strings.Contains(string(raw), `"error"`) {
		t.Fatalf("expected error response, got %s", raw)
	}
	if !strings.Contains(string(raw), "find_references") {
		t.Fatalf("expected response to name the unknown tool, got %s", raw)
	}
	if len(eng.calls) != 0 {
		t.Fatalf("unknown tool must not invoke the engine, got %v", eng.calls)
	}
}

func TestListsSingleTool(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(definition.NewResolver(&fakeEngine{}, "index.db", logger), logger)

	resp := s.HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	var listed struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("decode tools/list response: %v", err)
	}
	if len(listed.Result.Tools) != 1 {
		t.Fatalf("expected exactly one tool, got %d (%s)", len(listed.Result.Tools), raw)
	}
	if listed.Result.Tools[0].Name != "query_definition" {
		t.Fatalf("expected query_definition, got %q", listed.Result.Tools[0].Name)
	}
}
