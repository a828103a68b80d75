package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/dagaz/internal/testutil"
)

func testServer(t *testing.T) (string, *Server) {
	t.Helper()
	dir, svc := testutil.TestJournal(t)
	return dir, New(svc)
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	var (
		res *mcp.CallToolResult
		err error
	)
	ctx := context.Background()
	switch name {
	case "list_entries":
		res, err = s.listEntries(ctx, req)
	case "read_entry":
		res, err = s.readEntry(ctx, req)
	case "get_entry_by_id":
		res, err = s.getEntryByID(ctx, req)
	case "list_tags":
		res, err = s.listTags(ctx, req)
	case "create_entry":
		res, err = s.createEntry(ctx, req)
	case "get_entry_contract":
		res, err = s.getEntryContract(ctx, req)
	default:
		t.Fatalf("unknown tool %q", name)
	}
	if err != nil {
		t.Fatalf("%s returned error: %v", name, err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestListEntriesTool(t *testing.T) {
	dir, s := testServer(t)
	testutil.WriteEntry(t, dir, "a.md", "tags: go\nid: a1\n---\nalpha")
	testutil.WriteEntry(t, dir, "b.txt", "tags: zsh\nid: b1\n---\nbravo")

	text := resultText(t, callTool(t, s, "list_entries", nil))

	var items []struct {
		Path string   `json:"path"`
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, text)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	ids := map[string]bool{}
	for _, it := range items {
		ids[it.ID] = true
	}
	if !ids["a1"] || !ids["b1"] {
		t.Errorf("ids = %v", ids)
	}
}

func TestReadEntryTool(t *testing.T) {
	dir, s := testServer(t)
	path := testutil.WriteEntry(t, dir, "a.md", "id: a1\n---\nthe body")

	text := resultText(t, callTool(t, s, "read_entry", map[string]any{"path": path}))
	if !strings.Contains(text, "the body") {
		t.Errorf("output = %q", text)
	}
}

func TestReadEntryTool_MissingFile(t *testing.T) {
	_, s := testServer(t)
	res := callTool(t, s, "read_entry", map[string]any{"path": "/nope/missing.md"})
	if !res.IsError {
		t.Error("expected error result for missing file")
	}
}

func TestReadEntryTool_MissingArgument(t *testing.T) {
	_, s := testServer(t)
	res := callTool(t, s, "read_entry", map[string]any{})
	if !res.IsError {
		t.Error("expected error result for missing path argument")
	}
}

func TestGetEntryByIDTool(t *testing.T) {
	dir, s := testServer(t)
	testutil.WriteEntry(t, dir, "a.md", "tags: go, cli\nid: a1\n---\nhello")

	text := resultText(t, callTool(t, s, "get_entry_by_id", map[string]any{"id": "a1"}))

	var out struct {
		Path string   `json:"path"`
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
		Body string   `json:"body"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, text)
	}
	if out.ID != "a1" || out.Body != "hello" {
		t.Errorf("out = %+v", out)
	}
	if len(out.Tags) != 2 || out.Tags[1] != "cli" {
		t.Errorf("tags = %v", out.Tags)
	}
}

func TestGetEntryByIDTool_NotFound(t *testing.T) {
	_, s := testServer(t)
	res := callTool(t, s, "get_entry_by_id", map[string]any{"id": "ghost"})
	if !res.IsError {
		t.Error("expected error result for unknown id")
	}
}

func TestListTagsTool(t *testing.T) {
	dir, s := testServer(t)
	testutil.WriteEntry(t, dir, "1.md", "tags: go\n---\n")
	testutil.WriteEntry(t, dir, "2.md", "tags: go, zsh\n---\n")

	text := resultText(t, callTool(t, s, "list_tags", nil))
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if lines[0] != "zsh 1" || lines[1] != "go 2" {
		t.Errorf("output = %q", text)
	}
}

func TestListTagsTool_Empty(t *testing.T) {
	_, s := testServer(t)
	text := resultText(t, callTool(t, s, "list_tags", nil))
	if text != "no tags found" {
		t.Errorf("output = %q", text)
	}
}

func TestCreateEntryTool(t *testing.T) {
	_, s := testServer(t)

	text := resultText(t, callTool(t, s, "create_entry", map[string]any{
		"name": "meeting-notes",
		"tags": "work, meetings",
		"body": "agenda",
	}))
	if !strings.HasPrefix(text, "created: ") {
		t.Fatalf("output = %q", text)
	}

	e, err := s.svc.FindByID(context.Background(), "meeting-notes")
	if err != nil {
		t.Fatalf("created entry not findable: %v", err)
	}
	if !strings.Contains(e.Body, "agenda") {
		t.Errorf("body = %q", e.Body)
	}
	tags := e.Tags()
	if len(tags) != 2 || tags[0] != "work" || tags[1] != "meetings" {
		t.Errorf("tags = %v", tags)
	}
}

func TestCreateEntryTool_MissingName(t *testing.T) {
	_, s := testServer(t)
	res := callTool(t, s, "create_entry", map[string]any{"tags": "x"})
	if !res.IsError {
		t.Error("expected error result for missing name")
	}
}

func TestGetEntryContractTool(t *testing.T) {
	_, s := testServer(t)
	text := resultText(t, callTool(t, s, "get_entry_contract", nil))
	if !strings.Contains(text, "---") || !strings.Contains(text, "tags") {
		t.Errorf("contract looks wrong: %q", text)
	}
}

func TestReadEntryFormatResource(t *testing.T) {
	_, s := testServer(t)
	contents, err := s.readEntryFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents is %T", contents[0])
	}
	if tc.URI != "dagaz://entry-format" || tc.Text == "" {
		t.Errorf("resource = %+v", tc)
	}
}
