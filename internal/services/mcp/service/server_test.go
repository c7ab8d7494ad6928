package service

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
	"github.com/koriyoshi2041/zhouyi/internal/services/mcp/domain"
)

func testService(t *testing.T) *app.Service {
	t.Helper()
	svc, err := app.New(
		app.WithClock(func() time.Time { return time.Date(2024, 4, 21, 12, 0, 0, 0, time.UTC) }),
		app.WithLocation(time.UTC),
		app.WithWorkers(2),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

// connect serves a fresh server over in-memory transports and returns the
// client session.
func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	server, err := New(testService(t), Config{}, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return session
}

func decodeStructured[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	var out T
	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	return out
}

func TestServerListsTools(t *testing.T) {
	session := connect(t)

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		if tool.InputSchema == nil {
			t.Fatalf("tool %s has no input schema", tool.Name)
		}
	}
	sort.Strings(names)
	want := []string{"calendar_moment", "hexagram_analyze", "hexagram_cast", "hexagram_lookup", "line_probability"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("tools mismatch (-want +got):\n%s", diff)
	}
}

func TestServerAnalyzeRoundTrip(t *testing.T) {
	session := connect(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "hexagram_analyze",
		Arguments: map[string]any{"values": "999999"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %+v", result.Content)
	}
	reading := decodeStructured[domain.ReadingResult](t, result)
	if reading.Original.Number != 1 || reading.Changed == nil || reading.Changed.Number != 2 {
		t.Fatalf("reading = %+v", reading)
	}
	if len(reading.Consult) != 1 || reading.Consult[0].Text != "见群龙无首，吉。" {
		t.Fatalf("consult = %+v", reading.Consult)
	}
	if result.Meta[domain.ReadingIDKey] != reading.ID {
		t.Fatalf("meta = %+v", result.Meta)
	}
}

func TestServerCastRoundTrip(t *testing.T) {
	session := connect(t)

	call := func() domain.ReadingResult {
		result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name:      "hexagram_cast",
			Arguments: map[string]any{"method": "yarrow", "seed": 77},
		})
		if err != nil {
			t.Fatalf("call tool: %v", err)
		}
		if result.IsError {
			t.Fatalf("tool error: %+v", result.Content)
		}
		return decodeStructured[domain.ReadingResult](t, result)
	}
	first, second := call(), call()
	if diff := cmp.Diff(first.Values, second.Values); diff != "" {
		t.Fatalf("seeded casts differ (-first +second):\n%s", diff)
	}
	if first.ID == second.ID {
		t.Fatalf("reading ids should differ")
	}
}

func TestServerToolErrors(t *testing.T) {
	session := connect(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "hexagram_lookup",
		Arguments: map[string]any{"ref": "nope"},
	})
	if err == nil && !result.IsError {
		t.Fatalf("expected tool error, got %+v", result)
	}
}

func TestServerReadsHexagramResource(t *testing.T) {
	session := connect(t)

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "hexagram://63"})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("contents = %+v", result.Contents)
	}
	var h domain.HexagramResult
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if h.Number != 63 || h.Key != "101010" {
		t.Fatalf("hexagram = %+v", h)
	}
}

func TestNewRequiresService(t *testing.T) {
	if _, err := New(nil, Config{}, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	err := Run(context.Background(), testService(t), Config{Transport: "carrier-pigeon"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}
