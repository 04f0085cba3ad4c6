package agentswarm

import (
	"context"
	"testing"

	"github.com/ainative/ainative-go/internal/testutil"
)

func TestClient_Start(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	srv.Respond(`{"swarm_id": "swarm-1", "status": "starting"}`)

	sw := NewClient(srv.Client(t))
	out, err := sw.Start(context.Background(), StartSwarmParams{
		ProjectID: "proj-1",
		Objective: "refactor the billing module",
		Agents: []AgentSpec{
			{Type: AgentCoder},
			{Type: AgentReviewer, Name: "strict-reviewer"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["swarm_id"] != "swarm-1" {
		t.Errorf("expected swarm_id swarm-1, got %v", out["swarm_id"])
	}

	req := srv.LastRequest(t)
	if req.Method != "POST" || req.Path != "/api/v1/agent-swarm/start" {
		t.Errorf("unexpected request: %s %s", req.Method, req.Path)
	}

	body := req.JSON(t)
	if body["objective"] != "refactor the billing module" {
		t.Errorf("unexpected objective: %v", body["objective"])
	}
	// Unset config still serializes as an empty object.
	if cfg, ok := body["config"].(map[string]interface{}); !ok || len(cfg) != 0 {
		t.Errorf("expected empty config object, got %v", body["config"])
	}

	agents := body["agents"].([]interface{})
	if len(agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(agents))
	}
	first := agents[0].(map[string]interface{})
	if first["type"] != "coder" {
		t.Errorf("unexpected first agent: %v", first)
	}
	if _, ok := first["name"]; ok {
		t.Error("empty agent name should be omitted")
	}
	second := agents[1].(map[string]interface{})
	if second["name"] != "strict-reviewer" {
		t.Errorf("unexpected second agent: %v", second)
	}
}

func TestClient_Orchestrate(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	srv.Respond(`{"task_id": "task-1"}`)

	sw := NewClient(srv.Client(t))
	out, err := sw.Orchestrate(context.Background(), OrchestrateParams{
		SwarmID: "swarm-1",
		Task:    "write unit tests",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["task_id"] != "task-1" {
		t.Errorf("unexpected result: %v", out)
	}

	body := srv.LastRequest(t).JSON(t)
	if body["swarm_id"] != "swarm-1" || body["task"] != "write unit tests" {
		t.Errorf("unexpected body: %v", body)
	}
	if taskCtx, ok := body["context"].(map[string]interface{}); !ok || len(taskCtx) != 0 {
		t.Errorf("expected empty context object, got %v", body["context"])
	}
	if _, ok := body["agents"]; ok {
		t.Error("agents should be omitted when unset")
	}
}

func TestClient_OrchestrateWithAgents(t *testing.T) {
	srv := testutil.NewAPIServer(t)

	sw := NewClient(srv.Client(t))
	_, err := sw.Orchestrate(context.Background(), OrchestrateParams{
		SwarmID: "swarm-1",
		Task:    "review PR",
		Agents:  []string{"agent-1", "agent-2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := srv.LastRequest(t).JSON(t)
	agents, ok := body["agents"].([]interface{})
	if !ok || len(agents) != 2 {
		t.Errorf("expected 2 agents in body, got %v", body["agents"])
	}
}

func TestClient_StatusPath(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	srv.Respond(`{"status": "running"}`)

	sw := NewClient(srv.Client(t))
	out, err := sw.Status(context.Background(), "swarm-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["status"] != string(SwarmRunning) {
		t.Errorf("unexpected status: %v", out["status"])
	}

	req := srv.LastRequest(t)
	if req.Method != "GET" || req.Path != "/api/v1/agent-swarm/swarm-1/status" {
		t.Errorf("unexpected request: %s %s", req.Method, req.Path)
	}
}

func TestClient_MetricsFilters(t *testing.T) {
	srv := testutil.NewAPIServer(t)

	sw := NewClient(srv.Client(t))
	if _, err := sw.Metrics(context.Background(), "swarm-1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := srv.LastRequest(t).Query
	if q.Get("swarm_id") != "swarm-1" {
		t.Errorf("expected swarm_id filter, got %v", q)
	}
	if q.Has("project_id") {
		t.Error("project_id should be omitted when unset")
	}
}

func TestClient_AgentTypesUnwrap(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	srv.Respond(`{"agent_types": [{"type": "coder"}, {"type": "reviewer"}]}`)

	sw := NewClient(srv.Client(t))
	types, err := sw.AgentTypes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 2 || types[0]["type"] != "coder" {
		t.Errorf("unexpected agent types: %v", types)
	}

	if srv.LastRequest(t).Path != "/api/v1/agent-swarm/agent-types" {
		t.Errorf("unexpected path: %s", srv.LastRequest(t).Path)
	}
}

func TestClient_ConfigureAgent(t *testing.T) {
	srv := testutil.NewAPIServer(t)

	sw := NewClient(srv.Client(t))
	_, err := sw.ConfigureAgent(context.Background(), "swarm-1", "agent-2", map[string]interface{}{
		"temperature": 0.2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := srv.LastRequest(t)
	if req.Method != "PUT" || req.Path != "/api/v1/agent-swarm/swarm-1/agents/agent-2/config" {
		t.Errorf("unexpected request: %s %s", req.Method, req.Path)
	}
	// The config map is the whole request body.
	body := req.JSON(t)
	if body["temperature"] != 0.2 {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestClient_SetAgentPrompt(t *testing.T) {
	srv := testutil.NewAPIServer(t)

	sw := NewClient(srv.Client(t))
	_, err := sw.SetAgentPrompt(context.Background(), "swarm-1", "agent-2", "review carefully", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := srv.LastRequest(t)
	if req.Path != "/api/v1/agent-swarm/swarm-1/agents/agent-2/prompt" {
		t.Errorf("unexpected path: %s", req.Path)
	}
	body := req.JSON(t)
	if body["prompt"] != "review carefully" {
		t.Errorf("unexpected prompt: %v", body["prompt"])
	}
	if _, ok := body["system_prompt"]; ok {
		t.Error("system_prompt should be omitted when unset")
	}
}

func TestClient_StopForce(t *testing.T) {
	srv := testutil.NewAPIServer(t)

	sw := NewClient(srv.Client(t))
	if _, err := sw.Stop(context.Background(), "swarm-1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := srv.LastRequest(t)
	if req.Path != "/api/v1/agent-swarm/swarm-1/stop" {
		t.Errorf("unexpected path: %s", req.Path)
	}
	if body := req.JSON(t); body["force"] != true {
		t.Errorf("expected force true, got %v", body)
	}
}

func TestClient_PauseAndResume(t *testing.T) {
	srv := testutil.NewAPIServer(t)

	sw := NewClient(srv.Client(t))
	if _, err := sw.Pause(context.Background(), "swarm-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := srv.LastRequest(t)
	if req.Method != "POST" || req.Path != "/api/v1/agent-swarm/swarm-1/pause" {
		t.Errorf("unexpected request: %s %s", req.Method, req.Path)
	}
	if len(req.Body) != 0 {
		t.Errorf("pause should send no body, got %q", req.Body)
	}

	if _, err := sw.Resume(context.Background(), "swarm-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.LastRequest(t).Path != "/api/v1/agent-swarm/swarm-1/resume" {
		t.Errorf("unexpected path: %s", srv.LastRequest(t).Path)
	}
}

func TestClient_HistoryUnwrap(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	srv.Respond(`{"history": [{"event": "task_completed"}]}`)

	sw := NewClient(srv.Client(t))
	history, err := sw.History(context.Background(), "swarm-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0]["event"] != "task_completed" {
		t.Errorf("unexpected history: %v", history)
	}

	req := srv.LastRequest(t)
	if req.Path != "/api/v1/agent-swarm/swarm-1/history" {
		t.Errorf("unexpected path: %s", req.Path)
	}
	if req.Query.Get("limit") != "100" {
		t.Errorf("expected default limit 100, got %q", req.Query.Get("limit"))
	}
}

func TestClient_CommunicationsUnwrap(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	srv.Respond(`{"communications": [{"from": "agent-1", "to": "agent-2"}]}`)

	sw := NewClient(srv.Client(t))
	comms, err := sw.Communications(context.Background(), "swarm-1", "agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comms) != 1 || comms[0]["from"] != "agent-1" {
		t.Errorf("unexpected communications: %v", comms)
	}

	req := srv.LastRequest(t)
	if req.Path != "/api/v1/agent-swarm/swarm-1/communications" {
		t.Errorf("unexpected path: %s", req.Path)
	}
	if req.Query.Get("agent_id") != "agent-1" {
		t.Errorf("expected agent_id filter, got %v", req.Query)
	}
}

func TestClient_CreateAgent(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	srv.Respond(`{"id": "agent-9"}`)

	sw := NewClient(srv.Client(t))
	out, err := sw.CreateAgent(context.Background(), CreateAgentParams{
		Name:         "docswriter",
		Type:         AgentDocumenter,
		Capabilities: []string{"markdown", "godoc"},
		Prompt:       "write clear docs",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["id"] != "agent-9" {
		t.Errorf("unexpected result: %v", out)
	}

	req := srv.LastRequest(t)
	if req.Method != "POST" || req.Path != "/api/v1/agent-swarm/agents" {
		t.Errorf("unexpected request: %s %s", req.Method, req.Path)
	}

	body := req.JSON(t)
	if body["type"] != "documenter" || body["name"] != "docswriter" {
		t.Errorf("unexpected body: %v", body)
	}
	if cfg, ok := body["config"].(map[string]interface{}); !ok || len(cfg) != 0 {
		t.Errorf("expected empty config object, got %v", body["config"])
	}
}
