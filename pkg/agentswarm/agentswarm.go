// Package agentswarm provides the client for the Agent Swarm orchestration
// API: starting swarms of cooperating agents, dispatching tasks to them, and
// inspecting their status, metrics, and communications.
package agentswarm

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ainative/ainative-go/pkg/ainative"
)

const (
	swarmPath = "/agent-swarm"

	defaultHistoryLimit = 100
)

// AgentType identifies an agent specialization available in the swarm.
type AgentType string

const (
	AgentResearcher   AgentType = "researcher"
	AgentCoder        AgentType = "coder"
	AgentReviewer     AgentType = "reviewer"
	AgentTester       AgentType = "tester"
	AgentDocumenter   AgentType = "documenter"
	AgentAnalyst      AgentType = "analyst"
	AgentDesigner     AgentType = "designer"
	AgentOrchestrator AgentType = "orchestrator"
)

// SwarmStatus is the lifecycle state of a swarm.
type SwarmStatus string

const (
	SwarmIdle      SwarmStatus = "idle"
	SwarmStarting  SwarmStatus = "starting"
	SwarmRunning   SwarmStatus = "running"
	SwarmPaused    SwarmStatus = "paused"
	SwarmStopping  SwarmStatus = "stopping"
	SwarmCompleted SwarmStatus = "completed"
	SwarmFailed    SwarmStatus = "failed"
)

// Client calls the Agent Swarm API.
type Client struct {
	api *ainative.Client
}

// NewClient wraps an ainative client with the Agent Swarm operations.
func NewClient(api *ainative.Client) *Client {
	return &Client{api: api}
}

// AgentSpec configures one agent in a swarm. Only Type is required.
type AgentSpec struct {
	Type         AgentType              `json:"type"`
	Name         string                 `json:"name,omitempty"`
	Capabilities []string               `json:"capabilities,omitempty"`
	Prompt       string                 `json:"prompt,omitempty"`
	Config       map[string]interface{} `json:"config,omitempty"`
}

// StartSwarmParams describes a new swarm: the agents to run and the
// objective they pursue.
type StartSwarmParams struct {
	ProjectID string
	Agents    []AgentSpec
	Objective string
	Config    map[string]interface{}
}

// Start launches a new agent swarm.
func (c *Client) Start(ctx context.Context, p StartSwarmParams) (map[string]interface{}, error) {
	config := p.Config
	if config == nil {
		config = map[string]interface{}{}
	}
	body := map[string]interface{}{
		"project_id": p.ProjectID,
		"agents":     p.Agents,
		"objective":  p.Objective,
		"config":     config,
	}

	var out map[string]interface{}
	if err := c.api.Post(ctx, swarmPath+"/start", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OrchestrateParams dispatches a task to a running swarm. Agents optionally
// restricts the task to specific agent IDs.
type OrchestrateParams struct {
	SwarmID string
	Task    string
	Context map[string]interface{}
	Agents  []string
}

// Orchestrate dispatches a task to the swarm and returns the orchestration
// result.
func (c *Client) Orchestrate(ctx context.Context, p OrchestrateParams) (map[string]interface{}, error) {
	taskCtx := p.Context
	if taskCtx == nil {
		taskCtx = map[string]interface{}{}
	}
	body := map[string]interface{}{
		"swarm_id": p.SwarmID,
		"task":     p.Task,
		"context":  taskCtx,
	}
	if len(p.Agents) > 0 {
		body["agents"] = p.Agents
	}

	var out map[string]interface{}
	if err := c.api.Post(ctx, swarmPath+"/orchestrate", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Status returns the current state of a swarm.
func (c *Client) Status(ctx context.Context, swarmID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Get(ctx, swarmPath+"/"+swarmID+"/status", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Metrics returns swarm performance metrics. Both filters are optional.
func (c *Client) Metrics(ctx context.Context, swarmID, projectID string) (map[string]interface{}, error) {
	q := url.Values{}
	if swarmID != "" {
		q.Set("swarm_id", swarmID)
	}
	if projectID != "" {
		q.Set("project_id", projectID)
	}

	var out map[string]interface{}
	if err := c.api.Get(ctx, swarmPath+"/metrics", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AgentTypes returns the available agent types and their capabilities.
func (c *Client) AgentTypes(ctx context.Context) ([]map[string]interface{}, error) {
	var out struct {
		AgentTypes []map[string]interface{} `json:"agent_types"`
	}
	if err := c.api.Get(ctx, swarmPath+"/agent-types", nil, &out); err != nil {
		return nil, err
	}
	return out.AgentTypes, nil
}

// ConfigureAgent replaces the configuration of one agent in a swarm.
func (c *Client) ConfigureAgent(ctx context.Context, swarmID, agentID string, config map[string]interface{}) (map[string]interface{}, error) {
	var out map[string]interface{}
	path := swarmPath + "/" + swarmID + "/agents/" + agentID + "/config"
	if err := c.api.Put(ctx, path, config, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetAgentPrompt sets the prompt of one agent. systemPrompt is optional.
func (c *Client) SetAgentPrompt(ctx context.Context, swarmID, agentID, prompt, systemPrompt string) (map[string]interface{}, error) {
	body := map[string]interface{}{"prompt": prompt}
	if systemPrompt != "" {
		body["system_prompt"] = systemPrompt
	}

	var out map[string]interface{}
	path := swarmPath + "/" + swarmID + "/agents/" + agentID + "/prompt"
	if err := c.api.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stop shuts a swarm down. force skips cleanup.
func (c *Client) Stop(ctx context.Context, swarmID string, force bool) (map[string]interface{}, error) {
	body := map[string]interface{}{"force": force}

	var out map[string]interface{}
	if err := c.api.Post(ctx, swarmPath+"/"+swarmID+"/stop", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Pause suspends a running swarm.
func (c *Client) Pause(ctx context.Context, swarmID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Post(ctx, swarmPath+"/"+swarmID+"/pause", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Resume restarts a paused swarm.
func (c *Client) Resume(ctx context.Context, swarmID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Post(ctx, swarmPath+"/"+swarmID+"/resume", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// History returns the execution history of a swarm. limit defaults to 100.
func (c *Client) History(ctx context.Context, swarmID string, limit int) ([]map[string]interface{}, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}

	var out struct {
		History []map[string]interface{} `json:"history"`
	}
	if err := c.api.Get(ctx, swarmPath+"/"+swarmID+"/history", q, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

// Communications returns the inter-agent message log of a swarm. agentID
// optionally narrows it to one agent.
func (c *Client) Communications(ctx context.Context, swarmID, agentID string) ([]map[string]interface{}, error) {
	q := url.Values{}
	if agentID != "" {
		q.Set("agent_id", agentID)
	}

	var out struct {
		Communications []map[string]interface{} `json:"communications"`
	}
	if err := c.api.Get(ctx, swarmPath+"/"+swarmID+"/communications", q, &out); err != nil {
		return nil, err
	}
	return out.Communications, nil
}

// CreateAgentParams describes a reusable custom agent template.
type CreateAgentParams struct {
	Name         string
	Type         AgentType
	Capabilities []string
	Prompt       string
	Config       map[string]interface{}
}

// CreateAgent registers a custom agent template for use in future swarms.
func (c *Client) CreateAgent(ctx context.Context, p CreateAgentParams) (map[string]interface{}, error) {
	config := p.Config
	if config == nil {
		config = map[string]interface{}{}
	}
	capabilities := p.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}
	body := map[string]interface{}{
		"name":         p.Name,
		"type":         string(p.Type),
		"capabilities": capabilities,
		"prompt":       p.Prompt,
		"config":       config,
	}

	var out map[string]interface{}
	if err := c.api.Post(ctx, swarmPath+"/agents", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
