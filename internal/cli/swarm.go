package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ainative/ainative-go/pkg/agentswarm"
)

var (
	swarmStartConfigFile string
	swarmOrchContext     string
	swarmOrchAgents      []string
	swarmStopYes         bool
	swarmStopForce       bool
)

var swarmCmd = &cobra.Command{
	Use:   "swarm",
	Short: "Orchestrate agent swarms",
	Long:  `Commands for launching, tasking, and managing agent swarms.`,
}

var swarmAgentTypesCmd = &cobra.Command{
	Use:   "agent-types",
	Short: "List available agent types",
	RunE:  runSwarmAgentTypes,
}

var swarmStartCmd = &cobra.Command{
	Use:   "start <project-id> <objective> <agents-file>",
	Short: "Launch a new agent swarm",
	Long: `Launch a swarm of agents for a project. The agents file holds a JSON
array of agent specs:

  [{"type": "coder"}, {"type": "reviewer", "name": "strict-reviewer"}]`,
	Args: cobra.ExactArgs(3),
	RunE: runSwarmStart,
}

var swarmStatusCmd = &cobra.Command{
	Use:   "status <swarm-id>",
	Short: "Show swarm status",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwarmStatus,
}

var swarmOrchestrateCmd = &cobra.Command{
	Use:   "orchestrate <swarm-id> <task>",
	Short: "Dispatch a task to a running swarm",
	Args:  cobra.ExactArgs(2),
	RunE:  runSwarmOrchestrate,
}

var swarmStopCmd = &cobra.Command{
	Use:   "stop <swarm-id>",
	Short: "Stop a running swarm",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwarmStop,
}

var swarmPauseCmd = &cobra.Command{
	Use:   "pause <swarm-id>",
	Short: "Pause a running swarm",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwarmPause,
}

var swarmResumeCmd = &cobra.Command{
	Use:   "resume <swarm-id>",
	Short: "Resume a paused swarm",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwarmResume,
}

func init() {
	swarmStartCmd.Flags().StringVar(&swarmStartConfigFile, "config-file", "", "JSON file with swarm configuration")

	swarmOrchestrateCmd.Flags().StringVar(&swarmOrchContext, "context", "", "task context as a JSON object")
	swarmOrchestrateCmd.Flags().StringSliceVar(&swarmOrchAgents, "agents", nil, "restrict the task to specific agent IDs")

	swarmStopCmd.Flags().BoolVarP(&swarmStopYes, "yes", "y", false, "skip the confirmation prompt")
	swarmStopCmd.Flags().BoolVar(&swarmStopForce, "force", false, "terminate agents without graceful shutdown")

	swarmCmd.AddCommand(swarmAgentTypesCmd)
	swarmCmd.AddCommand(swarmStartCmd)
	swarmCmd.AddCommand(swarmStatusCmd)
	swarmCmd.AddCommand(swarmOrchestrateCmd)
	swarmCmd.AddCommand(swarmStopCmd)
	swarmCmd.AddCommand(swarmPauseCmd)
	swarmCmd.AddCommand(swarmResumeCmd)
}

func runSwarmAgentTypes(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("swarm agent-types", nil)

	types, err := a.Swarm.AgentTypes(context.Background())
	if err != nil {
		return a.Fail(err)
	}

	a.Done(map[string]interface{}{"count": len(types)})
	return a.PrintList(types, []string{"type", "name", "description"})
}

func runSwarmStart(cmd *cobra.Command, args []string) error {
	projectID, objective := args[0], args[1]

	data, err := os.ReadFile(args[2])
	if err != nil {
		return fmt.Errorf("failed to read agents file: %w", err)
	}
	var agents []agentswarm.AgentSpec
	if err := json.Unmarshal(data, &agents); err != nil {
		return fmt.Errorf("failed to parse agents file: %w", err)
	}
	if len(agents) == 0 {
		return fmt.Errorf("agents file %s contains no agents", args[2])
	}

	var swarmConfig map[string]interface{}
	if swarmStartConfigFile != "" {
		raw, err := os.ReadFile(swarmStartConfigFile)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(raw, &swarmConfig); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("swarm start", map[string]interface{}{
		"project_id": projectID,
		"objective":  objective,
		"agents":     len(agents),
	})

	res, err := a.Swarm.Start(context.Background(), agentswarm.StartSwarmParams{
		ProjectID: projectID,
		Agents:    agents,
		Objective: objective,
		Config:    swarmConfig,
	})
	if err != nil {
		return a.Fail(err)
	}

	if id, ok := res["swarm_id"].(string); ok {
		a.History.SetResource("swarm", id)
	}
	a.Done(res)
	return a.Print(res)
}

func runSwarmStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("swarm status", map[string]interface{}{"swarm_id": args[0]})

	res, err := a.Swarm.Status(context.Background(), args[0])
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}

func runSwarmOrchestrate(cmd *cobra.Command, args []string) error {
	taskCtx, err := parseJSONObject("context", swarmOrchContext)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("swarm orchestrate", map[string]interface{}{
		"swarm_id": args[0],
		"task":     args[1],
	})

	res, err := a.Swarm.Orchestrate(context.Background(), agentswarm.OrchestrateParams{
		SwarmID: args[0],
		Task:    args[1],
		Context: taskCtx,
		Agents:  swarmOrchAgents,
	})
	if err != nil {
		return a.Fail(err)
	}

	a.History.SetResource("swarm", args[0])
	a.Done(res)
	return a.Print(res)
}

func runSwarmStop(cmd *cobra.Command, args []string) error {
	if !swarmStopYes {
		if !confirm(fmt.Sprintf("Stop swarm %s?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("swarm stop", map[string]interface{}{
		"swarm_id": args[0],
		"force":    swarmStopForce,
	})

	res, err := a.Swarm.Stop(context.Background(), args[0], swarmStopForce)
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}

func runSwarmPause(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("swarm pause", map[string]interface{}{"swarm_id": args[0]})

	res, err := a.Swarm.Pause(context.Background(), args[0])
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}

func runSwarmResume(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("swarm resume", map[string]interface{}{"swarm_id": args[0]})

	res, err := a.Swarm.Resume(context.Background(), args[0])
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}
