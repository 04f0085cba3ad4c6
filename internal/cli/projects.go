package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ainative/ainative-go/pkg/zerodb"
)

var (
	projectsListLimit  int
	projectsListOffset int
	projectsListStatus string
	projectsCreateDesc string
	projectsCreateMeta string
	projectsSuspendWhy string
	projectsDeleteYes  bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage ZeroDB projects",
	Long:  `Commands for creating, inspecting, and managing ZeroDB projects.`,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsGet,
}

var projectsSuspendCmd = &cobra.Command{
	Use:   "suspend <project-id>",
	Short: "Suspend a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsSuspend,
}

var projectsActivateCmd = &cobra.Command{
	Use:   "activate <project-id>",
	Short: "Reactivate a suspended project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsActivate,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and all of its data",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

var projectsStatsCmd = &cobra.Command{
	Use:   "stats <project-id>",
	Short: "Show project storage and query statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsStats,
}

func init() {
	projectsListCmd.Flags().IntVar(&projectsListLimit, "limit", 10, "maximum number of projects to return")
	projectsListCmd.Flags().IntVar(&projectsListOffset, "offset", 0, "number of projects to skip")
	projectsListCmd.Flags().StringVar(&projectsListStatus, "status", "", "filter by status (active, suspended, archived)")

	projectsCreateCmd.Flags().StringVarP(&projectsCreateDesc, "description", "d", "", "project description")
	projectsCreateCmd.Flags().StringVar(&projectsCreateMeta, "metadata", "", "project metadata as a JSON object")

	projectsSuspendCmd.Flags().StringVar(&projectsSuspendWhy, "reason", "", "reason recorded in the audit trail")

	projectsDeleteCmd.Flags().BoolVarP(&projectsDeleteYes, "yes", "y", false, "skip the confirmation prompt")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsGetCmd)
	projectsCmd.AddCommand(projectsSuspendCmd)
	projectsCmd.AddCommand(projectsActivateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsCmd.AddCommand(projectsStatsCmd)
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("projects list", map[string]interface{}{
		"limit":  projectsListLimit,
		"offset": projectsListOffset,
		"status": projectsListStatus,
	})

	res, err := a.ZeroDB.Projects.List(context.Background(), zerodb.ListProjectsParams{
		Limit:  projectsListLimit,
		Offset: projectsListOffset,
		Status: zerodb.ProjectStatus(projectsListStatus),
	})
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.PrintRows(res, "projects", []string{"id", "name", "status", "created_at"})
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	meta, err := parseJSONObject("metadata", projectsCreateMeta)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("projects create", map[string]interface{}{"name": args[0]})

	res, err := a.ZeroDB.Projects.Create(context.Background(), zerodb.CreateProjectParams{
		Name:        args[0],
		Description: projectsCreateDesc,
		Metadata:    meta,
	})
	if err != nil {
		return a.Fail(err)
	}

	if id, ok := res["id"].(string); ok {
		a.History.SetResource("project", id)
	}
	a.Done(res)
	return a.Print(res)
}

func runProjectsGet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("projects get", map[string]interface{}{"project_id": args[0]})

	res, err := a.ZeroDB.Projects.Get(context.Background(), args[0])
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}

func runProjectsSuspend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("projects suspend", map[string]interface{}{"project_id": args[0]})

	res, err := a.ZeroDB.Projects.Suspend(context.Background(), args[0], projectsSuspendWhy)
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}

func runProjectsActivate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("projects activate", map[string]interface{}{"project_id": args[0]})

	res, err := a.ZeroDB.Projects.Activate(context.Background(), args[0])
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	if !projectsDeleteYes {
		if !confirm(fmt.Sprintf("Delete project %s and all of its data? This cannot be undone.", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("projects delete", map[string]interface{}{"project_id": args[0]})

	res, err := a.ZeroDB.Projects.Delete(context.Background(), args[0])
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	fmt.Printf("Deleted project %s\n", args[0])
	return nil
}

func runProjectsStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("projects stats", map[string]interface{}{"project_id": args[0]})

	res, err := a.ZeroDB.Projects.Statistics(context.Background(), args[0])
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}
