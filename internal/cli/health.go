package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API service health",
	Long:  `Probe the platform health endpoint and the ZeroDB service health.`,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("health", nil)
	ctx := context.Background()

	apiHealth, err := a.API.HealthCheck(ctx)
	if err != nil {
		return a.Fail(err)
	}

	dbHealth, err := a.ZeroDB.Health(ctx)
	if err != nil {
		return a.Fail(err)
	}

	res := map[string]interface{}{
		"api":    apiHealth,
		"zerodb": dbHealth,
	}
	a.Done(res)
	return a.Print(res)
}
