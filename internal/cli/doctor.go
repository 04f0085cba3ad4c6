package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ainative/ainative-go/internal/config"
	"github.com/ainative/ainative-go/internal/history"
	"github.com/ainative/ainative-go/pkg/ainative"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check environment and configuration",
	Long:  "Validate that configuration, credentials, and connectivity are properly set up.",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("ainative doctor — checking your environment")
	fmt.Println()
	allOK := true

	// 1. Go version
	fmt.Printf("  Go version: %s", runtime.Version())
	fmt.Println(" ✓")

	// 2. OS/Arch
	fmt.Printf("  Platform:   %s/%s", runtime.GOOS, runtime.GOARCH)
	fmt.Println(" ✓")

	// 3. Configuration
	dir := cfgDir
	if dir == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Printf("  Config:     FAILED (%s) ✗\n", err)
		fmt.Println("    → Run 'ainative config init' to create one")
		allOK = false
	} else if verr := config.Validate(cfg); verr != nil {
		fmt.Printf("  Config:     INVALID ✗\n")
		fmt.Printf("    → %s\n", verr)
		allOK = false
	} else {
		fmt.Printf("  Config:     %s", config.Path(dir))
		fmt.Println(" ✓")
	}

	// 4. API key
	if cfg != nil && cfg.APIKey != "" {
		fmt.Printf("  API key:    set (***%s)", cfg.APIKey[max(0, len(cfg.APIKey)-4):])
		fmt.Println(" ✓")
	} else {
		fmt.Println("  API key:    NOT SET ✗")
		fmt.Printf("    → Set %s or run 'ainative config set api_key <key>'\n", ainative.EnvAPIKey)
		allOK = false
	}

	// 5. History database
	if cfg != nil {
		mgr, err := history.NewManager(cfg.History.Driver, cfg.History.Path)
		if err != nil {
			fmt.Printf("  History DB: FAILED (%s) ✗\n", err)
			allOK = false
		} else {
			fmt.Printf("  History DB: %s (%s)", cfg.History.Driver, cfg.History.Path)
			fmt.Println(" ✓")
			mgr.Close()
		}
	}

	// 6. API connectivity
	if cfg != nil && cfg.APIKey != "" {
		if err := checkConnectivity(cfg); err != nil {
			fmt.Printf("  API:        UNREACHABLE (%s) ✗\n", err)
			if s := ainative.Suggestion(err); s != "" {
				fmt.Printf("    → %s\n", s)
			}
			allOK = false
		} else {
			fmt.Println("  API:        reachable ✓")
		}
	}

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed!")
	} else {
		fmt.Println("Some checks failed. See above for details.")
	}

	return nil
}

// checkConnectivity pings the health endpoint with a short timeout so a dead
// network does not hang the whole report.
func checkConnectivity(cfg *config.Config) error {
	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return err
	}
	// MaxRetries counts total attempts; one is enough here
	clientCfg.MaxRetries = 1

	client, err := ainative.NewClient(clientCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = client.HealthCheck(ctx)
	return err
}
