package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ainative/ainative-go/internal/config"
	"github.com/ainative/ainative-go/internal/history"
	"github.com/ainative/ainative-go/internal/telemetry"
	"github.com/ainative/ainative-go/pkg/agentswarm"
	"github.com/ainative/ainative-go/pkg/ainative"
	"github.com/ainative/ainative-go/pkg/zerodb"
)

// app bundles what a command needs: loaded configuration, SDK clients,
// logger, and the local history journal.
type app struct {
	Config  *config.Config
	Dir     string
	API     *ainative.Client
	ZeroDB  *zerodb.Client
	Swarm   *agentswarm.Client
	History *history.Manager
	Logger  *telemetry.Logger

	command string
}

// loadConfig resolves the config directory and loads the CLI configuration,
// applying flag overrides on top of file values.
func loadConfig() (string, *config.Config, error) {
	dir := cfgDir
	if dir == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return "", nil, err
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	if envOverride != "" {
		cfg.Environment = envOverride
		cfg.BaseURL = ""
	}
	if outputFormat != "" {
		cfg.Output = outputFormat
	}
	if verbose {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return "", nil, err
	}

	return dir, cfg, nil
}

// newApp loads configuration and constructs the SDK clients
func newApp() (*app, error) {
	dir, cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := telemetry.NewLogger(cfg.Logging.Level == "debug")
	if cfg.Logging.File != "" {
		if err := logger.WithFile(cfg.Logging.File); err != nil {
			logger.Warn("Failed to open log file", "path", cfg.Logging.File, "error", err)
		}
	}

	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}
	clientCfg.Logger = logger.Slog()

	api, err := ainative.NewClient(clientCfg)
	if err != nil {
		return nil, err
	}

	hist, err := history.NewManager(cfg.History.Driver, cfg.History.Path)
	if err != nil {
		api.Close()
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	return &app{
		Config:  cfg,
		Dir:     dir,
		API:     api,
		ZeroDB:  zerodb.NewClient(api),
		Swarm:   agentswarm.NewClient(api),
		History: hist,
		Logger:  logger,
	}, nil
}

// Begin opens a history entry for the command
func (a *app) Begin(command string, params map[string]interface{}) {
	a.command = command
	if _, err := a.History.Begin(command, params); err != nil {
		a.Logger.Warn("Failed to record history", "error", err)
	}
}

// Done marks the history entry completed
func (a *app) Done(result map[string]interface{}) {
	if err := a.History.Complete(result); err != nil {
		a.Logger.Debug("Failed to complete history entry", "error", err)
	}
}

// Fail marks the history entry failed and returns err unchanged
func (a *app) Fail(err error) error {
	if recErr := a.History.Fail(err); recErr != nil {
		a.Logger.Debug("Failed to record failure", "error", recErr)
	}
	return err
}

// Close flushes metrics and releases resources
func (a *app) Close() {
	a.flushMetrics()
	a.History.Close()
	a.API.Close()
	a.Logger.Close()
}

// flushMetrics appends a request-counter snapshot to the metrics journal.
// Commands that never touched the API leave no snapshot.
func (a *app) flushMetrics() {
	if a.command == "" {
		return
	}

	snapshot := telemetry.MetricsSnapshot{
		Timestamp: time.Now(),
		Event:     "command.completed",
		Metrics:   a.API.Metrics(),
		Labels:    map[string]string{"command": a.command},
	}

	exporter, err := telemetry.NewJSONFileExporter(filepath.Join(a.Dir, "metrics.jsonl"))
	if err != nil {
		a.Logger.Debug("Failed to open metrics file", "error", err)
	} else {
		if err := exporter.Export(snapshot); err != nil {
			a.Logger.Debug("Failed to export metrics", "error", err)
		}
		exporter.Close()
	}

	if verbose {
		telemetry.NewLogExporter(a.Logger).Export(snapshot)
	}
}
