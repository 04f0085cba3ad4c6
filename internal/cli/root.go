package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ainative/ainative-go/internal/config"
	"github.com/ainative/ainative-go/pkg/ainative"
)

var (
	cfgDir       string
	verbose      bool
	outputFormat string
	envOverride  string
)

var rootCmd = &cobra.Command{
	Use:   "ainative",
	Short: "AINative platform CLI",
	Long: `ainative - Command line access to the AINative platform.

Manage ZeroDB projects, vectors, memories, and analytics, and
orchestrate Agent Swarm sessions from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if suggestion := ainative.Suggestion(err); suggestion != "" {
			fmt.Fprintf(os.Stderr, "  → %s\n", suggestion)
		}
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is ~/.ainative)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table or json")
	rootCmd.PersistentFlags().StringVar(&envOverride, "env", "", "environment: production, staging, development, local")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(vectorsCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(swarmCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

func initConfig() {
	dir := cfgDir
	if dir == "" {
		dir, _ = config.DefaultDir()
	}

	viper.AddConfigPath(dir)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("AINATIVE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
