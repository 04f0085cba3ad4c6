package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ainative/ainative-go/pkg/ainative"
)

// These are set at build time via ldflags.
var (
	Version   = ainative.Version
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ainative %s\n", Version)
		fmt.Printf("  SDK version: %s\n", ainative.Version)
		fmt.Printf("  Build time:  %s\n", BuildTime)
		fmt.Printf("  Git commit:  %s\n", GitCommit)
		fmt.Printf("  Go version:  %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}
