package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for ainative.

To load completions:

Bash:
  $ source <(ainative completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ ainative completion bash > /etc/bash_completion.d/ainative
  # macOS:
  $ ainative completion bash > $(brew --prefix)/etc/bash_completion.d/ainative

Zsh:
  $ source <(ainative completion zsh)
  # To load completions for each session, execute once:
  $ ainative completion zsh > "${fpath[1]}/_ainative"

Fish:
  $ ainative completion fish | source
  # To load completions for each session, execute once:
  $ ainative completion fish > ~/.config/fish/completions/ainative.fish

PowerShell:
  PS> ainative completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}
