package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for miqctl and print it to stdout.

Load it in the current session, for example:

  source <(miqctl completion bash)
  miqctl completion fish | source

Or install it permanently, for example:

  miqctl completion bash > /etc/bash_completion.d/miqctl
  miqctl completion zsh > "${fpath[1]}/_miqctl"
  miqctl completion fish > ~/.config/fish/completions/miqctl.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
