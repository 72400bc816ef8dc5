package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"excise/internal/core"
	"excise/internal/tui"
)

// previewCmd launches the interactive construct preview.
var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Interactively review pending constructs before patching",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadRules()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error loading rules:", err)
			os.Exit(1)
		}
		opts := core.DefaultOptions(rules)
		opts.Force = force
		opts.Strict = strict
		if err := tui.Run(args[0], opts); err != nil {
			fmt.Fprintln(os.Stderr, "Error running preview:", err)
			os.Exit(1)
		}
	},
}

func init() {
	previewCmd.Flags().StringVar(&rulesFile, "rules", "", "TOML rule file (default: built-in interceptor rules)")
	rootCmd.AddCommand(previewCmd)
}
