package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"excise/internal/core"
	"excise/internal/patchfile"
	"excise/internal/runner"
	"excise/internal/ruleset"
	"excise/pkg/rule"
)

var (
	rulesFile  string
	reportFile string
	dryRun     bool
	force      bool
	quiet      bool
	strict     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "excise [flags] FILE...",
	Short: "Structurally remove a cross-cutting feature from source files",
	Long: `excise patches source files in place: an ordered rule set recognizes
removable constructs (imports, fields, methods, macro blocks, multi-line call
sites), resolves each construct's true extent by terminator or delimiter
scanning, and deletes or rewrites it. Files are replaced atomically; a failed
run leaves the original untouched.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRules()
		if err != nil {
			return err
		}

		opts := core.DefaultOptions(rules)
		opts.DryRun = dryRun
		opts.Force = force
		opts.Quiet = quiet
		opts.Strict = strict

		br := runner.New(args, func(path string) (*core.Outcome, error) {
			return core.PatchFile(path, opts)
		})
		br.Start()

		var outcomes []*core.Outcome
		failed := 0
		for ev := range br.Events() {
			switch ev.Kind {
			case runner.EventFailed:
				fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), ev.Err)
				failed++
			case runner.EventPatched:
				outcomes = append(outcomes, ev.Outcome)
			}
		}

		if reportFile != "" {
			if err := writeReport(outcomes, opts); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

// loadRules returns the rule table for this invocation: the built-in
// interceptor set, or a custom TOML rule file.
func loadRules() ([]rule.Rule, error) {
	if rulesFile == "" {
		return ruleset.Interceptor(), nil
	}
	return ruleset.Load(rulesFile)
}

// writeReport persists the audit trail of every successful outcome, merged
// into any existing report file.
func writeReport(outcomes []*core.Outcome, opts core.Options) error {
	store := patchfile.NewFileReportStore(reportFile)
	reports, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load report file %s: %w", reportFile, err)
	}
	for _, o := range outcomes {
		reports = patchfile.Merge(reports, o.Report(opts.Clock, opts.DryRun))
	}
	return store.Save(reports)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&rulesFile, "rules", "", "TOML rule file (default: built-in interceptor rules)")
	rootCmd.Flags().StringVar(&reportFile, "report", "", "write a JSON audit report to this path")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "match and report without writing")
	rootCmd.Flags().BoolVar(&force, "force", false, "skip the uncommitted-changes warning")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the per-rule breakdown")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "fail if two rules claim the same line")
}
