package core

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"excise/internal/buffer"
	"excise/internal/clock"
	"excise/internal/engine"
	"excise/internal/gitutil"
	"excise/internal/patchfile"
	"excise/internal/ruleset"
	"excise/pkg/rule"
)

// Options configures a patch run. The zero value is not usable; build it
// with DefaultOptions and override fields as needed.
type Options struct {
	Rules  []rule.Rule
	DryRun bool // match and report, write nothing
	Force  bool // skip the dirty-worktree warning
	Quiet  bool // suppress the per-rule breakdown
	Strict bool // reject inputs where two rules claim the same line
	Clock  clock.Clock
	Out    io.Writer
	Errout io.Writer
}

// DefaultOptions returns Options wired to the real clock and standard
// streams, with the given rule set.
func DefaultOptions(rules []rule.Rule) Options {
	return Options{
		Rules:  rules,
		Clock:  clock.RealClock{},
		Out:    os.Stdout,
		Errout: os.Stderr,
	}
}

// Outcome describes what one PatchFile call did.
type Outcome struct {
	File    string
	Result  *engine.PatchResult
	Written bool
}

// Report builds the audit report for this outcome, stamped with the run
// clock.
func (o *Outcome) Report(clk clock.Clock, dryRun bool) patchfile.Report {
	return patchfile.Report{
		File:        o.File,
		GeneratedAt: clk.Now(),
		DryRun:      dryRun,
		Applied:     o.Result.Applied,
	}
}

// PatchFile runs the engine over one file and, unless nothing matched or the
// run is a dry run, atomically replaces the file with the rewritten content.
// On any failure the original file is left untouched.
func PatchFile(path string, opts Options) (*Outcome, error) {
	content, perm, err := patchfile.Read(path)
	if err != nil {
		return nil, err
	}
	buf := buffer.New(content)

	if opts.Strict {
		if err := ruleset.Check(opts.Rules, buf); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	result, err := engine.Run(buf, opts.Rules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	outcome := &Outcome{File: path, Result: result}
	if !result.Changed() || opts.DryRun {
		printSummary(outcome, opts)
		return outcome, nil
	}

	if !opts.Force {
		dirty, err := gitutil.HasUncommittedChanges(path)
		if err == nil && dirty {
			fmt.Fprintf(errout(opts), "%s %s has uncommitted changes\n",
				color.YellowString("warning:"), path)
		}
	}

	if err := patchfile.WriteAtomic(path, buf.Render(result.Lines), perm); err != nil {
		return nil, err
	}
	outcome.Written = true
	printSummary(outcome, opts)
	return outcome, nil
}

// printSummary reports how many constructs were removed or rewritten,
// naming each applied rule id.
func printSummary(o *Outcome, opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	applied := o.Result.Applied
	if len(applied) == 0 {
		fmt.Fprintf(out, "%s: no constructs matched\n", o.File)
		return
	}

	verb := "patched"
	if !o.Written {
		verb = "would patch"
	}
	removed, rewritten := 0, 0
	for _, a := range applied {
		if a.Action == rule.Delete {
			removed++
		} else {
			rewritten++
		}
	}
	fmt.Fprintf(out, "%s %s: %d constructs %s (%d removed, %d rewritten)\n",
		color.GreenString("✔"), o.File, len(applied), verb, removed, rewritten)

	if opts.Quiet {
		return
	}
	for _, a := range applied {
		fmt.Fprintf(out, "    %s lines %d-%d\n", a.RuleID, a.Start+1, a.End+1)
	}
}

func errout(opts Options) io.Writer {
	if opts.Errout != nil {
		return opts.Errout
	}
	return os.Stderr
}
