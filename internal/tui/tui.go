package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"excise/internal/buffer"
	"excise/internal/core"
	"excise/internal/patchfile"
)

// Run launches the preview TUI for one file: a dry run computes the pending
// constructs, the list shows them, and Enter applies the patch for real.
func Run(path string, opts core.Options) error {
	preview := opts
	preview.DryRun = true
	preview.Quiet = true
	preview.Out = discard{}

	pending, err := core.PatchFile(path, preview)
	if err != nil {
		return err
	}
	if !pending.Result.Changed() {
		fmt.Printf("%s: no constructs matched\n", path)
		return nil
	}

	firstLines, err := spanFirstLines(path, pending)
	if err != nil {
		return err
	}

	apply := func() (*core.Outcome, error) {
		applyOpts := opts
		applyOpts.Quiet = true
		applyOpts.Out = discard{}
		return core.PatchFile(path, applyOpts)
	}

	m := initialModel(path, pending, firstLines, apply)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

// spanFirstLines re-reads the file and returns the first line of every
// pending span, for the list previews.
func spanFirstLines(path string, pending *core.Outcome) ([]string, error) {
	content, _, err := patchfile.Read(path)
	if err != nil {
		return nil, err
	}
	buf := buffer.New(content)
	lines := make([]string, len(pending.Result.Applied))
	for i, app := range pending.Result.Applied {
		if app.Start < buf.Len() {
			lines[i] = buf.Line(app.Start)
		}
	}
	return lines, nil
}

// discard drops summary output while the TUI owns the terminal.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
