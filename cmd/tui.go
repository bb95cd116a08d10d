package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/desertthunder/kmx/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive terminal UI for a list resource.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	indexPath, err := requirePath(cmd, "index-path")
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/kmx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.aggregator, indexPath)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return model.Err()
}
