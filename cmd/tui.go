package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/desertthunder/songtabs/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive song browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireUser(); err != nil {
		return err
	}
	if r.engine == nil {
		return fmt.Errorf("%w: song engine not initialized", shared.ErrServiceUnavailable)
	}

	// Logs go to a file so they don't interfere with rendering
	fileLogger, err := shared.NewFileLogger(r.config.Display.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.tabs, r.engine, ui.Options{
		PageSize:    r.config.Display.PageSize,
		ScrollSpeed: r.config.Display.ScrollSpeed,
		Logger:      fileLogger,
		OpenURL:     r.openURL,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
