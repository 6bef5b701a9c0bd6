// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigdiag/internal/logging"
	"github.com/jeranaias/rigdiag/internal/model"
	"github.com/jeranaias/rigdiag/internal/ui/chat"
	"github.com/jeranaias/rigdiag/internal/ui/components"
)

// programRef lets detector callbacks reach the running program. Callbacks
// fire on the watcher goroutine and may arrive before Run starts.
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// runTUI starts the interactive chat view.
func runTUI(cmd *cobra.Command, opts *options) error {
	if !IsTTY() || !IsStdoutTTY() {
		return errNoTerminal
	}

	rt, err := setup(opts, "")
	if err != nil {
		return err
	}
	defer rt.close()

	c, err := loadContent(rt.cfg)
	if err != nil {
		return err
	}

	detector, err := newDetector(rt.cfg, rt.logger)
	if err != nil {
		return err
	}
	defer detector.Close()

	conv := model.NewDiagnosticConversation(c.question, c.solutions)
	theme := newTheme(rt.cfg)
	width, _ := GetTerminalSize()
	list := components.NewSolutionList(conv.LastSolutions(), components.SolutionListOptions{
		Theme:          theme,
		Logger:         logging.For(rt.logger, "cards"),
		FPS:            rt.cfg.UI.AnimationFPS,
		TruncateLength: rt.cfg.UI.TruncateLength,
		ReducedMotion:  detector.Current(),
		Width:          width,
	})
	defer list.Close()

	ref := &programRef{}
	watch := list.Watch(detector, ref.send)

	compact, _ := chat.ParseCompactMode(rt.cfg.UI.Compact)
	shell := chat.New(conv, list, chat.Options{
		Theme:             theme,
		Logger:            logging.For(rt.logger, "chat"),
		Compact:           compact,
		CompactBreakpoint: rt.cfg.UI.CompactBreakpoint,
		CellWidth:         rt.cfg.UI.CellWidth,
		Init:              watch,
	})

	p := tea.NewProgram(shell,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	ref.set(p)

	rt.logger.Info("tui started", "solutions", len(c.solutions), "reduced_motion", detector.Current())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
