package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/unoforbots/internal/session"
)

// Run plays sess inside the TUI. The session runs on its own goroutine and the
// Bubble Tea program on the caller's. Closing the TUI abandons the game.
func Run(ctx context.Context, sess *session.Session, model *TUIModel, opts ...tea.ProgramOption) (session.Result, error) {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	model.Attach(program)

	var (
		result  session.Result
		playErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer model.SendQuitSignal()

		result, playErr = sess.Play(ctx)
		if playErr != nil || result.Quit {
			return
		}
		model.AddLogEntry(InfoStyle.Render("Press Enter to exit"))
		_, _ = model.WaitForActionContext(ctx)
	}()

	_, runErr := program.Run()
	cancel()
	<-done

	if runErr != nil {
		return result, fmt.Errorf("failed to run TUI: %w", runErr)
	}
	if errors.Is(playErr, context.Canceled) && parent.Err() == nil {
		// the window was closed mid-game
		result.Quit = true
		result.Reason = session.ReasonQuit
		return result, nil
	}
	return result, playErr
}
