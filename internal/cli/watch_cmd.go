package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/cli/formatter"
	"github.com/mindmirror/mindmirror/internal/engine"
)

// tickMsg fires once a second to advance running timers.
type tickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// watchModel is the live dashboard: it ticks running timers every second
// and re-renders the status view until the user quits.
type watchModel struct {
	st      *engine.State
	spin    spinner.Model
	crowned []engine.FeedbackEvent
}

func newWatchModel(st *engine.State) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleYellowBold
	return watchModel{st: st, spin: sp}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(tickEvery(), m.spin.Tick)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		for id, task := range m.st.Tasks() {
			if task.IsRunning {
				m.st.Tick(id)
			}
		}
		m.crowned = m.st.EvaluateAlignment(false)
		return m, tickEvery()
	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	out := formatter.FormatStatus(statusData(m.st, time.Now())) + "\n"
	for _, ev := range m.crowned {
		switch ev.Kind {
		case engine.FeedbackCrown:
			out += formatter.StyleYellowBold.Render("♛ Perfect alignment!") + "\n"
		case engine.FeedbackDamage:
			out += formatter.StyleRed.Render(fmt.Sprintf("Alignment %d%% (%s)", ev.Score, ev.Severity)) + "\n"
		}
	}
	out += m.spin.View() + formatter.Dim(" live · press q to quit") + "\n"
	return out
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard that ticks running timers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := app.loadState(ctx)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newWatchModel(st))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running watch: %w", err)
			}

			return app.saveState(ctx, st)
		},
	}
}
