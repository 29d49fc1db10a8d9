// Package tui renders a live search view: a spinner and progress bar
// fed by the orchestrator's progress reporter, then the final results.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bradfox2/aa-hotel-optimizer/internal/cli"
	"github.com/bradfox2/aa-hotel-optimizer/internal/search"
	"github.com/bradfox2/aa-hotel-optimizer/internal/service"
)

// ErrAborted reports that the user quit the view before the search
// finished. Callers must not treat the empty result as a real outcome.
var ErrAborted = errors.New("search aborted before completion")

type progressMsg service.ProgressUpdate

type doneMsg struct {
	result search.Result
}

type failMsg struct {
	err error
}

// Model is the bubbletea model for a running search.
type Model struct {
	spinner  spinner.Model
	bar      progress.Model
	update   service.ProgressUpdate
	target   int
	balance  int
	topN     int
	result   *search.Result
	err      error
	quitting bool
}

// NewModel builds the initial model.
func NewModel(target, balance, topN int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.PrimaryColor)

	return Model{
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		target:  target,
		balance: balance,
		topN:    topN,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case progressMsg:
		m.update = service.ProgressUpdate(msg)
		return m, nil

	case doneMsg:
		m.result = &msg.result
		return m, nil

	case failMsg:
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return cli.FormatError(m.err.Error()) + "\n" + cli.SubtleStyle.Render("press q to quit") + "\n"
	}
	if m.result != nil {
		return m.resultView()
	}
	return m.progressView()
}

func (m Model) progressView() string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle("Searching AAdvantage Hotels"))
	b.WriteString("\n\n")

	u := m.update
	if u.LocationName != "" {
		b.WriteString(fmt.Sprintf("%s Pass %d — %s (%d/%d)\n",
			m.spinner.View(), u.Pass, u.LocationName, u.LocationIndex, u.LocationCount))
	} else {
		b.WriteString(m.spinner.View() + " Starting search...\n")
	}

	if u.TotalDates > 0 {
		pct := float64(u.CompletedDates) / float64(u.TotalDates)
		b.WriteString(m.bar.ViewAs(pct))
		b.WriteString(fmt.Sprintf("  %d/%d dates\n", u.CompletedDates, u.TotalDates))
	}
	if u.Status != "" {
		b.WriteString(cli.FormatWarning(u.Status) + "\n")
	}

	b.WriteString("\n" + cli.SubtleStyle.Render("press q to quit") + "\n")
	return b.String()
}

func (m Model) resultView() string {
	var b strings.Builder

	b.WriteString(cli.RenderSummaryBox(m.result.Itinerary, m.target, m.balance, m.result.AchievedPoints))
	b.WriteString("\n\n")
	b.WriteString(cli.FormatTitle("Itinerary"))
	b.WriteString("\n")
	b.WriteString(cli.RenderItineraryTable(m.result.Itinerary))
	b.WriteString("\n")
	b.WriteString(cli.FormatTitle("Top Value Stays"))
	b.WriteString("\n")
	b.WriteString(cli.RenderTopValueTable(m.result.AllCandidates, m.topN))
	b.WriteString("\n" + cli.SubtleStyle.Render("press q to quit") + "\n")
	return b.String()
}

// Run executes the search while displaying the live view. It blocks
// until the user quits and returns the search result.
func Run(ctx context.Context, req search.Request, topN int) (search.Result, error) {
	model := NewModel(req.TargetPoints, req.CurrentBalance, topN)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	req.Progress = service.ProgressFunc(func(update service.ProgressUpdate) {
		p.Send(progressMsg(update))
	})

	go func() {
		result, err := search.FindBestDeals(ctx, req)
		if err != nil {
			p.Send(failMsg{err: err})
			return
		}
		p.Send(doneMsg{result: result})
	}()

	finalModel, err := p.Run()
	restoreTerminal()
	if err != nil {
		return search.Result{}, fmt.Errorf("tui failed: %w", err)
	}

	return resultFrom(finalModel.(Model))
}

// resultFrom extracts the search outcome from the final model state.
func resultFrom(m Model) (search.Result, error) {
	if m.err != nil {
		return search.Result{}, m.err
	}
	if m.result == nil {
		return search.Result{}, ErrAborted
	}
	return *m.result, nil
}

// restoreTerminal resets terminal state after the program exits.
func restoreTerminal() {
	_, _ = os.Stdout.Write([]byte("\033[?25h")) // Show cursor
	_, _ = os.Stdout.Write([]byte("\033[m"))    // Reset colors
}
