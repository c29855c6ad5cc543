package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/defactra/fontprep/pkg/provision"
)

// Message types for async operations.
type (
	// progressMsg carries one provisioning progress event.
	progressMsg provision.ProgressEvent

	// completeMsg indicates the provisioning run has finished.
	completeMsg struct {
		result *provision.Result
		err    error
	}
)

// ErrCancelled is returned when the user quits the progress view before
// the provisioning run has finished.
var ErrCancelled = errors.New("installation cancelled")

// Runner starts a provisioning run and reports progress through a callback.
// It is implemented by *provision.Provisioner.
type Runner interface {
	Run(ctx context.Context, opts *provision.Options, progress provision.ProgressCallback) (*provision.Result, error)
}

// InstallModel is the Bubble Tea model for the install progress view.
type InstallModel struct {
	runner Runner
	opts   *provision.Options
	ctx    context.Context
	cancel context.CancelFunc

	spinner      spinner.Model
	progressBar  progress.Model
	events       []provision.ProgressEvent
	progressChan chan provision.ProgressEvent
	result       *provision.Result
	runErr       error
	done         bool
	quitting     bool

	width int
}

// NewInstallModel creates the install progress model. The provisioning
// run inherits ctx and is cancelled when the user quits the view.
func NewInstallModel(ctx context.Context, runner Runner, opts *provision.Options) InstallModel {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return InstallModel{
		runner:       runner,
		opts:         opts,
		ctx:          ctx,
		cancel:       cancel,
		spinner:      s,
		progressBar:  p,
		events:       make([]provision.ProgressEvent, 0),
		progressChan: make(chan provision.ProgressEvent, 100),
	}
}

// Result returns the provisioning result once the run has finished, or
// ErrCancelled if the view was quit before completion.
func (m InstallModel) Result() (*provision.Result, error) {
	if !m.done {
		return nil, ErrCancelled
	}
	return m.result, m.runErr
}

// Init starts the provisioning run.
func (m InstallModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startRun(),
		m.waitForProgress(),
	)
}

func (m InstallModel) startRun() tea.Cmd {
	return func() tea.Msg {
		// Drop events once the view stops draining so a cancelled run
		// never blocks on the channel.
		callback := func(e provision.ProgressEvent) {
			select {
			case m.progressChan <- e:
			case <-m.ctx.Done():
			}
		}

		result, err := m.runner.Run(m.ctx, m.opts, callback)
		close(m.progressChan)

		return completeMsg{result: result, err: err}
	}
}

func (m InstallModel) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.progressChan
		if !ok {
			return nil // Channel closed
		}
		return progressMsg(event)
	}
}

// Update handles messages.
func (m InstallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = min(msg.Width-10, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		m.events = append(m.events, provision.ProgressEvent(msg))
		percent := msg.Percent
		if percent < 0 {
			percent = 0
		}
		return m, tea.Batch(
			m.waitForProgress(),
			m.progressBar.SetPercent(float64(percent)/100.0),
		)

	case completeMsg:
		m.done = true
		m.result = msg.result
		m.runErr = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the progress view.
func (m InstallModel) View() string {
	if m.quitting && !m.done {
		return "\n  Cancelling...\n"
	}

	var s strings.Builder

	s.WriteString("\n")
	s.WriteString(TitleStyle.Render(" Installing Fonts "))
	s.WriteString("\n\n")

	if len(m.events) > 0 {
		lastEvent := m.events[len(m.events)-1]
		percent := lastEvent.Percent
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}

		s.WriteString("  ")
		s.WriteString(m.progressBar.ViewAs(float64(percent) / 100.0))
		s.WriteString(fmt.Sprintf(" %d%%", percent))
		s.WriteString("\n\n")
	}

	for i, event := range m.events {
		isLast := i == len(m.events)-1 && !m.done

		icon := "  "
		msgStyle := DimStyle

		if event.IsError {
			icon = ErrorStyle.Render("  ✗ ")
			msgStyle = ErrorStyle
		} else if event.Stage == provision.StageComplete {
			icon = SuccessStyle.Render("  ✓ ")
			msgStyle = SuccessStyle
		} else if isLast {
			icon = InfoStyle.Render("  › ")
			msgStyle = lipgloss.NewStyle()
		} else {
			icon = SuccessStyle.Render("  ✓ ")
		}

		s.WriteString(icon)
		s.WriteString(msgStyle.Render(event.Message))
		s.WriteString("\n")

		if event.Command != "" && (isLast || event.IsError) {
			s.WriteString("      ")
			s.WriteString(CommandStyle.Render(" " + event.Command + " "))
			s.WriteString("\n")
		}
	}

	if !m.done && len(m.events) > 0 {
		s.WriteString("\n  ")
		s.WriteString(m.spinner.View())
		s.WriteString(" Working...")
		s.WriteString("\n")
	}

	return s.String()
}

// RunInstall runs the install progress view to completion and returns the
// provisioning result. Quitting the view cancels the underlying run and
// returns ErrCancelled.
func RunInstall(ctx context.Context, runner Runner, opts *provision.Options) (*provision.Result, error) {
	model := NewInstallModel(ctx, runner, opts)
	defer model.cancel()

	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("progress view failed: %w", err)
	}

	final, ok := finalModel.(InstallModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	return final.Result()
}
