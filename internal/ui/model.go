package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/facetdev/facet/internal/controller"
	"github.com/facetdev/facet/internal/prefs"
)

// Options configure the UI runtime.
type Options struct {
	Context    context.Context
	Controller *controller.Controller
	ThemeName  string
	PrefsPath  string
	Logger     *slog.Logger
}

// snapshotMsg carries a published controller snapshot into the program.
type snapshotMsg struct {
	snap controller.Snapshot
}

type mode int

const (
	modeView mode = iota
	modeEdit
	modeSwitch
)

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("ui requires a controller")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.Context))

	// The subscription callback runs on the controller's committing
	// goroutine and must not block or re-enter the controller. Snapshots
	// are buffered through a channel and forwarded by a single goroutine
	// so the program sees them in commit order; when the UI falls behind,
	// the oldest queued snapshot is dropped, never the newest.
	snaps := make(chan controller.Snapshot, 64)
	cancel := opts.Controller.Subscribe(func(s controller.Snapshot) {
		for {
			select {
			case snaps <- s:
				return
			default:
			}
			select {
			case <-snaps:
			default:
			}
		}
	})
	defer cancel()

	go func() {
		for s := range snaps {
			p.Send(snapshotMsg{snap: s})
		}
	}()

	_, err := p.Run()
	return err
}

type model struct {
	opts Options
	ctrl *controller.Controller
	snap controller.Snapshot

	mode     mode
	editor   editor
	switcher textinput.Model
	spin     spinner.Model

	theme  Theme
	styles Styles
	width  int
	height int
}

func newModel(opts Options) model {
	theme := GetTheme(opts.ThemeName)
	styles := theme.Styles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentText

	sw := textinput.New()
	sw.Placeholder = "user id"
	sw.Prompt = "> "
	sw.CharLimit = 64

	return model{
		opts:     opts,
		ctrl:     opts.Controller,
		snap:     opts.Controller.Snapshot(),
		switcher: sw,
		spin:     sp,
		theme:    theme,
		styles:   styles,
	}
}

func (m model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		// Leaving edit mode is the controller's call: a settled submit
		// (success or failure) clears Editing, and so does a rebind.
		if m.mode == modeEdit && !m.snap.Editing {
			m.mode = modeView
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeEdit:
		return m.handleEditKey(msg)
	case modeSwitch:
		return m.handleSwitchKey(msg)
	}
	return m.handleViewKey(msg)
}

func (m model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "e":
		m.ctrl.BeginEdit()
		if snap := m.ctrl.Snapshot(); snap.Editing && snap.Profile != nil {
			m.snap = snap
			m.editor = newEditor(*snap.Profile)
			m.mode = modeEdit
			return m, textinput.Blink
		}
	case "r":
		m.ctrl.Refetch(m.opts.Context)
	case "d":
		m.ctrl.DismissError()
	case "u":
		m.switcher.SetValue("")
		m.switcher.Focus()
		m.mode = modeSwitch
		return m, textinput.Blink
	case "t":
		m = m.cycleTheme()
	}
	return m, nil
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a submit is in flight the overlay stays up but keys are
	// ignored; the controller refuses overlapping submits anyway.
	if m.snap.State == controller.StateSubmitting {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CancelEdit()
		m.mode = modeView
		return m, nil
	case tea.KeyEnter:
		patch := m.editor.patch()
		if patch.IsZero() {
			m.ctrl.CancelEdit()
			m.mode = modeView
			return m, nil
		}
		m.ctrl.SubmitEdit(m.opts.Context, patch)
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.editor = m.editor.focusNext()
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.editor = m.editor.focusPrev()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.update(msg)
	return m, cmd
}

func (m model) handleSwitchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeView
		return m, nil
	case tea.KeyEnter:
		id := strings.TrimSpace(m.switcher.Value())
		m.mode = modeView
		if id != "" {
			m.ctrl.Bind(m.opts.Context, id)
			m.rememberUser(id)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.switcher, cmd = m.switcher.Update(msg)
	return m, cmd
}

func (m model) cycleTheme() model {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.styles = m.theme.Styles()
	m.spin.Style = m.styles.AccentText

	p := prefs.Load(m.opts.PrefsPath)
	p.Theme = m.theme.Name
	if err := prefs.Save(m.opts.PrefsPath, p); err != nil {
		m.opts.Logger.Warn("save prefs", "err", err)
	}
	return m
}

func (m model) rememberUser(id string) {
	p := prefs.Load(m.opts.PrefsPath)
	p.LastUser = id
	if err := prefs.Save(m.opts.PrefsPath, p); err != nil {
		m.opts.Logger.Warn("save prefs", "err", err)
	}
}
