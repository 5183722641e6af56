// Package ui is the terminal front end for playback: it drives the player
// over a recorded operation, streams item messages into a viewport, and
// exposes snapshot export and record copying.
package ui

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/treescope/pkg/anim"
	"github.com/vanderheijden86/treescope/pkg/export"
	"github.com/vanderheijden86/treescope/pkg/structs"
)

// playEventMsg is one dispatched frame's metadata.
type playEventMsg struct {
	message string
}

// playDoneMsg signals the end of a playback run.
type playDoneMsg struct {
	err error
}

// Model is the bubbletea model for the playback view.
type Model struct {
	tree   *structs.Tree
	player *anim.Player
	keys   KeyMap

	events chan tea.Msg
	cancel context.CancelFunc

	vp       viewport.Model
	messages []string
	notice   string
	playing  bool
	showHelp bool
	helpText string
	ready    bool

	exportDir string
	width     int
	height    int
}

// New builds the playback view over a tree whose log is ready. Snapshots
// land in exportDir.
func New(tree *structs.Tree, exportDir string) Model {
	events := make(chan tea.Msg, 256)
	sink := anim.SinkFunc(func(_ image.Image, message string) {
		// Non-blocking: dropping a frame event under backpressure only
		// loses a duplicate message line, never playback itself.
		select {
		case events <- playEventMsg{message: message}:
		default:
		}
	})
	return Model{
		tree:      tree,
		player:    anim.NewPlayer(tree.Log(), tree.Config(), sink),
		keys:      DefaultKeyMap(),
		events:    events,
		exportDir: exportDir,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// waitEvent blocks for the next playback event.
func (m Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// startRun launches a playback run in the background and begins consuming
// its events.
func (m *Model) startRun(run func(context.Context) error) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.playing = true
	events := m.events
	go func() {
		err := run(ctx)
		if err == context.Canceled || err == anim.ErrBusy {
			err = nil
		}
		events <- playDoneMsg{err: err}
	}()
	return m.waitEvent()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.helpText = renderHelp(minInt(msg.Width-4, 72))
		vpHeight := msg.Height - 5
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width-4, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width - 4
			m.vp.Height = vpHeight
		}
		m.refreshViewport()
		return m, nil

	case playEventMsg:
		if msg.message != "" && (len(m.messages) == 0 || m.messages[len(m.messages)-1] != msg.message) {
			m.messages = append(m.messages, msg.message)
			m.refreshViewport()
		}
		return m, m.waitEvent()

	case playDoneMsg:
		m.playing = false
		m.cancel = nil
		if msg.err != nil {
			m.notice = ErrStyle.Render(fmt.Sprintf("playback error: %v", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.PlayPause):
		if m.playing {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, m.startRun(m.player.Play)

	case key.Matches(msg, m.keys.Reverse):
		if m.playing {
			return m, nil
		}
		return m, m.startRun(m.player.Reverse)

	case key.Matches(msg, m.keys.Step):
		if m.playing {
			return m, nil
		}
		return m, m.startRun(m.player.Step)

	case key.Matches(msg, m.keys.StepBack):
		if m.playing {
			return m, nil
		}
		return m, m.startRun(m.player.StepBack)

	case key.Matches(msg, m.keys.Faster):
		m.player.SetSpeed(m.player.Speed() * 1.25)
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		m.player.SetSpeed(m.player.Speed() / 1.25)
		return m, nil

	case key.Matches(msg, m.keys.Rewind):
		m.player.Rewind()
		m.messages = nil
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Snapshot):
		path := filepath.Join(m.exportDir, fmt.Sprintf("snapshot_%s.png", time.Now().Format("20060102_150405")))
		if err := export.SaveSnapshot(path, export.FormatPNG, m.tree.Config(), m.tree.Scene()); err != nil {
			m.notice = ErrStyle.Render(err.Error())
		} else {
			m.notice = fmt.Sprintf("saved %s", path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		rec, err := m.tree.CreateRecord()
		if err != nil {
			m.notice = ErrStyle.Render(err.Error())
			return m, nil
		}
		data, err := rec.Marshal()
		if err == nil {
			err = clipboard.WriteAll(string(data))
		}
		if err != nil {
			m.notice = ErrStyle.Render(err.Error())
		} else {
			m.notice = "record copied to clipboard"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	lines := make([]string, len(m.messages))
	for i, message := range m.messages {
		style := MessageStyle
		if i == len(m.messages)-1 {
			style = CurrentMessageStyle
		}
		lines[i] = style.Render(truncate(message, m.vp.Width))
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.vp.GotoBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	title := TitleStyle.Render(fmt.Sprintf("dsv · %s (%d nodes, %d items)",
		m.tree.Type(), len(m.tree.Keys()), m.tree.Log().Len()))

	body := PanelStyle.Render(m.vp.View())
	if m.showHelp {
		body = PanelStyle.Render(m.helpText)
	}

	// Pad the label so the status line does not shift when toggling.
	state := PausedStyle.Render(padRight("paused", 7))
	if m.playing {
		state = PlayingStyle.Render(padRight("playing", 7))
	}
	status := StatusStyle.Render(fmt.Sprintf("%s  item %d/%d  speed %.2fx",
		state, m.player.Cursor(), m.tree.Log().Len(), m.player.Speed()))
	if m.notice != "" {
		status += "  " + m.notice
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	footer := HelpStyle.Render(truncate(strings.Join(hints, "  ·  "), m.width))

	return strings.Join([]string{title, body, status, footer}, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
