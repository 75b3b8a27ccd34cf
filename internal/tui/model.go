// Package tui is the terminal front end of the notepad, built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/timedpad/pkg/core"
	"github.com/aretw0/timedpad/pkg/notepad"
)

const (
	msgLastNote      = "You must have at least one note!"
	msgConfirmDelete = "Are you sure you want to delete this note?"
	msgConfirmClear  = "Are you sure you want to clear all lines in this note?"
	placeholderFirst = "Start typing here..."
)

// changeMsg carries an external store change; ok is false once the source closed.
type changeMsg struct {
	event core.Event
	ok    bool
}

type confirmation struct {
	prompt string
	run    func(m *Model)
}

// Model is the bubbletea model. It owns no note state: everything is read
// from and written through the Notepad.
type Model struct {
	ctx     context.Context
	pad     *notepad.Notepad
	log     *slog.Logger
	clicks  *clickTracker
	changes <-chan core.Event
	styles  styles

	input  textinput.Model
	rename textinput.Model
	focus  int
	offset int

	confirm *confirmation
	notice  string

	width  int
	height int
}

// Option configures the Model.
type Option func(*Model)

// WithLogger sets the logger. The terminal is owned by the UI, so this
// should write to a file.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithChanges makes the UI reload the notepad whenever the store reports a change.
func WithChanges(events <-chan core.Event) Option {
	return func(m *Model) {
		m.changes = events
	}
}

// WithClickDelay overrides the single/double click window.
func WithClickDelay(d time.Duration) Option {
	return func(m *Model) {
		m.clicks = newClickTracker(d)
	}
}

// New builds the model for pad.
func New(ctx context.Context, pad *notepad.Notepad, opts ...Option) Model {
	input := textinput.New()
	input.Prompt = ""
	input.Focus()

	rename := textinput.New()
	rename.Prompt = ""

	m := Model{
		ctx:    ctx,
		pad:    pad,
		log:    slog.New(slog.DiscardHandler),
		clicks: newClickTracker(DefaultClickDelay),
		styles: defaultStyles(),
		input:  input,
		rename: rename,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.syncInput()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-26, 10)
		m.scrollToFocus()
		return nil

	case clickFiredMsg:
		if m.clicks.fire(msg) {
			m.selectNote(msg.id)
		}
		return nil

	case changeMsg:
		if !msg.ok {
			m.changes = nil
			return nil
		}
		if ok, err := m.pad.Reload(m.ctx); err != nil {
			m.log.Error("failed to reload notes", "error", err)
		} else if ok {
			m.log.Debug("notes reloaded after external change", "event", msg.event.String())
			if m.pad.EditingNoteID() == "" {
				m.rename.Blur()
			}
			m.refreshInput()
		}
		return m.waitForChange()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m.forwardToInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch {
	case m.notice != "":
		m.notice = ""
		return nil
	case m.confirm != nil:
		return m.handleConfirmKey(msg)
	case m.pad.EditingNoteID() != "":
		return m.handleRenameKey(msg)
	}

	id := m.pad.ActiveNote().ID
	switch msg.String() {
	case "enter":
		idx, err := m.pad.InsertLineAfter(m.ctx, id, m.focus)
		if err != nil {
			m.log.Error("failed to insert line", "error", err)
			return nil
		}
		m.focus = idx
		m.syncInput()
		return nil

	case "backspace":
		if m.input.Value() == "" && len(m.pad.Lines()) > 1 {
			focus, ok, err := m.pad.DeleteLineAt(m.ctx, id, m.focus)
			if err != nil {
				m.log.Error("failed to delete line", "error", err)
			}
			if ok {
				m.focus = focus
				m.syncInput()
				return nil
			}
		}

	case "up":
		m.moveFocus(-1)
		return nil
	case "down":
		m.moveFocus(1)
		return nil

	case "ctrl+n":
		m.pad.CreateNote(m.ctx)
		m.focus = 0
		m.syncInput()
		return nil
	case "ctrl+r":
		return m.beginRename(id)
	case "ctrl+w":
		m.askDelete(id)
		return nil
	case "ctrl+l":
		m.askClear()
		return nil
	case "tab":
		m.cycleNote(1)
		return nil
	case "shift+tab":
		m.cycleNote(-1)
		return nil
	}

	return m.forwardToInput(msg)
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		c := m.confirm
		m.confirm = nil
		c.run(m)
	case "n", "esc":
		m.confirm = nil
	}
	return nil
}

func (m *Model) handleRenameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "tab":
		m.commitRename()
		return nil
	case "esc":
		m.pad.CancelRename()
		m.rename.Blur()
		m.input.Focus()
		return nil
	}
	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if m.notice != "" || m.confirm != nil {
		return nil
	}

	var target region
	switch {
	case msg.Y == rowHeader:
		target = hit(headerRegions(), msg.X)
	case msg.Y == rowTabs:
		target = hit(m.tabRegions(), msg.X)
	}

	// Clicking anywhere but the tab being renamed commits the rename.
	if editing := m.pad.EditingNoteID(); editing != "" {
		if target.kind == regionTab && target.id == editing {
			return nil
		}
		m.commitRename()
		if msg.Y == rowTabs {
			target = hit(m.tabRegions(), msg.X)
		}
	}

	switch target.kind {
	case regionClear:
		m.askClear()
	case regionClose:
		m.clicks.forget(target.id)
		m.askDelete(target.id)
	case regionNew:
		m.pad.CreateNote(m.ctx)
		m.focus = 0
		m.syncInput()
	case regionTab:
		cmd, double := m.clicks.click(target.id)
		if double {
			return m.beginRename(target.id)
		}
		return cmd
	default:
		if msg.Y >= rowLines {
			idx := msg.Y - rowLines + m.offset
			if idx < len(m.pad.Lines()) {
				m.focus = idx
				m.syncInput()
			}
		}
	}
	return nil
}

// forwardToInput lets the line editor consume msg and writes any change through.
func (m *Model) forwardToInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		if err := m.pad.SetLineContent(m.ctx, m.pad.ActiveNote().ID, m.focus, after); err != nil {
			m.log.Error("failed to update line", "error", err)
		}
	}
	return cmd
}

func (m *Model) selectNote(id core.ID) {
	if err := m.pad.SelectNote(id); err != nil {
		m.log.Debug("ignoring selection of missing note", "id", id)
		return
	}
	m.focus = 0
	m.syncInput()
}

func (m *Model) cycleNote(delta int) {
	notes := m.pad.Notes()
	active := m.pad.ActiveNote().ID
	for i, n := range notes {
		if n.ID == active {
			next := (i + delta + len(notes)) % len(notes)
			m.selectNote(notes[next].ID)
			return
		}
	}
}

func (m *Model) beginRename(id core.ID) tea.Cmd {
	n, err := m.pad.Note(id)
	if err != nil {
		return nil
	}
	if err := m.pad.BeginRename(id); err != nil {
		return nil
	}
	m.rename.SetValue(n.Title)
	m.rename.CursorEnd()
	m.input.Blur()
	return m.rename.Focus()
}

func (m *Model) commitRename() {
	id := m.pad.EditingNoteID()
	if err := m.pad.CommitRename(m.ctx, id, m.rename.Value()); err != nil {
		m.log.Error("failed to rename note", "error", err)
		m.pad.CancelRename()
	}
	m.rename.Blur()
	m.input.Focus()
}

func (m *Model) askDelete(id core.ID) {
	if m.pad.Len() <= 1 {
		m.notice = msgLastNote
		return
	}
	m.confirm = &confirmation{
		prompt: msgConfirmDelete,
		run: func(m *Model) {
			if err := m.pad.DeleteNote(m.ctx, id); err != nil {
				m.log.Error("failed to delete note", "error", err)
				m.notice = err.Error()
				return
			}
			m.clicks.forget(id)
			m.focus = 0
			m.syncInput()
		},
	}
}

func (m *Model) askClear() {
	id := m.pad.ActiveNote().ID
	m.confirm = &confirmation{
		prompt: msgConfirmClear,
		run: func(m *Model) {
			if err := m.pad.ClearNote(m.ctx, id); err != nil {
				m.log.Error("failed to clear note", "error", err)
				return
			}
			m.focus = 0
			m.syncInput()
		},
	}
}

func (m *Model) moveFocus(delta int) {
	m.focus += delta
	m.syncInput()
}

// syncInput clamps the focus to the active note and loads the focused line
// into the editor.
func (m *Model) syncInput() {
	lines := m.pad.Lines()
	m.focus = min(max(m.focus, 0), len(lines)-1)
	m.input.SetValue(lines[m.focus].Content)
	m.input.CursorEnd()
	if m.focus == 0 {
		m.input.Placeholder = placeholderFirst
	} else {
		m.input.Placeholder = ""
	}
	m.scrollToFocus()
}

// refreshInput reloads the focused line after a reload. The fs watcher also
// reports our own saves, so the cursor stays put while the text is unchanged.
func (m *Model) refreshInput() {
	value, pos := m.input.Value(), m.input.Position()
	m.syncInput()
	if m.input.Value() == value {
		m.input.SetCursor(pos)
	}
}

func (m *Model) scrollToFocus() {
	rows := m.visibleLines()
	if m.focus < m.offset {
		m.offset = m.focus
	}
	if m.focus >= m.offset+rows {
		m.offset = m.focus - rows + 1
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		e, ok := <-ch
		return changeMsg{event: e, ok: ok}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render(headerTitle))
	b.WriteString("  ")
	b.WriteString(m.styles.button.Render(clearButton))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	lines := m.pad.Lines()
	end := min(m.offset+m.visibleLines(), len(lines))
	for i := m.offset; i < end; i++ {
		l := lines[i]
		b.WriteString(m.styles.stamp.Render(fmt.Sprintf("%11s %10s", l.Timestamp, l.Date)))
		b.WriteString(m.styles.divider.Render(" │ "))
		switch {
		case i == m.focus && m.pad.EditingNoteID() == "":
			b.WriteString(m.input.View())
		case l.Content == "" && i == 0:
			b.WriteString(m.styles.placeholder.Render(placeholderFirst))
		default:
			b.WriteString(l.Content)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) footer() string {
	switch {
	case m.notice != "":
		return m.styles.notice.Render(m.notice) + m.styles.help.Render("  (press any key)")
	case m.confirm != nil:
		return m.styles.prompt.Render(m.confirm.prompt) + m.styles.help.Render("  [y/n]")
	case m.pad.EditingNoteID() != "":
		return m.styles.help.Render("enter/tab save · esc cancel")
	}

	help := m.styles.help.Render("enter new line · ↑/↓ move · tab next note · ctrl+n new · ctrl+r rename · ctrl+w delete · ctrl+l clear · ctrl+c quit")
	if state, ok := m.pad.State().(notepad.State); ok && state.LastSaveError != "" {
		return m.styles.err.Render("save failed: "+state.LastSaveError) + "\n" + help
	}
	return help
}
