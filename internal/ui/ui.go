package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/repositories"
	"github.com/desertthunder/setlist/internal/setlist"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BoardView ViewState = iota
	LibraryView
)

const defaultColumnWidth = 32

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	store   repositories.SnapshotStore
	engine  *setlist.Engine
	logger  *log.Logger
	state   models.State
	loaded  bool
	sorts   map[models.Column]models.SortSpec
	focus   int
	cursor  [3]int
	library list.Model
	width   int
	height  int
	status  string
	err     error
	help    help.Model
	keys    keyMap

	// saving is true while a save command is in flight; pending holds the latest
	// board to write once it reports back.
	saving   bool
	pending  *models.State
	quitting bool
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, store repositories.SnapshotStore, engine *setlist.Engine, logger *log.Logger) *Model {
	return &Model{
		ctx:    ctx,
		view:   BoardView,
		store:  store,
		engine: engine,
		logger: logger,
		sorts:  map[models.Column]models.SortSpec{},
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init loads the stored board.
func (m *Model) Init() tea.Cmd {
	return m.loadState()
}

// State is the board currently shown.
func (m *Model) State() models.State {
	return m.state
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.view == LibraryView {
			m.library.SetSize(msg.Width-4, msg.Height-4)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.loaded {
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		switch m.view {
		case BoardView:
			return m.handleBoardKeys(msg)
		case LibraryView:
			return m.handleLibraryKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgStateLoaded:
			m.state = msg.data.(models.State)
			m.loaded = true
			m.clampCursors()
			return m, nil
		case MsgStateSaved:
			m.saving = false
			if err, _ := msg.data.(error); err != nil {
				m.err = err
				m.logger.Error("failed to save setlist", "error", err)
			}
			if m.pending != nil {
				next := *m.pending
				m.pending = nil
				return m, m.queueSave(next)
			}
			if m.quitting {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if m.view == LibraryView {
		var cmd tea.Cmd
		m.library, cmd = m.library.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if !m.loaded {
		return "Loading setlist..."
	}

	switch m.view {
	case LibraryView:
		return m.renderLibrary()
	default:
		return m.renderBoard()
	}
}

func (m *Model) focusedColumn() models.Column {
	return models.Columns()[m.focus]
}

func (m *Model) display(col models.Column) []models.Song {
	return m.engine.DisplayOrder(m.state, col, m.sorts[col])
}

// selected returns the song under the cursor in the focused column.
func (m *Model) selected() (models.Song, bool) {
	songs := m.display(m.focusedColumn())
	idx := m.cursor[m.focus]
	if idx < 0 || idx >= len(songs) {
		return models.Song{}, false
	}
	return songs[idx], true
}

func (m *Model) clampCursors() {
	for i, col := range models.Columns() {
		n := len(m.state.Songs(col))
		switch {
		case n == 0:
			m.cursor[i] = 0
		case m.cursor[i] >= n:
			m.cursor[i] = n - 1
		case m.cursor[i] < 0:
			m.cursor[i] = 0
		}
	}
}

// follow puts the cursor on uid wherever it now is.
func (m *Model) follow(uid string) {
	for i, col := range models.Columns() {
		for j, s := range m.display(col) {
			if s.UID == uid {
				m.focus = i
				m.cursor[i] = j
				return
			}
		}
	}
}

// apply installs next and returns the command that persists it.
func (m *Model) apply(next models.State, status string) tea.Cmd {
	m.state = next
	m.status = status
	m.err = nil
	m.clampCursors()
	return m.queueSave(next)
}

// queueSave starts a save unless one is running, in which case state waits in pending.
// Only the newest waiting board is kept.
func (m *Model) queueSave(state models.State) tea.Cmd {
	if m.saving {
		m.pending = &state
		return nil
	}
	m.saving = true
	return m.saveState(state)
}

// quit exits once outstanding saves have finished.
func (m *Model) quit() tea.Cmd {
	if m.saving {
		m.quitting = true
		m.status = "Saving..."
		return nil
	}
	return tea.Quit
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col := m.focusedColumn()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.up):
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		}

	case key.Matches(msg, m.keys.down):
		if m.cursor[m.focus] < len(m.state.Songs(col))-1 {
			m.cursor[m.focus]++
		}

	case key.Matches(msg, m.keys.left):
		if m.focus > 0 {
			m.focus--
		}

	case key.Matches(msg, m.keys.right):
		if m.focus < len(models.Columns())-1 {
			m.focus++
		}

	case key.Matches(msg, m.keys.lock):
		if song, ok := m.selected(); ok {
			cmd := m.apply(setlist.ToggleItemLock(m.state, song.UID), "")
			m.follow(song.UID)
			return m, cmd
		}

	case key.Matches(msg, m.keys.lockColumn):
		next := setlist.ToggleColumnLock(m.state, col)
		status := fmt.Sprintf("%s unlocked", col.Label())
		if next.ColumnLocked(col) {
			status = fmt.Sprintf("%s locked", col.Label())
		}
		return m, m.apply(next, status)

	case key.Matches(msg, m.keys.mix):
		next, mixed := m.engine.Mix(m.state)
		if !mixed {
			m.status = "Nothing to mix"
			return m, nil
		}
		return m, m.apply(next, "Mixed")

	case key.Matches(msg, m.keys.sortKey):
		m.sorts[col] = setlist.NextSort(m.sorts[col], models.SortKey)
		m.status = fmt.Sprintf("%s sorted %s", col.Label(), m.sorts[col])

	case key.Matches(msg, m.keys.sortTempo):
		m.sorts[col] = setlist.NextSort(m.sorts[col], models.SortTempo)
		m.status = fmt.Sprintf("%s sorted %s", col.Label(), m.sorts[col])

	case key.Matches(msg, m.keys.moveLeft), key.Matches(msg, m.keys.moveRight):
		song, ok := m.selected()
		if !ok {
			return m, nil
		}
		target := m.focus + 1
		if key.Matches(msg, m.keys.moveLeft) {
			target = m.focus - 1
		}
		if target < 0 || target >= len(models.Columns()) {
			return m, nil
		}
		to := models.Columns()[target]
		cmd := m.apply(setlist.MoveSong(m.state, song.UID, to, -1), fmt.Sprintf("Moved %q to %s", song.Title, to.Label()))
		m.follow(song.UID)
		return m, cmd

	case key.Matches(msg, m.keys.raise), key.Matches(msg, m.keys.lower):
		song, ok := m.selected()
		if !ok {
			return m, nil
		}
		_, idx, _ := m.state.Find(song.UID)
		if key.Matches(msg, m.keys.raise) {
			idx--
		} else {
			idx++
		}
		if idx < 0 || idx >= len(m.state.Songs(col)) {
			return m, nil
		}
		cmd := m.apply(setlist.MoveSong(m.state, song.UID, col, idx), "")
		m.follow(song.UID)
		return m, cmd

	case key.Matches(msg, m.keys.remove):
		if song, ok := m.selected(); ok {
			return m, m.apply(setlist.DeleteSong(m.state, song.UID), fmt.Sprintf("Deleted %q", song.Title))
		}

	case key.Matches(msg, m.keys.library):
		m.openLibrary()
	}

	return m, nil
}

func (m *Model) openLibrary() {
	songs := setlist.Library(m.state)
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		col, _, _ := m.state.Find(s.UID)
		items[i] = songItem{song: s, column: col, locked: m.state.ItemLocked(s.UID)}
	}

	width, height := m.width-4, m.height-4
	if width <= 0 {
		width, height = 80, 20
	}
	m.library = list.New(items, list.NewDefaultDelegate(), width, height)
	m.library.Title = fmt.Sprintf("Library: %d songs", len(songs))
	m.view = LibraryView
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.library.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.library):
			if m.library.FilterState() == list.Unfiltered {
				m.view = BoardView
				return m, nil
			}
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.library.SelectedItem().(songItem); ok {
				m.follow(item.song.UID)
			}
			m.view = BoardView
			return m, nil
		case msg.String() == "ctrl+c":
			return m, m.quit()
		}
	}

	var cmd tea.Cmd
	m.library, cmd = m.library.Update(msg)
	return m, cmd
}

func (m *Model) loadState() tea.Cmd {
	return func() tea.Msg {
		return stateLoadedMsg(repositories.LoadOrDemo(m.ctx, m.store, m.engine.Demo, m.logger))
	}
}

func (m *Model) saveState(state models.State) tea.Cmd {
	return func() tea.Msg {
		return stateSavedMsg(m.store.Save(m.ctx, &state))
	}
}

func (m *Model) columnWidth() int {
	if m.width <= 0 {
		return defaultColumnWidth
	}
	return max(20, m.width/3-4)
}

func (m *Model) renderColumn(i int, col models.Column) string {
	width := m.columnWidth()
	songs := m.display(col)

	header := fmt.Sprintf("%s (%d)", col.Label(), len(songs))
	if m.state.ColumnLocked(col) {
		header += " [locked]"
	}
	if spec := m.sorts[col]; !spec.IsNeutral() && !m.state.ColumnLocked(col) {
		header += " " + spec.String()
	}

	lines := []string{styles.title.Render(header)}
	if len(songs) == 0 {
		lines = append(lines, styles.help.Render("(empty)"))
	}
	for j, s := range songs {
		pin := " "
		if m.state.ItemLocked(s.UID) {
			pin = "•"
		}
		meta := strings.TrimSpace(fmt.Sprintf("%s %s", s.Key, s.Tempo))
		room := max(4, width-len(meta)-4)
		line := fmt.Sprintf("%s %-*s %s", pin, room, truncate(s.Title, room), meta)
		if i == m.focus && j == m.cursor[i] {
			line = styles.selected.Render(line)
		}
		lines = append(lines, line)
	}

	box := styles.column
	if i == m.focus {
		box = styles.focused
	}
	return box.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderBoard() string {
	columns := make([]string, 0, 3)
	for i, col := range models.Columns() {
		columns = append(columns, m.renderColumn(i, col))
	}

	title := styles.title.Render(m.state.ConcertName)
	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	var status string
	switch {
	case m.err != nil:
		status = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		status = styles.ok.Render(m.status)
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", title, board, status, m.help.View(m.keys))
}

func (m *Model) renderLibrary() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back}
	return fmt.Sprintf("%s\n\n%s", m.library.View(), m.help.ShortHelpView(helpKeys))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
