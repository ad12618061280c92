package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	left       key.Binding
	right      key.Binding
	lock       key.Binding
	lockColumn key.Binding
	mix        key.Binding
	sortKey    key.Binding
	sortTempo  key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	raise      key.Binding
	lower      key.Binding
	remove     key.Binding
	library    key.Binding
	enter      key.Binding
	back       key.Binding
	help       key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		lock:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pin song")),
		lockColumn: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "lock column")),
		mix:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mix")),
		sortKey:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by key")),
		sortTempo:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "sort by tempo")),
		moveLeft:   key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move left")),
		moveRight:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move right")),
		raise:      key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		lower:      key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		remove:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		library:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "library")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show on board")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.lock, k.mix, k.library, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.lock, k.lockColumn, k.mix, k.remove},
		{k.sortKey, k.sortTempo, k.moveLeft, k.moveRight},
		{k.raise, k.lower, k.library, k.quit},
	}
}
