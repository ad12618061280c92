package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/setlist/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStateLoaded MsgKind = iota
	MsgStateSaved
)

// stateLoadedMsg is the constructor for [MsgStateLoaded]
func stateLoadedMsg(state models.State) Msg {
	return Msg{kind: MsgStateLoaded, data: state}
}

// stateSavedMsg is the constructor for [MsgStateSaved]
func stateSavedMsg(err error) Msg {
	return Msg{kind: MsgStateSaved, data: err}
}
