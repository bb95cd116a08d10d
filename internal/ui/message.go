package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/tasks"
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
	MsgItemsCollected MsgKind = iota
	MsgProgressUpdate
)

type itemsCollected struct {
	items []models.Item
	err   error
}

// itemsCollectedMsg is the constructor for [MsgItemsCollected]
func itemsCollectedMsg(items []models.Item, err error) Msg {
	return Msg{kind: MsgItemsCollected, data: itemsCollected{items, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}
