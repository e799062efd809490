package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/input"
)

// KeyMapper translates Bubble Tea key and mouse messages to actions.
// Jump decisions go through input.Mapper so the terminal and the desktop
// window agree on what a jump is.
type KeyMapper struct {
	jumps input.Mapper
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{jumps: input.NewMapper()}
}

// MapKey translates a key message during a run.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return core.ActionQuit, true
	}

	ev := input.Event{Kind: input.KindKey}
	switch key {
	case " ":
		ev.Key = input.KeySpace
	case "up", "w":
		ev.Key = input.KeyUp
	}
	if km.jumps.Map(ev).Jump {
		return core.ActionJump, false
	}

	switch key {
	case "enter":
		return core.ActionConfirm, false
	case "b", "x":
		return core.ActionBack, false
	case "p", "esc", "q":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapMouse translates a mouse message. overControl is set when the press
// lands on a clickable control; such presses never jump.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, overControl bool) core.Action {
	if msg.Action != tea.MouseActionPress {
		return core.ActionNone
	}

	ev := input.Event{Kind: input.KindPointerDown, OverControl: overControl}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = input.ButtonLeft
	case tea.MouseButtonMiddle:
		ev.Button = input.ButtonMiddle
	case tea.MouseButtonRight:
		ev.Button = input.ButtonRight
	default:
		return core.ActionNone
	}

	if km.jumps.Map(ev).Jump {
		return core.ActionJump
	}
	if overControl && ev.Button == input.ButtonLeft {
		return core.ActionPause
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "up", "k": // vim-style k for up
		return MenuActionUp
	case "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
