package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/keymap"
)

// Command ids, also the names used by keymap overrides in the config.
const (
	cmdQuit   = "quit"
	cmdCopy   = "copy"
	cmdReload = "reload"
	cmdWrap   = "wrap"
	cmdHelp   = "help"
)

// Messages produced by the key commands. Handlers run inside Update, so they
// only describe the action and Update performs it.
type (
	quitRequestMsg   struct{}
	copyRequestMsg   struct{}
	reloadRequestMsg struct{}
	wrapRequestMsg   struct{}
	helpRequestMsg   struct{}
)

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	lines int
	err   error
}

func msgCmd(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return msg }
	}
}

func (m *Model) registerCommands() {
	km := m.keymap
	km.RegisterCommand(keymap.Command{ID: cmdQuit, Name: "quit", Handler: msgCmd(quitRequestMsg{})})
	km.RegisterCommand(keymap.Command{ID: cmdCopy, Name: "copy view", Handler: msgCmd(copyRequestMsg{})})
	km.RegisterCommand(keymap.Command{ID: cmdReload, Name: "reload", Handler: msgCmd(reloadRequestMsg{})})
	km.RegisterCommand(keymap.Command{ID: cmdWrap, Name: "wrap", Handler: msgCmd(wrapRequestMsg{})})
	km.RegisterCommand(keymap.Command{ID: cmdHelp, Name: "help", Handler: msgCmd(helpRequestMsg{})})

	km.RegisterBinding(keymap.Binding{Key: "q", Command: cmdQuit})
	km.RegisterBinding(keymap.Binding{Key: "ctrl+c", Command: cmdQuit})
	km.RegisterBinding(keymap.Binding{Key: "y", Command: cmdCopy})
	km.RegisterBinding(keymap.Binding{Key: "r", Command: cmdReload})
	km.RegisterBinding(keymap.Binding{Key: "w", Command: cmdWrap})
	km.RegisterBinding(keymap.Binding{Key: "?", Command: cmdHelp})

	// Config overrides map a command id to the key that triggers it.
	for id, k := range m.cfg.Keymap.Overrides {
		if _, ok := km.GetCommand(id); !ok {
			m.logger.Warn("app: keymap override for unknown command", "command", id, "key", k)
			continue
		}
		km.SetUserOverride(strings.TrimSpace(k), id)
	}
}

// helpKeys adapts the registry to bubbles/help.
type helpKeys struct {
	km *keymap.Registry
}

func (h helpKeys) ShortHelp() []key.Binding {
	return h.km.HelpBindings()
}

func (h helpKeys) FullHelp() [][]key.Binding {
	bindings := h.km.HelpBindings()
	const perColumn = 3
	var cols [][]key.Binding
	for len(bindings) > 0 {
		n := min(perColumn, len(bindings))
		cols = append(cols, bindings[:n])
		bindings = bindings[n:]
	}
	return cols
}

func (m *Model) copyVisible() tea.Cmd {
	text := m.box.VisibleText()
	if text == "" {
		return m.setStatus("Nothing to copy", false)
	}
	lines := strings.Count(text, "\n") + 1
	write := m.copy
	return func() tea.Msg {
		if err := write(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{lines: lines}
	}
}
