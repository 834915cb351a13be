// Package keymap maps keys to application commands, with user overrides
// layered over the default bindings.
package keymap

import (
	"slices"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command represents a registered command handler.
type Command struct {
	ID      string
	Name    string // short help text
	Handler func() tea.Cmd
}

// Binding maps a key to a command.
type Binding struct {
	Key     string // e.g. "q", "ctrl+c", "?"
	Command string // Command ID
}

// Registry manages key bindings and command dispatch.
type Registry struct {
	mu            sync.RWMutex
	commands      map[string]Command
	order         []string // command ids in registration order
	bindings      []Binding
	userOverrides map[string]string // key -> command ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:      make(map[string]Command),
		userOverrides: make(map[string]string),
	}
}

// RegisterCommand adds or replaces a command.
func (r *Registry) RegisterCommand(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commands[cmd.ID]; !ok {
		r.order = append(r.order, cmd.ID)
	}
	r.commands[cmd.ID] = cmd
}

// RegisterBinding adds a default key binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, b)
}

// SetUserOverride binds keyStr to commandID. A command with at least one
// override loses its default keys.
func (r *Registry) SetUserOverride(keyStr, commandID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[keyStr] = commandID
}

// Handle dispatches a key event. It returns nil when no binding matches.
func (r *Registry) Handle(msg tea.KeyMsg) tea.Cmd {
	r.mu.RLock()
	cmd, ok := r.lookup(keyToString(msg))
	r.mu.RUnlock()
	if !ok || cmd.Handler == nil {
		return nil
	}
	return cmd.Handler()
}

// Lookup returns the command bound to keyStr.
func (r *Registry) Lookup(keyStr string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(keyStr)
}

func (r *Registry) lookup(keyStr string) (Command, bool) {
	if id, ok := r.userOverrides[keyStr]; ok {
		cmd, found := r.commands[id]
		return cmd, found
	}
	for _, b := range r.bindings {
		if b.Key != keyStr || r.overridden(b.Command) {
			continue
		}
		cmd, found := r.commands[b.Command]
		return cmd, found
	}
	return Command{}, false
}

func (r *Registry) overridden(commandID string) bool {
	for _, id := range r.userOverrides {
		if id == commandID {
			return true
		}
	}
	return false
}

// Keys returns the effective keys of a command.
func (r *Registry) Keys(commandID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var keys []string
	if r.overridden(commandID) {
		for k, id := range r.userOverrides {
			if id == commandID {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		return keys
	}
	for _, b := range r.bindings {
		if b.Command == commandID {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// GetCommand retrieves a command by ID.
func (r *Registry) GetCommand(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// HelpBindings returns one help entry per command that has at least one
// key, in registration order.
func (r *Registry) HelpBindings() []key.Binding {
	r.mu.RLock()
	order := append([]string(nil), r.order...)
	r.mu.RUnlock()

	out := make([]key.Binding, 0, len(order))
	for _, id := range order {
		keys := r.Keys(id)
		if len(keys) == 0 {
			continue
		}
		cmd, _ := r.GetCommand(id)
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], cmd.Name),
		))
	}
	return out
}

// keyToString converts a tea.KeyMsg to the names used in bindings.
func keyToString(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if msg.Alt {
			return "alt+" + string(msg.Runes)
		}
		return string(msg.Runes)
	default:
		return msg.String()
	}
}
