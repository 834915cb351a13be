package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/observer"
	"github.com/wilbur182/scrollbox/internal/scroll"
	"github.com/wilbur182/scrollbox/internal/scrollbox"
	"github.com/wilbur182/scrollbox/internal/ui"
)

// clearStatusMsg expires a status message.
type clearStatusMsg struct {
	id  int
	seq uint64
}

// Update handles all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, m.relayout(m.wrap)

	case tea.KeyMsg:
		return m, m.keymap.Handle(msg)

	case tea.MouseMsg:
		return m, m.box.Update(msg)

	case quitRequestMsg:
		m.saveOnQuit()
		m.quitting = true
		m.shutdown()
		return m, tea.Quit

	case copyRequestMsg:
		return m, m.copyVisible()

	case copiedMsg:
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		return m, m.setStatus(fmt.Sprintf("Copied %d lines", msg.lines), false)

	case reloadRequestMsg:
		return m, m.loadDocument(true)

	case wrapRequestMsg:
		m.wrap = !m.wrap
		label := "Wrap off"
		if m.wrap {
			label = "Wrap on"
		}
		return m, tea.Batch(m.renderDocument(), m.setStatus(label, false))

	case helpRequestMsg:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, m.relayout(false)

	case docLoadedMsg:
		return m, m.handleLoaded(msg)

	case observer.ContentChangedMsg:
		m.logger.Debug("app: document changed on disk", "path", msg.Path)
		return m, tea.Batch(m.loadDocument(true), observer.Listen(m.watchCh))

	case scroll.SettledMsg:
		if msg.ID != m.box.Engine().ID() {
			return m, nil
		}
		return m, m.savePosition(msg.Position)

	case positionSavedMsg:
		if msg.err != nil {
			m.logger.Warn("app: saving position", "err", msg.err)
		}
		return m, nil

	case scrollbox.ErrMsg:
		return m, m.showError(msg.Err)

	case ui.SkeletonTickMsg:
		return m, m.skeleton.Update(msg)

	case clearStatusMsg:
		if msg.id == m.statusID && m.statusTimer.Fire(msg.seq) {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return m, nil
	}

	return m, m.box.Update(msg)
}

func (m *Model) handleLoaded(msg docLoadedMsg) tea.Cmd {
	m.loading = false
	m.skeleton.Stop()

	if msg.err != nil {
		m.logger.Error("app: loading document", "path", m.path, "err", msg.err)
		return m.showError(msg.err)
	}

	m.doc = msg.doc
	m.logger.Debug("app: document loaded",
		"path", msg.doc.Path, "kind", msg.doc.Kind, "reload", msg.reload)

	if msg.reload {
		// Same size is not the same content; hand the engine a fresh measure.
		m.box.ResetGeometry()
	}
	cmds := []tea.Cmd{m.renderDocument()}
	if msg.saved != nil {
		cmds = append(cmds, m.box.SetInitialPosition(*msg.saved))
	}
	if msg.reload {
		cmds = append(cmds, m.setStatus("Reloaded", false))
	}
	return tea.Batch(cmds...)
}

// renderDocument lays the document out for the current width and wrap mode.
func (m *Model) renderDocument() tea.Cmd {
	if m.doc == nil {
		return nil
	}
	cols := max(m.width-1, 0)
	return m.box.SetContent(m.renderer.Render(m.doc, cols, m.wrap))
}

// relayout recomputes the box bounds after a size or footer change. Content
// is re-rendered when its layout depends on the width.
func (m *Model) relayout(rerender bool) tea.Cmd {
	if !m.ready {
		return nil
	}
	cmd := m.box.SetBounds(0, headerHeight, m.width, m.bodyHeight())
	if rerender {
		return tea.Batch(cmd, m.renderDocument())
	}
	return cmd
}

func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusMsg = text
	m.statusIsError = isError
	seq := m.statusTimer.Arm()
	return m.clock.After(statusDuration, clearStatusMsg{id: m.statusID, seq: seq})
}

func (m *Model) showError(err error) tea.Cmd {
	m.lastError = err
	return m.setStatus(err.Error(), true)
}
