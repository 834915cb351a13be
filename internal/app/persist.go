package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/content"
	"github.com/wilbur182/scrollbox/internal/scroll"
	"github.com/wilbur182/scrollbox/internal/state"
)

// storeTimeout bounds every position store call.
const storeTimeout = 2 * time.Second

// docLoadedMsg carries a loaded document and, on first load, the position
// saved for it.
type docLoadedMsg struct {
	doc    *content.Document
	saved  *scroll.Position
	reload bool
	err    error
}

// positionSavedMsg reports the result of an asynchronous save.
type positionSavedMsg struct {
	err error
}

// loadDocument reads the document in the background. The saved position is
// only returned when it was recorded against the same content.
func (m *Model) loadDocument(reload bool) tea.Cmd {
	path, load, store, logger := m.path, m.load, m.store, m.logger
	return func() tea.Msg {
		doc, err := load(path)
		if err != nil {
			return docLoadedMsg{reload: reload, err: err}
		}
		msg := docLoadedMsg{doc: doc, reload: reload}
		if reload || store == nil {
			return msg
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		entry, err := store.Get(ctx, doc.Path)
		switch {
		case errors.Is(err, state.ErrNotFound):
		case err != nil:
			logger.Warn("app: reading saved position", "path", doc.Path, "err", err)
		case entry.Hash != doc.Hash:
			logger.Debug("app: document changed since last visit, not restoring", "path", doc.Path)
		default:
			msg.saved = &scroll.Position{Top: entry.Top, Left: entry.Left}
		}
		return msg
	}
}

func (m *Model) entry(p scroll.Position) state.Entry {
	return state.Entry{Path: m.doc.Path, Hash: m.doc.Hash, Top: p.Top, Left: p.Left}
}

// savePosition stores p in the background.
func (m *Model) savePosition(p scroll.Position) tea.Cmd {
	if m.store == nil || m.doc == nil {
		return nil
	}
	store, e := m.store, m.entry(p)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return positionSavedMsg{err: store.Put(ctx, e)}
	}
}

// saveOnQuit stores the final position and prunes old entries. It runs
// synchronously because the program exits right after.
func (m *Model) saveOnQuit() {
	if m.store == nil || m.doc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := m.store.Put(ctx, m.entry(m.box.Position())); err != nil {
		m.logger.Warn("app: saving position", "path", m.doc.Path, "err", err)
		return
	}
	if n, err := m.store.Prune(ctx, m.cfg.State.MaxEntries); err != nil {
		m.logger.Warn("app: pruning positions", "err", err)
	} else if n > 0 {
		m.logger.Debug("app: pruned positions", "removed", n)
	}
}
