package app

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/config"
	"github.com/wilbur182/scrollbox/internal/content"
	"github.com/wilbur182/scrollbox/internal/keymap"
	"github.com/wilbur182/scrollbox/internal/mouse"
	"github.com/wilbur182/scrollbox/internal/observer"
	"github.com/wilbur182/scrollbox/internal/sched"
	"github.com/wilbur182/scrollbox/internal/scrollbox"
	"github.com/wilbur182/scrollbox/internal/state"
	"github.com/wilbur182/scrollbox/internal/styles"
	"github.com/wilbur182/scrollbox/internal/ui"
)

// statusDuration is how long a footer status message stays up.
const statusDuration = 3 * time.Second

// Options wires the application's collaborators.
type Options struct {
	Config  *config.Config
	Path    string       // document to show
	Store   *state.Store // nil disables position memory
	Logger  *slog.Logger
	Clock   sched.Clock
	Version string

	// Load and Copy default to content.Load and clipboard.WriteAll.
	Load func(path string) (*content.Document, error)
	Copy func(text string) error
}

// Model is the root Bubble Tea model: a header, one scroll box showing the
// document, and a footer with status and key help.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger
	clock  sched.Clock

	keymap   *keymap.Registry
	help     help.Model
	router   *mouse.Router
	box      *scrollbox.Model
	renderer *content.Renderer
	skeleton *ui.Skeleton

	store   *state.Store
	watcher *observer.Watcher
	watchCh <-chan tea.Msg
	load    func(path string) (*content.Document, error)
	copy    func(text string) error

	path    string
	doc     *content.Document
	loading bool
	wrap    bool

	// UI state
	width, height int
	showHelp      bool
	ready         bool
	quitting      bool

	// Status/toast messages
	statusMsg     string
	statusIsError bool
	statusTimer   sched.Handle
	statusID      int

	// Error handling
	lastError error

	currentVersion string
}

// New creates the application model. Watching is set up here so a missing
// file or an unsupported filesystem only disables reloads.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := opts.Clock
	if clock == nil {
		clock = sched.Real()
	}
	load := opts.Load
	if load == nil {
		load = content.Load
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	boxOpts := scrollbox.OptionsFromConfig(cfg.Scroll)
	boxOpts.Clock = clock
	router := mouse.NewRouter()

	m := &Model{
		cfg:            cfg,
		logger:         logger,
		clock:          clock,
		keymap:         keymap.NewRegistry(),
		help:           help.New(),
		router:         router,
		box:            scrollbox.New("doc", router, boxOpts, logger),
		renderer:       content.NewRenderer(styles.GetMarkdownTheme(), styles.GetSyntaxTheme(), cfg.UI.TabWidth, logger),
		skeleton:       ui.NewSkeleton(clock, 8, nil),
		store:          opts.Store,
		load:           load,
		copy:           copyFn,
		path:           opts.Path,
		wrap:           cfg.UI.Wrap,
		statusID:       sched.NextID(),
		currentVersion: opts.Version,
	}
	m.registerCommands()

	if cfg.UI.Watch && opts.Path != "" {
		w, err := observer.NewWatcher(opts.Path, observer.DefaultDebounce, logger)
		if err != nil {
			logger.Warn("app: file watching disabled", "path", opts.Path, "err", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

// Init starts loading the document and, when enabled, watching it.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	cmds := []tea.Cmd{m.skeleton.Start(), m.loadDocument(false)}
	if m.watcher != nil {
		m.watchCh = m.watcher.Start()
		cmds = append(cmds, observer.Listen(m.watchCh))
	}
	return tea.Batch(cmds...)
}

// Document returns the loaded document, or nil while loading.
func (m *Model) Document() *content.Document {
	return m.doc
}

// Box returns the document's scroll box.
func (m *Model) Box() *scrollbox.Model {
	return m.box
}

// Wrap reports whether long lines are soft wrapped.
func (m *Model) Wrap() bool {
	return m.wrap
}

// Status returns the footer status message and whether it is an error.
func (m *Model) Status() (string, bool) {
	return m.statusMsg, m.statusIsError
}

// LastError returns the most recent error shown to the user.
func (m *Model) LastError() error {
	return m.lastError
}

// shutdown stops every background activity. Safe to call twice.
func (m *Model) shutdown() {
	m.skeleton.Stop()
	m.statusTimer.Cancel()
	m.box.Close()
	m.router.ReleaseAll()
	if m.watcher != nil {
		m.watcher.Stop()
	}
}
