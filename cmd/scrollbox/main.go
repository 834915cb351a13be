package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/scrollbox/internal/app"
	"github.com/wilbur182/scrollbox/internal/config"
	"github.com/wilbur182/scrollbox/internal/state"
	"github.com/wilbur182/scrollbox/internal/styles"
	"golang.org/x/term"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file (.json or .toml)")
	statePath    = flag.String("state", "", "path to the scroll position database")
	logPath      = flag.String("log", "", "write logs to this file")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("scrollbox version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "scrollbox: stdout is not a terminal")
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0)))
}

// run owns every resource that needs closing, so main can exit with its
// status afterwards.
func run(path string) int {
	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := newLogger(*logPath, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	styles.ApplyTheme(cfg.UI.Theme.Name, cfg.UI.Theme.Overrides)

	// Position memory is optional; a broken store only costs the resume.
	store := openStore(cfg.State, *statePath, logger)
	if store != nil {
		defer store.Close()
	}

	model := app.New(app.Options{
		Config:  cfg,
		Path:    path,
		Store:   store,
		Logger:  logger,
		Version: effectiveVersion(Version),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		return 1
	}
	if err := model.LastError(); err != nil && model.Document() == nil {
		fmt.Fprintf(os.Stderr, "scrollbox: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(path string, debugLevel bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debugLevel {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func openStore(cfg config.StateConfig, override string, logger *slog.Logger) *state.Store {
	if !cfg.Enabled && override == "" {
		return nil
	}
	path := override
	if path == "" {
		path = cfg.Path
	}
	if path == "" {
		path = state.DefaultPath()
	}
	if path == "" {
		logger.Warn("no location for the position store")
		return nil
	}

	store, err := state.Open(path)
	if err != nil {
		logger.Warn("position store unavailable", "path", path, "err", err)
		return nil
	}
	return store
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}

	ver := "devel+" + revision
	if len(ver) > 20 {
		ver = ver[:20]
	}
	if dirty {
		ver += "+dirty"
	}
	return ver
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: scrollbox [options] FILE\n\n")
		fmt.Fprintf(os.Stderr, "View a document in a scroll box driven by wheel, drag and fling.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
