package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/linter/rules"
	"github.com/platinummonkey/alloykit/pkg/observability"
	"github.com/platinummonkey/alloykit/pkg/workspace"
)

type watchOptions struct {
	dir        string
	configFile string
	delay      time.Duration
	logLevel   string
}

// newWatchCommand creates the watch command
func newWatchCommand() *Command {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	var (
		dir        = fs.String("dir", ".", "Directory to watch for Alloy file changes")
		configFile = fs.String("config", "", "Path to lint config file (.alloykit.yaml)")
		delay      = fs.Duration("delay", 300*time.Millisecond, "Quiet period before a changed file is re-analysed")
		logLevel   = fs.String("log-level", "info", "Log level: debug, info, warn, error")
	)

	return &Command{
		Name:        "watch",
		Description: "Re-lint Alloy files as they change",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, os.Stdout, os.Stderr, watchOptions{
				dir:        *dir,
				configFile: *configFile,
				delay:      *delay,
				logLevel:   *logLevel,
			})
		},
	}
}

// watchLoop owns the pending timers; only the event loop goroutine touches them
type watchLoop struct {
	session *workspace.Session
	out     io.Writer
	logger  *observability.Logger
	delay   time.Duration
	pending map[string]*time.Timer
	ready   chan string
	// stopped is closed when run returns so late timer callbacks do not block
	stopped chan struct{}
}

func newWatchLoop(session *workspace.Session, out io.Writer, logger *observability.Logger, delay time.Duration) *watchLoop {
	return &watchLoop{
		session: session,
		out:     out,
		logger:  logger,
		delay:   delay,
		pending: make(map[string]*time.Timer),
		ready:   make(chan string),
		stopped: make(chan struct{}),
	}
}

func runWatch(ctx context.Context, stdout, stderr io.Writer, opts watchOptions) error {
	level, err := observability.ParseLogLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := observability.NewLoggerWithFormat(level, observability.TextFormat, stderr)

	config, err := loadLintConfig(opts.configFile, opts.dir)
	if err != nil {
		return err
	}

	session := workspace.NewSession(rules.NewDefaultEngine(config),
		workspace.WithLogger(logger),
		workspace.WithCache(workspace.NewAnalysisCache(workspace.DefaultCacheSize, workspace.DefaultCacheTTL)),
	)

	// Create watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := setupWatcher(watcher, opts.dir); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}

	loop := newWatchLoop(session, stdout, logger, opts.delay)

	// Analyse what is already on disk
	files, err := findAlloyFiles(opts.dir, config)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", opts.dir, err)
	}
	for _, file := range files {
		loop.refresh(ctx, file)
	}

	logger.Infof("Started watching for Alloy file changes in %s", opts.dir)
	return loop.run(ctx, watcher)
}

// run dispatches watcher events until ctx is done or the watcher closes
func (l *watchLoop) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	defer close(l.stopped)
	defer l.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			l.handle(ctx, watcher, event)
		case path := <-l.ready:
			delete(l.pending, path)
			l.refresh(ctx, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.WithError(err).Warn("watcher error")
		}
	}
}

func (l *watchLoop) handle(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	// Also watch new directories
	if event.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			l.logger.WithField("dir", event.Name).Debug("watching new directory")
			if err := setupWatcher(watcher, event.Name); err != nil {
				l.logger.WithError(err).Warn("failed to watch new directory")
			}
			return
		}
	}

	if !isAlloyFile(event.Name) {
		return
	}

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		l.schedule(event.Name)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if t, ok := l.pending[event.Name]; ok {
			t.Stop()
			delete(l.pending, event.Name)
		}
		l.close(ctx, event.Name)
	}
}

// schedule re-analyses path once it has been quiet for the delay
func (l *watchLoop) schedule(path string) {
	if t, ok := l.pending[path]; ok {
		t.Reset(l.delay)
		return
	}
	l.pending[path] = time.AfterFunc(l.delay, func() { l.fire(path) })
}

// fire hands path to the event loop, or drops it once the loop has stopped
func (l *watchLoop) fire(path string) {
	select {
	case l.ready <- path:
	case <-l.stopped:
	}
}

func (l *watchLoop) stopTimers() {
	for path, t := range l.pending {
		t.Stop()
		delete(l.pending, path)
	}
}

// refresh opens or updates the document for path and prints its findings
func (l *watchLoop) refresh(ctx context.Context, path string) {
	defer observability.RecoverPanic(l.logger, "watch "+path)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.close(ctx, path)
			return
		}
		l.logger.WithError(err).WithField("path", path).Warn("failed to read file")
		return
	}

	update, err := l.session.Upsert(ctx, path, workspace.LanguageAlloy, string(content))
	if err != nil {
		l.logger.WithError(err).WithField("path", path).Warn("failed to analyse document")
		return
	}

	l.report(path, update.Findings)
}

func (l *watchLoop) close(ctx context.Context, path string) {
	if err := l.session.Close(ctx, path); err != nil {
		if !errors.Is(err, workspace.ErrDocumentNotOpen) {
			l.logger.WithError(err).WithField("path", path).Warn("failed to close document")
		}
		return
	}
	fmt.Fprintf(l.out, "%s: removed\n", path)
}

func (l *watchLoop) report(path string, findings []linter.Finding) {
	fmt.Fprintf(l.out, "%s: %d finding(s)\n", path, len(findings))
	for _, f := range findings {
		fmt.Fprintf(l.out, "  %s:%d:%d: [%s] %s (%s)\n",
			path,
			f.Range.StartLine+1,
			f.Range.StartColumn+1,
			f.Severity,
			f.Message,
			f.Rule,
		)
	}
}

// setupWatcher recursively adds all directories to the watcher
func setupWatcher(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(info.Name(), ".") || info.Name() == "vendor") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
