package ui

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// TreeReloadedMsg carries a freshly built tree after the watched dataset
// changed on disk.
type TreeReloadedMsg struct {
	Root *tree.Node
}

// WatchErrorMsg reports a rebuild or watch failure; the session keeps
// showing the previous tree.
type WatchErrorMsg struct {
	Err error
}

// debounceWindow coalesces the event bursts editors and build tools
// produce into a single rebuild.
const debounceWindow = 300 * time.Millisecond

// Watcher rebuilds the dataset when fsnotify reports changes and hands
// the result to the running program via send.
type Watcher struct {
	source tree.Source
	ignore []string
	send   func(tea.Msg)

	fsw *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
	once sync.Once
}

// NewWatcher wires fsnotify for the source. Filesystem sources watch the
// root and its immediate subdirectories; population sources watch the
// file's directory and react only to the file itself.
func NewWatcher(source tree.Source, ignore []string, send func(tea.Msg)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		source: source,
		ignore: ignore,
		send:   send,
		fsw:    fsw,
		done:   make(chan struct{}),
	}
	if err := w.addTargets(); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTargets() error {
	if w.source.Kind == tree.KindPopulation {
		return w.fsw.Add(filepath.Dir(w.source.Path))
	}
	info, err := os.Stat(w.source.Path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.fsw.Add(filepath.Dir(w.source.Path))
	}
	if err := w.fsw.Add(w.source.Path); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.source.Path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := w.fsw.Add(filepath.Join(w.source.Path, e.Name())); err != nil {
			log.Debug("watch skip", "dir", e.Name(), "error", err)
		}
	}
	return nil
}

// Start runs the event loop until Stop is called.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.bump()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.send(WatchErrorMsg{Err: err})
		case <-w.done:
			return
		}
	}
}

// relevant filters events: population sources only care about their own
// file, filesystem sources about anything that is not a bare chmod.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if w.source.Kind == tree.KindPopulation {
		return filepath.Base(ev.Name) == filepath.Base(w.source.Path)
	}
	return true
}

// bump (re)arms the debounce timer; the rebuild fires once events go
// quiet.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceWindow, w.rebuild)
}

func (w *Watcher) rebuild() {
	root, err := w.source.Build(tree.WithIgnore(w.ignore...))
	if err != nil {
		w.send(WatchErrorMsg{Err: err})
		return
	}
	w.send(TreeReloadedMsg{Root: root})
}

// Stop tears the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
		w.fsw.Close()
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
}
