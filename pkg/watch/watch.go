// Package watch turns file system notifications for a documents directory
// into per-document change events.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/sketchview/pkg/cache"
	"github.com/matzehuels/sketchview/pkg/source"
)

// Event reports that a document's bytes changed.
type Event struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
}

// Notifier fans fsnotify events out to subscribers of individual
// documents. Directories are watched rather than files so editors that
// save by renaming a temporary file are still observed.
type Notifier struct {
	store   *source.FileStore
	watcher *fsnotify.Watcher
	logger  *log.Logger

	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
	dirs map[string]int
	last map[string]string
}

// NewNotifier creates a notifier for documents in store.
func NewNotifier(store *source.FileStore, logger *log.Logger) (*Notifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{
		store:   store,
		watcher: w,
		logger:  logger,
		subs:    make(map[string]map[chan Event]struct{}),
		dirs:    make(map[string]int),
		last:    make(map[string]string),
	}, nil
}

// Subscribe returns a channel of change events for document p and a
// function that ends the subscription. Slow receivers miss events rather
// than block other subscribers.
func (n *Notifier) Subscribe(p string) (<-chan Event, func(), error) {
	file, err := n.store.Abs(p)
	if err != nil {
		return nil, nil, err
	}
	dir := filepath.Dir(file)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dirs[dir] == 0 {
		if err := n.watcher.Add(dir); err != nil {
			return nil, nil, err
		}
	}
	n.dirs[dir]++

	ch := make(chan Event, 4)
	if n.subs[p] == nil {
		n.subs[p] = make(map[chan Event]struct{})
	}
	n.subs[p][ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() { n.unsubscribe(p, dir, ch) })
	}
	return ch, cancel, nil
}

func (n *Notifier) unsubscribe(p, dir string, ch chan Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs[p], ch)
	if len(n.subs[p]) == 0 {
		delete(n.subs, p)
		delete(n.last, p)
	}
	close(ch)
	n.dirs[dir]--
	if n.dirs[dir] == 0 {
		delete(n.dirs, dir)
		_ = n.watcher.Remove(dir)
	}
}

// Run dispatches events until ctx is done or the watcher fails.
func (n *Notifier) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-n.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			n.handle(event.Name)
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return nil
			}
			n.logger.Warn("watch error", "err", err)
		}
	}
}

// handle reads the changed file and notifies its subscribers when the
// fingerprint differs from the last one sent.
func (n *Notifier) handle(file string) {
	p, err := n.store.Rel(file)
	if err != nil {
		return
	}
	n.mu.Lock()
	_, watched := n.subs[p]
	n.mu.Unlock()
	if !watched {
		return
	}

	data, err := os.ReadFile(file)
	if err != nil {
		n.logger.Debug("changed document unreadable", "path", p, "err", err)
		return
	}
	fp := cache.Fingerprint(data)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last[p] == fp {
		return
	}
	n.last[p] = fp
	ev := Event{Path: p, Fingerprint: fp}
	for ch := range n.subs[p] {
		select {
		case ch <- ev:
		default:
			n.logger.Debug("dropped change event", "path", p)
		}
	}
	n.logger.Debug("document changed", "path", p, "subscribers", len(n.subs[p]))
}

// Close stops the underlying watcher.
func (n *Notifier) Close() error {
	return n.watcher.Close()
}
