package progress

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Store persists UserProgress as a single JSON record and fans change
// notifications out to subscribers. Reads merge stored fields over the
// defaults, so records written by older versions keep working, and a
// missing or corrupt file degrades to defaults instead of erroring.
type Store struct {
	path string

	mu      sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a store backed by the given file path. The file and its
// directory are created lazily on first write.
func New(path string) *Store {
	return &Store{
		path: path,
		subs: map[int]func(){},
	}
}

// Path returns the file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the current persisted state. Storage errors and malformed
// data are swallowed: the caller always gets usable state.
func (s *Store) Get() UserProgress {
	p := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("progress file unreadable, using defaults", "path", s.path, "error", err)
		return Defaults()
	}
	if p.Notes == nil {
		p.Notes = map[int]string{}
	}
	return p
}

// Set overwrites the persisted state and synchronously notifies all
// subscribers. Write failures are logged, never returned: the store must
// not take the UI down with it.
func (s *Store) Set(p UserProgress) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		slog.Warn("creating progress dir failed", "path", s.path, "error", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		slog.Warn("encoding progress failed", "error", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		slog.Warn("writing progress failed", "path", s.path, "error", err)
	}

	s.notify()
}

// Update applies the pure transform fn to the current state and persists
// the result. The transform must be side-effect free. It returns the new
// state for convenience.
func (s *Store) Update(fn func(UserProgress) UserProgress) UserProgress {
	next := fn(s.Get())
	s.Set(next)
	return next
}

// Subscribe registers fn to be called after every successful write. The
// callback carries no payload; subscribers re-read via Get. The returned
// function cancels the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Watch observes the backing file for writes made by other processes and
// routes them through the same notification path as local writes, so
// subscribers converge on external changes too. It returns immediately;
// watching stops when the stop channel closes. A failure to set up the
// watcher is non-fatal and simply means no external updates.
func (s *Store) Watch(stop <-chan struct{}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("progress watch unavailable", "error", err)
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return
	}
	if err := watcher.Add(dir); err != nil {
		slog.Warn("progress watch unavailable", "path", dir, "error", err)
		watcher.Close()
		return
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
					s.notify()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-stop:
				return
			}
		}
	}()
}
