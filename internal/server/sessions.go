package server

import (
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/loyerbxl/rentwizard/internal/logging"
	"github.com/loyerbxl/rentwizard/internal/session"
	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// sessionEntry is one live wizard session: its current state, the
// debounced persistence manager writing its snapshots, and the
// websocket watchers following it.
type sessionEntry struct {
	mu       sync.Mutex
	state    wizard.State
	manager  *session.Manager
	watchers map[chan []byte]struct{}
}

// snapshot returns the current state under the entry lock.
func (e *sessionEntry) snapshot() wizard.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// apply runs one action through the reducer, schedules a snapshot save
// and notifies watchers. Returns the new state.
func (e *sessionEntry) apply(a wizard.Action, now time.Time) wizard.State {
	e.mu.Lock()
	e.state = wizard.Apply(e.state, a, now)
	next := e.state
	e.mu.Unlock()

	e.manager.Schedule(next)
	e.broadcast(next)
	return next
}

// broadcast sends the state to every watcher without blocking. A
// watcher that cannot keep up misses intermediate states, not the
// final one: the next broadcast carries the full snapshot anyway.
func (e *sessionEntry) broadcast(s wizard.State) {
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.watchers {
		select {
		case ch <- data:
		default:
		}
	}
}

// prime pushes the current snapshot onto one watcher channel without
// touching the others. Used to seed a freshly added watcher.
func (e *sessionEntry) prime(ch chan []byte) {
	data, err := json.Marshal(e.snapshot())
	if err != nil {
		return
	}
	select {
	case ch <- data:
	default:
	}
}

func (e *sessionEntry) addWatcher() chan []byte {
	ch := make(chan []byte, 4)
	e.mu.Lock()
	e.watchers[ch] = struct{}{}
	e.mu.Unlock()
	return ch
}

func (e *sessionEntry) removeWatcher(ch chan []byte) {
	e.mu.Lock()
	delete(e.watchers, ch)
	e.mu.Unlock()
}

// registry tracks live sessions and lazily restores persisted ones.
type registry struct {
	mu      sync.Mutex
	store   session.Store
	opts    session.Options
	entries map[string]*sessionEntry
}

func newRegistry(store session.Store, opts session.Options) *registry {
	return &registry{
		store:   store,
		opts:    opts,
		entries: make(map[string]*sessionEntry),
	}
}

// managerFor builds the persistence manager for one session id. Each
// session persists under its own storage key so snapshots of different
// sessions never collide.
func (r *registry) managerFor(id string) *session.Manager {
	opts := r.opts
	opts.StorageKey = "rentwizard-session-" + id
	return session.NewManager(r.store, opts)
}

// create starts a fresh session and persists its initial snapshot.
func (r *registry) create(now time.Time) *sessionEntry {
	state := wizard.NewState(now)
	entry := &sessionEntry{
		state:    state,
		manager:  r.managerFor(state.SessionID),
		watchers: make(map[chan []byte]struct{}),
	}

	r.mu.Lock()
	r.entries[state.SessionID] = entry
	r.mu.Unlock()

	entry.manager.SaveNow(state)
	return entry
}

// lookup returns the live entry for id, attempting a store restore when
// the session is not in memory. Expired or unknown sessions yield nil.
func (r *registry) lookup(id string, now time.Time) *sessionEntry {
	if id == "" {
		return nil
	}

	r.mu.Lock()
	if entry, ok := r.entries[id]; ok {
		r.mu.Unlock()
		return entry
	}
	r.mu.Unlock()

	manager := r.managerFor(id)
	state, ok := manager.Restore(now, id)
	if !ok {
		return nil
	}

	entry := &sessionEntry{
		state:    state,
		manager:  manager,
		watchers: make(map[chan []byte]struct{}),
	}

	r.mu.Lock()
	// Another request may have restored concurrently; keep the first.
	if existing, ok := r.entries[id]; ok {
		r.mu.Unlock()
		manager.Close()
		return existing
	}
	r.entries[id] = entry
	r.mu.Unlock()

	logging.LogPersistence("session-rehydrated", "rentwizard-session-"+id, nil)
	return entry
}

// remove drops a session from memory and deletes its snapshot.
func (r *registry) remove(id string) bool {
	r.mu.Lock()
	entry, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if !ok {
		// Not live, but a snapshot may still exist on disk.
		manager := r.managerFor(id)
		manager.Clear()
		manager.Close()
		return false
	}

	entry.manager.Clear()
	entry.manager.Close()
	return true
}

// closeAll flushes every pending snapshot. Called on server shutdown.
func (r *registry) closeAll() {
	r.mu.Lock()
	entries := make([]*sessionEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.Unlock()

	for _, e := range entries {
		e.manager.Close()
	}
}
