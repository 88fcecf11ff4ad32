package session

import (
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/loyerbxl/rentwizard/internal/logging"
	"github.com/loyerbxl/rentwizard/internal/wizard"
)

const (
	// DefaultStorageKey is the fixed key one wizard session persists
	// under. The store scope, not the key, separates clients.
	DefaultStorageKey = "rentwizard-form-state"

	// DefaultDebounce is how long after the most recent state change a
	// save actually happens. Rapid typing keeps superseding the timer,
	// bounding write frequency.
	DefaultDebounce = time.Second

	// DefaultMaxAge is the snapshot age ceiling. Older snapshots are
	// discarded at restore time instead of resurrecting a stale session.
	DefaultMaxAge = 24 * time.Hour
)

// Options tunes a Manager. Zero values fall back to the defaults above.
type Options struct {
	StorageKey string
	Debounce   time.Duration
	MaxAge     time.Duration
}

func (o Options) withDefaults() Options {
	if o.StorageKey == "" {
		o.StorageKey = DefaultStorageKey
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.MaxAge <= 0 {
		o.MaxAge = DefaultMaxAge
	}
	return o
}

// Manager opportunistically persists wizard snapshots to a Store.
//
// Saves are debounced: Schedule records the latest state and re-arms a
// single timer; only the state current when the timer fires is written.
// Restores are age-bounded and all storage failures are swallowed and
// logged; persistence never breaks the wizard.
type Manager struct {
	store Store
	opts  Options

	mu      sync.Mutex
	pending *wizard.State
	timer   *time.Timer
	closed  bool
}

// NewManager creates a Manager over the given store.
func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts.withDefaults()}
}

// Schedule records s as the latest state and (re)starts the debounce
// timer. A schedule arriving before the timer fires supersedes the
// previous one; there is never more than one outstanding timer.
func (m *Manager) Schedule(s wizard.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.pending = &s
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.opts.Debounce, m.flushPending)
}

// flushPending writes the latest scheduled state, if any.
func (m *Manager) flushPending() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.timer = nil
	m.mu.Unlock()

	if pending != nil {
		m.persist(*pending)
	}
}

// SaveNow persists s immediately, superseding any pending debounced
// save. This is the explicit "save now" checkpoint.
func (m *Manager) SaveNow(s wizard.State) {
	m.mu.Lock()
	m.pending = nil
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	m.persist(s)
}

// persist serializes and writes one snapshot. Failures are logged and
// swallowed: a full disk or a broken store must never surface into the
// wizard.
func (m *Manager) persist(s wizard.State) {
	data, err := json.Marshal(s)
	if err != nil {
		logging.LogPersistence("marshal-failed", m.opts.StorageKey, err)
		return
	}
	if err := m.store.Save(m.opts.StorageKey, data); err != nil {
		logging.LogPersistence("save-failed", m.opts.StorageKey, err)
		return
	}
	logging.LogPersistence("saved", m.opts.StorageKey, nil)
}

// Restore loads the persisted snapshot, if there is one worth having.
//
// A snapshot older than the age ceiling is discarded and its store
// entry removed. When wantSessionID is non-empty the snapshot is only
// returned on an exact session id match. A corrupt snapshot counts as
// absent and is removed. The restore is all-or-nothing: the returned
// state is the snapshot byte-for-byte, session id included.
func (m *Manager) Restore(now time.Time, wantSessionID string) (wizard.State, bool) {
	data, err := m.store.Load(m.opts.StorageKey)
	if err != nil {
		if err != ErrNotFound {
			logging.LogPersistence("load-failed", m.opts.StorageKey, err)
		}
		return wizard.State{}, false
	}

	var s wizard.State
	if err := json.Unmarshal(data, &s); err != nil || s.SessionID == "" {
		logging.LogPersistence("corrupt-snapshot", m.opts.StorageKey, err)
		_ = m.store.Delete(m.opts.StorageKey)
		return wizard.State{}, false
	}

	age := now.UnixMilli() - s.LastUpdated
	if age > m.opts.MaxAge.Milliseconds() {
		logging.LogPersistence("expired-snapshot", m.opts.StorageKey, nil)
		_ = m.store.Delete(m.opts.StorageKey)
		return wizard.State{}, false
	}

	if wantSessionID != "" && wantSessionID != s.SessionID {
		logging.LogPersistence("session-mismatch", m.opts.StorageKey, nil)
		return wizard.State{}, false
	}

	logging.LogPersistence("restored", m.opts.StorageKey, nil)
	return s, true
}

// Clear removes the persisted snapshot and drops any pending save.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.pending = nil
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	if err := m.store.Delete(m.opts.StorageKey); err != nil {
		logging.LogPersistence("clear-failed", m.opts.StorageKey, err)
		return
	}
	logging.LogPersistence("cleared", m.opts.StorageKey, nil)
}

// Close flushes any pending save synchronously and stops the timer.
// The manager accepts no further schedules afterwards. Safe to call
// more than once.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	pending := m.pending
	m.pending = nil
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	if pending != nil {
		m.persist(*pending)
	}
}
