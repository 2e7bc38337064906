package prompts

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Config contains configuration for the prompt manager.
type Config struct {
	// Path is the templates YAML file. Empty runs on built-ins only
	// and disables watching.
	Path string

	// Watch enables hot reload of the templates file.
	// Default: false
	Watch bool

	// DebounceInterval is the quiet period before a reload after file
	// changes.
	// Default: 100ms
	DebounceInterval time.Duration
}

// Manager owns the active template set and command bindings.
//
// Format is the read path used by every request; Reload swaps the
// whole set atomically, so in-flight formatting always sees a complete
// set, never a partially applied file.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Reads take an RLock; Reload
// builds the new set outside the lock and swaps under a write lock.
type Manager struct {
	mu       sync.RWMutex
	set      Set
	bindings map[string]string

	path    string
	watcher *FileWatcher
	logger  *slog.Logger
}

// NewManager creates a manager loaded with the built-in templates and,
// when cfg.Path is set, the templates file on top.
func NewManager(cfg Config) (*Manager, error) {
	m := &Manager{
		set:      BuiltinSet(),
		bindings: DefaultBindings(),
		path:     cfg.Path,
		logger:   slog.Default().With("component", "prompts"),
	}

	if cfg.Path != "" {
		if err := m.Reload(); err != nil {
			return nil, err
		}
	}

	if cfg.Path != "" && cfg.Watch {
		interval := cfg.DebounceInterval
		if interval == 0 {
			interval = 100 * time.Millisecond
		}
		w, err := NewFileWatcher(cfg.Path, interval, m.logger)
		if err != nil {
			return nil, err
		}
		m.watcher = w
	}

	return m, nil
}

// Format renders the prompt for a command and raw user query.
//
// The query is substituted verbatim into the bound template's single
// slot; placeholder text inside the query stays opaque. An unbound
// command returns UnknownCommandError, which callers treat as an
// internal fault since the dispatch layer only forwards recognized
// commands.
func (m *Manager) Format(command, query string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name, ok := m.bindings[command]
	if !ok {
		return "", &UnknownCommandError{Command: command}
	}
	tmpl, ok := m.set.Lookup(name)
	if !ok {
		// Reload validation keeps bindings covered, so this is
		// unreachable short of a bug.
		return "", &UnknownCommandError{Command: command}
	}
	return tmpl.Render(query), nil
}

// Template returns the named template from the active set.
func (m *Manager) Template(name string) (*Template, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.Lookup(name)
}

// Names returns the active template names, unordered.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.Names()
}

// Bindings returns a copy of the active command bindings.
func (m *Manager) Bindings() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.bindings))
	for k, v := range m.bindings {
		out[k] = v
	}
	return out
}

// Reload re-reads the templates file and atomically swaps the active
// set and bindings. On any error the previous set stays active.
func (m *Manager) Reload() error {
	if m.path == "" {
		return nil
	}

	set, bindings, err := LoadFile(m.path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.set = set
	m.bindings = bindings
	m.mu.Unlock()

	m.logger.Info("prompt templates loaded",
		"path", m.path,
		"templates", len(set),
	)
	return nil
}

// Watch blocks watching the templates file for changes, reloading on
// each debounced change, until ctx is cancelled. No-op when watching
// was not configured.
func (m *Manager) Watch(ctx context.Context) error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Watch(ctx, m.Reload)
}

// Close stops the watcher if one is running.
func (m *Manager) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Stop()
}
