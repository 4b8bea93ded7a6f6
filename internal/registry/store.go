package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCacheTTL is how long a loaded registry snapshot stays fresh
const DefaultCacheTTL = 5 * time.Minute

// RegistryFileName is the well-known registry document name
const RegistryFileName = "registry.yaml"

// Store loads and caches the registry document. Snapshots are immutable
// between refreshes; concurrent readers share the cached snapshot and
// the only mutation point is refresh-on-expiry.
type Store struct {
	path string
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	cached   *Registry
	loadedAt time.Time
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithTTL overrides the cache expiry window
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the store's time source for tests
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a registry store backed by the YAML document at path
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path: path,
		ttl:  DefaultCacheTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegistryPath returns the registry document location for a project,
// preferring the project-local document over the global one.
func RegistryPath(projectPath string) string {
	local := filepath.Join(projectPath, ".asana-agent", RegistryFileName)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return local
	}
	return filepath.Join(home, ".asana-agent", RegistryFileName)
}

// Load returns the cached registry snapshot, refreshing it if the cache
// window has expired. Load never fails: a missing or malformed document
// degrades to an empty reject-everything registry so callers see "no
// resolvable entities" rather than an internal error.
func (s *Store) Load() *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.loadedAt) < s.ttl {
		return s.cached
	}
	return s.refreshLocked()
}

// Refresh discards the cached snapshot and reloads from disk
func (s *Store) Refresh() *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked()
}

func (s *Store) refreshLocked() *Registry {
	reg, err := loadFile(s.path)
	if err != nil {
		reg = safeDefault()
	}
	s.cached = reg
	s.loadedAt = s.now()
	return reg
}

// Validate loads the registry document without the safe-default
// fallback, returning the schema problem if there is one. Used by the
// registry check command.
func (s *Store) Validate() (*Registry, error) {
	return loadFile(s.path)
}

func loadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	// Missing top-level sections are a schema violation, not an empty
	// allowlist someone wrote on purpose.
	if reg.People == nil {
		return nil, fmt.Errorf("registry missing required section: people")
	}
	if reg.Projects == nil {
		return nil, fmt.Errorf("registry missing required section: projects")
	}

	if reg.Policy.OnUnknownProject == "" {
		reg.Policy.OnUnknownProject = "ask"
	}
	if reg.Policy.OnUnknownPerson == "" {
		reg.Policy.OnUnknownPerson = "ask"
	}

	return &reg, nil
}

// safeDefault is the registry used when the document can't be loaded:
// no people, no projects, reject on anything unknown.
func safeDefault() *Registry {
	return &Registry{
		Version:  1,
		People:   []Person{},
		Projects: []Project{},
		Policy: Policy{
			OnUnknownProject:  "reject",
			OnUnknownPerson:   "reject",
			OneTaskPerMessage: true,
		},
	}
}
