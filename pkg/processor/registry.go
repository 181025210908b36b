package processor

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
)

// Factory builds a processor on first use.
type Factory func(options DeferredOptions) (Processor, error)

// DeferredOptions is handed to a Factory when the deferred processor is
// first requested.
type DeferredOptions struct {
	Config map[string]any
}

// entry is either an eager processor or a deferred factory.
type entry interface {
	resolve(blockType string) (Processor, error)
	deferred() bool
}

type eagerEntry struct {
	processor Processor
}

func (e eagerEntry) resolve(string) (Processor, error) {
	return e.processor, nil
}

func (eagerEntry) deferred() bool { return false }

// deferredEntry memoizes exactly one instance (or construction error).
type deferredEntry struct {
	factory  Factory
	options  DeferredOptions
	once     sync.Once
	instance Processor
	err      error
}

func (e *deferredEntry) resolve(blockType string) (Processor, error) {
	e.once.Do(func() {
		tracer().Debugf("processor: constructing deferred processor for %q", blockType)
		instance, err := e.factory(e.options)
		switch {
		case err != nil:
			e.err = &blockerrors.ConfigurationError{Subject: "processor", Name: blockType, Reason: "deferred factory failed", Err: err}
		case instance == nil:
			e.err = blockerrors.NewConfigurationError("processor", blockType, "deferred factory returned nil")
		default:
			e.instance = instance
		}
	})
	return e.instance, e.err
}

func (*deferredEntry) deferred() bool { return true }

// Registry maps block types to processors. Lookups for unknown types fall
// back to the default processor; there is no other routing policy.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultPrc Processor
}

// New creates an empty registry without a default processor.
func New() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register stores p for blockType. Existing entries are replaced.
func (r *Registry) Register(blockType string, p Processor) error {
	if blockType = normalize(blockType); blockType == "" {
		return fmt.Errorf("processor: block type is required")
	}
	if p == nil {
		return fmt.Errorf("processor: processor for %q is nil", blockType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[blockType] = eagerEntry{processor: p}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(blockType string, p Processor) {
	if err := r.Register(blockType, p); err != nil {
		panic(err)
	}
}

// RegisterDeferred stores factory for blockType. The factory runs once, on
// the first lookup of blockType, and its result is memoized.
func (r *Registry) RegisterDeferred(blockType string, factory Factory, options DeferredOptions) error {
	if blockType = normalize(blockType); blockType == "" {
		return fmt.Errorf("processor: block type is required")
	}
	if factory == nil {
		return fmt.Errorf("processor: factory for %q is nil", blockType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[blockType] = &deferredEntry{factory: factory, options: options}
	return nil
}

// SetDefault designates the processor used for unregistered block types.
func (r *Registry) SetDefault(p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultPrc = p
}

// GetProcessor returns the processor registered for blockType or the
// default processor. It fails only when a deferred factory fails or when the
// fallback is needed and no default is designated.
func (r *Registry) GetProcessor(blockType string) (Processor, error) {
	key := normalize(blockType)

	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if ok {
		return e.resolve(key)
	}
	return r.GetDefaultProcessor()
}

// GetDefaultProcessor returns the default processor.
func (r *Registry) GetDefaultProcessor() (Processor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultPrc == nil {
		return nil, blockerrors.NewConfigurationError("processor registry", "", "no default processor designated")
	}
	return r.defaultPrc, nil
}

// Unregister removes blockType, reporting whether it was present.
func (r *Registry) Unregister(blockType string) bool {
	key := normalize(blockType)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	return true
}

// ListRegisteredTypes returns the registered block types, sorted.
func (r *Registry) ListRegisteredTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasProcessor reports whether blockType has a registered processor. The
// default processor does not count.
func (r *Registry) HasProcessor(blockType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[normalize(blockType)]
	return ok
}

// IsDeferred reports whether blockType is registered through a factory.
func (r *Registry) IsDeferred(blockType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[normalize(blockType)]
	return ok && e.deferred()
}

func normalize(name string) string {
	return strings.TrimSpace(name)
}
