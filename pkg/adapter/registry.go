package adapter

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Factory builds an unconnected adapter.
type Factory func(*slog.Logger) Adapter

type registration struct {
	factory Factory
	aliases []string
}

var (
	registryMu sync.RWMutex
	factories  = make(map[string]registration)
	aliasIndex = make(map[string]string)
)

// Register adds an adapter factory under a canonical name plus optional
// aliases. Adapter packages call it from init().
func Register(name string, factory Factory, aliases ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name = strings.ToLower(name)
	factories[name] = registration{factory: factory, aliases: aliases}
	for _, a := range aliases {
		aliasIndex[strings.ToLower(a)] = name
	}
}

// Canonical resolves a target type, which may be an alias or differ in
// case, to the registered adapter name. ok is false for unknown types.
func Canonical(name string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return canonicalLocked(name)
}

func canonicalLocked(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := factories[name]; ok {
		return name, true
	}
	if c, ok := aliasIndex[name]; ok {
		return c, true
	}
	return "", false
}

// Get retrieves an adapter factory by name or alias.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := canonicalLocked(name)
	if !ok {
		return nil, false
	}
	return factories[c].factory, true
}

// NewAdapter creates an adapter for cfg.Type. A nil logger discards output.
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// ListAdapters returns the canonical adapter names, sorted.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Aliases returns the alternative names registered for an adapter.
func Aliases(name string) []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Clone(factories[strings.ToLower(name)].aliases)
}

// IsRegistered reports whether name resolves to a registered adapter.
func IsRegistered(name string) bool {
	_, ok := Canonical(name)
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %s\nHint: set target.type in querygate.yaml or pass --target-type",
		e.Type, strings.Join(e.Available, ", "))
}
