package rules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lgbarn/drawback-go/internal/errors"
)

// None is the name that assigns no drawback.
const None = ""

// RuleSet is a registry of named modifiers. It is populated at startup and
// read from concurrently afterwards.
type RuleSet struct {
	mu        sync.RWMutex
	modifiers map[string]Modifier
}

// New creates an empty rule set.
func New() *RuleSet {
	return &RuleSet{modifiers: make(map[string]Modifier)}
}

// Register adds a modifier under name. Names must be unique and non-empty.
func (rs *RuleSet) Register(name string, m Modifier) error {
	if name == None {
		return fmt.Errorf("register drawback: empty name: %w", errors.ErrInvalidConfig)
	}
	if m == nil {
		return fmt.Errorf("register drawback %q: nil modifier: %w", name, errors.ErrInvalidConfig)
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, exists := rs.modifiers[name]; exists {
		return fmt.Errorf("register drawback %q: already registered: %w", name, errors.ErrInvalidConfig)
	}
	rs.modifiers[name] = m
	return nil
}

// Get returns the modifier registered under name.
func (rs *RuleSet) Get(name string) (Modifier, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	m, ok := rs.modifiers[name]
	return m, ok
}

// Resolve looks up name for assignment to colour. The empty name resolves
// to a nil modifier; unknown names fail with a ConfigurationError.
func (rs *RuleSet) Resolve(colour fmt.Stringer, name string) (Modifier, error) {
	if name == None {
		return nil, nil
	}
	m, ok := rs.Get(name)
	if !ok {
		return nil, &errors.ConfigurationError{
			Err:    errors.ErrUnknownDrawback,
			Colour: colour.String(),
			Name:   name,
		}
	}
	return m, nil
}

// Names returns the registered names in sorted order.
func (rs *RuleSet) Names() []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	names := make([]string, 0, len(rs.modifiers))
	for name := range rs.modifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered modifiers.
func (rs *RuleSet) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.modifiers)
}

var (
	defaultOnce sync.Once
	defaultSet  *RuleSet
)

// Default returns the shared rule set holding every built-in drawback.
func Default() *RuleSet {
	defaultOnce.Do(func() {
		defaultSet = New()
		RegisterBuiltins(defaultSet)
	})
	return defaultSet
}
