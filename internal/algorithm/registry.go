package algorithm

import (
	"fmt"
	"sync"
)

// ErrUnknownAlgorithm is returned by Lookup* when no algorithm is
// registered under the requested name.
type ErrUnknownAlgorithm struct {
	Name string
}

func (e *ErrUnknownAlgorithm) Error() string {
	return fmt.Sprintf("algorithm: unknown algorithm %q", e.Name)
}

// registry is the process-wide, thread-safe algorithm registry.
// Registration happens once at package init; lookups take a read lock,
// which is cheap enough at this scale and keeps the read-mostly contract
// honest without resorting to lock-free tricks the four built-in entries
// don't warrant.
type registry struct {
	mu   sync.RWMutex
	one  map[string]Algorithm1D
	two  map[string]Algorithm2D
}

var reg = &registry{
	one: make(map[string]Algorithm1D),
	two: make(map[string]Algorithm2D),
}

func init() {
	Register1D(FFD1D)
	Register1D(BFD1D)
	Register2D(BottomLeftFill2D)
	Register2D(Guillotine2D)
}

// Register1D registers a 1D algorithm. Registration is idempotent by
// name: a later call with the same name silently replaces the earlier
// entry, matching an idempotent-registration contract.
// this layer (re-registering at startup is a no-op in effect, not an
// error).
func Register1D(a Algorithm1D) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.one[a.Name()] = a
}

// Register2D registers a 2D algorithm.
func Register2D(a Algorithm2D) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.two[a.Name()] = a
}

// Lookup1D returns the named 1D algorithm, or ErrUnknownAlgorithm.
// Note: the undocumented BRANCH_BOUND selector is
// deliberately never registered — looking it up always fails here
// rather than silently aliasing to BFD.
func Lookup1D(name string) (Algorithm1D, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	a, ok := reg.one[name]
	if !ok {
		return nil, &ErrUnknownAlgorithm{Name: name}
	}
	return a, nil
}

// Lookup2D returns the named 2D algorithm, or ErrUnknownAlgorithm.
func Lookup2D(name string) (Algorithm2D, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	a, ok := reg.two[name]
	if !ok {
		return nil, &ErrUnknownAlgorithm{Name: name}
	}
	return a, nil
}

// Names1D returns the registered 1D algorithm names, for capability
// metadata / diagnostics.
func Names1D() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, 0, len(reg.one))
	for n := range reg.one {
		names = append(names, n)
	}
	return names
}

// Names2D returns the registered 2D algorithm names.
func Names2D() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, 0, len(reg.two))
	for n := range reg.two {
		names = append(names, n)
	}
	return names
}
