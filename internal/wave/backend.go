package wave

import (
	"errors"
	"fmt"
	"sort"

	"ripple/internal/core"
)

// Backend computes generation passes into a caller-owned grid.
type Backend interface {
	Name() string
	Generate(grid *core.ByteGrid, originX, originY int, elapsed float64, p Params) (Stats, error)
	Close() error
}

// BackendOptions configures a backend for a fixed grid size.
type BackendOptions struct {
	Size    core.Size
	Workers int
}

// Factory constructs a Backend.
type Factory func(opts BackendOptions) (Backend, error)

// ErrUnknownBackend is returned for names that were never registered.
var ErrUnknownBackend = errors.New("unknown generator backend")

// DefaultBackend is always registered.
const DefaultBackend = "cpu"

var backends = map[string]Factory{}

// Register adds a backend factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	backends[name] = f
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBackend constructs the named backend.
func NewBackend(name string, opts BackendOptions) (Backend, error) {
	if name == "" {
		name = DefaultBackend
	}
	factory, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownBackend, name, Backends())
	}
	b, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("starting %s backend: %w", name, err)
	}
	return b, nil
}

// cpuBackend adapts Generator to the Backend interface.
type cpuBackend struct {
	gen Generator
}

func (c *cpuBackend) Name() string { return DefaultBackend }

func (c *cpuBackend) Generate(grid *core.ByteGrid, originX, originY int, elapsed float64, p Params) (Stats, error) {
	return c.gen.Generate(grid, originX, originY, elapsed, p), nil
}

func (c *cpuBackend) Close() error { return nil }

func init() {
	Register(DefaultBackend, func(opts BackendOptions) (Backend, error) {
		return &cpuBackend{gen: Generator{Workers: opts.Workers}}, nil
	})
}
