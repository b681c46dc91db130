package style

import (
	"fmt"
	"sort"
)

// ResolveFunc turns a Spec into a Handle owned by one workbook.
type ResolveFunc func(Spec) (Handle, error)

// Registry resolves Specs for one workbook and holds its named styles.
// It replaces any process-wide style table: each write operation creates
// its own Registry and passes it down. A Registry is not safe for
// concurrent use.
type Registry struct {
	resolve ResolveFunc
	handles map[Spec]Handle
	named   map[string]Spec
}

// NewRegistry returns a Registry pre-loaded with the presets.
func NewRegistry(resolve ResolveFunc) *Registry {
	r := &Registry{
		resolve: resolve,
		handles: make(map[Spec]Handle),
		named:   make(map[string]Spec, len(presets)),
	}
	for name, spec := range presets {
		r.named[name] = spec
	}
	return r
}

// Resolve returns the Handle for spec, calling the resolver at most once
// per distinct Spec.
func (r *Registry) Resolve(spec Spec) (Handle, error) {
	if h, ok := r.handles[spec]; ok {
		return h, nil
	}
	if r.resolve == nil {
		return 0, fmt.Errorf("style registry has no resolver")
	}
	h, err := r.resolve(spec)
	if err != nil {
		return 0, fmt.Errorf("resolve style: %w", err)
	}
	r.handles[spec] = h
	return h, nil
}

// Register stores spec under name, replacing any previous entry.
func (r *Registry) Register(name string, spec Spec) {
	r.named[name] = spec
}

// Named looks up a registered Spec.
func (r *Registry) Named(name string) (Spec, bool) {
	spec, ok := r.named[name]
	return spec, ok
}

// Names lists registered style names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.named))
	for name := range r.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of Specs resolved so far.
func (r *Registry) Len() int {
	return len(r.handles)
}
