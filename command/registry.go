// Package command stores named SQL templates. A Registry maps short
// identifiers to the raw statement text the connection executes, so call
// sites reference queries by name instead of embedding SQL.
package command

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCommand is returned by Get for identifiers that were never set.
var ErrUnknownCommand = errors.New("unknown command")

// Identifier is an opaque lookup key for a stored template.
type Identifier string

// Registry maps identifiers to SQL templates. It performs no validation of
// the template text; the statement builders check template shape at fill
// time. A Registry is not safe for concurrent use, matching the single
// connection it belongs to.
type Registry struct {
	cmds map[Identifier]string
}

// NewRegistry returns a registry pre-populated from seed. The seed map is
// copied, so later mutation of the caller's map has no effect.
func NewRegistry(seed map[string]string) *Registry {
	cmds := make(map[Identifier]string, len(seed))
	for id, tmpl := range seed {
		cmds[Identifier(id)] = tmpl
	}
	return &Registry{cmds: cmds}
}

// Get returns the template stored under id.
func (r *Registry) Get(id Identifier) (string, error) {
	tmpl, ok := r.cmds[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, id)
	}
	return tmpl, nil
}

// Set stores template under id, overwriting any previous value.
func (r *Registry) Set(id Identifier, template string) {
	r.cmds[id] = template
}

// Has reports whether id is registered.
func (r *Registry) Has(id Identifier) bool {
	_, ok := r.cmds[id]
	return ok
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.cmds)
}

// Names returns all registered identifiers in sorted order.
func (r *Registry) Names() []Identifier {
	names := make([]Identifier, 0, len(r.cmds))
	for id := range r.cmds {
		names = append(names, id)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
