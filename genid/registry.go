package genid

import "fmt"

// registry maps generator type names to shared instances.
type registry struct {
	generators map[string]Generator
}

var defaultRegistry = &registry{
	generators: map[string]Generator{
		"uuid": UUIDGenerator{},
		"ulid": NewULIDGenerator(),
	},
}

// Register makes a generator available under its Type name, replacing any
// previous registration.
func Register(g Generator) {
	defaultRegistry.generators[g.Type()] = g
}

// Get returns the generator registered under name.
func Get(name string) (Generator, error) {
	g, ok := defaultRegistry.generators[name]
	if !ok {
		return nil, fmt.Errorf("no generator registered for type %q", name)
	}
	return g, nil
}
