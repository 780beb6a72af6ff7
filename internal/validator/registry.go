package validator

// Registry holds acceptance rules in registration order. Order only affects
// how reasons read in the response; every rule always runs.
type Registry struct {
	keys  []string
	rules map[string]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule to the registry.
func (r *Registry) Register(rule Rule) {
	if _, ok := r.rules[rule.Key()]; !ok {
		r.keys = append(r.keys, rule.Key())
	}
	r.rules[rule.Key()] = rule
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Rule {
	return r.rules[key]
}

// All returns all registered rules in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, r.rules[key])
	}
	return out
}
