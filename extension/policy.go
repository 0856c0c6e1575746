package extension

// Policy is the configuration-driven enablement filter, built once at
// construction. The deny-list always wins; an empty allow-list means no
// allow filtering.
type Policy struct {
	allowed map[string]struct{}
	denied  map[string]struct{}
}

// NewPolicy builds a policy from the configured allow and deny lists.
func NewPolicy(allowed, denied []string) Policy {
	p := Policy{
		allowed: make(map[string]struct{}, len(allowed)),
		denied:  make(map[string]struct{}, len(denied)),
	}
	for _, id := range allowed {
		p.allowed[id] = struct{}{}
	}
	for _, id := range denied {
		p.denied[id] = struct{}{}
	}
	return p
}

// Eligible reports whether id may be loaded.
func (p Policy) Eligible(id string) bool {
	if _, deny := p.denied[id]; deny {
		return false
	}
	if len(p.allowed) == 0 {
		return true
	}
	_, allow := p.allowed[id]
	return allow
}
