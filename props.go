package veneer

import "fmt"

// PropDef declares one allowed prop.
//
// The zero value of every field except Name is meaningful: no default, any
// type, optional, no validator, no formatter. Definitions are applied in
// declaration order and that order is observable in PropSet.Resolve.
type PropDef struct {
	// Name is the prop key, unique per component.
	Name string

	// Default is the value used when the caller supplies none.
	Default Value

	// Types restricts the value to the listed kind tags. Empty means any.
	// Null values are exempt (an optional prop that was never supplied).
	Types []Kind

	// Required makes construction fail when no value is supplied and
	// Default is empty.
	Required bool

	// Validate, when set, must return true for the value after the hook
	// and type check have run.
	Validate func(Value) bool

	// Format, when set, replaces the value strictly last. Its output is
	// never re-validated.
	Format func(Value) Value
}

// globalProps are merged into every component's definition set unless the
// component declares the same name itself.
var globalProps = []PropDef{
	{Name: "id", Types: []Kind{KindString}},
	{Name: "block_name", Types: []Kind{KindString}},
	{Name: "classes", Types: []Kind{KindString, KindList, KindMap}},
	{Name: "attributes", Types: []Kind{KindString, KindList, KindMap}},
	{Name: "resetClasses", Types: []Kind{KindMap}},
	{Name: "resetAttributes", Types: []Kind{KindMap}},
}

// PropSet holds a component's declared props and their resolved values.
//
// A PropSet is created per component instance and lives for that
// instance's lifetime. Once Define has run, values are immutable: Set
// fails with ErrImmutable. The computed-value cache is render-scoped and
// cleared with ResetComputed at the start of each render pass.
type PropSet struct {
	component string
	cfg       Config

	order  []string
	defs   map[string]PropDef
	raw    map[string]Value
	rawSet map[string]bool
	values map[string]Value

	computedOrder []string
	computed      map[string]func(*PropSet) Value
	cache         map[string]Value
	evaluating    map[string]bool

	resolved bool
}

// newPropSet creates an empty prop store. cfg must already be normalized.
func newPropSet(component string, cfg Config) *PropSet {
	return &PropSet{
		component:  component,
		cfg:        cfg,
		defs:       make(map[string]PropDef),
		raw:        make(map[string]Value),
		rawSet:     make(map[string]bool),
		values:     make(map[string]Value),
		computed:   make(map[string]func(*PropSet) Value),
		cache:      make(map[string]Value),
		evaluating: make(map[string]bool),
	}
}

// Set stores caller-supplied prop values. It must run before Define;
// once the set is resolved, mutation fails with ErrImmutable.
func (p *PropSet) Set(values map[string]Value) error {
	if p.resolved {
		return fmt.Errorf("%w: %s", ErrImmutable, p.component)
	}
	for name, v := range values {
		p.raw[name] = v
		p.rawSet[name] = true
	}
	return nil
}

// Define declares the component's props, merges in the global prop set
// for names the component did not declare itself, then immediately
// validates and applies defaults for all current values.
//
// Validation per prop, in order: explicit value else default; required
// check; per-prop hook (which may transform the value before any check
// runs); allowed-type check by kind tag; validator; formatter (strictly
// last, output never re-validated). The first failure aborts with a
// schema error wrapping ErrMissingProp, ErrTypeMismatch, or
// ErrValidation.
func (p *PropSet) Define(defs ...PropDef) error {
	for _, def := range defs {
		if _, ok := p.defs[def.Name]; !ok {
			p.order = append(p.order, def.Name)
		}
		p.defs[def.Name] = def
	}
	for _, def := range globalProps {
		if _, ok := p.defs[def.Name]; ok {
			continue
		}
		p.order = append(p.order, def.Name)
		p.defs[def.Name] = def
	}

	for _, name := range p.order {
		val, err := p.applyDef(p.defs[name])
		if err != nil {
			return err
		}
		p.values[name] = val
	}
	p.resolved = true
	return nil
}

// applyDef runs the validation pipeline for one definition.
func (p *PropSet) applyDef(def PropDef) (Value, error) {
	val, explicit := p.raw[def.Name], p.rawSet[def.Name]
	if !explicit {
		val = def.Default
	}

	if def.Required && !explicit && def.Default.IsEmpty() {
		return Null, fmt.Errorf("%w: %s.%s", ErrMissingProp, p.component, def.Name)
	}

	// The hook runs before the type check and validator so the host can
	// coerce or override the value first.
	val = p.cfg.hookValue("prop/"+p.component+"/"+def.Name, val)

	if len(def.Types) > 0 && !val.IsNull() {
		if !kindAllowed(val.Kind(), def.Types) {
			return Null, fmt.Errorf("%w: %s.%s got %s, want one of %v",
				ErrTypeMismatch, p.component, def.Name, val.Kind(), def.Types)
		}
	}

	if def.Validate != nil && !def.Validate(val) {
		return Null, fmt.Errorf("%w: %s.%s", ErrValidation, p.component, def.Name)
	}

	if def.Format != nil {
		val = def.Format(val)
	}
	return val, nil
}

func kindAllowed(k Kind, allowed []Kind) bool {
	for _, a := range allowed {
		if k == a {
			return true
		}
	}
	return false
}

// Computed registers a lazy derived prop. fn is evaluated at most once
// per render pass with a read-only view of the store, so it may read
// other props including other computed props. Cycles are a caller error;
// a re-entrant read observes Null rather than recursing.
func (p *PropSet) Computed(name string, fn func(*PropSet) Value) {
	if _, ok := p.computed[name]; !ok {
		p.computedOrder = append(p.computedOrder, name)
	}
	p.computed[name] = fn
}

// ResetComputed clears the computed-value cache. Call at the start of
// each render pass; stale caches yield stale values.
func (p *PropSet) ResetComputed() {
	p.cache = make(map[string]Value)
	p.evaluating = make(map[string]bool)
}

// Get returns the value for name, checking the computed registry first
// (lazily evaluating and caching), then stored prop values, then
// fallback.
func (p *PropSet) Get(name string, fallback Value) Value {
	if fn, ok := p.computed[name]; ok {
		if v, hit := p.cache[name]; hit {
			return v
		}
		if p.evaluating[name] {
			return Null
		}
		p.evaluating[name] = true
		v := fn(p)
		delete(p.evaluating, name)
		p.cache[name] = v
		return v
	}
	if v, ok := p.values[name]; ok {
		return v
	}
	return fallback
}

// Has reports whether name is a declared or computed prop.
func (p *PropSet) Has(name string) bool {
	if _, ok := p.computed[name]; ok {
		return true
	}
	_, ok := p.values[name]
	return ok
}

// Resolve returns every declared prop and every computed prop exactly
// once: declared props in declaration order with their stored values,
// then computed-only names in registration order. The result is a copy;
// mutating it does not touch the store.
func (p *PropSet) Resolve() []Field {
	out := make([]Field, 0, len(p.order)+len(p.computedOrder))
	seen := make(map[string]bool, len(p.order))
	for _, name := range p.order {
		out = append(out, Field{Key: name, Val: p.values[name]})
		seen[name] = true
	}
	for _, name := range p.computedOrder {
		if seen[name] {
			continue
		}
		out = append(out, Field{Key: name, Val: p.Get(name, Null)})
	}
	return out
}

// ResolveMap returns Resolve as a lookup map, losing order.
func (p *PropSet) ResolveMap() map[string]Value {
	fields := p.Resolve()
	out := make(map[string]Value, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Val
	}
	return out
}
