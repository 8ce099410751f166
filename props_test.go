package veneer

import (
	"errors"
	"strings"
	"testing"
)

func newTestProps(t *testing.T, values map[string]Value, defs ...PropDef) *PropSet {
	t.Helper()
	p := newPropSet("test", Config{}.norm())
	if err := p.Set(values); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := p.Define(defs...); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	return p
}

func TestResolveOrderAndCompleteness(t *testing.T) {
	p := newTestProps(t, nil,
		PropDef{Name: "beta", Default: Int(1)},
		PropDef{Name: "alpha", Default: Int(2)},
	)
	p.Computed("gamma", func(p *PropSet) Value { return Int(3) })
	p.Computed("delta", func(p *PropSet) Value { return Int(4) })

	fields := p.Resolve()
	var keys []string
	seen := make(map[string]int)
	for _, f := range fields {
		keys = append(keys, f.Key)
		seen[f.Key]++
	}
	for k, n := range seen {
		if n != 1 {
			t.Errorf("key %q appears %d times, want 1", k, n)
		}
	}
	// Declared keys in declaration order, then globals, then computed in
	// registration order.
	want := []string{
		"beta", "alpha",
		"id", "block_name", "classes", "attributes", "resetClasses", "resetAttributes",
		"gamma", "delta",
	}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("Resolve() order = %v, want %v", keys, want)
	}
}

func TestRequiredProp(t *testing.T) {
	p := newPropSet("test", Config{}.norm())
	err := p.Define(PropDef{Name: "title", Required: true})
	if !errors.Is(err, ErrMissingProp) {
		t.Errorf("Define() error = %v, want ErrMissingProp", err)
	}

	// Any explicit value prevents the failure, including a falsy one.
	p = newTestProps(t,
		map[string]Value{"title": Bool(false)},
		PropDef{Name: "title", Required: true},
	)
	if got := p.Get("title", Null); !got.Equal(Bool(false)) {
		t.Errorf("Get(title) = %v, want false", got)
	}

	// A non-empty default also satisfies the requirement.
	p = newTestProps(t, nil,
		PropDef{Name: "title", Default: String("untitled"), Required: true},
	)
	if got := p.Get("title", Null).Str(); got != "untitled" {
		t.Errorf("Get(title) = %q, want untitled", got)
	}
}

func TestTypeCheck(t *testing.T) {
	p := newPropSet("test", Config{}.norm())
	if err := p.Set(map[string]Value{"count": String("nope")}); err != nil {
		t.Fatal(err)
	}
	err := p.Define(PropDef{Name: "count", Types: []Kind{KindInt}})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Define() error = %v, want ErrTypeMismatch", err)
	}

	// Null values are exempt from the type check.
	p = newTestProps(t, nil, PropDef{Name: "count", Types: []Kind{KindInt}})
	if got := p.Get("count", Null); !got.IsNull() {
		t.Errorf("Get(count) = %v, want Null", got)
	}
}

func TestValidatorAndFormatterOrder(t *testing.T) {
	var sequence []string
	p := newPropSet("test", Config{}.norm())
	if err := p.Set(map[string]Value{"size": Int(4)}); err != nil {
		t.Fatal(err)
	}
	err := p.Define(PropDef{
		Name:  "size",
		Types: []Kind{KindInt},
		Validate: func(v Value) bool {
			sequence = append(sequence, "validate")
			return v.Int64() > 0
		},
		Format: func(v Value) Value {
			sequence = append(sequence, "format")
			// The formatter may produce a value outside the allowed types;
			// it is never re-validated.
			return String("4px")
		},
	})
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if strings.Join(sequence, ",") != "validate,format" {
		t.Errorf("pipeline order = %v, want validate then format", sequence)
	}
	if got := p.Get("size", Null).Str(); got != "4px" {
		t.Errorf("Get(size) = %q, want 4px", got)
	}
}

func TestValidatorFailure(t *testing.T) {
	p := newPropSet("test", Config{}.norm())
	if err := p.Set(map[string]Value{"size": Int(-1)}); err != nil {
		t.Fatal(err)
	}
	err := p.Define(PropDef{
		Name:     "size",
		Validate: func(v Value) bool { return v.Int64() > 0 },
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Define() error = %v, want ErrValidation", err)
	}
}

func TestHookRunsBeforeTypeCheck(t *testing.T) {
	// The hook coerces a string to an int, so the type check passes.
	cfg := Config{
		Hook: func(name string, value any, context ...any) any {
			if name == "prop/test/count" {
				return Int(7)
			}
			return value
		},
	}.norm()
	p := newPropSet("test", cfg)
	if err := p.Set(map[string]Value{"count": String("seven")}); err != nil {
		t.Fatal(err)
	}
	if err := p.Define(PropDef{Name: "count", Types: []Kind{KindInt}}); err != nil {
		t.Fatalf("Define() error = %v (hook should run before type check)", err)
	}
	if got := p.Get("count", Null).Int64(); got != 7 {
		t.Errorf("Get(count) = %d, want 7", got)
	}
}

func TestImmutableAfterResolve(t *testing.T) {
	p := newTestProps(t, nil, PropDef{Name: "a", Default: Int(1)})
	err := p.Set(map[string]Value{"a": Int(2)})
	if !errors.Is(err, ErrImmutable) {
		t.Errorf("Set() after Define error = %v, want ErrImmutable", err)
	}
	if got := p.Get("a", Null).Int64(); got != 1 {
		t.Errorf("Get(a) = %d, want 1 (unchanged)", got)
	}
}

func TestComputedMemoization(t *testing.T) {
	p := newTestProps(t, map[string]Value{"n": Int(2)}, PropDef{Name: "n"})
	calls := 0
	p.Computed("double", func(p *PropSet) Value {
		calls++
		return Int(p.Get("n", Int(0)).Int64() * 2)
	})

	for i := 0; i < 3; i++ {
		if got := p.Get("double", Null).Int64(); got != 4 {
			t.Fatalf("Get(double) = %d, want 4", got)
		}
	}
	if calls != 1 {
		t.Errorf("computed fn ran %d times in one pass, want 1", calls)
	}

	// A new render pass re-evaluates once.
	p.ResetComputed()
	if got := p.Get("double", Null).Int64(); got != 4 {
		t.Fatalf("Get(double) = %d, want 4", got)
	}
	if calls != 2 {
		t.Errorf("computed fn ran %d times across two passes, want 2", calls)
	}
}

func TestComputedReadsOtherComputed(t *testing.T) {
	p := newTestProps(t, map[string]Value{"n": Int(3)}, PropDef{Name: "n"})
	p.Computed("double", func(p *PropSet) Value {
		return Int(p.Get("n", Int(0)).Int64() * 2)
	})
	p.Computed("quad", func(p *PropSet) Value {
		return Int(p.Get("double", Int(0)).Int64() * 2)
	})
	if got := p.Get("quad", Null).Int64(); got != 12 {
		t.Errorf("Get(quad) = %d, want 12", got)
	}
}

func TestComputedShadowsDeclaredInGet(t *testing.T) {
	p := newTestProps(t, map[string]Value{"n": Int(1)}, PropDef{Name: "n"})
	p.Computed("n", func(p *PropSet) Value { return Int(9) })
	if got := p.Get("n", Null).Int64(); got != 9 {
		t.Errorf("Get(n) = %d, want computed 9", got)
	}
	// Resolve keeps the stored value for declared keys.
	for _, f := range p.Resolve() {
		if f.Key == "n" && f.Val.Int64() != 1 {
			t.Errorf("Resolve() n = %d, want stored 1", f.Val.Int64())
		}
	}
}

func TestGetFallback(t *testing.T) {
	p := newTestProps(t, nil, PropDef{Name: "a", Default: Int(1)})
	if got := p.Get("missing", String("fb")).Str(); got != "fb" {
		t.Errorf("Get(missing) = %q, want fallback", got)
	}
}

func TestGlobalPropOverride(t *testing.T) {
	// A component may override a global prop's definition; the global set
	// only fills names it did not declare.
	p := newTestProps(t, map[string]Value{"id": String("x")},
		PropDef{Name: "id", Types: []Kind{KindString}, Format: func(v Value) Value {
			return String("c-" + v.Str())
		}},
	)
	if got := p.Get("id", Null).Str(); got != "c-x" {
		t.Errorf("Get(id) = %q, want c-x", got)
	}
	var count int
	for _, f := range p.Resolve() {
		if f.Key == "id" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("id declared %d times, want 1", count)
	}
}
