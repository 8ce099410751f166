package veneer

import (
	"fmt"
	"strings"
)

// SlotKind discriminates the content forms a slot accepts.
type SlotKind int

const (
	// SlotKindText allows literal markup strings.
	SlotKindText SlotKind = iota
	// SlotKindFunc allows function content evaluated with a scope.
	SlotKindFunc
)

func (k SlotKind) String() string {
	if k == SlotKindFunc {
		return "func"
	}
	return "text"
}

// SlotContent is the union of slot content forms: Text or SlotFn.
type SlotContent interface {
	slotKind() SlotKind
}

// Text is literal slot content.
type Text string

func (Text) slotKind() SlotKind { return SlotKindText }

// SlotFn is function slot content, invoked at resolve time with the
// scope's values in order.
type SlotFn func(args ...Value) string

func (SlotFn) slotKind() SlotKind { return SlotKindFunc }

// SlotDef declares one named content slot.
type SlotDef struct {
	// Name is the slot name; "" normalizes to "default".
	Name string
	// Kinds restricts accepted content forms. Empty means any.
	Kinds []SlotKind
}

// normalizeSlotName maps the empty name to the default slot.
func normalizeSlotName(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

// SlotSet holds a component's declared slots and their content.
// Like PropSet, it is private to one component instance.
type SlotSet struct {
	component string
	cfg       Config

	order   []string
	defs    map[string][]SlotKind
	entries map[string][]SlotContent
}

// newSlotSet creates an empty slot store. cfg must already be normalized.
func newSlotSet(component string, cfg Config) *SlotSet {
	return &SlotSet{
		component: component,
		cfg:       cfg,
		defs:      make(map[string][]SlotKind),
		entries:   make(map[string][]SlotContent),
	}
}

// Define declares the component's slots and their allowed content kinds.
func (s *SlotSet) Define(defs ...SlotDef) {
	for _, def := range defs {
		name := normalizeSlotName(def.Name)
		if _, ok := s.defs[name]; !ok {
			s.order = append(s.order, name)
		}
		s.defs[name] = def.Kinds
	}
}

// Set replaces the slot's content with a single entry. Content is
// kind-checked against the slot's declaration when one exists; a
// mismatch fails with ErrSlotType.
func (s *SlotSet) Set(name string, content SlotContent) error {
	return s.put(name, content, true)
}

// Append adds an entry to the slot, keeping existing content. An unset
// slot behaves like Set.
func (s *SlotSet) Append(name string, content SlotContent) error {
	return s.put(name, content, false)
}

func (s *SlotSet) put(name string, content SlotContent, override bool) error {
	name = normalizeSlotName(name)
	if kinds, declared := s.defs[name]; declared && len(kinds) > 0 {
		if !slotKindAllowed(content.slotKind(), kinds) {
			return fmt.Errorf("%w: %s slot %q does not accept %s content",
				ErrSlotType, s.component, name, content.slotKind())
		}
	}
	if override {
		s.entries[name] = []SlotContent{content}
		return nil
	}
	s.entries[name] = append(s.entries[name], content)
	return nil
}

func slotKindAllowed(k SlotKind, allowed []SlotKind) bool {
	for _, a := range allowed {
		if k == a {
			return true
		}
	}
	return false
}

// Has reports whether the slot has any content set.
func (s *SlotSet) Has(name string) bool {
	_, ok := s.entries[normalizeSlotName(name)]
	return ok
}

// IsEmpty reports whether the slot is unset or every entry, resolved with
// no scope, trims to the empty string.
func (s *SlotSet) IsEmpty(name string) bool {
	entries, ok := s.entries[normalizeSlotName(name)]
	if !ok {
		return true
	}
	for _, e := range entries {
		if strings.TrimSpace(resolveSlotEntry(e, nil)) != "" {
			return false
		}
	}
	return true
}

// IsActive reports whether the slot has non-empty content.
func (s *SlotSet) IsActive(name string) bool {
	return !s.IsEmpty(name)
}

// Get resolves the slot's content. An unset slot returns fallback.
// Function entries are invoked with the scope's values positionally, in
// the scope's field order. Each entry passes through the per-slot hook,
// and all entries are concatenated in list order.
func (s *SlotSet) Get(name, fallback string, scope []Field) string {
	name = normalizeSlotName(name)
	entries, ok := s.entries[name]
	if !ok {
		return fallback
	}
	var b strings.Builder
	for _, e := range entries {
		out := resolveSlotEntry(e, scope)
		out = s.cfg.hookString("slot/"+s.component+"/"+name, out)
		b.WriteString(out)
	}
	return b.String()
}

func resolveSlotEntry(content SlotContent, scope []Field) string {
	switch c := content.(type) {
	case Text:
		return string(c)
	case SlotFn:
		args := make([]Value, len(scope))
		for i, f := range scope {
			args[i] = f.Val
		}
		return c(args...)
	}
	return ""
}

// Resolve maps every declared slot name, plus any set-but-undeclared
// slot, to its no-scope content.
func (s *SlotSet) Resolve() map[string]string {
	out := make(map[string]string, len(s.order))
	for _, name := range s.order {
		out[name] = s.Get(name, "", nil)
	}
	for name := range s.entries {
		if _, ok := out[name]; !ok {
			out[name] = s.Get(name, "", nil)
		}
	}
	return out
}
