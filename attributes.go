package veneer

import (
	"sort"
	"strings"
)

// Rendered is the resolved output for one part: either a single attribute
// string or a tree of strings mirroring the spec's nesting. Nested output
// occurs when a part's spec is a list of per-item attribute sets.
type Rendered struct {
	leaf bool
	str  string
	list []Rendered
}

// RenderedString wraps a flat attribute string.
func RenderedString(s string) Rendered { return Rendered{leaf: true, str: s} }

// RenderedList wraps a structurally-preserved list of resolved children.
func RenderedList(items ...Rendered) Rendered { return Rendered{list: items} }

// IsLeaf reports whether the result is a flat string.
func (r Rendered) IsLeaf() bool { return r.leaf }

// String returns the flat attribute string, or "" for a tree.
func (r Rendered) String() string {
	if r.leaf {
		return r.str
	}
	return ""
}

// Items returns the resolved children of a tree, or nil for a leaf.
func (r Rendered) Items() []Rendered {
	if r.leaf {
		return nil
	}
	return r.list
}

// Equal reports deep equality, used mostly by tests.
func (r Rendered) Equal(o Rendered) bool {
	if r.leaf != o.leaf {
		return false
	}
	if r.leaf {
		return r.str == o.str
	}
	if len(r.list) != len(o.list) {
		return false
	}
	for i := range r.list {
		if !r.list[i].Equal(o.list[i]) {
			return false
		}
	}
	return true
}

// attrResolver resolves one part's attribute spec. It carries the
// component/part names for hook addressing and warnings.
type attrResolver struct {
	component string
	part      string
	cfg       Config
	scope     *Scope
}

// resolve turns a spec node into its resolved form. extra is the external
// class source merged into the part's flat attribute set; it does not
// propagate into nested per-item children.
func (ar *attrResolver) resolve(spec AttrSpec, extra []string) Rendered {
	switch s := spec.(type) {
	case nil:
		return RenderedString("")
	case AttrFunc:
		return ar.resolve(s(ar.scope), extra)
	case Flag:
		return RenderedString(strings.TrimSpace(ar.cfg.Escape(string(s))))
	case Attrs:
		return RenderedString(ar.buildPairs(s, extra))
	case AttrList:
		if len(s) > 0 && allLists(s) {
			kids := make([]Rendered, len(s))
			for i, item := range s {
				kids[i] = ar.resolve(item, nil)
			}
			if mixedShape(kids) {
				ar.warnMixed()
				return RenderedString("")
			}
			return Rendered{list: kids}
		}
		return RenderedString(ar.buildPairs(ar.flatten(s), extra))
	}
	return RenderedString("")
}

// allLists reports whether every list element is itself a list, which
// switches the list into structure-preserving mode: each element resolves
// independently and the list shape survives into the output. Lists of
// maps stay in flat mode and merge into one attribute set.
func allLists(items AttrList) bool {
	for _, item := range items {
		if _, ok := item.(AttrList); !ok {
			return false
		}
	}
	return true
}

// mixedShape reports whether resolved children mix flat strings with
// trees at one node, which is a definition error.
func mixedShape(kids []Rendered) bool {
	var leaves, trees bool
	for _, k := range kids {
		if k.leaf {
			leaves = true
		} else {
			trees = true
		}
	}
	return leaves && trees
}

func (ar *attrResolver) warnMixed() {
	ar.cfg.Logger.Warn().
		Str("component", ar.component).
		Str("part", ar.part).
		Msg("attribute spec mixes string and list children at one node; dropping node")
}

// flatten folds a flat (non-structure-preserving) list into one ordered
// attribute set: strings become boolean flags, maps merge in, nested
// lists flatten recursively, functions resolve first.
func (ar *attrResolver) flatten(items AttrList) Attrs {
	var out Attrs
	for _, item := range items {
		switch it := item.(type) {
		case Flag:
			out = append(out, Attr{Name: string(it), Value: Bool(true)})
		case Attrs:
			out = append(out, it...)
		case AttrList:
			out = append(out, ar.flatten(it)...)
		case AttrFunc:
			out = append(out, ar.flatten(AttrList{it(ar.scope)})...)
		}
	}
	return out
}

// buildPairs renders an ordered attribute set to its final string.
//
// class-named entries are split out into a pending class list; remaining
// entries keep first-seen position with last-written value. The external
// class source is appended, the combined list is deduplicated in
// first-seen order, and a non-empty result is re-inserted as the single
// class attribute. true booleans render bare, false/null/"" drop, other
// values render as name="escaped". The built string passes through the
// per-part hook with the attribute set as context.
func (ar *attrResolver) buildPairs(attrs Attrs, extra []string) string {
	var classes []string
	var names []string
	vals := make(map[string]Value)

	for _, a := range attrs {
		name, val := a.Name, a.Value
		if name == "" {
			// Positional flag: the value is the attribute name.
			name, val = val.String(), Bool(true)
		}
		if name == "" {
			continue
		}
		if name == "class" {
			classes = append(classes, classTokens(val)...)
			continue
		}
		if _, ok := vals[name]; !ok {
			names = append(names, name)
		}
		vals[name] = val
	}

	for _, c := range extra {
		classes = append(classes, strings.Fields(c)...)
	}
	if cls := strings.Join(dedupeClasses(classes), " "); cls != "" {
		names = append(names, "class")
		vals["class"] = String(cls)
	}

	var parts []string
	for _, name := range names {
		v := vals[name]
		switch {
		case v.IsNull() || v.IsFalse():
			continue
		case v.IsTrue():
			parts = append(parts, ar.cfg.Escape(name))
		default:
			text := v.String()
			if text == "" {
				continue
			}
			parts = append(parts, ar.cfg.Escape(name)+`="`+ar.cfg.Escape(text)+`"`)
		}
	}
	rendered := strings.Join(parts, " ")

	return ar.cfg.hookString("attrpart/"+ar.component+"/"+ar.part, rendered, attrs)
}

// classTokens splits an attribute value into individual class names.
func classTokens(v Value) []string {
	if v.Kind() == KindList {
		var out []string
		for _, item := range v.Items() {
			out = append(out, classTokens(item)...)
		}
		return out
	}
	return strings.Fields(v.String())
}

// dedupeClasses drops empty and repeated class names, keeping first-seen
// order.
func dedupeClasses(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Attributes resolves every named part of parts against scope, producing
// one flat attribute string (or a structurally congruent tree of strings)
// per part. classes supplies an optional external class source per part,
// merged into that part's class attribute. The complete result passes
// through the per-component hook.
func Attributes(component string, parts map[string]AttrSpec, scope *Scope, classes map[string][]string, cfg Config) map[string]Rendered {
	cfg = cfg.norm()
	out := make(map[string]Rendered, len(parts))
	for _, part := range sortedKeys(parts) {
		ar := &attrResolver{component: component, part: part, cfg: cfg, scope: scope}
		out[part] = ar.resolve(parts[part], classes[part])
	}
	if hooked, ok := cfg.Hook("attrs/"+component, out).(map[string]Rendered); ok {
		return hooked
	}
	return out
}

// collapse joins a resolved tree bottom-up into a single string: leaves
// return their text, nodes whose children are all leaves join with spaces
// (skipping empties), nodes of trees recurse then join. Mixed leaf/tree
// children are a definition error: warned and collapsed to "".
func (r Rendered) collapse(cfg Config, component, part string) string {
	if r.leaf {
		return r.str
	}
	if mixedShape(r.list) {
		cfg.Logger.Warn().
			Str("component", component).
			Str("part", part).
			Msg("resolved attributes mix string and list children at one node; dropping node")
		return ""
	}
	var parts []string
	for _, kid := range r.list {
		if s := kid.collapse(cfg, component, part); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
