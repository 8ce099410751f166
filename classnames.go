package veneer

import (
	"fmt"
	"strings"
)

// classNode is the intermediate result of class resolution: a flat list
// of names, or a structure-preserving list of child nodes.
type classNode struct {
	nested bool
	names  []string
	kids   []classNode
}

// classResolver resolves one part's class spec.
type classResolver struct {
	component string
	part      string
	cfg       Config
	scope     *Scope
}

// resolve turns a spec node into a flat name list or a nested tree.
func (cr *classResolver) resolve(spec ClassSpec) classNode {
	switch s := spec.(type) {
	case nil:
		return classNode{}
	case ClassFunc:
		return cr.resolve(s(cr.scope))
	case Class:
		return classNode{names: strings.Fields(string(s))}
	case ClassMap:
		node := classNode{}
		for _, cond := range s {
			if cond.When {
				node.names = append(node.names, strings.Fields(cond.Name)...)
			}
		}
		return node
	case ClassList:
		if len(s) > 0 && allClassLists(s) {
			kids := make([]classNode, len(s))
			for i, item := range s {
				kids[i] = cr.resolve(item)
			}
			return classNode{nested: true, kids: kids}
		}
		node := classNode{}
		for _, item := range s {
			node.names = append(node.names, cr.flatten(item)...)
		}
		return node
	}
	return classNode{}
}

// allClassLists reports whether every element is itself a list, switching
// the list into structure-preserving mode (nested per-item class sets).
func allClassLists(items ClassList) bool {
	for _, item := range items {
		if _, ok := item.(ClassList); !ok {
			return false
		}
	}
	return true
}

// flatten resolves an element of a flat list and folds any nesting away.
func (cr *classResolver) flatten(spec ClassSpec) []string {
	node := cr.resolve(spec)
	if !node.nested {
		return node.names
	}
	var out []string
	for _, kid := range node.kids {
		out = append(out, flattenNode(kid)...)
	}
	return out
}

func flattenNode(node classNode) []string {
	if !node.nested {
		return node.names
	}
	var out []string
	for _, kid := range node.kids {
		out = append(out, flattenNode(kid)...)
	}
	return out
}

// buildClasses joins a deduplicated class list, optionally wrapped as a
// complete class attribute. An empty list yields "" either way.
func buildClasses(names []string, wrap bool, escape func(string) string) string {
	joined := strings.Join(dedupeClasses(names), " ")
	if joined == "" {
		return ""
	}
	if wrap {
		return `class="` + escape(joined) + `"`
	}
	return joined
}

// Classnames resolves every named part of parts to its class string.
// When wrap is set, non-empty results are wrapped as class="...".
//
// A part whose spec resolves to a nested tree rather than a flat list is
// a definition error that fails the entire call with ErrMalformedSpec,
// unlike Attributes, which degrades per node. Each part passes through
// the per-part hook and the complete map through the per-component hook.
func Classnames(component string, parts map[string]ClassSpec, scope *Scope, wrap bool, cfg Config) (map[string]string, error) {
	cfg = cfg.norm()
	out := make(map[string]string, len(parts))
	for _, part := range sortedKeys(parts) {
		cr := &classResolver{component: component, part: part, cfg: cfg, scope: scope}
		node := cr.resolve(parts[part])
		if node.nested {
			cfg.Logger.Warn().
				Str("component", component).
				Str("part", part).
				Msg("class spec resolved to a nested list where a flat list is required")
			return nil, fmt.Errorf("%w: %s part %q class spec is not a flat list",
				ErrMalformedSpec, component, part)
		}
		built := buildClasses(node.names, wrap, cfg.Escape)
		out[part] = cfg.hookString("classpart/"+component+"/"+part, built)
	}
	if hooked, ok := cfg.Hook("classes/"+component, out).(map[string]string); ok {
		return hooked, nil
	}
	return out, nil
}

// ResolveClassList resolves a class spec to its flat, deduplicated name
// list without part bookkeeping. Nested structure is flattened. Used for
// the external class sources fed into Attributes.
func ResolveClassList(spec ClassSpec, scope *Scope, cfg Config) []string {
	cr := &classResolver{cfg: cfg.norm(), scope: scope}
	return dedupeClasses(cr.flatten(spec))
}
