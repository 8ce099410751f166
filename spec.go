package veneer

import "github.com/a-h/templ"

// AttrSpec is the declarative definition a component author writes for one
// part's attributes. It is a small sum type; resolution dispatches on the
// concrete form:
//
//	Flag      a bare boolean attribute ("disabled")
//	Attrs     ordered name→value pairs
//	AttrList  a list: flattened into one attribute set, unless every
//	          element is itself a list, in which case the list structure
//	          is preserved and each element resolves on its own (per-item
//	          attribute sets for repeated sub-elements)
//	AttrFunc  deferred: invoked with the resolved scope, result recursed
type AttrSpec interface {
	isAttrSpec()
}

// Flag is a boolean attribute rendered as the bare attribute name.
type Flag string

func (Flag) isAttrSpec() {}

// Attr is one attribute name/value pair. A true bool value renders as a
// bare flag, false and null drop the attribute entirely, anything else
// renders as name="escaped value". The name "class" is special: its value
// joins the part's class list instead of rendering directly. An empty
// Name marks a positional flag whose name is the value's text.
type Attr struct {
	Name  string
	Value Value
}

// Attrs is the ordered map shape of an attribute spec.
type Attrs []Attr

func (Attrs) isAttrSpec() {}

// AttrList is the list shape of an attribute spec.
type AttrList []AttrSpec

func (AttrList) isAttrSpec() {}

// AttrFunc is a deferred attribute spec evaluated against the resolved
// props and slots.
type AttrFunc func(*Scope) AttrSpec

func (AttrFunc) isAttrSpec() {}

// ClassSpec is the parallel declarative definition for a part's class
// names:
//
//	Class      one unconditional class name
//	ClassMap   ordered conditional entries, included only when truthy
//	ClassList  a list: flattened into one class list, unless every element
//	           is itself a ClassList (nested per-item class sets)
//	ClassFunc  deferred: invoked with the resolved scope, result recursed
type ClassSpec interface {
	isClassSpec()
}

// Class is a single unconditional class name.
type Class string

func (Class) isClassSpec() {}

// ClassCond is one conditional class entry.
type ClassCond struct {
	Name string
	When bool
}

// ClassMap is the ordered conditional-class shape.
type ClassMap []ClassCond

func (ClassMap) isClassSpec() {}

// ClassList is the list shape of a class spec.
type ClassList []ClassSpec

func (ClassList) isClassSpec() {}

// ClassFunc is a deferred class spec.
type ClassFunc func(*Scope) ClassSpec

func (ClassFunc) isClassSpec() {}

// AttrSpecFromValue ingests a prop-supplied Value tree (the "attributes"
// and "resetAttributes" props) into an AttrSpec. The shape is decided
// here, once; resolution never re-probes it. Null ingests to nil.
func AttrSpecFromValue(v Value) AttrSpec {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindString:
		return Flag(v.Str())
	case KindMap:
		attrs := make(Attrs, 0, len(v.Fields()))
		for _, f := range v.Fields() {
			attrs = append(attrs, Attr{Name: f.Key, Value: f.Val})
		}
		return attrs
	case KindList:
		items := make(AttrList, 0, len(v.Items()))
		for _, item := range v.Items() {
			if spec := AttrSpecFromValue(item); spec != nil {
				items = append(items, spec)
			}
		}
		return items
	}
	// Bare scalars in list positions act as flags named by their text.
	return Flag(v.String())
}

// ClassSpecFromValue ingests a prop-supplied Value tree (the "classes"
// and "resetClasses" props) into a ClassSpec. Map entries become
// conditional classes keyed by their value's truthiness; list entries are
// unconditional.
func ClassSpecFromValue(v Value) ClassSpec {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindString:
		return Class(v.Str())
	case KindMap:
		conds := make(ClassMap, 0, len(v.Fields()))
		for _, f := range v.Fields() {
			conds = append(conds, ClassCond{Name: f.Key, When: f.Val.Truthy()})
		}
		return conds
	case KindList:
		items := make(ClassList, 0, len(v.Items()))
		for _, item := range v.Items() {
			if spec := ClassSpecFromValue(item); spec != nil {
				items = append(items, spec)
			}
		}
		return items
	}
	return Class(v.String())
}

// TemplAttributes converts an ordered attribute spec into templ.Attributes
// for templates that spread attributes directly instead of consuming the
// resolved string. Bool values pass through (templ renders true as a bare
// flag and drops false), null drops, other values render as text.
func TemplAttributes(attrs Attrs) templ.Attributes {
	out := templ.Attributes{}
	for _, a := range attrs {
		switch {
		case a.Value.IsNull():
			continue
		case a.Value.Kind() == KindBool:
			out[a.Name] = a.Value.IsTrue()
		default:
			out[a.Name] = a.Value.String()
		}
	}
	return out
}
