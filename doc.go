// Package veneer is a server-side rendering helper for CMS component
// theming: typed props and slots for reusable UI components, and a
// recursive merge algorithm that resolves heterogeneous attribute and
// class-name definitions into one canonical, escaped attribute string per
// named template part.
//
// # Core Concepts
//
// A component declares a prop schema, a slot schema, and per-part
// attribute/class specs at construction time; at render time the stores
// resolve current values and the mergers produce final strings:
//
//	c := veneer.New("notice", cfg)
//	c.SetProps(map[string]veneer.Value{"kind": veneer.String("warning")})
//	c.DefineProps(veneer.PropDef{Name: "kind", Default: veneer.String("info")})
//	c.DefineAttributes("root", veneer.Attrs{
//	    {Name: "role", Value: veneer.String("alert")},
//	    {Name: "class", Value: veneer.String("notice")},
//	})
//	attrs := c.UseAttributes() // {"root": `role="alert" class="notice"`}
//
// Values are an explicit tagged union (Value) rather than any-typed data:
// the shape of every prop, attribute value, and spec node is decided once
// at ingestion and resolution dispatches on the tag.
//
// # Parts and Specs
//
// A part is a named sub-element of the component's markup (root, input,
// item) that receives its own attribute string. The spec a component
// author writes for a part is declarative and composable: a bare flag, an
// ordered attribute set, a list to flatten, a list of per-item sets to
// preserve, or a function of the resolved scope. Class specs mirror the
// same shapes with conditional-class support.
//
// Lists of per-item sets resolve to structurally congruent trees instead
// of flat strings, which supports repeated sub-elements each carrying its
// own attributes:
//
//	c.DefineAttributes("item", veneer.AttrList{
//	    veneer.Attrs{{Name: "data-i", Value: veneer.Int(0)}},
//	    veneer.Attrs{{Name: "data-i", Value: veneer.Int(1)}},
//	})
//	// → ["data-i=\"0\"", "data-i=\"1\""]
//
// # Composition and Overrides
//
// UseAttributes reconciles up to four sources per part (component
// attributes, component classes, prop-level attribute overrides, and
// prop-level class overrides), with prop-level resets replacing the
// component sources entirely. class fragments always merge into a single
// deduplicated, first-seen-order class attribute, and a prop-supplied id
// wins and renders first on the root part.
//
// # Extensibility
//
// The host CMS injects its collaborators through Config: a filter Hook
// (identity by default), the attribute escaper (templ's by default), a
// zerolog logger for malformed-spec warnings, and the active theme
// namespace. There is no process-global state; configuration is threaded
// through construction.
//
// # Error Model
//
// Schema errors (missing required props, type mismatches, failed
// validators, slot kind mismatches) are fatal to component construction
// and surface to the caller. Malformed attribute/class specs are not:
// the offending node resolves to empty output with a logged warning and
// rendering continues. The Render entry point converts any remaining
// error or panic into a placeholder: a diagnostic box for authenticated
// debug contexts, an inert comment marker otherwise. Rendering never
// halts the process.
//
// # Registration
//
// Components are registered explicitly with a Registry that carries the
// shared configuration:
//
//	reg := veneer.NewRegistry(cfg)
//	reg.Register("notice", newNotice)
//	c, err := reg.Build("notice")
//
// Registration happens once at startup; name collisions panic there, not
// during requests.
package veneer
