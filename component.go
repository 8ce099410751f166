package veneer

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/veneer/lib/encoding"
)

// Component ties the stores together for one rendered component instance:
// its prop and slot schemas, its per-part attribute and class specs, and
// the render entry point. Stores are created at construction and are
// private to the instance; nothing is shared across concurrent renders as
// long as an instance is not shared.
type Component struct {
	name      string
	cfg       Config
	sensitive bool

	props      *PropSet
	slots      *SlotSet
	attrSpecs  map[string]AttrSpec
	classSpecs map[string]ClassSpec

	encoder *encoding.Encoder
}

// New creates a component with the given name and configuration.
//
// Panics if Config.EncoderKey is set but unusable; state encoding is a
// construction-time decision, not a render-time one.
func New(name string, cfg Config) *Component {
	cfg = cfg.norm()
	c := &Component{
		name:       name,
		cfg:        cfg,
		props:      newPropSet(name, cfg),
		slots:      newSlotSet(name, cfg),
		attrSpecs:  make(map[string]AttrSpec),
		classSpecs: make(map[string]ClassSpec),
	}
	if len(cfg.EncoderKey) > 0 {
		enc, err := encoding.NewEncoder(cfg.EncoderKey)
		if err != nil {
			panic(fmt.Sprintf("veneer: failed to create encoder: %v", err))
		}
		c.encoder = enc
	}
	return c
}

// Name returns the component's name.
func (c *Component) Name() string { return c.name }

// Sensitive marks the component's encoded state as sensitive, switching
// StateAttribute from signed to encrypted encoding.
func (c *Component) Sensitive() *Component {
	c.sensitive = true
	return c
}

// Props returns the component's prop store.
func (c *Component) Props() *PropSet { return c.props }

// Slots returns the component's slot store.
func (c *Component) Slots() *SlotSet { return c.slots }

// SetProps stores caller-supplied prop values. Must run before
// DefineProps; afterwards props are immutable.
func (c *Component) SetProps(values map[string]Value) error {
	return c.props.Set(values)
}

// DefineProps declares the prop schema and immediately validates all
// current values. Schema errors abort component construction; callers
// typically render a placeholder instead.
func (c *Component) DefineProps(defs ...PropDef) error {
	return c.props.Define(defs...)
}

// Computed registers a lazy derived prop.
func (c *Component) Computed(name string, fn func(*PropSet) Value) {
	c.props.Computed(name, fn)
}

// Prop returns a resolved or computed prop value, or fallback.
func (c *Component) Prop(name string, fallback Value) Value {
	return c.props.Get(name, fallback)
}

// DefineSlots declares the slot schema.
func (c *Component) DefineSlots(defs ...SlotDef) {
	c.slots.Define(defs...)
}

// SetSlot replaces a slot's content.
func (c *Component) SetSlot(name string, content SlotContent) error {
	return c.slots.Set(name, content)
}

// AppendSlot appends to a slot's content.
func (c *Component) AppendSlot(name string, content SlotContent) error {
	return c.slots.Append(name, content)
}

// Slot resolves a slot with an optional scope, falling back when unset.
func (c *Component) Slot(name, fallback string, scope []Field) string {
	return c.slots.Get(name, fallback, scope)
}

// HasSlot reports whether the slot has content.
func (c *Component) HasSlot(name string) bool { return c.slots.Has(name) }

// IsSlotEmpty reports whether the slot is unset or resolves to blank.
func (c *Component) IsSlotEmpty(name string) bool { return c.slots.IsEmpty(name) }

// IsSlotActive reports whether the slot has non-empty content.
func (c *Component) IsSlotActive(name string) bool { return c.slots.IsActive(name) }

// DefineAttributes declares the attribute spec for a named part.
func (c *Component) DefineAttributes(part string, spec AttrSpec) {
	c.attrSpecs[part] = spec
}

// DefineClasses declares the class spec for a named part.
func (c *Component) DefineClasses(part string, spec ClassSpec) {
	c.classSpecs[part] = spec
}

// Scope builds the resolved view spec functions evaluate against.
func (c *Component) Scope() *Scope {
	return &Scope{
		Props: c.props.ResolveMap(),
		Slots: c.slots.Resolve(),
	}
}

// Attributes resolves the component's declared attribute specs.
func (c *Component) Attributes() map[string]Rendered {
	return Attributes(c.name, c.attrSpecs, c.Scope(), nil, c.cfg)
}

// Classnames resolves the component's declared class specs. When wrap is
// set, non-empty parts wrap as class="...".
func (c *Component) Classnames(wrap bool) (map[string]string, error) {
	return Classnames(c.name, c.classSpecs, c.Scope(), wrap, c.cfg)
}

// UseAttributes produces the final composed attribute output per part:
// component-declared attributes and classes, prop-level attribute and
// class overrides, and prop-level resets, with the id prop winning first
// position on the root part.
//
// A malformed class spec fails only the class source (logged); attribute
// composition still proceeds, matching the non-fatal malformed-spec rule.
func (c *Component) UseAttributes() map[string]Rendered {
	scope := c.Scope()

	attrs := Attributes(c.name, c.attrSpecs, scope, nil, c.cfg)
	classes, err := Classnames(c.name, c.classSpecs, scope, true, c.cfg)
	if err != nil {
		classes = nil
	}

	in := ComposeInput{
		Component:    c.name,
		Attributes:   attrs,
		Classes:      classes,
		PropAttrs:    c.resolvePartAttrs(c.props.Get("attributes", Null), scope),
		PropClasses:  c.resolvePartClasses(c.props.Get("classes", Null), scope),
		ResetAttrs:   c.resolvePartAttrs(c.props.Get("resetAttributes", Null), scope),
		ResetClasses: c.resolvePartClasses(c.props.Get("resetClasses", Null), scope),
		ID:           c.props.Get("id", Null).Str(),
	}
	return ComposeAttributes(in, c.cfg)
}

// resolvePartAttrs ingests and resolves a prop-supplied per-part
// attribute override. A map value is part-keyed; any other non-null
// value targets the root part.
func (c *Component) resolvePartAttrs(v Value, scope *Scope) map[string]Rendered {
	specs := make(map[string]AttrSpec)
	switch v.Kind() {
	case KindNull:
		return nil
	case KindMap:
		for _, f := range v.Fields() {
			specs[f.Key] = AttrSpecFromValue(f.Val)
		}
	default:
		specs["root"] = AttrSpecFromValue(v)
	}
	out := make(map[string]Rendered, len(specs))
	for part, spec := range specs {
		ar := &attrResolver{component: c.name, part: part, cfg: c.cfg, scope: scope}
		out[part] = ar.resolve(spec, nil)
	}
	return out
}

// resolvePartClasses ingests and resolves a prop-supplied per-part class
// override to wrapped class attributes. A map value is part-keyed; any
// other non-null value targets the root part.
func (c *Component) resolvePartClasses(v Value, scope *Scope) map[string]string {
	specs := make(map[string]ClassSpec)
	switch v.Kind() {
	case KindNull:
		return nil
	case KindMap:
		for _, f := range v.Fields() {
			specs[f.Key] = ClassSpecFromValue(f.Val)
		}
	default:
		specs["root"] = ClassSpecFromValue(v)
	}
	out := make(map[string]string, len(specs))
	for part, spec := range specs {
		names := ResolveClassList(spec, scope, c.cfg)
		out[part] = buildClasses(names, true, c.cfg.Escape)
	}
	return out
}

// Render is the top-level render entry point. It clears the computed
// cache for the new render pass, then renders the view. Errors and panics
// anywhere in the pipeline become a placeholder: a diagnostic box when
// debug mode and an authenticated context are both active, otherwise an
// inert comment marker. Rendering never halts the process.
func (c *Component) Render(view func(ctx context.Context) (templ.Component, error)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c.props.ResetComputed()

		var body templ.Component
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("veneer: %s render panicked: %v", c.name, r)
				}
			}()
			body, err = view(ctx)
			return err
		}()
		if err == nil && body != nil {
			err = func() (rerr error) {
				defer func() {
					if r := recover(); r != nil {
						rerr = fmt.Errorf("veneer: %s render panicked: %v", c.name, r)
					}
				}()
				return body.Render(ctx, w)
			}()
		}
		if err != nil {
			c.cfg.Logger.Debug().Str("component", c.name).Err(err).Msg("render failed")
			return c.writeFailure(w, err)
		}
		return nil
	})
}

// writeFailure emits the placeholder output for a failed render.
func (c *Component) writeFailure(w io.Writer, err error) error {
	if c.cfg.Debug && c.cfg.Authenticated {
		_, werr := fmt.Fprintf(w,
			`<div class="veneer-error"><strong>%s</strong><pre>%s</pre></div>`,
			c.cfg.Escape(c.name), c.cfg.Escape(err.Error()))
		return werr
	}
	_, werr := fmt.Fprintf(w, `<!-- veneer: component %s failed to render -->`, c.cfg.Escape(c.name))
	return werr
}

// StateAttribute encodes the resolved props as a data attribute for
// client round-trips: signed by default, encrypted when the component is
// Sensitive. Returns "" when no encoder key was configured.
func (c *Component) StateAttribute() (string, error) {
	if c.encoder == nil {
		return "", nil
	}
	state := make(map[string]any)
	for _, f := range c.props.Resolve() {
		state[f.Key] = f.Val.ToNative()
	}
	encoded, err := c.encoder.Encode(state, c.sensitive)
	if err != nil {
		return "", err
	}
	return `data-veneer-state="` + c.cfg.Escape(encoded) + `"`, nil
}

// DecodeState reverses StateAttribute's encoding back into prop values.
func (c *Component) DecodeState(encoded string) (map[string]Value, error) {
	if c.encoder == nil {
		return nil, fmt.Errorf("%w: no encoder configured for %s", ErrNotFound, c.name)
	}
	state, err := c.encoder.Decode(encoded, c.sensitive)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(state))
	for k, v := range state {
		out[k] = FromNative(v)
	}
	return out, nil
}
