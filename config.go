package veneer

import (
	"github.com/a-h/templ"
	"github.com/rs/zerolog"
)

// Hook is the extension point the host CMS injects to filter values as
// they flow through resolution. It is called synchronously with a
// hook-point name, the current value, and optional extra context, and must
// return the (possibly transformed) value. Hooks must not touch component
// state; a nil hook acts as identity.
//
// Hook-point names, in call order:
//
//	prop/<component>/<prop>       prop value, before type/validator checks
//	slot/<component>/<slot>       each slot entry on resolve
//	attrpart/<component>/<part>   one part's built attribute string
//	attrs/<component>             the complete part→attributes map
//	classpart/<component>/<part>  one part's built class string
//	classes/<component>           the complete part→classes map
//	template/<component>          template path selection
type Hook func(name string, value any, context ...any) any

// Config carries the host-provided collaborators and settings a component
// is constructed with. There is no process-global state: the namespace,
// hook, escaper, and logger are all threaded through explicitly.
type Config struct {
	// Namespace is the active component namespace, used for theme
	// template lookup (e.g. "mytheme").
	Namespace string

	// Debug enables detailed diagnostic output for render failures.
	Debug bool

	// Authenticated marks the render context as an authenticated one.
	// Diagnostic boxes are only emitted when both Debug and Authenticated
	// are set; otherwise failures render as an inert comment marker.
	Authenticated bool

	// Hook filters values at the documented hook points. Nil is identity.
	Hook Hook

	// Escape HTML-attribute-escapes a string. Defaults to
	// templ.EscapeString when nil.
	Escape func(string) string

	// Logger receives malformed-spec warnings and render diagnostics.
	// Nil is silent.
	Logger *zerolog.Logger

	// EncoderKey, when set, enables prop-state encoding
	// (Component.StateAttribute) with this key.
	EncoderKey []byte
}

// norm fills in the identity/no-op defaults so callers never nil-check.
func (c Config) norm() Config {
	if c.Hook == nil {
		c.Hook = func(name string, value any, context ...any) any { return value }
	}
	if c.Escape == nil {
		c.Escape = templ.EscapeString
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	return c
}

// hookString applies the hook to a string value, keeping the previous
// value when the hook returns a non-string.
func (c Config) hookString(name, value string, context ...any) string {
	out := c.Hook(name, value, context...)
	if s, ok := out.(string); ok {
		return s
	}
	return value
}

// hookValue applies the hook to a Value, ingesting native returns.
func (c Config) hookValue(name string, value Value, context ...any) Value {
	out := c.Hook(name, value, context...)
	if v, ok := out.(Value); ok {
		return v
	}
	return FromNative(out)
}

// Scope is the resolved view a spec function sees: the component's
// resolved props and slot content at resolution time.
type Scope struct {
	Props map[string]Value
	Slots map[string]string
}

// Prop returns a resolved prop value from the scope, or Null.
func (s *Scope) Prop(name string) Value {
	if s == nil {
		return Null
	}
	return s.Props[name]
}

// Slot returns resolved slot content from the scope, or "".
func (s *Scope) Slot(name string) string {
	if s == nil {
		return ""
	}
	return s.Slots[normalizeSlotName(name)]
}
