package veneer

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// resolvePart runs the resolver for a single part with default config.
func resolvePart(t *testing.T, spec AttrSpec, extra []string) Rendered {
	t.Helper()
	ar := &attrResolver{component: "test", part: "root", cfg: Config{}.norm(), scope: nil}
	return ar.resolve(spec, extra)
}

func TestAttributesBooleanFlag(t *testing.T) {
	got := Attributes("test", map[string]AttrSpec{"root": Flag("hidden")}, nil, nil, Config{})
	if s := got["root"].String(); s != "hidden" {
		t.Errorf(`Attributes(root: "hidden") = %q, want "hidden"`, s)
	}
}

func TestAttributesMapWithExternalClasses(t *testing.T) {
	parts := map[string]AttrSpec{
		"root": Attrs{
			{Name: "role", Value: String("alert")},
			{Name: "class", Value: String("a")},
		},
	}
	classes := map[string][]string{"root": {"b"}}
	got := Attributes("test", parts, nil, classes, Config{})
	want := `role="alert" class="a b"`
	if s := got["root"].String(); s != want {
		t.Errorf("Attributes() = %q, want %q", s, want)
	}
}

func TestAttributesClassDeduplication(t *testing.T) {
	parts := map[string]AttrSpec{
		"root": Attrs{
			{Name: "class", Value: String("a b")},
			{Name: "class", Value: String("b c")},
		},
	}
	classes := map[string][]string{"root": {"a d"}}
	got := Attributes("test", parts, nil, classes, Config{})
	want := `class="a b c d"`
	if s := got["root"].String(); s != want {
		t.Errorf("Attributes() = %q, want %q (first-seen order, deduplicated)", s, want)
	}
}

func TestAttributesFlatList(t *testing.T) {
	parts := map[string]AttrSpec{
		"root": AttrList{
			Attrs{{Name: "id", Value: Int(1)}},
			Flag("disabled"),
		},
	}
	got := Attributes("test", parts, nil, nil, Config{})
	want := `id="1" disabled`
	if s := got["root"].String(); s != want {
		t.Errorf("Attributes() = %q, want %q", s, want)
	}
}

func TestAttributesNestedPerItem(t *testing.T) {
	parts := map[string]AttrSpec{
		"item": AttrList{
			AttrList{Attrs{{Name: "data-i", Value: Int(0)}}},
			AttrList{Attrs{{Name: "data-i", Value: Int(1)}}},
		},
	}
	got := Attributes("test", parts, nil, nil, Config{})
	want := RenderedList(
		RenderedString(`data-i="0"`),
		RenderedString(`data-i="1"`),
	)
	if !got["item"].Equal(want) {
		t.Errorf("Attributes(item) = %+v, want congruent tree %+v", got["item"], want)
	}
	if got["item"].IsLeaf() {
		t.Error("nested part collapsed to a leaf, want preserved structure")
	}
}

func TestAttributesValueRendering(t *testing.T) {
	tests := []struct {
		name string
		spec AttrSpec
		want string
	}{
		{
			"true renders bare",
			Attrs{{Name: "required", Value: Bool(true)}},
			"required",
		},
		{
			"false drops",
			Attrs{{Name: "required", Value: Bool(false)}},
			"",
		},
		{
			"null drops",
			Attrs{{Name: "title", Value: Null}},
			"",
		},
		{
			"empty string drops",
			Attrs{{Name: "title", Value: String("")}},
			"",
		},
		{
			"positional flag",
			Attrs{{Name: "", Value: String("checked")}},
			"checked",
		},
		{
			"last value wins first position",
			Attrs{
				{Name: "data-x", Value: String("old")},
				{Name: "data-y", Value: String("y")},
				{Name: "data-x", Value: String("new")},
			},
			`data-x="new" data-y="y"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePart(t, tt.spec, nil).String(); got != tt.want {
				t.Errorf("resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttributesEscaping(t *testing.T) {
	spec := Attrs{{Name: "title", Value: String(`say "hi" & <go>`)}}
	got := resolvePart(t, spec, nil).String()
	if strings.ContainsAny(strings.TrimPrefix(got, `title="`), `<>`) {
		t.Errorf("resolve() = %q, contains unescaped angle brackets", got)
	}
	if strings.Contains(got, `"hi"`) {
		t.Errorf("resolve() = %q, contains unescaped quotes", got)
	}
	if !strings.HasPrefix(got, `title="`) {
		t.Errorf("resolve() = %q, want title=\"...\"", got)
	}
}

func TestAttributesFuncSpec(t *testing.T) {
	scope := &Scope{Props: map[string]Value{"kind": String("warning")}}
	parts := map[string]AttrSpec{
		"root": AttrFunc(func(s *Scope) AttrSpec {
			return Attrs{{Name: "data-kind", Value: s.Prop("kind")}}
		}),
	}
	got := Attributes("test", parts, scope, nil, Config{})
	want := `data-kind="warning"`
	if s := got["root"].String(); s != want {
		t.Errorf("Attributes() = %q, want %q", s, want)
	}
}

func TestAttributesMixedShapeIsMalformed(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)
	cfg := Config{Logger: &logger}

	parts := map[string]AttrSpec{
		"item": AttrList{
			AttrList{Attrs{{Name: "a", Value: Int(1)}}},
			AttrList{AttrList{Attrs{{Name: "b", Value: Int(2)}}}},
		},
	}
	got := Attributes("test", parts, nil, nil, cfg)
	if s := got["item"].String(); s != "" {
		t.Errorf("Attributes(mixed) = %q, want empty (never partial output)", s)
	}
	if !got["item"].IsLeaf() {
		t.Error("malformed node should resolve to an empty leaf")
	}
	if !strings.Contains(buf.String(), "mixes string and list children") {
		t.Errorf("expected a malformed-spec warning, log = %q", buf.String())
	}
}

func TestAttributesNestedListFlattensInFlatContext(t *testing.T) {
	// A nested list alongside a scalar keeps the whole list in flat mode.
	parts := map[string]AttrSpec{
		"root": AttrList{
			Flag("disabled"),
			AttrList{Attrs{{Name: "id", Value: Int(3)}}},
		},
	}
	got := Attributes("test", parts, nil, nil, Config{})
	want := `disabled id="3"`
	if s := got["root"].String(); s != want {
		t.Errorf("Attributes() = %q, want %q", s, want)
	}
}

func TestAttributesClassListValue(t *testing.T) {
	// A list-valued class entry contributes each item as a class name.
	spec := Attrs{{Name: "class", Value: List(String("a"), String("b"))}}
	got := resolvePart(t, spec, nil).String()
	want := `class="a b"`
	if got != want {
		t.Errorf("resolve() = %q, want %q", got, want)
	}
}

func TestAttributesPartHook(t *testing.T) {
	cfg := Config{
		Hook: func(name string, value any, context ...any) any {
			if name == "attrpart/test/root" {
				return value.(string) + ` data-hooked="1"`
			}
			return value
		},
	}
	parts := map[string]AttrSpec{"root": Attrs{{Name: "role", Value: String("alert")}}}
	got := Attributes("test", parts, nil, nil, cfg)
	want := `role="alert" data-hooked="1"`
	if s := got["root"].String(); s != want {
		t.Errorf("Attributes() = %q, want %q", s, want)
	}
}

func TestAttributesWholeMapHook(t *testing.T) {
	called := false
	cfg := Config{
		Hook: func(name string, value any, context ...any) any {
			if name == "attrs/test" {
				called = true
				m := value.(map[string]Rendered)
				m["extra"] = RenderedString("injected")
				return m
			}
			return value
		},
	}
	got := Attributes("test", map[string]AttrSpec{"root": Flag("hidden")}, nil, nil, cfg)
	if !called {
		t.Fatal("whole-map hook not called")
	}
	if got["extra"].String() != "injected" {
		t.Errorf("hook result not used, got %v", got)
	}
}
