package veneer

import (
	"regexp"
	"strings"
)

// ComposeInput bundles the per-part sources the compositor reconciles:
// component-defined attributes and classes, prop-supplied overrides, and
// prop-supplied full resets.
type ComposeInput struct {
	Component string

	// Attributes and Classes are the component-declared sources, already
	// resolved (Classes wrapped as class="...").
	Attributes map[string]Rendered
	Classes    map[string]string

	// PropAttrs and PropClasses are the prop-level overrides, merged on
	// top of the component sources.
	PropAttrs   map[string]Rendered
	PropClasses map[string]string

	// ResetAttrs replaces a part's component-defined attributes entirely,
	// still merged with the matching ResetClasses entry.
	ResetAttrs   map[string]Rendered
	ResetClasses map[string]string

	// ID, when non-empty, overrides any id on the root part and is
	// positioned as the first attribute.
	ID string
}

// ComposeAttributes produces the final per-part attribute output.
//
// Per part: a reset entry bypasses the component-defined sources;
// otherwise component attributes, component classes, prop attribute
// overrides, and prop class overrides merge recursively. Structured
// sources union per index with scalar siblings acting as fill values; at
// string leaves, each source's class="..." fragment is extracted and
// merged into one deduplicated class attribute while the remaining text
// concatenates whitespace-normalized. Finally a prop-supplied ID wins on
// the root part and is placed first.
func ComposeAttributes(in ComposeInput, cfg Config) map[string]Rendered {
	cfg = cfg.norm()

	parts := partNames(in)
	out := make(map[string]Rendered, len(parts))
	for _, part := range parts {
		var merged Rendered
		if reset, ok := in.ResetAttrs[part]; ok {
			sources := []Rendered{reset}
			if rc := in.ResetClasses[part]; rc != "" {
				sources = append(sources, RenderedString(rc))
			}
			merged = mergeRendered(cfg, in.Component, part, sources)
		} else {
			var sources []Rendered
			if a, ok := in.Attributes[part]; ok {
				sources = append(sources, a)
			}
			if c := in.Classes[part]; c != "" {
				sources = append(sources, RenderedString(c))
			}
			if pa, ok := in.PropAttrs[part]; ok {
				sources = append(sources, pa)
			}
			if pc := in.PropClasses[part]; pc != "" {
				sources = append(sources, RenderedString(pc))
			}
			if len(sources) == 0 {
				out[part] = RenderedString("")
				continue
			}
			merged = mergeRendered(cfg, in.Component, part, sources)
		}

		if part == "root" && in.ID != "" {
			flat := merged.collapse(cfg, in.Component, part)
			merged = RenderedString(applyID(flat, in.ID, cfg.Escape))
		}
		out[part] = merged
	}
	return out
}

func partNames(in ComposeInput) []string {
	seen := make(map[string]bool)
	collect := func(names []string) {
		for _, n := range names {
			seen[n] = true
		}
	}
	collect(sortedKeys(in.Attributes))
	collect(sortedKeys(in.Classes))
	collect(sortedKeys(in.PropAttrs))
	collect(sortedKeys(in.PropClasses))
	collect(sortedKeys(in.ResetAttrs))
	collect(sortedKeys(in.ResetClasses))
	return sortedKeys(seen)
}

// mergeRendered reconciles several resolved sources for one node. All-leaf
// nodes merge as strings. When any source is a tree, the trees union per
// index and leaf siblings repeat as fill values for every index.
func mergeRendered(cfg Config, component, part string, sources []Rendered) Rendered {
	if len(sources) == 1 {
		return sources[0]
	}

	width := 0
	for _, s := range sources {
		if !s.leaf && len(s.list) > width {
			width = len(s.list)
		}
	}
	if width == 0 {
		strs := make([]string, len(sources))
		for i, s := range sources {
			strs[i] = s.str
		}
		return RenderedString(mergeLeafStrings(strs))
	}

	kids := make([]Rendered, width)
	for i := 0; i < width; i++ {
		var childSources []Rendered
		for _, s := range sources {
			if s.leaf {
				childSources = append(childSources, s)
				continue
			}
			if i < len(s.list) {
				childSources = append(childSources, s.list[i])
			}
		}
		kids[i] = mergeRendered(cfg, component, part, childSources)
	}
	return Rendered{list: kids}
}

var (
	classAttrRe = regexp.MustCompile(`(?:^|\s)class="([^"]*)"`)
	idAttrRe    = regexp.MustCompile(`(?:^|\s)id="[^"]*"`)
)

// mergeLeafStrings merges attribute strings: each source's class fragment
// joins one deduplicated class attribute and the remaining text
// concatenates whitespace-normalized. The merged class attribute renders
// last. Class tokens come from already-escaped source strings, so no
// re-escaping happens here.
func mergeLeafStrings(sources []string) string {
	var classes []string
	var rest []string
	for _, s := range sources {
		for _, m := range classAttrRe.FindAllStringSubmatch(s, -1) {
			classes = append(classes, strings.Fields(m[1])...)
		}
		stripped := classAttrRe.ReplaceAllString(s, " ")
		if fields := strings.Fields(stripped); len(fields) > 0 {
			rest = append(rest, fields...)
		}
	}
	merged := strings.Join(rest, " ")
	if cls := strings.Join(dedupeClasses(classes), " "); cls != "" {
		if merged != "" {
			merged += " "
		}
		merged += `class="` + cls + `"`
	}
	return merged
}

// applyID strips any existing id attribute and prepends the escaped
// prop-supplied one, so the id always wins and renders first.
func applyID(s, id string, escape func(string) string) string {
	stripped := strings.Join(strings.Fields(idAttrRe.ReplaceAllString(s, " ")), " ")
	out := `id="` + escape(id) + `"`
	if stripped != "" {
		out += " " + stripped
	}
	return out
}
