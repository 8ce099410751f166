package veneer

import (
	"fmt"
	"io/fs"
	"path"
)

// TemplatePaths configures where ResolveTemplate looks for a component's
// template file.
type TemplatePaths struct {
	// ThemeDir is the theme override root; probed as
	// <ThemeDir>/<namespace>/<component>.templ.html.
	ThemeDir string
	// LocalDir is the component-local root; probed as
	// <LocalDir>/<component>.templ.html.
	LocalDir string
	// Fallback is an explicit last-resort path, returned without probing.
	Fallback string
}

// ResolveTemplate selects the template path for a component: a hook
// override wins, then the theme override path, then the local path, then
// the explicit fallback. Returns ErrNotFound when nothing resolves.
// Selection is pure path probing over fsys; executing the template is the
// host's concern.
func ResolveTemplate(fsys fs.FS, component string, paths TemplatePaths, cfg Config) (string, error) {
	cfg = cfg.norm()

	if p := cfg.hookString("template/"+component, ""); p != "" {
		return p, nil
	}

	file := component + ".templ.html"
	if paths.ThemeDir != "" {
		candidate := path.Join(paths.ThemeDir, cfg.Namespace, file)
		if _, err := fs.Stat(fsys, candidate); err == nil {
			return candidate, nil
		}
	}
	if paths.LocalDir != "" {
		candidate := path.Join(paths.LocalDir, file)
		if _, err := fs.Stat(fsys, candidate); err == nil {
			return candidate, nil
		}
	}
	if paths.Fallback != "" {
		return paths.Fallback, nil
	}
	return "", fmt.Errorf("%w: no template for component %q", ErrNotFound, component)
}
