package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved stylesheet.
type Theme struct {
	Name    string
	Path    string // Empty for bundled themes
	CSS     string // With imports inlined
	Bundled bool
}

// Resolve finds a theme by name, preferring a user file in themesDir over the
// bundled theme of the same name. Unknown names fall back to the default theme
// and report found = false.
func Resolve(name, themesDir string) (theme *Theme, found bool, err error) {
	if name == "" {
		name = DefaultThemeName
	}

	if themesDir != "" {
		p := filepath.Join(themesDir, name+".css")
		if _, statErr := os.Stat(p); statErr == nil {
			t, err := NewTheme(name, p)
			if err == nil {
				return t, true, nil
			}
			return bundled(name), IsEmbeddedTheme(name), err
		}
	}

	if IsEmbeddedTheme(name) {
		return bundled(name), true, nil
	}
	return bundled(DefaultThemeName), false, nil
}

func bundled(name string) *Theme {
	css, ok := GetEmbeddedTheme(name)
	if !ok {
		name = DefaultThemeName
		css, _ = GetEmbeddedTheme(name)
	}
	return &Theme{
		Name:    name,
		CSS:     ProcessImports(css, "", nil),
		Bundled: true,
	}
}

// NewTheme loads a CSS file, inlining its @import statements.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Theme{
		Name: name,
		Path: path,
		CSS:  ProcessImports(string(data), filepath.Dir(path), nil),
	}, nil
}

// ProcessImports inlines @import statements in css. Relative paths resolve
// against baseDir; missing files fall back to bundled partials and themes.
// seen guards against import cycles.
func ProcessImports(css, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(stmt string) string {
		m := importRegex.FindStringSubmatch(stmt)
		if len(m) < 2 {
			return stmt
		}
		target := m[1]

		full := target
		if !filepath.IsAbs(full) {
			full = filepath.Join(baseDir, target)
		}
		if seen[full] {
			return "/* circular import prevented: " + target + " */"
		}
		seen[full] = true

		if baseDir != "" || filepath.IsAbs(target) {
			if data, err := os.ReadFile(full); err == nil {
				return "/* imported: " + target + " */\n" +
					ProcessImports(string(data), filepath.Dir(full), seen)
			}
		}

		base := filepath.Base(target)
		if strings.HasPrefix(base, "_") {
			if partial, ok := GetEmbeddedPartial(base); ok {
				return "/* imported (embedded): " + target + " */\n" + partial
			}
		}
		if embedded, ok := GetEmbeddedTheme(strings.TrimSuffix(base, ".css")); ok {
			return "/* imported (embedded): " + target + " */\n" + ProcessImports(embedded, "", seen)
		}
		return "/* import failed: " + target + " */"
	})
}

// ListThemes returns bundled theme names followed by any additional user themes.
func ListThemes(themesDir string) []string {
	themes := ListEmbeddedThemes()
	if themesDir == "" {
		return themes
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return themes
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".css" {
			continue
		}
		name = strings.TrimSuffix(name, ".css")
		if !slices.Contains(themes, name) {
			themes = append(themes, name)
		}
	}
	return themes
}
