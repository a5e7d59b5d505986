// Package view renders HTML pages from the templates directory. Pages are
// wrapped in layout.html with the shared partials; parsed templates are
// cached outside dev mode.
package view

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tsukino/go-hanbai/auth"
	"github.com/tsukino/go-hanbai/i18n"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver = func(r *http.Request) string { return i18n.LangFromContext(r.Context()) }
	// permission resolvers are set by the host app so templates can
	// show/hide actions without importing policy types
	canResolver     func(*http.Request, string, string) bool
	isAdminResolver func(*http.Request) bool
)

// SetLangResolver overrides how the UI language is derived from a request.
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetCanResolver sets the callback used by the "can" template func.
func SetCanResolver(f func(r *http.Request, resource, action string) bool) {
	if f != nil {
		canResolver = f
	}
}

// SetIsAdminResolver sets the callback used by the "isAdmin" template func.
func SetIsAdminResolver(f func(*http.Request) bool) {
	if f != nil {
		isAdminResolver = f
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears the template cache and base dir detection.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// Funcs returns the standard func map shared by every template.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		// can checks a profile-level permission (resource, action)
		"can": func(resource, action string) bool {
			if canResolver == nil {
				return false
			}
			return canResolver(r, resource, action)
		},
		"isAdmin": func() bool {
			if isAdminResolver == nil {
				return false
			}
			return isAdminResolver(r)
		},
		"yen":  FormatYen,
		"date": FormatDate,
		// dateInput formats a timestamp for an <input type="date"> value.
		"dateInput": func(v any) string {
			switch t := v.(type) {
			case time.Time:
				if t.IsZero() {
					return ""
				}
				return t.Format("2006-01-02")
			case *time.Time:
				if t == nil || t.IsZero() {
					return ""
				}
				return t.Format("2006-01-02")
			default:
				return ""
			}
		},
		// deref unwraps optional string references for comparisons.
		"deref": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
		"mul":  func(a, b float64) float64 { return a * b },
		"year": func() int { return time.Now().Year() },
		// dict builds a map from key-value pairs for sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// FormatYen renders an amount as a yen string with thousands separators.
// Fractions are dropped; the domain stores whole-yen amounts.
func FormatYen(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("¥")
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatDate renders a timestamp as YYYY/MM/DD; zero and nil values render
// as an empty string.
func FormatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006/01/02")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006/01/02")
	default:
		return ""
	}
}

// layoutBase walks upward from a template path to the directory holding
// layout.html, falling back to the template's own directory.
func layoutBase(mainPath string) string {
	d := filepath.Dir(mainPath)
	for {
		if fi, err := os.Stat(filepath.Join(d, "layout.html")); err == nil && !fi.IsDir() {
			return d
		}
		p := filepath.Dir(d)
		if p == d {
			return filepath.Dir(mainPath)
		}
		d = p
	}
}

// Render parses and executes a page template with the shared funcs.
// name is the path relative to the templates dir (e.g. "customers/index.html").
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		_, loggedIn := auth.UserIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
	}
	if _, exists := data["Path"]; !exists {
		data["Path"] = r.URL.Path
	}
	if _, exists := data["Flash"]; !exists {
		if f := PopFlash(w, r); f != nil {
			data["Flash"] = f
		}
	}

	key := name
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[key]
		tplCache.RUnlock()
		if ok && t != nil {
			// The funcs close over the request (language, permissions), so a
			// cached template must be re-bound per request.
			c, err := t.Clone()
			if err != nil {
				return err
			}
			return c.Funcs(Funcs(r)).Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}

	// Standalone documents (login, landing) skip the layout wrapper.
	contentBytes, _ := os.ReadFile(mainPath)
	useLayout := !bytes.Contains(bytes.ToLower(contentBytes), []byte("<!doctype"))

	root := layoutBase(mainPath)
	var t *template.Template
	var err error
	if useLayout {
		files := []string{filepath.Join(root, "layout.html"), mainPath}
		files = append(files, existingPartials(root)...)
		t, err = template.New("layout.html").Funcs(Funcs(r)).ParseFiles(files...)
	} else {
		files := []string{mainPath}
		files = append(files, existingPartials(root)...)
		t, err = template.New(filepath.Base(name)).Funcs(Funcs(r)).ParseFiles(files...)
	}
	if err != nil {
		return err
	}

	if t == nil {
		return errors.New("template not parsed")
	}
	if !devMode {
		// Cache a never-executed copy: html/template refuses to Clone a
		// template once it has been executed.
		if pristine, err := t.Clone(); err == nil {
			tplCache.Lock()
			tplCache.m[key] = pristine
			tplCache.Unlock()
		}
	}
	return t.Execute(w, data)
}

func existingPartials(root string) []string {
	names := []string{
		"nav.html",
		"flash.html",
		"page-header.html",
		"search-box.html",
		"errors-alert.html",
		"field-text.html",
		"field-textarea.html",
		"field-select.html",
		"field-date.html",
	}
	var files []string
	for _, n := range names {
		p := filepath.Join(root, "partials", n)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			files = append(files, p)
		}
	}
	return files
}
