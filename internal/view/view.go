// Package view renders HTML templates with a process-wide parse cache, in
// the style of a server-rendered app: templates live under ./templates and
// get a FuncMap carrying i18n and currency helpers.
package view

import (
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/woodworkpro/woodwork-server/internal/currency"
	"github.com/woodworkpro/woodwork-server/internal/i18n"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	// Detect the templates directory whether running from the repo root or a
	// subdir (e.g. cmd/server, or a package test).
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the standard func map: i18n lookup for the given language
// plus formatting helpers.
func Funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"pkr":  func(amount float64) string { return currency.PKR(amount) },
		"date": func(t time.Time) string { return t.Format("1/2/2006") },
	}
}

// Render executes the named template for the given language. Parsed
// templates are cached per name+language; DEV=1 bypasses the cache.
func Render(w io.Writer, lang, name string, data any) error {
	once.Do(detectBase)
	key := lang + "|" + name
	dev := os.Getenv("DEV") == "1"

	tplCache.RLock()
	tpl, ok := tplCache.m[key]
	tplCache.RUnlock()
	if !ok || dev {
		var err error
		tpl, err = template.New(name).Funcs(Funcs(lang)).ParseFiles(filepath.Join(baseDir, name))
		if err != nil {
			return errors.Wrapf(err, "parse template %s", name)
		}
		if !dev {
			tplCache.Lock()
			tplCache.m[key] = tpl
			tplCache.Unlock()
		}
	}
	return tpl.ExecuteTemplate(w, name, data)
}
