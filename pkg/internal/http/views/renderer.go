package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"

	"git.solsynth.dev/hypernet/journal/pkg/internal/media"
)

//go:embed templates
var files embed.FS

const (
	layoutFile   = "templates/base.html"
	partialsGlob = "templates/partials/*.html"
)

// Renderer implements fiber.Views over the embedded templates. Page names are
// paths below templates/ without the extension, such as "posts/index".
type Renderer struct {
	funcs template.FuncMap

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func NewRenderer(store media.Store) *Renderer {
	return &Renderer{
		funcs: template.FuncMap{
			"media":         store.URL,
			"date":          formatDate,
			"truncatewords": truncateWords,
			"year":          func() int { return time.Now().Year() },
			"deref":         func(v *uint) uint { return *v },
		},
	}
}

func (v *Renderer) Load() error {
	pages := make(map[string]*template.Template)
	err := fs.WalkDir(files, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		if path == layoutFile || strings.HasPrefix(path, "templates/partials/") {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		tmpl, err := template.New(name).Funcs(v.funcs).ParseFS(files, layoutFile, partialsGlob, path)
		if err != nil {
			return fmt.Errorf("unable to parse template %s: %v", name, err)
		}
		pages[name] = tmpl
		return nil
	})
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.pages = pages
	v.mu.Unlock()
	return nil
}

// Render executes the base layout with the blocks of page name. Layouts
// passed by fiber are ignored since every page shares one layout.
func (v *Renderer) Render(out io.Writer, name string, binding any, layout ...string) error {
	v.mu.RLock()
	tmpl, ok := v.pages[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %s does not exist", name)
	}
	return tmpl.ExecuteTemplate(out, "base", binding)
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

func truncateWords(n int, text string) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}
