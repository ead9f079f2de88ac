// Package view renders the HTML pages. Templates are embedded in the binary
// and parsed once at startup, each page paired with the shared layout.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"movie-review/internal/data/entity"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"
)

//go:embed templates
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the data every template receives.
type Page struct {
	Title       string
	CurrentUser *response.UserResponse
	Flash       string
	Errors      utils.ValidationErrors

	// Form holds the submitted (or prefilled) values of the page's form.
	Form any

	Movie   *entity.Movie
	Movies  []*entity.Movie
	Reviews []response.ReviewResponse
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"humanize": humanize,
	"points": func() []string {
		return []string{"1", "2", "3", "4", "5"}
	},
	"paragraphs": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
}

// NewRenderer parses every page under templates/ against the layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layoutFile || !strings.HasSuffix(path, ".html") {
			return nil
		}

		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, layoutFile, path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Render executes the named page ("movies/index") into w with the given status.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page *Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	// render fully before writing so a template error can still become a 500
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func humanize(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
