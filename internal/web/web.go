// AngelaMos | 2026
// web.go

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	PageIndex      = "index.html"
	PageAdmin      = "admin.html"
	PageSuperadmin = "superadmin.html"
)

var pages = []string{PageIndex, PageAdmin, PageSuperadmin}

// PageData is handed to every template. Pages read only the fields they
// need.
type PageData struct {
	Title string
	User  *middleware.Identity
	Data  any
}

// Renderer holds one parsed template set per page, each combined with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"money": FormatMoney,
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

// Render executes into a buffer first so a template error never leaves a
// half written page behind.
func (r *Renderer) Render(
	w http.ResponseWriter,
	status int,
	page string,
	data PageData,
) {
	tmpl, ok := r.pages[page]
	if !ok {
		core.InternalServerError(w, fmt.Errorf("unknown page %q", page))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		core.InternalServerError(w, fmt.Errorf("render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_, _ = buf.WriteTo(w)
}

func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// FormatMoney renders a minor-unit amount as "12.34".
func FormatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
