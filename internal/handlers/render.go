package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/event-registration/app/internal/forms"
	"github.com/event-registration/app/internal/media"
	"github.com/event-registration/app/internal/models"
)

const layoutTemplate = "layout.html"

// Nl2br escapes s and replaces newlines with <br> tags.
func Nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func (a *App) funcMap() template.FuncMap {
	return template.FuncMap{
		"T":              a.tr.T,
		"FormatDate":     a.tr.FormatDate,
		"FormatDateTime": a.tr.FormatDateTime,
		"TitleCase":      a.tr.TitleCase,
		"Nl2br":          Nl2br,
		"MediaURL":       media.URL,
		"GenderLabel": func(code string) string {
			if label := models.GenderLabel(code); label != "" {
				return a.tr.T(label)
			}
			return ""
		},
	}
}

// LoadTemplates parses every page in fsys together with layout.html and the
// partials (files named _*.html). Pages are keyed by their path relative to
// fsys, e.g. "auth/login.html".
func (a *App) LoadTemplates(fsys fs.FS) error {
	if _, err := fs.Stat(fsys, layoutTemplate); err != nil {
		return fmt.Errorf("%s not found: %w", layoutTemplate, err)
	}

	var partials, pages []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".html" || p == layoutTemplate {
			return err
		}
		if strings.HasPrefix(path.Base(p), "_") {
			partials = append(partials, p)
		} else {
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk templates: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		// The layout goes first so a page's {{define}} blocks override its defaults.
		files := append([]string{layoutTemplate, page}, partials...)
		tmpl, err := template.New(path.Base(page)).Funcs(a.funcMap()).ParseFS(fsys, files...)
		if err != nil {
			return fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	a.templates = templates
	return nil
}

// RenderTemplate renders a page with status 200.
func (a *App) RenderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	a.renderStatus(w, r, http.StatusOK, name, data)
}

func (a *App) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	tmpl, ok := a.templates[name]
	if !ok {
		a.log.Error().Str("template", name).Msg("template not found")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	data["User"] = currentUser(r.Context())
	data["CurrentYear"] = time.Now().Year()
	data["Lang"] = a.tr.Tag().String()
	data["Flash"] = popFlash(w, r)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		a.log.Error().Err(err).Str("template", name).Msg("execute template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// RenderErrorPage renders error.html with the given status.
func (a *App) RenderErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, title, message string) {
	data := map[string]any{
		"Title":      fmt.Sprintf("%d - %s", statusCode, title),
		"StatusCode": statusCode,
		"ErrorTitle": title,
		"Message":    message,
	}
	a.renderStatus(w, r, statusCode, "error.html", data)
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	a.RenderErrorPage(w, r, http.StatusNotFound, a.tr.T("Page not found"), a.tr.T("The page you are looking for does not exist."))
}

func (a *App) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.RenderErrorPage(w, r, http.StatusMethodNotAllowed, a.tr.T("Method not allowed"), r.Method+" "+r.URL.Path)
}

// serverError logs err and renders the 500 page.
func (a *App) serverError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	a.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg(msg)
	a.RenderErrorPage(w, r, http.StatusInternalServerError, a.tr.T("Server error"), a.tr.T("Something went wrong. Please try again later."))
}
