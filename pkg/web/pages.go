// Package web renders server-side pages from html/template layouts.
package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

// PageDef declares one page: the route it is served at, its template file,
// and the data handed to the template.
type PageDef struct {
	Route    string
	Template string
	Title    string
	Bundle   string
	Data     any
}

// PageData is the template context. Templates build links from BasePath.
type PageData struct {
	Title    string
	Bundle   string
	BasePath string
	Data     any
}

// TemplateSet holds one parsed template tree per page.
type TemplateSet struct {
	pages    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layouts once and clones them for each page, so a
// broken template fails at startup rather than on first request.
func NewTemplateSet(layoutFS, pageFS fs.FS, layoutGlob, pageSubdir, basePath string, pages []PageDef) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(funcs).ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	pageSub, err := fs.Sub(pageFS, pageSubdir)
	if err != nil {
		return nil, err
	}

	ts := &TemplateSet{
		pages:    make(map[string]*template.Template, len(pages)),
		basePath: basePath,
	}
	for _, p := range pages {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", p.Template, err)
		}
		if _, err := t.ParseFS(pageSub, p.Template); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", p.Template, err)
		}
		ts.pages[p.Template] = t
	}
	return ts, nil
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

func (ts *TemplateSet) data(page PageDef) PageData {
	return PageData{
		Title:    page.Title,
		Bundle:   page.Bundle,
		BasePath: ts.basePath,
		Data:     page.Data,
	}
}

// ErrorHandler renders page with the given status.
func (ts *TemplateSet) ErrorHandler(layout string, page PageDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := ts.Render(w, layout, page.Template, ts.data(page)); err != nil {
			fmt.Fprint(w, http.StatusText(status))
		}
	}
}

func (ts *TemplateSet) PageHandler(layout string, page PageDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, layout, page.Template, ts.data(page)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// Render executes layoutName from the page's template tree.
func (ts *TemplateSet) Render(w http.ResponseWriter, layoutName, pagePath string, data PageData) error {
	t, ok := ts.pages[pagePath]
	if !ok {
		return fmt.Errorf("template not found: %s", pagePath)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, layoutName, data)
}
