package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/hearthstone/backend/internal/model/card"
	"github.com/zhouzirui/hearthstone/backend/internal/service/lookup"
)

const (
	docsTemplate    = "docs.html"
	landingTemplate = "main.html"
)

// docsView is the data handed to the docs template.
type docsView struct {
	Path  string
	Query string
	Card  card.Card
	Error string
}

// Handler 渲染文档页与单卡详情页
type Handler struct {
	lookup *lookup.Service
	tmpl   *template.Template
}

// New 解析模板并创建页面处理器
func New(svc *lookup.Service, templates fs.FS) (*Handler, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{docsTemplate, landingTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("template %s not found", name)
		}
	}
	return &Handler{lookup: svc, tmpl: tmpl}, nil
}

// RegisterRoutes 注册页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleDocs)
	r.Get("/show_card", h.handleShowCard)
	r.Get("/show_card/", h.handleShowCard)
}

// LandingRouter returns the independent route group mounted at /main.
func (h *Handler) LandingRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, landingTemplate, nil)
	})
	return r
}

// handleDocs 渲染导航页
func (h *Handler) handleDocs(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, docsTemplate, docsView{Path: r.URL.Path})
}

// handleShowCard 渲染 card_name 对应的首张卡牌
func (h *Handler) handleShowCard(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("card_name")
	view := docsView{Path: r.URL.Path, Query: name}

	if name == "" {
		view.Error = "card_name query parameter is required"
		h.render(w, http.StatusBadRequest, docsTemplate, view)
		return
	}

	first, err := lookup.FirstOrFail(h.lookup.FindByName(name))
	if err != nil {
		view.Error = fmt.Sprintf("no card named %q", name)
		h.render(w, http.StatusNotFound, docsTemplate, view)
		return
	}

	view.Card = first
	h.render(w, http.StatusOK, docsTemplate, view)
}

// render buffers the page so a failed template never leaves a partial response.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[page] render %s failed: %v", name, err)
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[page] write %s failed: %v", name, err)
	}
}
