package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/ivg-dashboard/internal/application/services"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

// DashboardHandler serves the dashboard page and its view model
type DashboardHandler struct {
	service *services.DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the dashboard routes on a chi router
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/api/dashboard", h.View)
}

// Page handles GET /
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	view := h.service.Compose(r.Context())
	if !view.Ready() {
		h.logger.Warn("Dashboard configuration incomplete", zap.Strings("problems", view.ConfigErrors))
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, view); err != nil {
		h.logger.Error("Failed to render dashboard", zap.Error(err))
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// View handles GET /api/dashboard
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	view := h.service.Compose(r.Context())
	respondJSON(w, http.StatusOK, view)
}
