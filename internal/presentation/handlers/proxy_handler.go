package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/ivg-dashboard/internal/application/services"
)

// ProxyHandler re-exposes the upstream APIs so callers need no API key
type ProxyHandler struct {
	service *services.ProxyService
	logger  *zap.Logger
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(service *services.ProxyService, logger *zap.Logger) *ProxyHandler {
	return &ProxyHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the proxy routes on a chi router
func (h *ProxyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/token", h.Token)
	r.Get("/wallet-pnl", h.WalletPnl)
}

// Token handles GET /api/token
func (h *ProxyHandler) Token(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.TokenPairs)
}

// WalletPnl handles GET /api/wallet-pnl
func (h *ProxyHandler) WalletPnl(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.WalletPnl)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *ProxyHandler) serve(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) ([]byte, error)) {
	body, err := fetch(r.Context())
	if err == nil {
		respondRawJSON(w, http.StatusOK, body)
		return
	}

	var missing *services.ConfigMissingError
	var upstream *services.UpstreamFailureError
	switch {
	case errors.As(err, &missing):
		h.logger.Error("Proxy misconfigured", zap.String("path", r.URL.Path), zap.String("missing", missing.Name))
		respondError(w, http.StatusInternalServerError, missing.Error())
	case errors.As(err, &upstream):
		h.logger.Warn("Proxy upstream failed", zap.String("path", r.URL.Path), zap.Error(err))
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: upstream.Message, Details: upstream.Details})
	default:
		h.logger.Error("Proxy failed", zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
