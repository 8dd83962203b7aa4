package console

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/wallet-console/pkg/app/errors"
	apphttp "github.com/chainsafe/wallet-console/pkg/app/http"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// NetworkRequest selects a network.
type NetworkRequest struct {
	Network string `json:"network"`
}

// RegisterRoutes registers the console endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{service: service, logger: logger}

	r.Route("/wallet", func(r chi.Router) {
		r.Get("/", apphttp.HandleError(h.wallet))
		r.Post("/connect", apphttp.HandleError(h.connect))
		r.Post("/disconnect", apphttp.HandleError(h.disconnect))
		r.Post("/balance/refresh", apphttp.HandleError(h.refreshBalance))
		r.Put("/network", apphttp.HandleError(h.setNetwork))
	})
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", apphttp.HandleError(h.forms))
		r.Get("/{form}", apphttp.HandleError(h.form))
		r.Put("/{form}/input", apphttp.HandleError(h.setInput))
		r.Post("/{form}/submit", apphttp.HandleError(h.submit))
	})
	r.Get("/operations", apphttp.HandleError(h.operations))
	r.Get("/stats", apphttp.HandleError(h.stats))
}

func (h *HTTP) wallet(w http.ResponseWriter, r *http.Request) error {
	info, err := h.service.Wallet(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, info)
	return nil
}

func (h *HTTP) connect(w http.ResponseWriter, r *http.Request) error {
	info, err := h.service.Connect(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, info)
	return nil
}

func (h *HTTP) disconnect(w http.ResponseWriter, r *http.Request) error {
	info, err := h.service.Disconnect(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, info)
	return nil
}

func (h *HTTP) refreshBalance(w http.ResponseWriter, r *http.Request) error {
	info, err := h.service.RefreshBalance(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, info)
	return nil
}

func (h *HTTP) setNetwork(w http.ResponseWriter, r *http.Request) error {
	var req NetworkRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Network) == "" {
		return apperrors.BadRequestError(nil, "network is required")
	}
	info, err := h.service.SetNetwork(r.Context(), strings.TrimSpace(req.Network))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, info)
	return nil
}

func (h *HTTP) forms(w http.ResponseWriter, r *http.Request) error {
	views, err := h.service.Forms(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, views)
	return nil
}

func (h *HTTP) form(w http.ResponseWriter, r *http.Request) error {
	view, err := h.service.Form(r.Context(), chi.URLParam(r, "form"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, view)
	return nil
}

func (h *HTTP) setInput(w http.ResponseWriter, r *http.Request) error {
	body, err := apphttp.ReadBody(r)
	if err != nil {
		return err
	}
	if !json.Valid(body) {
		return apperrors.BadRequestError(nil, "invalid JSON")
	}
	view, err := h.service.SetInput(r.Context(), chi.URLParam(r, "form"), body)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, view)
	return nil
}

// submit answers 202: the outcome arrives through the form view and the notification stream.
func (h *HTTP) submit(w http.ResponseWriter, r *http.Request) error {
	view, err := h.service.Submit(r.Context(), chi.URLParam(r, "form"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusAccepted, view)
	return nil
}

func (h *HTTP) operations(w http.ResponseWriter, r *http.Request) error {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return apperrors.BadRequestError(err, "limit must be a non-negative integer")
		}
		limit = n
	}
	ops, err := h.service.History(r.Context(), limit)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, ops)
	return nil
}

func (h *HTTP) stats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, stats)
	return nil
}
