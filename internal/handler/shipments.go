// Package handler exposes the courier flow over HTTP: one endpoint that
// validates an order, creates the shipment, and streams the label back.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/parcelgate/courier/internal/courier"
	"github.com/parcelgate/courier/internal/domain"
	"github.com/parcelgate/courier/internal/middleware"
)

// Handler serves the shipment-creation endpoint.
type Handler struct {
	courier  *courier.Courier
	defaults courier.Params
	logger   *slog.Logger
}

// New creates a Handler. defaults supplies the API key and fallback
// service/label-format for requests that do not override them.
func New(c *courier.Courier, defaults courier.Params, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{courier: c, defaults: defaults, logger: logger}
}

// CreateShipment handles POST /shipments: the body is the raw order, the
// optional "service" and "label_format" query parameters override the
// configured defaults. On success the label bytes are streamed back; on
// failure the status envelope is returned as JSON.
func (h *Handler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.writeResult(w, courier.NewResult(nil,
			domain.WrapError(err, domain.EINVALID, "handler.CreateShipment", "Request body must be a JSON order.")))
		return
	}

	params := h.defaults
	if service := r.URL.Query().Get("service"); service != "" {
		params.Service = service
	}
	if format := r.URL.Query().Get("label_format"); format != "" {
		params.LabelFormat = format
	}

	pkg, err := h.courier.NewPackage(r.Context(), order, params)
	if err != nil {
		logger.Warn("shipment rejected", "error", err)
		h.writeResult(w, courier.NewResult(nil, err))
		return
	}

	label, err := h.courier.PackageLabel(r.Context(), pkg.TrackingNumber, pkg.LabelFormat)
	if err != nil {
		logger.Error("label retrieval failed", "tracking_number", pkg.TrackingNumber, "error", err)
		h.writeResult(w, courier.NewResult(nil, err))
		return
	}

	filename := "shipping_label." + strings.ToLower(pkg.LabelFormat)
	w.Header().Set("Content-Type", labelContentType(pkg.LabelFormat))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Tracking-Number", pkg.TrackingNumber)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(label); err != nil {
		logger.Error("failed to stream label", "error", err)
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// writeResult sends the error envelope with the matching HTTP status.
func (h *Handler) writeResult(w http.ResponseWriter, result courier.Result) {
	w.Header().Set("Content-Type", "application/json")
	status := result.ErrorCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode result", "error", err)
	}
}

// labelContentType maps a label format to its MIME type.
func labelContentType(format string) string {
	switch format {
	case "PDF":
		return "application/pdf"
	case "PNG":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
