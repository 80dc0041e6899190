// Package routes wires handlers onto the router.
package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parcelgate/courier/internal/handler"
	"github.com/parcelgate/courier/internal/router"
)

// Deps contains the handlers the route table needs.
type Deps struct {
	Shipments *handler.Handler
}

// Register mounts all routes on r.
func Register(r *router.Router, deps Deps) {
	r.Post("/shipments", deps.Shipments.CreateShipment)
	r.Get("/healthz", deps.Shipments.Healthz)
	r.Handle(http.MethodGet, "/metrics", promhttp.Handler())
}
