package api

import (
	"net/http"

	"water-distribution-service/internal/api/handlers"
	"water-distribution-service/internal/ports"
	"water-distribution-service/internal/services"
)

// Deps carries everything the HTTP layer needs. Handlers receive services
// and ports only, so they stay unaware of concrete adapters.
type Deps struct {
	Orders   *services.Orders
	Dispatch *services.Dispatch
	Stops    *services.Stops
	Visits   *services.Visits
	Catalog  *services.Catalog

	Vehicles ports.VehicleRepository
	Routes   ports.RoutePlanRepository
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	orderHandler := &handlers.OrderHandler{Orders: d.Orders}
	routeHandler := &handlers.RouteHandler{Dispatch: d.Dispatch, Stops: d.Stops, Repo: d.Routes}
	vehicleHandler := &handlers.VehicleHandler{Dispatcher: d.Dispatch, Repo: d.Vehicles}
	catalogHandler := &handlers.CatalogHandler{Catalog: d.Catalog}
	visitHandler := &handlers.VisitHandler{Visits: d.Visits}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /stores", catalogHandler.ListStores)
	mux.HandleFunc("GET /users", catalogHandler.ListUsers)
	mux.HandleFunc("DELETE /stores/{id}", catalogHandler.DeleteStore)

	mux.HandleFunc("GET /orders", orderHandler.List)
	mux.HandleFunc("POST /orders", orderHandler.Create)
	mux.HandleFunc("PUT /orders/{id}", orderHandler.Update)
	mux.HandleFunc("DELETE /orders/{id}", orderHandler.Delete)
	mux.HandleFunc("POST /orders/{id}/reassign", orderHandler.Reassign)

	mux.HandleFunc("GET /routes", routeHandler.List)
	mux.HandleFunc("POST /routes", routeHandler.Create)
	mux.HandleFunc("POST /routes/{id}/stops/{orderId}/resolve", routeHandler.ResolveStop)

	mux.HandleFunc("GET /vehicles", vehicleHandler.List)
	mux.HandleFunc("POST /vehicles/{id}/dispatch", vehicleHandler.Dispatch)

	mux.HandleFunc("POST /visits", visitHandler.Schedule)
	mux.HandleFunc("POST /visits/{id}/resolve", visitHandler.Resolve)
	mux.HandleFunc("POST /visit-routes", visitHandler.PlanRoute)

	return loggingMiddleware(mux)
}
