// filepath: internal/api/router.go
package api

import (
	"mediatheque/internal/api/handlers"
	"mediatheque/internal/models"
	"mediatheque/internal/services/auth"

	"github.com/gorilla/mux"
)

// SetupRouter configures the main router and its sub-routers.
// It sets up the public endpoints, authentication, and the capability-gated
// resource routes.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware) *mux.Router {
	r := mux.NewRouter()

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")

	// Public Token Endpoints (not protected by AuthMiddleware)
	r.HandleFunc("/api/token", h.GetToken).Methods("POST")
	r.HandleFunc("/api/token/refresh", h.RefreshToken).Methods("POST")

	// Public signup. New accounts always get the client role.
	r.HandleFunc("/api/signup", h.Signup).Methods("POST")

	// Authenticated API Routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(am.AuthMiddleware) // This will check for JWT *or* Basic

	apiRouter.HandleFunc("/logout", h.Logout).Methods("POST")

	// Attach resource-specific routes
	addMediaRoutes(apiRouter, h, am)
	addBorrowRoutes(apiRouter, h, am)
	addMemberRoutes(apiRouter, h, am)
	addUserRoutes(apiRouter, h)
	addDashboardRoutes(apiRouter, h, am)

	return r
}

// addMediaRoutes configures routes for the staff and client catalogs.
func addMediaRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	// Browsing is open to every authenticated role.
	viewRouter := r.PathPrefix("").Subrouter()
	viewRouter.Use(am.CapabilityMiddleware(auth.CapMediaView))
	viewRouter.HandleFunc("/media", h.ListMedia).Methods("GET")
	viewRouter.HandleFunc("/media/borrowable", h.ListBorrowableMedia).Methods("GET")
	viewRouter.HandleFunc("/media/{id:[0-9]+}", h.GetMedia).Methods("GET")
	viewRouter.HandleFunc("/catalog", h.GetClientCatalog).Methods("GET")

	addRouter := r.PathPrefix("").Subrouter()
	addRouter.Use(am.CapabilityMiddleware(auth.CapMediaAdd))
	addRouter.HandleFunc("/media", h.CreateMedia).Methods("POST")

	editRouter := r.PathPrefix("").Subrouter()
	editRouter.Use(am.CapabilityMiddleware(auth.CapMediaEdit))
	editRouter.HandleFunc("/media/{id:[0-9]+}", h.UpdateMedia).Methods("PUT")

	// Deletion is admin-only.
	deleteRouter := r.PathPrefix("").Subrouter()
	deleteRouter.Use(am.CapabilityMiddleware(auth.CapMediaDelete))
	deleteRouter.HandleFunc("/media/{id:[0-9]+}", h.DeleteMedia).Methods("DELETE")
}

// addBorrowRoutes configures routes for the borrowing ledger.
func addBorrowRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	borrowRouter := r.PathPrefix("").Subrouter()
	borrowRouter.Use(am.CapabilityMiddleware(auth.CapMediaBorrow))
	borrowRouter.HandleFunc("/media/{id:[0-9]+}/borrow", h.BorrowMedia).Methods("POST")

	returnRouter := r.PathPrefix("").Subrouter()
	returnRouter.Use(am.CapabilityMiddleware(auth.CapMediaReturn))
	returnRouter.HandleFunc("/borrows/{ref}/return", h.ReturnMedia).Methods("POST")

	// Record inspection: clients see their own loans (enforced in the
	// handler), the full listing needs borrow.view.
	r.HandleFunc("/borrows/{ref}", h.GetBorrow).Methods("GET")

	listRouter := r.PathPrefix("").Subrouter()
	listRouter.Use(am.CapabilityMiddleware(auth.CapBorrowView))
	listRouter.HandleFunc("/borrows", h.ListBorrows).Methods("GET")
}

// addMemberRoutes configures routes for member administration.
func addMemberRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	viewRouter := r.PathPrefix("").Subrouter()
	viewRouter.Use(am.CapabilityMiddleware(auth.CapMemberView))
	viewRouter.HandleFunc("/members", h.ListMembers).Methods("GET")
	viewRouter.HandleFunc("/members/{id:[0-9]+}", h.GetMember).Methods("GET")

	addRouter := r.PathPrefix("").Subrouter()
	addRouter.Use(am.CapabilityMiddleware(auth.CapMemberAdd))
	addRouter.HandleFunc("/members", h.CreateMember).Methods("POST")

	editRouter := r.PathPrefix("").Subrouter()
	editRouter.Use(am.CapabilityMiddleware(auth.CapMemberEdit))
	editRouter.HandleFunc("/members/{id:[0-9]+}", h.UpdateMember).Methods("PUT")

	deleteRouter := r.PathPrefix("").Subrouter()
	deleteRouter.Use(am.CapabilityMiddleware(auth.CapMemberDelete))
	deleteRouter.HandleFunc("/members/{id:[0-9]+}", h.DeleteMember).Methods("DELETE")
}

// addUserRoutes configures routes for users managing their own profile.
func addUserRoutes(r *mux.Router, h *handlers.Handlers) {
	// These endpoints only require a valid login, which AuthMiddleware already checks.
	r.HandleFunc("/me", h.GetUserMe).Methods("GET")
	r.HandleFunc("/me", h.UpdateUserMe).Methods("PATCH")
}

// addDashboardRoutes configures the per-role dashboard views.
func addDashboardRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	// Any authenticated role gets a client-style dashboard of its own loans.
	r.HandleFunc("/dashboard/client", h.GetClientDashboard).Methods("GET")

	staffRouter := r.PathPrefix("").Subrouter()
	staffRouter.Use(am.RoleMiddleware(models.RoleStaff, models.RoleAdmin))
	staffRouter.HandleFunc("/dashboard/staff", h.GetStaffDashboard).Methods("GET")
}
