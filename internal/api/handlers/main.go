// filepath: internal/api/handlers/main.go
package handlers

import (
	"time"

	"mediatheque/internal/config"
	"mediatheque/internal/services"
	"mediatheque/internal/services/auth"
)

// Handlers holds the shared dependencies for the API handlers.
type Handlers struct {
	// Depend on interfaces, not concrete structs
	Info    services.InfoService
	User    services.UserService
	Media   services.MediaService
	Borrow  services.BorrowService
	Catalog services.CatalogService
	Token   auth.TokenService
	Auditor services.Auditor

	Cfg       *config.Config
	Version   string
	StartTime time.Time
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	user services.UserService,
	media services.MediaService,
	borrow services.BorrowService,
	catalog services.CatalogService,
	token auth.TokenService,
	auditor services.Auditor,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Info:      info,
		User:      user,
		Media:     media,
		Borrow:    borrow,
		Catalog:   catalog,
		Token:     token,
		Auditor:   auditor,
		Cfg:       cfg,
		Version:   info.GetInfo().Version,
		StartTime: info.GetInfo().UptimeSince,
	}
}
