// filepath: cmd/mediatheque/main.go
package main

import (
	"mediatheque/internal/cli"
)

// @title Mediatheque API
// @version 1.0.0
// @description REST API for managing a media library catalog and its borrowing ledger.
// @BasePath /api
// @schemes http
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT token.

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
