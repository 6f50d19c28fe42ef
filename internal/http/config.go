package http

import (
	"github.com/mrlokans/audiobook-store/internal/audit"
	"github.com/mrlokans/audiobook-store/internal/database"
	"github.com/mrlokans/audiobook-store/internal/maintenance"
	"github.com/mrlokans/audiobook-store/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	StoreService *services.StoreService
	Database     *database.Database

	// Audit trail (optional, nil disables audit logging)
	AuditService *audit.Service

	// Rejects writes under /api/ while enabled (optional)
	ReadOnly *maintenance.ReadOnlyMiddleware

	// Application info
	Version string
}
