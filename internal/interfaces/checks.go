package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/audiobook-store/internal/audit"
	"github.com/mrlokans/audiobook-store/internal/database/catalog"
	"github.com/mrlokans/audiobook-store/internal/database/progress"
	"github.com/mrlokans/audiobook-store/internal/database/purchases"
	"github.com/mrlokans/audiobook-store/internal/scheduler"
	"github.com/mrlokans/audiobook-store/internal/services"
	"github.com/mrlokans/audiobook-store/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.CatalogStore = (*catalog.Repository)(nil)
var _ services.PurchaseStore = (*purchases.Repository)(nil)
var _ services.ProgressStore = (*progress.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
