// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - CatalogStore: Audiobook catalog reads (internal/services/interfaces.go)
//   - PurchaseStore: Purchase records (internal/services/interfaces.go)
//   - ProgressStore: Playback position upserts (internal/services/interfaces.go)
//
// ## Background Work Interfaces
//
//   - AuditEventCleaner: Prunes old audit events (internal/tasks/cleanup_audit.go)
//   - CleanupEnqueuer: Queues audit cleanup from cron (internal/scheduler/audit_cleanup.go)
//
// # Adding a New Storage Backend
//
// Repositories in internal/database/* are the only implementations today. A new
// backend implements the three store interfaces and is passed to
// services.NewStoreService in internal/entrypoint. Add the matching
// compile-time assertions to checks.go.
//
// # Error Contract
//
// Store implementations return gorm.ErrRecordNotFound for missing rows and
// gorm.ErrDuplicatedKey for unique violations where the driver can report them.
// StoreService translates both into its own sentinel errors.
package interfaces
