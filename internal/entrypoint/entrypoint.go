package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/audiobook-store/internal/audit"
	"github.com/mrlokans/audiobook-store/internal/config"
	"github.com/mrlokans/audiobook-store/internal/database"
	auditRepo "github.com/mrlokans/audiobook-store/internal/database/audit"
	"github.com/mrlokans/audiobook-store/internal/database/catalog"
	"github.com/mrlokans/audiobook-store/internal/database/progress"
	"github.com/mrlokans/audiobook-store/internal/database/purchases"
	http_controllers "github.com/mrlokans/audiobook-store/internal/http"
	"github.com/mrlokans/audiobook-store/internal/maintenance"
	"github.com/mrlokans/audiobook-store/internal/scheduler"
	"github.com/mrlokans/audiobook-store/internal/services"
	"github.com/mrlokans/audiobook-store/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill sends SIGTERM; SIGKILL cannot be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work only once no request can enqueue more of it
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Audiobook Store v%s", version)

	db, err := database.NewDatabaseWithOptions(cfg.Database.URL, database.Options{
		LogLevel: cfg.Database.GormLogLevel(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	storeService := services.NewStoreService(
		catalog.NewRepository(db.DB),
		purchases.NewRepository(db.DB),
		progress.NewRepository(db.DB),
	)

	var auditService *audit.Service
	if cfg.Audit.Enabled {
		auditService = audit.NewService(auditRepo.NewRepository(db.DB))
	} else {
		log.Printf("Audit trail disabled")
	}

	// The task queue only has work when there is an audit trail to prune
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled && auditService != nil {
		taskCfg := tasks.DefaultConfig()
		taskCfg.DatabasePath = cfg.Tasks.DatabasePath
		if taskCfg.DatabasePath == "" {
			taskCfg.DatabasePath = tasks.DerivePath(cfg.Database.URL, config.DefaultTasksDatabasePath)
		}
		if cfg.Tasks.Workers > 0 {
			taskCfg.Workers = cfg.Tasks.Workers
		}
		if cfg.Tasks.ReleaseAfter > 0 {
			taskCfg.ReleaseAfter = cfg.Tasks.ReleaseAfter
		}
		if cfg.Tasks.CleanupInterval > 0 {
			taskCfg.CleanupInterval = cfg.Tasks.CleanupInterval
		}

		taskClient, err = tasks.NewClient(taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := cleanupScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: audit cleanup scheduler not started: %v", err)
			cleanupScheduler = nil
		}
	}

	if cfg.Maintenance.ReadOnly {
		log.Printf("Read-only mode enabled - purchases and progress writes will be rejected")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		StoreService: storeService,
		Database:     db,
		AuditService: auditService,
		ReadOnly:     maintenance.NewReadOnlyMiddleware(cfg.Maintenance.ReadOnly),
		Version:      version,
	})

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if auditService != nil {
			auditService.Wait()
		}
	}

	Serve(router, cfg, onShutdown)
}
