//	@title			Custom UI Asset Gateway
//	@version		1.0
//	@description	Multi-tenant gateway that stores uploaded custom-UI asset bundles behind a pluggable blob-storage backend (S3-compatible or Azure Blob) and serves the files back with range and caching semantics.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/uigate/service/internal/assets"
	"github.com/uigate/service/internal/config"
	"github.com/uigate/service/internal/db"
	appMiddleware "github.com/uigate/service/internal/middleware"
	"github.com/uigate/service/internal/systems"
	"github.com/uigate/service/internal/tenant"

	_ "github.com/uigate/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	// Wire dependencies: repository → provider store → handlers.
	systemsRepo := systems.NewRepository(pool)
	providerStore := systems.NewProviderStore(systemsRepo)
	if err := providerStore.Load(context.Background()); err != nil {
		log.Fatalf("load storage provider config failed: %v", err)
	}
	systemsHandler := systems.NewHandler(providerStore)

	resolver := &tenant.DomainResolver{BaseDomain: cfg.TenantBaseDomain}
	uploadSvc := assets.NewService(providerStore)
	uploadHandler := assets.NewHandler(uploadSvc, resolver)
	assetServer := assets.NewServer(providerStore, resolver)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Range", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI, available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Operator-facing storage provider configuration
	r.Route("/systems", func(r chi.Router) {
		r.Use(appMiddleware.RequireAdmin(cfg.AdminJWTSecret))
		r.Get("/storage-provider", systemsHandler.GetStorageProvider)
		r.Put("/storage-provider", systemsHandler.PutStorageProvider)
		r.Delete("/storage-provider", systemsHandler.DeleteStorageProvider)
	})

	// Custom UI asset upload and serving
	r.Post("/sign-in-exp/default/custom-ui-assets", uploadHandler.Upload)
	r.Get("/custom-ui-assets/{assetId}", assetServer.HandleAsset)
	r.Get("/custom-ui-assets/{assetId}/*", assetServer.HandleAsset)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
