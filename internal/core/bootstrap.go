package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petdirectory/api/internal/activity"
	c "github.com/petdirectory/api/internal/cache"
	h "github.com/petdirectory/api/internal/helpers"
	m "github.com/petdirectory/api/internal/middlewares"
	"github.com/petdirectory/api/internal/models"
	"github.com/petdirectory/api/internal/notifier"
	"github.com/petdirectory/api/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateAdminUser upserts the bootstrap admin account from configuration.
func CreateAdminUser(db *gorm.DB, config models.Configuration) {
	adminUser := models.User{
		Name:  "admin",
		Email: config.App.AdminEmail,
		Role:  models.RoleAdmin,
	}

	hash, _ := h.CreateHash(config.App.AdminPassword)
	adminUser.HashedPassword = hash
	db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"hashed_password", "role"}),
	}).Create(&adminUser)
}

func StartHTTPServer(
	config models.Configuration,
	db *gorm.DB,
	cache c.ICache,
	activityLogger activity.IActivityLogger,
	notify notifier.INotifier,
) {
	m.InitValidator()

	r := chi.NewRouter()

	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(middleware.RequestID)
	r.Use(m.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authConfig := config.App.GetAuthConfig()
	cacheEntryTTL := config.App.CacheEntryTTL

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Use(m.Authenticate(authConfig.JWTSecret))
		apiRouter.Use(m.RateLimit(cache, config.App.RequestsPerMinute, config.App.TrustedProxies))

		apiRouter.Mount("/v1/auth", services.AuthService{
			DB:             db,
			Cache:          cache,
			AuthConfig:     authConfig,
			Notifier:       notify,
			ActivityLogger: activityLogger,
		}.Routes())

		apiRouter.Mount("/v1/users", services.UserService{
			DB:             db,
			Notifier:       notify,
			ActivityLogger: activityLogger,
		}.Routes())

		servicesService := services.ServicesService{
			DB:             db,
			Cache:          cache,
			CacheEntryTTL:  cacheEntryTTL,
			ActivityLogger: activityLogger,
		}

		reviewService := services.ReviewService{
			DB:             db,
			Cache:          cache,
			CacheEntryTTL:  cacheEntryTTL,
			ActivityLogger: activityLogger,
		}

		apiRouter.Mount("/v1/businesses", services.BusinessService{
			DB:             db,
			Cache:          cache,
			CacheEntryTTL:  cacheEntryTTL,
			ActivityLogger: activityLogger,
			Services:       servicesService,
			Reviews:        reviewService,
		}.Routes())

		apiRouter.Mount("/v1/services", servicesService.Routes())
		apiRouter.Mount("/v1/reviews", reviewService.Routes())

		apiRouter.Mount("/v1/pets", services.PetService{
			DB:             db,
			Cache:          cache,
			CacheEntryTTL:  cacheEntryTTL,
			ActivityLogger: activityLogger,
		}.Routes())

		apiRouter.Mount("/v1/admin", services.AdminService{
			DB:             db,
			ActivityLogger: activityLogger,
		}.Routes())
	})

	zap.L().Info("HTTP server starting", zap.Int("port", config.App.Port))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.App.Port),
		Handler:      otelhttp.NewHandler(r, "http.server"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("Failed to start the app", zap.Error(err))
		}
	case sig := <-shutdown:
		zap.L().Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			zap.L().Error("Graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				zap.L().Error("Failed to close the server", zap.Error(err))
			}
		}
	}
}
