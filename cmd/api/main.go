package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elrefaeey/padell/internal/auth"
	"github.com/elrefaeey/padell/internal/bookings"
	"github.com/elrefaeey/padell/internal/cache"
	"github.com/elrefaeey/padell/internal/config"
	"github.com/elrefaeey/padell/internal/content"
	"github.com/elrefaeey/padell/internal/courts"
	"github.com/elrefaeey/padell/internal/db"
	"github.com/elrefaeey/padell/internal/features"
	"github.com/elrefaeey/padell/internal/filestore"
	"github.com/elrefaeey/padell/internal/handlers"
	"github.com/elrefaeey/padell/internal/live"
	"github.com/elrefaeey/padell/internal/middleware"
	"github.com/elrefaeey/padell/internal/notifications"
	"github.com/elrefaeey/padell/internal/offers"
	"github.com/elrefaeey/padell/internal/transport"
	"github.com/elrefaeey/padell/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "padell",
		}
	}

	files, err := filestore.New(cfg.UploadDir, cfg.UploadBaseURL, cfg.MaxUploadBytes, logger)
	if err != nil {
		logger.Error("upload dir init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	whatsapp := notifications.NewWhatsApp(cfg.WhatsAppOperator)
	val := validation.New()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	hub := live.NewHub()
	sockets := live.NewHandler(hub, logger, cfg.FrontendOrigin)

	server := &handlers.Server{
		Cfg:   cfg,
		Cols:  cols,
		Val:   val,
		Log:   logger,
		Auth:  jwtManager,
		Files: files,
	}

	contentRepo := content.NewRepository(cols.SiteContent)
	contentService := content.NewService(contentRepo)
	contentHandler := content.NewHandler(contentService, val, logger, cacheStore, cacheTTL, hub)

	featuresRepo := features.NewRepository(cols.Features)
	featuresService := features.NewService(featuresRepo)
	featuresHandler := features.NewHandler(featuresService, val, logger, cacheStore, cacheTTL, hub)

	courtsRepo := courts.NewRepository(cols.Courts)
	courtsService := courts.NewService(courtsRepo)
	courtsHandler := courts.NewHandler(courtsService, val, logger, cacheStore, cacheTTL, hub)

	offersRepo := offers.NewRepository(cols.Offers)
	offersService := offers.NewService(offersRepo)
	offersHandler := offers.NewHandler(offersService, val, logger, cacheStore, cacheTTL, hub)

	bookingsRepo := bookings.NewRepository(cols.Bookings)
	bookingsService := bookings.NewService(bookingsRepo, courtsRepo)
	bookingsHandler := bookings.NewHandler(bookingsService, val, logger, whatsapp, hub)

	contentHandler.RegisterLive(sockets)
	featuresHandler.RegisterLive(sockets)
	courtsHandler.RegisterLive(sockets)
	offersHandler.RegisterLive(sockets)
	bookingsHandler.RegisterLive(sockets)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))

	bookingsLimiter := middleware.NewRateLimiter(cfg.RateLimitBookings, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	adminOnly := middleware.AdminAuth(cfg.AdminAPIKey, jwtManager)

	r.Route("/api", func(api chi.Router) {
		// Websocket streams must not share the global request timeout, so the
		// timeout middleware stays scoped to the plain JSON routes.
		api.Group(func(plain chi.Router) {
			plain.Use(chiMiddleware.Timeout(30 * time.Second))

			plain.Get("/content/home", contentHandler.PublicHome)
			plain.Get("/content/contact", contentHandler.PublicContact)
			plain.Get("/contact/whatsapp/qr", contentHandler.WhatsAppQR)
			plain.Get("/features", featuresHandler.PublicList)
			plain.Get("/courts", courtsHandler.PublicList)
			plain.Get("/courts/{id}", courtsHandler.PublicGet)
			plain.Get("/offers", offersHandler.PublicList)
			plain.With(bookingsLimiter.Middleware).Post("/bookings", bookingsHandler.Create)

			plain.Route("/admin", func(admin chi.Router) {
				admin.Post("/login", server.AdminLogin)
				admin.Post("/refresh", server.AdminRefresh)
				admin.Post("/logout", server.AdminLogout)
				admin.Get("/session", server.AdminSession)

				admin.Group(func(protected chi.Router) {
					protected.Use(adminOnly)
					protected.Put("/content/home", contentHandler.AdminSaveHome)
					protected.Put("/content/contact", contentHandler.AdminSaveContact)
					protected.Post("/features", featuresHandler.AdminCreate)
					protected.Put("/features/{id}", featuresHandler.AdminUpdate)
					protected.Delete("/features/{id}", featuresHandler.AdminDelete)
					protected.Post("/courts", courtsHandler.AdminCreate)
					protected.Put("/courts/{id}", courtsHandler.AdminUpdate)
					protected.Delete("/courts/{id}", courtsHandler.AdminDelete)
					protected.Post("/offers", offersHandler.AdminCreate)
					protected.Put("/offers/{id}", offersHandler.AdminUpdate)
					protected.Delete("/offers/{id}", offersHandler.AdminDelete)
					protected.Get("/bookings", bookingsHandler.AdminList)
					protected.Delete("/bookings/{id}", bookingsHandler.AdminDelete)
					protected.Post("/uploads", server.AdminUpload)
					protected.Delete("/uploads", server.AdminDeleteUpload)
				})
			})
		})

		api.Route("/live", func(ws chi.Router) {
			ws.Get("/content/home", sockets.ServeTopic(content.TopicHome))
			ws.Get("/content/contact", sockets.ServeTopic(content.TopicContact))
			ws.Get("/features", sockets.ServeTopic(features.Topic))
			ws.Get("/courts", sockets.ServeTopic(courts.Topic))
			ws.Get("/offers", sockets.ServeTopic(offers.Topic))
			ws.With(adminOnly).Get("/bookings", sockets.ServeTopic(bookings.Topic))
		})
	})

	uploadsFS := http.StripPrefix(cfg.UploadBaseURL+"/", http.FileServer(http.Dir(files.Dir())))
	r.Get(cfg.UploadBaseURL+"/*", uploadsFS.ServeHTTP)

	r.NotFound(transport.NotFound)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
