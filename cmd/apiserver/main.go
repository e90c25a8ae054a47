package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amoylab/rentboard/internal/apiserver/cache"
	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/apiserver/handler"
	"github.com/amoylab/rentboard/internal/apiserver/middleware"
	"github.com/amoylab/rentboard/internal/auth/jwt"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/common/config"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/amoylab/rentboard/internal/storage"
	"github.com/amoylab/rentboard/pkg/logger"
	"github.com/amoylab/rentboard/pkg/metrics"
	"github.com/amoylab/rentboard/pkg/trace"
	"github.com/amoylab/rentboard/pkg/version"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", cnst.CommandName, version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   cnst.CommandName,
		Short: "Rentboard API server",
		Long:  `Rentboard API server serves listings, tenant requests and landlord dashboards`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", "apiserver.yaml", "path to configuration file, like /etc/rentboard/apiserver.yaml")
	rootCmd.AddCommand(versionCmd)
}

func initLogger(cfg *config.APIServerConfig) *zap.Logger {
	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return lg
}

func initI18n(cfg *config.I18nConfig) {
	if err := i18n.InitTranslator(cfg.Path); err != nil {
		log.Printf("Failed to load translations from %s: %v", cfg.Path, err)
	}
}

func initDatabase(lg *zap.Logger, cfg *config.DatabaseConfig) database.Database {
	db, err := database.NewDatabase(cfg)
	if err != nil {
		lg.Fatal("Failed to initialize database", zap.String("type", cfg.Type), zap.Error(err))
	}
	return db
}

func initCache(lg *zap.Logger, cfg *config.CacheConfig) cache.ListingCache {
	c, err := cache.NewListingCache(cfg, lg)
	if err != nil {
		lg.Fatal("Failed to initialize listing cache", zap.Error(err))
	}
	return c
}

func initImageStorage(lg *zap.Logger, cfg *config.UploadConfig) storage.ImageStorage {
	s, err := storage.NewImageStorage(cfg, lg)
	if err != nil {
		lg.Fatal("Failed to initialize image storage", zap.String("type", cfg.Type), zap.Error(err))
	}
	return s
}

func initJWT(lg *zap.Logger, cfg *config.JWTConfig) *jwt.Service {
	svc, err := jwt.NewService(jwt.Config{SecretKey: cfg.SecretKey, Duration: cfg.Duration})
	if err != nil {
		lg.Fatal("Failed to initialize JWT service", zap.Error(err))
	}
	return svc
}

// initTracing returns a shutdown func that is safe to call when tracing is disabled
func initTracing(ctx context.Context, lg *zap.Logger, cfg *config.TracingConfig) func(context.Context) error {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }
	}
	shutdown, err := trace.InitTracing(ctx, cfg, lg)
	if err != nil {
		lg.Error("Failed to initialize tracing, continuing without it", zap.Error(err))
		return func(context.Context) error { return nil }
	}
	return shutdown
}

func initRouter(cfg *config.APIServerConfig, lg *zap.Logger, h *handler.Handler, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(lg))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	if m != nil {
		r.Use(m.Middleware())
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}
	r.Use(middleware.Logger(lg), middleware.Language())
	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})
	if cfg.Upload.Type == "disk" {
		r.Static(storage.PublicPrefix, cfg.Upload.Dir)
	}

	h.RegisterRoutes(r.Group("/api"))
	return r
}

func run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	lg := initLogger(cfg)
	defer lg.Sync()
	lg.Info("Loaded configuration", zap.String("path", cfgPath))

	initI18n(&cfg.I18n)

	shutdownTracing := initTracing(ctx, lg, &cfg.Tracing)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			lg.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	db := initDatabase(lg, &cfg.Database)
	defer db.Close()

	listingCache := initCache(lg, &cfg.Cache)
	defer listingCache.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
	}

	h := handler.New(db, initJWT(lg, &cfg.JWT), lg,
		handler.WithCache(listingCache),
		handler.WithImageStorage(initImageStorage(lg, &cfg.Upload), cfg.Upload),
		handler.WithMetrics(m),
	)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           initRouter(cfg, lg, h, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("Starting apiserver", zap.String("version", version.Get()), zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("Server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("Shutting down apiserver")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		lg.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
