package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/0minute/VoucherAI/internal/core/domain"
	"github.com/0minute/VoucherAI/internal/core/services"
	"github.com/0minute/VoucherAI/internal/handlers"
	"github.com/0minute/VoucherAI/internal/middleware"
	"github.com/0minute/VoucherAI/internal/platform/config"
	"github.com/0minute/VoucherAI/internal/repositories/filestore"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	accounting, err := domain.LoadAccountingConfig(cfg.AccountingConfigPath)
	if err != nil {
		logger.Error("Failed to load accounting config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	schema, err := domain.LoadFieldSchema(cfg.FieldSchemaPath)
	if err != nil {
		logger.Error("Failed to load field schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	voucherRepo := filestore.NewVoucherRepository(cfg.WorkspaceRoot, logger)
	serviceContainer := services.NewServiceContainer(accounting, schema, voucherRepo)
	logger.Info("Voucher store initialized", slog.String("workspace_root", cfg.WorkspaceRoot))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to parse rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
