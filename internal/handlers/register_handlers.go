package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/0minute/VoucherAI/internal/core/ports/services"
	"github.com/0minute/VoucherAI/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")
	workspace := v1.Group("/workspaces/:workspace")

	registerVoucherRoutes(workspace, services.Voucher)
	registerJournalRoutes(workspace, services.Journal)
}
