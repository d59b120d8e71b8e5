package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/0minute/VoucherAI/internal/apperrors"
	portssvc "github.com/0minute/VoucherAI/internal/core/ports/services"
	"github.com/0minute/VoucherAI/internal/dto"
	"github.com/0minute/VoucherAI/internal/middleware"
)

// voucherHandler handles HTTP requests for the per-workspace voucher store.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func newVoucherHandler(voucherService portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: voucherService}
}

// respondWithError maps core failures onto HTTP statuses. A stale optimistic
// save surfaces as 409 with both versions so the client can reload and retry.
func respondWithError(c *gin.Context, err error) {
	var conflict *apperrors.VersionConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, dto.ConflictResponse{
			Error:         "version conflict, reload and retry",
			ClientVersion: conflict.ClientVersion,
			ServerVersion: conflict.ServerVersion,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// expectedVersionFromQuery parses the optional expected_version query param.
func expectedVersionFromQuery(c *gin.Context) (*int, bool) {
	raw := c.Query("expected_version")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func (h *voucherHandler) snapshotVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace")

	snap, err := h.voucherService.SnapshotVouchers(c.Request.Context(), workspaceID)
	if err != nil {
		logger.Error("Failed to snapshot vouchers", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace")
	fileID := c.Query("file_id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id query parameter is required"})
		return
	}

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), workspaceID, fileID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to get voucher", slog.String("error", err.Error()), slog.String("file_id", fileID))
		}
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) upsertVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace")

	req := dto.UpsertVoucherRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for voucher upsert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	voucher, version, err := h.voucherService.UpsertVoucher(c.Request.Context(), workspaceID, req.FileID, req.Fields, req.ExpectedVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Voucher upsert rejected", slog.String("error", err.Error()), slog.String("file_id", req.FileID))
		} else {
			logger.Error("Failed to upsert voucher", slog.String("error", err.Error()), slog.String("file_id", req.FileID))
		}
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UpsertVoucherResponse{Voucher: dto.ToVoucherResponse(voucher), Version: version})
}

func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace")
	fileID := c.Query("file_id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id query parameter is required"})
		return
	}
	expectedVersion, ok := expectedVersionFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected_version must be an integer"})
		return
	}

	deleted, version, err := h.voucherService.DeleteVoucher(c.Request.Context(), workspaceID, fileID, expectedVersion)
	if err != nil {
		logger.Error("Failed to delete voucher", slog.String("error", err.Error()), slog.String("file_id", fileID))
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteVoucherResponse{Deleted: deleted, Version: version})
}

func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)
	vouchers := rg.Group("/vouchers")
	{
		vouchers.GET("", h.snapshotVouchers)
		vouchers.GET("/file", h.getVoucher)
		vouchers.PUT("", h.upsertVoucher)
		vouchers.DELETE("", h.deleteVoucher)
	}
}
