package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0minute/VoucherAI/internal/apperrors"
	"github.com/0minute/VoucherAI/internal/core/domain"
	portssvc "github.com/0minute/VoucherAI/internal/core/ports/services"
	"github.com/0minute/VoucherAI/internal/core/services"
	"github.com/0minute/VoucherAI/internal/dto"
	"github.com/0minute/VoucherAI/internal/middleware"
)

// journalHandler exposes the journal generation pipeline.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

func (h *journalHandler) generateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace")
	target := c.DefaultQuery("target", domain.TargetDZ)

	batches, rows, err := h.journalService.GenerateWorkspaceJournal(c.Request.Context(), workspaceID, target)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnmappedCategory), errors.Is(err, services.ErrUnknownGroup), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Journal generation rejected", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to generate journal", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate journal"})
		}
		return
	}

	lineCount := 0
	for _, b := range batches {
		lineCount += len(b.Lines)
	}
	c.JSON(http.StatusOK, dto.GenerateJournalResponse{
		Target:     target,
		BatchCount: len(batches),
		LineCount:  lineCount,
		Rows:       rows,
	})
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)
	rg.POST("/journal/generate", h.generateJournal)
}
