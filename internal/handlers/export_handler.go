package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/masq-social/masq-service/internal/services"
	"github.com/masq-social/masq-service/internal/utils"
)

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportActivity streams the caller's data takeout as a spreadsheet
// @Summary Export personal data
// @Description Builds an xlsx workbook with the caller's profile, messages and guesses
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /export [get]
func (h *ExportHandler) ExportActivity(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	h.LogRequest(c, "Exporting activity", "user_id", userID)

	workbook, err := h.exportService.ActivityWorkbook(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"activity_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := workbook.Write(c.Writer); err != nil {
		utils.FromContext(c, h.logger).Error("Failed to write export", "error", err)
	}
}
