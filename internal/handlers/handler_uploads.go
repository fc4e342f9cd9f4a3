package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/gin-gonic/gin"
)

// readUpload reads the multipart file field into memory. It reads at most
// limit+1 bytes so the flows can still reject an oversized file by size. A
// missing field yields nil.
func readUpload(c *gin.Context, field string, limit int64) (*dto.Upload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file %s: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &dto.Upload{Filename: header.Filename, ContentType: contentType, Data: data}, nil
}

// screenshotHandler attaches the payment proof to the deposit wizard.
type screenshotHandler struct {
	registry *portal.Registry
	maxBytes int64
}

func (h *screenshotHandler) attach(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	upload, err := readUpload(c, "screenshot", h.maxBytes)
	if err != nil {
		logger.Warn("Failed to read screenshot upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	profile, ok := profileFor(c, h.registry)
	if !ok {
		return
	}

	err = profile.Deposit.AttachScreenshot(c.Request.Context(), upload)
	if err != nil {
		logger.Info("Screenshot rejected", slog.String("error", err.Error()))
	}
	c.JSON(statusFor(err), profile.Deposit.View())
}
