package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"slidetext/internal/domain"
	"slidetext/internal/export"
	"slidetext/internal/service"
)

// ConvertHandler handles .pptx-to-text conversion endpoints.
type ConvertHandler struct {
	convertService service.ConvertService
}

// NewConvertHandler creates a new ConvertHandler.
func NewConvertHandler(convertService service.ConvertService) *ConvertHandler {
	return &ConvertHandler{convertService: convertService}
}

// Convert handles POST /api/v1/convert
// @Summary Convert a presentation to text
// @Description Upload a .pptx file (max 50MB) and receive its extracted text with download artifact names
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Presentation to convert (.pptx)"
// @Success 200 {object} APIResponse{data=domain.ConversionResult} "Extracted text"
// @Failure 400 {object} APIResponse "Missing file or validation rejected"
// @Failure 413 {object} APIResponse "Request body exceeds the upload limit"
// @Failure 422 {object} APIResponse "File could not be parsed or extraction failed"
// @Failure 500 {object} APIResponse "Internal error"
// @Router /convert [post]
func (h *ConvertHandler) Convert(c *gin.Context) {
	result, ok := h.convert(c)
	if !ok {
		return
	}
	RespondOK(c, result)
}

// Download handles POST /api/v1/convert/download
// @Summary Convert a presentation and download the text
// @Description Upload a .pptx file and receive the extracted text as a plain-text attachment
// @Tags convert
// @Accept multipart/form-data
// @Produce plain
// @Param file formData file true "Presentation to convert (.pptx)"
// @Success 200 {string} string "Extracted text attachment"
// @Failure 400 {object} APIResponse "Missing file or validation rejected"
// @Failure 413 {object} APIResponse "Request body exceeds the upload limit"
// @Failure 422 {object} APIResponse "File could not be parsed or extraction failed"
// @Router /convert/download [post]
func (h *ConvertHandler) Download(c *gin.Context) {
	result, ok := h.convert(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.DownloadName+`"`)
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)

	w := export.NewWriter(c.Writer)
	if err := w.WriteText(result.Text); err != nil {
		log.Error().Err(err).Str("download_name", result.DownloadName).Msg("convertHandler.Download: writing attachment")
	}
}

func (h *ConvertHandler) convert(c *gin.Context) (*domain.ConversionResult, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			RespondError(c, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "request body exceeds the upload limit")
			return nil, false
		}
		HandleError(c, domain.ErrMissingFile)
		return nil, false
	}
	defer func() { _ = file.Close() }()

	result, err := h.convertService.Convert(c.Request.Context(), service.ConvertInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return result, true
}
