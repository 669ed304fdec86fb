package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/CorrelAid/svg_converter/models"
	"github.com/CorrelAid/svg_converter/validators"
	"github.com/CorrelAid/svg_converter/vectorize"
	"github.com/gin-gonic/gin"
)

const (
	msgNoFile           = "No file selected."
	msgInvalidFileType  = "Please upload a valid image file (PNG, JPG, GIF, BMP)."
	msgFileTooLarge     = "File size exceeds the maximum limit."
	msgInvalidColorMode = "Please choose a valid color mode (color, binary)."
	msgTimeout          = "Conversion timed out. Please try a smaller image."
	msgFailed           = "Conversion failed. Please try a different image."
)

// ScratchStore stages uploads on disk for the converter.
type ScratchStore interface {
	Stage(name string, src io.Reader) (*models.ScratchArtifact, error)
	Release(artifact *models.ScratchArtifact) error
}

// ConvertHandler serves the upload form and turns uploads into SVG downloads.
type ConvertHandler struct {
	converter   vectorize.Converter
	scratch     ScratchStore
	options     models.ConversionOptions
	maxFileSize int64
}

func NewConvertHandler(converter vectorize.Converter, scratch ScratchStore, options models.ConversionOptions, maxFileSize int64) *ConvertHandler {
	return &ConvertHandler{
		converter:   converter,
		scratch:     scratch,
		options:     options,
		maxFileSize: maxFileSize,
	}
}

// HandleForm renders the empty upload form.
func (h *ConvertHandler) HandleForm(c *gin.Context) {
	renderForm(c, "", "")
}

// HandleConvert validates the upload, stages it, runs the converter and
// streams the SVG back as an attachment. Every failure re-renders the form.
func (h *ConvertHandler) HandleConvert(c *gin.Context) {
	form := models.ConversionRequest{
		ColorMode: c.PostForm("colormode"),
	}
	if file, err := c.FormFile("image"); err == nil {
		form.File = file
	}

	req, err := validators.ValidateConversionRequest(form, h.maxFileSize)
	if err != nil {
		log.Printf("Rejected upload: file=%q err=%v", form.FileName(), err)
		renderForm(c, form.ColorMode, userMessage(err))
		return
	}

	src, err := req.File.Open()
	if err != nil {
		log.Printf("Opening upload failed: file=%q err=%v", req.FileName(), err)
		renderForm(c, req.ColorMode, msgFailed)
		return
	}
	defer src.Close()

	artifact, err := h.scratch.Stage(req.FileName(), src)
	if err != nil {
		log.Printf("Staging upload failed: file=%q err=%v", req.FileName(), err)
		renderForm(c, req.ColorMode, msgFailed)
		return
	}
	defer func() {
		if err := h.scratch.Release(artifact); err != nil {
			log.Printf("Releasing scratch artifact failed: id=%s err=%v", artifact.ID, err)
		}
	}()

	opts := h.options.WithColorMode(req.ColorMode)
	if err := h.converter.Convert(c.Request.Context(), artifact.InputPath, artifact.OutputPath, opts); err != nil {
		log.Printf("Conversion failed: id=%s file=%q err=%v", artifact.ID, req.FileName(), err)
		renderForm(c, req.ColorMode, userMessage(err))
		return
	}

	c.Header("Content-Type", "image/svg+xml")
	c.FileAttachment(artifact.OutputPath, models.DownloadFileName)
}

// HandleHealth reports liveness.
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func renderForm(c *gin.Context, colorMode, message string) {
	c.HTML(http.StatusOK, uploadTemplate, gin.H{
		"colormode": colorMode,
		"error":     message,
	})
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, validators.ErrNoFile):
		return msgNoFile
	case errors.Is(err, validators.ErrInvalidFileType):
		return msgInvalidFileType
	case errors.Is(err, validators.ErrFileTooLarge):
		return msgFileTooLarge
	case errors.Is(err, validators.ErrInvalidColorMode):
		return msgInvalidColorMode
	case errors.Is(err, vectorize.ErrTimeout):
		return msgTimeout
	default:
		return msgFailed
	}
}
