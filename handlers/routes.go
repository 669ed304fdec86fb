package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes installs the form template and the converter routes.
// uploadMiddleware runs in front of POST / only.
func RegisterRoutes(router *gin.Engine, h *ConvertHandler, uploadMiddleware ...gin.HandlerFunc) {
	router.SetHTMLTemplate(Template())

	router.GET("/", h.HandleForm)
	router.POST("/", append(uploadMiddleware, h.HandleConvert)...)
	router.GET("/health", HandleHealth)
}
