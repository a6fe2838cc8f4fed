// internal/api/responses/responses.go
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger *zap.Logger

// APIResponse define el sobre estándar de las respuestas de la API.
type APIResponse struct {
	Status  string      `json:"status"` // "success" o "error"
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// InitLogger inicializa el logger estructurado de las respuestas.
func InitLogger() {
	logger, _ = zap.NewProduction()
}

// Success envía una respuesta exitosa con los datos y el mensaje dados.
func Success(c *gin.Context, data interface{}, message string) {
	resp := APIResponse{Status: "success", Data: data, Message: message}
	c.JSON(http.StatusOK, resp)
	logger.Info("API success",
		zap.String("path", c.Request.URL.Path),
		zap.String("message", message),
		zap.Int("status", http.StatusOK))
}

// Error envía una respuesta de error con el código y mensaje dados.
func Error(c *gin.Context, code int, message string, errs ...string) {
	resp := APIResponse{Status: "error", Message: message, Errors: errs}
	c.JSON(code, resp)
	logger.Error("API error",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", code),
		zap.Strings("errors", errs))
}

// Download envía un archivo generado como descarga adjunta.
func Download(c *gin.Context, nombre, contentType string, datos []byte) {
	c.Header("Content-Disposition", "attachment; filename="+nombre)
	c.Data(http.StatusOK, contentType, datos)
	logger.Info("API download",
		zap.String("path", c.Request.URL.Path),
		zap.String("filename", nombre),
		zap.Int("bytes", len(datos)))
}
