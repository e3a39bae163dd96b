package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse es el cuerpo estándar de mensajes y errores: {"message": "..."}.
type MessageResponse struct {
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// SendSuccess envía el payload tal cual.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendMessage envía un mensaje informativo.
func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

// SendError corta la cadena de handlers y responde con el mensaje.
func SendError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, MessageResponse{Message: message})
}

// SendCodedError añade un código de error legible por máquina.
func SendCodedError(c *gin.Context, statusCode int, message, code string) {
	c.AbortWithStatusJSON(statusCode, MessageResponse{Message: message, Error: code})
}

// SendValidationError responde 400 con el detalle por campo.
func SendValidationError(c *gin.Context, message string, details error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, MessageResponse{Message: message, Errors: details})
}

// --- Helpers para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendUnauthorized(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, message)
}

func SendForbidden(c *gin.Context, message string) {
	SendError(c, http.StatusForbidden, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}
