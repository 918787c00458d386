package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the uniform envelope for every API response.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes the envelope with the given HTTP status.
func Respond(ctx *gin.Context, status, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{Code: code, Message: message, Data: data})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Error returns a standard error response without a data payload.
func Error(ctx *gin.Context, status, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// FieldErrors returns a 400 carrying the per-field violation map so the
// client can re-render the form with every failure.
func FieldErrors(ctx *gin.Context, code int, fields map[string]string) {
	Respond(ctx, http.StatusBadRequest, code, "validation failed", gin.H{"fields": fields})
}
