// Package response writes the platform's wire envelopes from a gin handler.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope wraps every successful payload.
type Envelope struct {
	Result interface{} `json:"result"`
}

// ErrorBody is the structured error payload. Code is a platform error code
// such as 40901, not the HTTP status.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Platform error codes.
const (
	CodeBadRequest    = 40000
	CodeUnauthorized  = 40100
	CodeNotFound      = 40400
	CodeEmailTaken    = 40901
	CodeNicknameTaken = 40902
	CodeInternal      = 50000
)

// Success sends a 200 response wrapping data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Result: data})
}

// Created sends a 201 response wrapping data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Result: data})
}

// Error sends a structured error response.
func Error(c *gin.Context, statusCode, code int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Code: code, Message: message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Conflict sends a 409 error response with a specific conflict code.
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message)
}
