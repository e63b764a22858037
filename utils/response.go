package utils

import (
	"log/slog"
	"net/http"

	"noteful/errs"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func errorJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, &ErrorResponse{
		Message:   message,
		RequestID: c.GetString("request_id"),
	})
}

// Success responses

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created responds 201 with data and a Location header.
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses

func BadRequest(c *gin.Context, message string) {
	errorJSON(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	errorJSON(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	errorJSON(c, http.StatusInternalServerError, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	errorJSON(c, http.StatusServiceUnavailable, message)
}

func TooManyRequests(c *gin.Context, message string) {
	errorJSON(c, http.StatusTooManyRequests, message)
}

func RequestEntityTooLarge(c *gin.Context, message string) {
	errorJSON(c, http.StatusRequestEntityTooLarge, message)
}

// Error renders err using its errs.Code. Server-side failures are logged
// with their cause; the client only sees the generic message.
func Error(c *gin.Context, err error) {
	code := errs.CodeOf(err)
	status := errs.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"code", string(code),
			"error", err,
		)
	}
	_ = c.Error(err)
	errorJSON(c, status, errs.MessageOf(err))
}
