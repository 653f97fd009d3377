package response

import (
	"net/http"

	apperrors "eduplatform/errors"

	"github.com/gin-gonic/gin"
)

// Response is the envelope written by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage writes a 200 envelope carrying a message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the failure envelope for err. Internal errors keep their
// public message only; the wrapped cause is never sent to the client.
func Error(c *gin.Context, err error) {
	status := StatusFor(err)
	body := Response{Success: false, Message: "Internal server error"}
	if appErr := apperrors.GetAppError(err); appErr != nil {
		body.Code = string(appErr.Code)
		body.Message = appErr.Message
	}
	_ = c.Error(err)
	c.JSON(status, body)
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Code:    string(apperrors.ErrCodeValidation),
		Message: message,
	})
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Success: false,
		Code:    string(apperrors.ErrCodeUnauthorized),
		Message: "Authentication required",
	})
}

// Forbidden writes a 403 envelope.
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Success: false,
		Code:    string(apperrors.ErrCodeForbidden),
		Message: "Insufficient permissions",
	})
}
