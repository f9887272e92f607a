// Package web holds the response envelope shared by every handler:
// {success, count, data} on success, {success, error:{code, message,
// details?}} on failure.
package web

import "github.com/gin-gonic/gin"

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success bool       `json:"success"`
	Count   *int       `json:"count,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// OK writes a success envelope for a single value.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// OKList writes a success envelope with count == len(data).
func OKList(c *gin.Context, status int, count int, data any) {
	c.JSON(status, Envelope{Success: true, Count: &count, Data: data})
}

// Fail writes an error envelope.
func Fail(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{Success: false, Error: &ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}
