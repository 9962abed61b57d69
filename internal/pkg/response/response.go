// Package response shapes every API reply into the same envelope:
// {"success":true,"data":...} or {"success":false,"error":{...}}.
package response

import "github.com/gin-gonic/gin"

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, envelope{Error: &errorBody{Code: code, Message: message}})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, envelope{Error: &errorBody{Code: code, Message: message, Details: details}})
}
