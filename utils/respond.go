package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Every response is the `{success, message, data?}` envelope the landing
// page expects.

func OK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// BindingMessage flattens a ShouldBindJSON failure into one sentence
// enumerating every field violation. Non-validator errors (malformed
// JSON and the like) get a generic message.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body."
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "url":
			parts = append(parts, fmt.Sprintf("%s must be a valid URL", fe.Field()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}
