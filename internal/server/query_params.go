package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// activeOnly reads the ?active= flag used by the unpaginated lists.
func activeOnly(c *gin.Context) (bool, error) {
	v, err := parseOptionalBool(c.Query("active"))
	if err != nil {
		return false, newValidationError("active", "invalid_active", "invalid active")
	}
	return v != nil && *v, nil
}

func param(c *gin.Context, name string) string {
	return strings.TrimSpace(c.Param(name))
}
