package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"vigil/internal/shared/errors"
)

// ParseIntParam parses a positive integer path parameter.
func ParseIntParam(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}
	return v, nil
}

// ParseUintParam parses a positive uint path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}
	return uint(v), nil
}

// ParseBoolQuery parses an optional boolean query parameter.
func ParseBoolQuery(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}
