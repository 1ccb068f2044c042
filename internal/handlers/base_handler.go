package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/validator"
	"afisha_backend/pkg/apperrors"
)

const (
	defaultPageFrom = 0
	defaultPageSize = 10
)

// bindAndValidate decodes the JSON body and runs the validate tags.
// Returns false after writing the error response.
func bindAndValidate(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid request body: "+err.Error()))
		return false
	}
	if err := validator.Validate(target); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(err.Error()))
		return false
	}
	return true
}

// pagination reads the from/size query parameters with their defaults.
func pagination(c *gin.Context) (from, size int, ok bool) {
	from, ok = queryInt(c, "from", defaultPageFrom)
	if !ok {
		return 0, 0, false
	}
	size, ok = queryInt(c, "size", defaultPageSize)
	if !ok {
		return 0, 0, false
	}
	if from < 0 || size <= 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("from must be >= 0 and size must be > 0"))
		return 0, 0, false
	}
	return from, size, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("parameter "+name+" must be an integer"))
		return 0, false
	}
	return value, true
}

// queryList reads a repeatable parameter, also accepting a single
// comma-separated value.
func queryList(c *gin.Context, name string) []string {
	values := c.QueryArray(name)
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	result := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("parameter "+name+" must be a boolean"))
		return nil, false
	}
	return &value, true
}
