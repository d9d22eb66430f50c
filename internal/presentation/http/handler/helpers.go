package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/clockshop-api/pkg/apperror"
	"github.com/sangkips/clockshop-api/pkg/pagination"
)

// bindJSON binds the body into req. Tag failures become a 422 listing the
// fields, anything else a 400. It reports whether the handler may continue.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.Error(c, apperror.FromValidation(verrs))
		return false
	}
	response.BadRequest(c, "Invalid request body")
	return false
}

// paramID parses the UUID path parameter name
func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	p := &pagination.PaginationParams{Page: page, PerPage: perPage}
	p.Validate()
	return p
}

func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// optionalDate accepts RFC 3339 or YYYY-MM-DD
func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}

func optionalStatus(s string) *enum.DocumentStatus {
	status := enum.DocumentStatus(s)
	if !status.Valid() {
		return nil
	}
	return &status
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
