package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/api/middleware"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/internal/observability/logger"
)

func init() {
	// Report binding errors under the JSON names clients send
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}
}

func writeError(c *gin.Context, code int, message string) {
	c.JSON(code, dto.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

// bindJSON decodes the body into req and answers 400 when it does not fit.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = "is " + fe.Tag()
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "Validation failed",
			Code:    http.StatusBadRequest,
			Fields:  fields,
		})
		return false
	}

	writeError(c, http.StatusBadRequest, err.Error())
	return false
}

// respondError maps service and repository errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	if fields, ok := domain.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "Validation failed",
			Code:    http.StatusBadRequest,
			Fields:  fields,
		})
		return
	}

	var svcErr *service.ServiceError
	switch {
	case errors.As(err, &svcErr):
		writeError(c, svcErr.Code, svcErr.Message)
	case errors.Is(err, domain.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		logger.From(c.Request.Context()).Error("request failed", logger.Err(err))
		writeError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// session returns the caller. Routes are always mounted behind the auth
// middleware, so a missing session is a wiring error.
func session(c *gin.Context) *service.Session {
	s, ok := middleware.GetSession(c)
	if !ok {
		return &service.Session{}
	}
	return s
}

func ownerID(c *gin.Context) string {
	return session(c).OwnerID
}
