package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/server/http/dto"
	"github.com/tidex114/est-backend/internal/server/http/middleware"
)

// CurrentCaller extracts the authenticated caller from context.
func CurrentCaller(c *gin.Context) model.Caller {
	caller, _ := middleware.Caller(c)
	return caller
}

func offerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "malformed offer id")
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg, Code: "bad_request"})
}

// writeError maps a use case failure onto a status code and JSON body.
func writeError(c *gin.Context, err error) {
	kind := domainErrors.Kind(err)
	status, ok := statusByKind[kind]
	if !ok {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Code: kind})
		return
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Code: kind})
}

var statusByKind = map[string]int{
	"not_found":             http.StatusNotFound,
	"validation":            http.StatusUnprocessableEntity,
	"authorization":         http.StatusForbidden,
	"not_available":         http.StatusConflict,
	"insufficient_quantity": http.StatusConflict,
	"invalid_transition":    http.StatusConflict,
	"conflict":              http.StatusConflict,
}
