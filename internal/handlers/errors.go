package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inventorysoft/backend/internal/services"
	"github.com/inventorysoft/backend/pkg/response"
)

// respondServiceError maps service-layer errors onto HTTP statuses:
// validation failures are 400, configuration conflicts 409, anything
// else a 500.
func respondServiceError(c *gin.Context, err error) {
	var conflict *services.ConfigurationConflictError
	switch {
	case services.IsValidationError(err):
		response.BadRequest(c, err.Error())
	case errors.As(err, &conflict):
		response.Error(c, response.NewConflict(err.Error()))
	default:
		response.ServerError(c, err.Error())
	}
}
