package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/application/service"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/request"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) string {
	return c.GetString("operator_id")
}

// GetOperatorEmail extracts the operator email from the Gin context
func GetOperatorEmail(c *gin.Context) string {
	return c.GetString("operator_email")
}

// toConfirmation maps the request confirmation fields to the service
// shape
func toConfirmation(c request.Confirmation) service.Confirmation {
	return service.Confirmation{
		Confirmed: c.Confirmed,
		PIN:       c.PIN,
	}
}
