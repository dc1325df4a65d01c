package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainorder "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/order"
)

// SetupValidator registers custom binding validations on gin's validator
// engine. Call once at startup before serving requests.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("orderstatus", validateOrderStatus)
	}
}

// validateOrderStatus accepts only known order status values
func validateOrderStatus(fl validator.FieldLevel) bool {
	return domainorder.Status(fl.Field().String()).IsValid()
}
