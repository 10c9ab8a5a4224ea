package middleware

import (
	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	PaginationKey = "validated_pagination"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateIDParam rejects requests whose path parameter is not a ULID.
func (vm *ValidationMiddleware) ValidateIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateID(param, c.Params(param)); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// ValidatePagination parses limit, offset and page query parameters and
// stores the normalized dto.Pagination under PaginationKey.
func (vm *ValidationMiddleware) ValidatePagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p dto.Pagination
		if err := c.QueryParser(&p); err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("pagination", c.Request().URI().QueryArgs().String())}
		}
		if errs := vm.validator.ValidatePagination(&p); len(errs) > 0 {
			return errs
		}
		p.Normalize()
		c.Locals(PaginationKey, p)
		return c.Next()
	}
}

// PaginationFrom returns the pagination stored by ValidatePagination, or
// the defaults when the middleware did not run.
func PaginationFrom(c *fiber.Ctx) dto.Pagination {
	if p, ok := c.Locals(PaginationKey).(dto.Pagination); ok {
		return p
	}
	p := dto.Pagination{}
	p.Normalize()
	return p
}
