package handler

import (
	"mindspark/internal/domain"
	"mindspark/internal/logger"

	"go.uber.org/zap"
)

func invalidBody(err error) error {
	logger.Get().Debug("Failed to parse request body", zap.Error(err))
	return domain.NewValidationError("request body is not valid JSON")
}
