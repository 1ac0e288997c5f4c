package httpx

import (
	"net/http"

	"github.com/jaehwan-AI/coloring-web/internal/common"
	"github.com/jaehwan-AI/coloring-web/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := common.AsServiceError(err); ok {
		status := serviceErrorStatus(serviceErr.Code)
		if status >= http.StatusInternalServerError {
			logger.L().Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("message", serviceErr.Message),
				zap.Error(serviceErr.Err),
			)
		}
		c.JSON(status, gin.H{"error": serviceErr.Message})
		return
	}
	logger.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
}

func serviceErrorStatus(code common.ErrorCode) int {
	switch code {
	case common.ErrorCodeValidation:
		return http.StatusBadRequest
	case common.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrorCodeForbidden:
		return http.StatusForbidden
	case common.ErrorCodeConflict:
		return http.StatusConflict
	case common.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
