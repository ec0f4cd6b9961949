package handlers

import (
	"errors"
	"net/http"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
	"github.com/crmgate/retailcrm-gateway/internal/integration/retailcrm"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError транслирует ошибку сервиса в HTTP-ответ.
// Ошибки валидации становятся 400, не-2xx от RetailCRM сохраняет свой
// код статуса, сетевые ошибки и ошибки конверта превращаются в 502.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		details := gin.H{}
		for _, ve := range verrs {
			details[ve.Field] = ve.Message
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   verrs.Error(),
			"details": details,
		})
		return
	}

	var httpErr *retailcrm.HTTPError
	if errors.As(err, &httpErr) {
		status := httpErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": httpErr.Detail})
		return
	}

	var transportErr *retailcrm.TransportError
	if errors.As(err, &transportErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": transportErr.Message})
		return
	}

	var businessErr *retailcrm.BusinessError
	if errors.As(err, &businessErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": businessErr.Message})
		return
	}

	log.Error("unexpected error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
