package httpapi

import (
	"errors"
	"net/http"

	"atelier/internal/orders"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service *orders.Service
	logger  *zap.Logger
}

func NewOrderHandler(service *orders.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, logger: logger}
}

//
// POST /api/orders
//

func (h *OrderHandler) Submit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orders.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		ack, err := h.service.Submit(c.Request.Context(), req)
		if err != nil {
			var ve *orders.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order", "fields": ve.Fields})
				return
			}
			h.logger.Error("Order submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusAccepted, ack)
	}
}
