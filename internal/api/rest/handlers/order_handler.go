package handlers

import (
	"net/http"
	"strconv"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
	"github.com/crmgate/retailcrm-gateway/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler обработчик для заказов и платежей
type OrderHandler struct {
	service service.OrderService
	log     *zap.Logger
}

// NewOrderHandler создает новый обработчик заказов
func NewOrderHandler(svc service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		log:     log,
	}
}

// pageQuery параметры пагинации списка заказов
type pageQuery struct {
	Limit int `form:"limit,default=20" binding:"gte=1,lte=100"`
	Page  int `form:"page,default=1" binding:"gte=1"`
}

// GetCustomerOrders возвращает заказы клиента
func (h *OrderHandler) GetCustomerOrders(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customerId"))
	if err != nil {
		h.log.Warn("invalid customer ID", zap.String("customerId", c.Param("customerId")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	var query pageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.log.Warn("invalid pagination query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.GetCustomerOrders(c.Request.Context(), customerID, query.Limit, query.Page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// CreateOrder создает новый заказ в RetailCRM
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.OrderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid order create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// CreatePayment добавляет платеж к заказу
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		h.log.Warn("invalid order ID", zap.String("orderId", c.Param("orderId")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req domain.PaymentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid payment create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.service.CreatePayment(c.Request.Context(), orderID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}
