package handlers

import (
	"net/http"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
	"github.com/crmgate/retailcrm-gateway/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomerHandler обработчик для клиентов
type CustomerHandler struct {
	service service.CustomerService
	log     *zap.Logger
}

// NewCustomerHandler создает новый обработчик клиентов
func NewCustomerHandler(svc service.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: svc,
		log:     log,
	}
}

// GetCustomers возвращает список клиентов RetailCRM с учетом фильтров
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	var filter domain.CustomerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Warn("invalid customer filter", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.GetCustomers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// CreateCustomer создает нового клиента в RetailCRM
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req domain.CustomerCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid customer create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.service.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}
