package rest

import (
	"github.com/crmgate/retailcrm-gateway/config"
	"github.com/crmgate/retailcrm-gateway/internal/api/rest/handlers"
	"github.com/crmgate/retailcrm-gateway/internal/api/rest/middleware"
	"github.com/crmgate/retailcrm-gateway/internal/metrics"
	"github.com/crmgate/retailcrm-gateway/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(
	cfg *config.Config,
	customerService service.CustomerService,
	orderService service.OrderService,
	httpMetrics metrics.HTTPMetrics,
	registry *prometheus.Registry,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// Подключение middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.Metrics(httpMetrics))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(gin.Recovery())

	// Endpoint для проверки работоспособности сервиса
	r.GET("/health", handlers.HealthCheck)

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Инициализация обработчиков
	customerHandler := handlers.NewCustomerHandler(customerService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	v1 := r.Group(cfg.App.APIV1Prefix)
	{
		// Клиенты
		customers := v1.Group("/customers")
		{
			customers.GET("", customerHandler.GetCustomers)
			customers.POST("", customerHandler.CreateCustomer)
		}

		// Заказы и платежи
		orders := v1.Group("/orders")
		{
			orders.GET("/customer/:customerId", orderHandler.GetCustomerOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.POST("/:orderId/payments", orderHandler.CreatePayment)
		}
	}

	return r
}
