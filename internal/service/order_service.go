package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
	"go.uber.org/zap"
)

// paidAtLayout формат отметки времени платежа (ISO 8601, без зоны — как хранит RetailCRM)
const paidAtLayout = "2006-01-02T15:04:05"

// defaultOrderStatus статус нового заказа, если не указан
const defaultOrderStatus = "new"

// OrderService интерфейс сервиса для работы с заказами и платежами RetailCRM
type OrderService interface {
	GetCustomerOrders(ctx context.Context, customerID, limit, page int) (domain.OrderList, error)
	CreateOrder(ctx context.Context, input domain.OrderCreate) (domain.Order, error)
	CreatePayment(ctx context.Context, orderID int, input domain.PaymentCreate) (domain.Payment, error)
}

type orderService struct {
	client CRMClient
	log    *zap.Logger
}

// NewOrderService создает новый сервис для работы с заказами
func NewOrderService(client CRMClient, log *zap.Logger) OrderService {
	return &orderService{
		client: client,
		log:    log,
	}
}

// GetCustomerOrders возвращает заказы клиента в выходной схеме шлюза
func (s *orderService) GetCustomerOrders(ctx context.Context, customerID, limit, page int) (domain.OrderList, error) {
	if limit == 0 {
		limit = 20
	}
	if page == 0 {
		page = 1
	}

	var verrs domain.ValidationErrors
	if customerID <= 0 {
		verrs.Add("customerId", "must be a positive integer")
	}
	if limit < 1 || limit > 100 {
		verrs.Add("limit", "must be between 1 and 100")
	}
	if page < 1 {
		verrs.Add("page", "must be greater than or equal to 1")
	}
	if verrs.HasErrors() {
		return domain.OrderList{}, verrs
	}

	resp, err := s.client.GetOrders(ctx, customerID, limit, page)
	if err != nil {
		return domain.OrderList{}, err
	}

	orders, err := decodeAs[[]domain.Order](resp["orders"])
	if err != nil {
		return domain.OrderList{}, fmt.Errorf("failed to decode orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	s.log.Debug("fetched customer orders from RetailCRM",
		zap.Int("customerId", customerID),
		zap.Int("count", len(orders)))

	return domain.OrderList{
		Orders:     orders,
		Pagination: resp["pagination"],
	}, nil
}

// CreateOrder создает заказ в RetailCRM. Должен быть указан customerId либо
// вложенный customer; при наличии обоих используется только customerId.
func (s *orderService) CreateOrder(ctx context.Context, input domain.OrderCreate) (domain.Order, error) {
	var verrs domain.ValidationErrors
	if strings.TrimSpace(input.OrderNumber) == "" {
		verrs.Add("orderNumber", "is required and must not be blank")
	}
	if input.CustomerID == 0 && input.Customer == nil {
		verrs.Add("customerId", "either customerId or customer data must be provided")
	}
	if verrs.HasErrors() {
		return domain.Order{}, verrs
	}

	status := input.Status
	if status == "" {
		status = defaultOrderStatus
	}

	payload := map[string]any{
		"number": input.OrderNumber,
		"status": status,
	}

	if input.CustomerID != 0 {
		payload["customerId"] = input.CustomerID
	} else {
		embedded := map[string]any{}
		if input.Customer.FirstName != "" {
			embedded["firstName"] = input.Customer.FirstName
		}
		if input.Customer.LastName != "" {
			embedded["lastName"] = input.Customer.LastName
		}
		if input.Customer.Email != "" {
			embedded["email"] = input.Customer.Email
		}
		if phones := domain.NormalizePhones(input.Customer.Phones); len(phones) > 0 {
			embedded["phones"] = phones
		}
		payload["customer"] = embedded
	}

	items := make([]map[string]any, 0, len(input.Items))
	for _, item := range input.Items {
		entry := map[string]any{
			"productName":  item.ProductName,
			"quantity":     item.Quantity,
			"initialPrice": item.Price,
		}
		if item.Comment != "" {
			entry["comment"] = item.Comment
		}
		items = append(items, entry)
	}
	payload["items"] = items

	resp, err := s.client.CreateOrder(ctx, payload)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := decodeAs[domain.Order](resp["order"])
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to decode order: %w", err)
	}

	s.log.Info("created order in RetailCRM",
		zap.Int("id", order.ID),
		zap.String("number", order.Number))
	return order, nil
}

// CreatePayment добавляет платеж к заказу. В RetailCRM нет отдельного
// метода добавления платежа, поэтому выполняется чтение заказа и запись
// дополненного списка платежей через orders/edit. Последовательность
// не атомарна: параллельные вызовы по одному заказу могут потерять
// обновление друг друга.
func (s *orderService) CreatePayment(ctx context.Context, orderID int, input domain.PaymentCreate) (domain.Payment, error) {
	var verrs domain.ValidationErrors
	if orderID <= 0 {
		verrs.Add("orderId", "must be a positive integer")
	}
	if input.Amount <= 0 {
		verrs.Add("amount", "must be greater than zero")
	}
	if verrs.HasErrors() {
		return domain.Payment{}, verrs
	}

	paymentType := input.Type
	if paymentType == "" {
		paymentType = domain.DefaultPaymentType
	}
	paymentStatus := input.Status
	if paymentStatus == "" {
		paymentStatus = domain.DefaultPaymentStatus
	}
	paidAt := input.PaidAt
	if paidAt == "" {
		paidAt = time.Now().Format(paidAtLayout)
	}

	payment := map[string]any{
		"amount": input.Amount,
		"type":   paymentType,
		"status": paymentStatus,
		"paidAt": paidAt,
	}
	if input.Comment != "" {
		payment["comment"] = input.Comment
	}

	orderResp, err := s.client.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Payment{}, err
	}

	// Отсутствующий список платежей равносилен пустому
	order, _ := orderResp["order"].(map[string]any)
	payments, _ := order["payments"].([]any)
	payments = append(payments, payment)

	editResp, err := s.client.EditOrder(ctx, map[string]any{
		"id":       orderID,
		"payments": payments,
	})
	if err != nil {
		return domain.Payment{}, err
	}

	if editedOrder, ok := editResp["order"].(map[string]any); ok {
		if respPayments, ok := editedOrder["payments"].([]any); ok && len(respPayments) > 0 {
			last, err := decodeAs[domain.Payment](respPayments[len(respPayments)-1])
			if err == nil {
				s.log.Info("added payment to order",
					zap.Int("orderId", orderID),
					zap.Float64("amount", last.Amount))
				return last, nil
			}
			s.log.Warn("failed to decode payment from orders/edit response", zap.Error(err))
		}
	}

	// RetailCRM принял правку, но не вернул платежи: отдаем отправленные
	// данные с пометкой unconfirmed
	s.log.Warn("orders/edit response omitted payments, returning submitted payment as unconfirmed",
		zap.Int("orderId", orderID))

	fallback, err := decodeAs[domain.Payment](payment)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("failed to build payment fallback: %w", err)
	}
	fallback.Unconfirmed = true
	return fallback, nil
}
