package service

import (
	"context"
	"encoding/json"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
)

// CRMClient интерфейс клиента RetailCRM, используемый сервисами
type CRMClient interface {
	GetCustomers(ctx context.Context, filter domain.CustomerFilter) (map[string]any, error)
	CreateCustomer(ctx context.Context, customer map[string]any) (map[string]any, error)
	GetOrders(ctx context.Context, customerID, limit, page int) (map[string]any, error)
	GetOrder(ctx context.Context, orderID int) (map[string]any, error)
	CreateOrder(ctx context.Context, order map[string]any) (map[string]any, error)
	EditOrder(ctx context.Context, order map[string]any) (map[string]any, error)
}

// decodeAs преобразует фрагмент декодированного ответа RetailCRM в структуру типа T
func decodeAs[T any](value any) (T, error) {
	var out T
	data, err := json.Marshal(value)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
