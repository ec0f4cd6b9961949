package service

import (
	"context"
	"errors"
	"testing"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateOrderRequiresCustomerReference(t *testing.T) {
	fake := &fakeCRMClient{}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), domain.OrderCreate{
		OrderNumber: "ORD-1",
		Items:       []domain.OrderItem{{ProductName: "Widget", Quantity: 1, Price: 10}},
	})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Error(), "either customerId or customer data must be provided")
	assert.Equal(t, 0, fake.totalCalls())
}

func TestCreateOrderCustomerIDTakesPrecedence(t *testing.T) {
	fake := &fakeCRMClient{
		createOrderResp: map[string]any{
			"success": true,
			"order":   map[string]any{"id": 100, "number": "ORD-1"},
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), domain.OrderCreate{
		OrderNumber: "ORD-1",
		CustomerID:  42,
		Customer:    &domain.CustomerEmbed{FirstName: "Ivan", Email: "ivan@example.com"},
		Items:       []domain.OrderItem{{ProductName: "Widget", Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, 42, fake.gotOrder["customerId"])
	assert.NotContains(t, fake.gotOrder, "customer")
}

func TestCreateOrderEmbedsNewCustomer(t *testing.T) {
	fake := &fakeCRMClient{
		createOrderResp: map[string]any{
			"success": true,
			"order":   map[string]any{"id": 101, "number": "ORD-2"},
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), domain.OrderCreate{
		OrderNumber: "ORD-2",
		Customer: &domain.CustomerEmbed{
			FirstName: "Ivan",
			LastName:  "Petrov",
			Email:     "ivan@example.com",
			Phones:    phonesFromJSON(t, `["+111", {"number": "+222"}]`),
		},
		Items: []domain.OrderItem{{ProductName: "Widget", Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	embedded, ok := fake.gotOrder["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ivan", embedded["firstName"])
	assert.Equal(t, "Petrov", embedded["lastName"])
	assert.Equal(t, "ivan@example.com", embedded["email"])
	assert.Equal(t, []domain.Phone{{Number: "+111"}, {Number: "+222"}}, embedded["phones"])
	assert.NotContains(t, fake.gotOrder, "customerId")
}

func TestCreateOrderMapsItemsToUpstreamShape(t *testing.T) {
	fake := &fakeCRMClient{
		createOrderResp: map[string]any{
			"success": true,
			"order":   map[string]any{"id": 102, "number": "ORD-3"},
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), domain.OrderCreate{
		OrderNumber: "ORD-3",
		CustomerID:  1,
		Items: []domain.OrderItem{
			{ProductName: "Widget", Quantity: 2, Price: 99.5, Comment: "gift wrap"},
			{ProductName: "Gadget", Quantity: 1, Price: 0},
		},
	})
	require.NoError(t, err)

	items, ok := fake.gotOrder["items"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	assert.Equal(t, "Widget", items[0]["productName"])
	assert.Equal(t, 2, items[0]["quantity"])
	assert.Equal(t, 99.5, items[0]["initialPrice"])
	assert.Equal(t, "gift wrap", items[0]["comment"])
	assert.NotContains(t, items[0], "price")

	assert.Equal(t, 0.0, items[1]["initialPrice"])
	assert.NotContains(t, items[1], "comment")
}

func TestCreateOrderDefaultsStatusToNew(t *testing.T) {
	fake := &fakeCRMClient{
		createOrderResp: map[string]any{
			"success": true,
			"order":   map[string]any{"id": 103, "number": "ORD-4", "status": "new", "totalSumm": 199.0},
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	order, err := svc.CreateOrder(context.Background(), domain.OrderCreate{
		OrderNumber: "ORD-4",
		CustomerID:  1,
		Items:       []domain.OrderItem{{ProductName: "Widget", Quantity: 1, Price: 199}},
	})
	require.NoError(t, err)

	assert.Equal(t, "new", fake.gotOrder["status"])
	assert.Equal(t, "new", order.Status)
	assert.Equal(t, 199.0, order.TotalSumm)
}

func TestCreateOrderKeepsSuppliedStatus(t *testing.T) {
	fake := &fakeCRMClient{
		createOrderResp: map[string]any{
			"success": true,
			"order":   map[string]any{"id": 104, "number": "ORD-5"},
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), domain.OrderCreate{
		OrderNumber: "ORD-5",
		CustomerID:  1,
		Status:      "approval",
		Items:       []domain.OrderItem{{ProductName: "Widget", Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, "approval", fake.gotOrder["status"])
}

func TestGetCustomerOrdersAppliesDefaultsAndPassesPagination(t *testing.T) {
	pagination := map[string]any{"totalCount": float64(1)}
	fake := &fakeCRMClient{
		ordersResp: map[string]any{
			"success":    true,
			"orders":     []any{map[string]any{"id": 7, "number": "ORD-1", "customerId": 42}},
			"pagination": pagination,
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	list, err := svc.GetCustomerOrders(context.Background(), 42, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 42, fake.gotCustomerID)
	assert.Equal(t, 20, fake.gotLimit)
	assert.Equal(t, 1, fake.gotPage)

	require.Len(t, list.Orders, 1)
	assert.Equal(t, 7, list.Orders[0].ID)
	assert.Equal(t, 42, list.Orders[0].CustomerID)
	assert.Equal(t, pagination, list.Pagination)
}

func TestGetCustomerOrdersRejectsBadCustomerID(t *testing.T) {
	fake := &fakeCRMClient{}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.GetCustomerOrders(context.Background(), -1, 20, 1)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, 0, fake.totalCalls())
}

func TestCreatePaymentAppendsToExistingPayments(t *testing.T) {
	existing := map[string]any{"amount": float64(5), "type": "cash"}
	fake := &fakeCRMClient{
		orderResp: map[string]any{
			"success": true,
			"order": map[string]any{
				"id":       float64(7),
				"payments": []any{existing},
			},
		},
		editResp: map[string]any{
			"success": true,
			"order": map[string]any{
				"id": float64(7),
				"payments": []any{
					existing,
					map[string]any{"id": float64(3), "amount": 10.5, "type": "cash", "status": "paid"},
				},
			},
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	payment, err := svc.CreatePayment(context.Background(), 7, domain.PaymentCreate{Amount: 10.5})
	require.NoError(t, err)

	assert.Equal(t, 7, fake.gotOrderID)
	assert.Equal(t, 7, fake.gotEdit["id"])

	payments, ok := fake.gotEdit["payments"].([]any)
	require.True(t, ok)
	require.Len(t, payments, 2)
	assert.Equal(t, existing, payments[0])

	added, ok := payments[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10.5, added["amount"])
	assert.Equal(t, "cash", added["type"])
	assert.Equal(t, "paid", added["status"])
	assert.NotEmpty(t, added["paidAt"])

	// Результат берется из ответа orders/edit
	assert.Equal(t, 3, payment.ID)
	assert.Equal(t, 10.5, payment.Amount)
	assert.False(t, payment.Unconfirmed)
}

func TestCreatePaymentTreatsAbsentPaymentsAsEmpty(t *testing.T) {
	fake := &fakeCRMClient{
		orderResp: map[string]any{
			"success": true,
			"order":   map[string]any{"id": float64(9)},
		},
		editResp: map[string]any{
			"success": true,
			"order": map[string]any{
				"id":       float64(9),
				"payments": []any{map[string]any{"amount": 1.0, "type": "card", "status": "paid"}},
			},
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	payment, err := svc.CreatePayment(context.Background(), 9, domain.PaymentCreate{Amount: 1, Type: "card"})
	require.NoError(t, err)

	payments, ok := fake.gotEdit["payments"].([]any)
	require.True(t, ok)
	assert.Len(t, payments, 1)
	assert.Equal(t, "card", payment.Type)
}

func TestCreatePaymentFallsBackToSubmittedDataWhenResponseOmitsPayments(t *testing.T) {
	fake := &fakeCRMClient{
		orderResp: map[string]any{
			"success": true,
			"order":   map[string]any{"id": float64(7), "payments": []any{}},
		},
		editResp: map[string]any{
			"success": true,
			"order":   map[string]any{"id": float64(7)},
		},
	}
	svc := NewOrderService(fake, zap.NewNop())

	payment, err := svc.CreatePayment(context.Background(), 7, domain.PaymentCreate{
		Amount:  10.5,
		Comment: "first installment",
	})
	require.NoError(t, err)

	assert.True(t, payment.Unconfirmed)
	assert.Equal(t, 10.5, payment.Amount)
	assert.Equal(t, "cash", payment.Type)
	assert.Equal(t, "paid", payment.Status)
	assert.Equal(t, "first installment", payment.Comment)
	assert.NotEmpty(t, payment.PaidAt)
}

func TestCreatePaymentKeepsSuppliedPaidAt(t *testing.T) {
	fake := &fakeCRMClient{
		orderResp: map[string]any{"success": true, "order": map[string]any{"id": float64(7)}},
		editResp:  map[string]any{"success": true, "order": map[string]any{"id": float64(7)}},
	}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), 7, domain.PaymentCreate{
		Amount: 2,
		PaidAt: "2024-06-01T12:00:00",
	})
	require.NoError(t, err)

	payments := fake.gotEdit["payments"].([]any)
	added := payments[0].(map[string]any)
	assert.Equal(t, "2024-06-01T12:00:00", added["paidAt"])
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	fake := &fakeCRMClient{}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), 7, domain.PaymentCreate{Amount: 0})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields(), "amount")
	assert.Equal(t, 0, fake.totalCalls())
}

func TestCreatePaymentPropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("order not found")
	fake := &fakeCRMClient{orderErr: fetchErr}
	svc := NewOrderService(fake, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), 7, domain.PaymentCreate{Amount: 10})

	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, 0, fake.editOrderCalls)
}
