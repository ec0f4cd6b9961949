package service

import (
	"context"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
)

// fakeCRMClient скриптуемый клиент RetailCRM для тестов сервисов
type fakeCRMClient struct {
	getCustomersCalls int
	gotFilter         domain.CustomerFilter
	customersResp     map[string]any
	customersErr      error

	createCustomerCalls int
	gotCustomer         map[string]any
	createCustomerResp  map[string]any
	createCustomerErr   error

	getOrdersCalls int
	gotCustomerID  int
	gotLimit       int
	gotPage        int
	ordersResp     map[string]any
	ordersErr      error

	getOrderCalls int
	gotOrderID    int
	orderResp     map[string]any
	orderErr      error

	createOrderCalls int
	gotOrder         map[string]any
	createOrderResp  map[string]any
	createOrderErr   error

	editOrderCalls int
	gotEdit        map[string]any
	editResp       map[string]any
	editErr        error
}

func (f *fakeCRMClient) GetCustomers(_ context.Context, filter domain.CustomerFilter) (map[string]any, error) {
	f.getCustomersCalls++
	f.gotFilter = filter
	return f.customersResp, f.customersErr
}

func (f *fakeCRMClient) CreateCustomer(_ context.Context, customer map[string]any) (map[string]any, error) {
	f.createCustomerCalls++
	f.gotCustomer = customer
	return f.createCustomerResp, f.createCustomerErr
}

func (f *fakeCRMClient) GetOrders(_ context.Context, customerID, limit, page int) (map[string]any, error) {
	f.getOrdersCalls++
	f.gotCustomerID = customerID
	f.gotLimit = limit
	f.gotPage = page
	return f.ordersResp, f.ordersErr
}

func (f *fakeCRMClient) GetOrder(_ context.Context, orderID int) (map[string]any, error) {
	f.getOrderCalls++
	f.gotOrderID = orderID
	return f.orderResp, f.orderErr
}

func (f *fakeCRMClient) CreateOrder(_ context.Context, order map[string]any) (map[string]any, error) {
	f.createOrderCalls++
	f.gotOrder = order
	return f.createOrderResp, f.createOrderErr
}

func (f *fakeCRMClient) EditOrder(_ context.Context, order map[string]any) (map[string]any, error) {
	f.editOrderCalls++
	f.gotEdit = order
	return f.editResp, f.editErr
}

func (f *fakeCRMClient) totalCalls() int {
	return f.getCustomersCalls + f.createCustomerCalls + f.getOrdersCalls +
		f.getOrderCalls + f.createOrderCalls + f.editOrderCalls
}
