package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// dateLayout формат календарной даты в фильтрах (ISO 8601)
const dateLayout = "2006-01-02"

var validate = validator.New()

// CustomerService интерфейс сервиса для работы с клиентами RetailCRM
type CustomerService interface {
	GetCustomers(ctx context.Context, filter domain.CustomerFilter) (domain.CustomerList, error)
	CreateCustomer(ctx context.Context, input domain.CustomerCreate) (domain.Customer, error)
}

type customerService struct {
	client CRMClient
	log    *zap.Logger
}

// NewCustomerService создает новый сервис для работы с клиентами
func NewCustomerService(client CRMClient, log *zap.Logger) CustomerService {
	return &customerService{
		client: client,
		log:    log,
	}
}

// GetCustomers возвращает список клиентов RetailCRM в выходной схеме шлюза.
// Пагинация из ответа RetailCRM передается без изменений.
func (s *customerService) GetCustomers(ctx context.Context, filter domain.CustomerFilter) (domain.CustomerList, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	var verrs domain.ValidationErrors
	if filter.Limit < 1 || filter.Limit > 100 {
		verrs.Add("limit", "must be between 1 and 100")
	}
	if filter.Page < 1 {
		verrs.Add("page", "must be greater than or equal to 1")
	}
	if filter.DateFrom != "" {
		if _, err := time.Parse(dateLayout, filter.DateFrom); err != nil {
			verrs.Add("dateFrom", "must be a date in YYYY-MM-DD format")
		}
	}
	if filter.DateTo != "" {
		if _, err := time.Parse(dateLayout, filter.DateTo); err != nil {
			verrs.Add("dateTo", "must be a date in YYYY-MM-DD format")
		}
	}
	if verrs.HasErrors() {
		return domain.CustomerList{}, verrs
	}

	resp, err := s.client.GetCustomers(ctx, filter)
	if err != nil {
		return domain.CustomerList{}, err
	}

	customers, err := decodeAs[[]domain.Customer](resp["customers"])
	if err != nil {
		return domain.CustomerList{}, fmt.Errorf("failed to decode customers: %w", err)
	}
	if customers == nil {
		customers = []domain.Customer{}
	}

	s.log.Debug("fetched customers from RetailCRM", zap.Int("count", len(customers)))

	return domain.CustomerList{
		Customers:  customers,
		Pagination: resp["pagination"],
	}, nil
}

// CreateCustomer создает клиента в RetailCRM. Поля без содержимого
// (пустой lastName, пустой список телефонов) в исходящий запрос не попадают.
func (s *customerService) CreateCustomer(ctx context.Context, input domain.CustomerCreate) (domain.Customer, error) {
	firstName := strings.TrimSpace(input.FirstName)
	email := strings.TrimSpace(input.Email)

	var verrs domain.ValidationErrors
	if firstName == "" {
		verrs.Add("firstName", "is required and must not be blank")
	}
	if email == "" {
		verrs.Add("email", "is required")
	} else if err := validate.Var(email, "email"); err != nil {
		verrs.Add("email", "must be a valid email address")
	}
	if verrs.HasErrors() {
		return domain.Customer{}, verrs
	}

	payload := map[string]any{
		"firstName": firstName,
		"email":     email,
	}
	if lastName := strings.TrimSpace(input.LastName); lastName != "" {
		payload["lastName"] = lastName
	}
	if phones := domain.NormalizePhones(input.Phones); len(phones) > 0 {
		payload["phones"] = phones
	}

	// Контрольная проверка уже собранной полезной нагрузки: нормализация
	// не должна была оставить обязательные поля пустыми
	if v, _ := payload["firstName"].(string); strings.TrimSpace(v) == "" {
		verrs.Add("firstName", "is required and must not be blank")
	}
	if v, _ := payload["email"].(string); strings.TrimSpace(v) == "" {
		verrs.Add("email", "is required")
	}
	if verrs.HasErrors() {
		return domain.Customer{}, verrs
	}

	resp, err := s.client.CreateCustomer(ctx, payload)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := decodeAs[domain.Customer](resp["customer"])
	if err != nil {
		return domain.Customer{}, fmt.Errorf("failed to decode customer: %w", err)
	}

	s.log.Info("created customer in RetailCRM", zap.Int("id", customer.ID))
	return customer, nil
}
