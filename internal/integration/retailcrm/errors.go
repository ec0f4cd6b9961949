package retailcrm

import (
	"fmt"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
)

// TransportError представляет сетевую ошибку при обращении к RetailCRM
// (отказ соединения, таймаут, DNS). Код статуса синтетический.
type TransportError struct {
	StatusCode  int
	Message     string
	OriginalErr error
}

// Error реализует интерфейс error
func (e *TransportError) Error() string {
	return fmt.Sprintf("retailcrm request error: %s", e.Message)
}

// Unwrap возвращает оригинальную ошибку
func (e *TransportError) Unwrap() error {
	return e.OriginalErr
}

// Is проверяет, является ли ошибка ошибкой недоступности внешнего сервиса
func (e *TransportError) Is(target error) bool {
	return target == domain.ErrExternalServiceUnavailable
}

// NewTransportError создает новую сетевую ошибку
func NewTransportError(message string, err error) *TransportError {
	return &TransportError{
		StatusCode:  500,
		Message:     message,
		OriginalErr: err,
	}
}

// HTTPError представляет не-2xx ответ RetailCRM. Код статуса настоящий,
// детализация извлечена из тела ответа.
type HTTPError struct {
	StatusCode int
	Detail     string
}

// Error реализует интерфейс error
func (e *HTTPError) Error() string {
	return fmt.Sprintf("retailcrm HTTP error %d: %s", e.StatusCode, e.Detail)
}

// BusinessError представляет успешный HTTP-ответ с флагом success:false
// в конверте RetailCRM.
type BusinessError struct {
	Message string
}

// Error реализует интерфейс error
func (e *BusinessError) Error() string {
	return fmt.Sprintf("retailcrm API error: %s", e.Message)
}
