package domain

// Статусы и типы платежа по умолчанию
const (
	DefaultPaymentType   = "cash"
	DefaultPaymentStatus = "paid"
)

// Payment платеж заказа в выходной схеме шлюза.
// Unconfirmed выставляется, когда RetailCRM принял правку заказа, но не
// вернул список платежей: ответ собран из отправленных данных и не
// подтвержден сервером.
type Payment struct {
	ID          int     `json:"id,omitempty"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type,omitempty"`
	Status      string  `json:"status,omitempty"`
	Comment     string  `json:"comment,omitempty"`
	PaidAt      string  `json:"paidAt,omitempty"`
	Unconfirmed bool    `json:"unconfirmed,omitempty"`
}

// PaymentCreate запрос на добавление платежа к заказу
type PaymentCreate struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Type    string  `json:"type"`
	Status  string  `json:"status"`
	Comment string  `json:"comment"`
	PaidAt  string  `json:"paidAt"`
}
