package domain

// Order заказ в выходной схеме шлюза
type Order struct {
	ID         int              `json:"id"`
	Number     string           `json:"number,omitempty"`
	CustomerID int              `json:"customerId,omitempty"`
	Status     string           `json:"status,omitempty"`
	Items      []map[string]any `json:"items,omitempty"`
	CreatedAt  string           `json:"createdAt,omitempty"`
	TotalSumm  float64          `json:"totalSumm,omitempty"`
}

// OrderItem позиция заказа. Поле price уходит в RetailCRM под именем initialPrice.
type OrderItem struct {
	ProductName string  `json:"productName" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Comment     string  `json:"comment"`
}

// CustomerEmbed данные нового клиента, вложенные в заказ
type CustomerEmbed struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Phones    []PhoneInput `json:"phones"`
}

// OrderCreate запрос на создание заказа. Должен быть указан customerId
// либо вложенный customer; customerId имеет приоритет.
type OrderCreate struct {
	OrderNumber string         `json:"orderNumber" binding:"required"`
	CustomerID  int            `json:"customerId"`
	Customer    *CustomerEmbed `json:"customer"`
	Items       []OrderItem    `json:"items" binding:"required,min=1,dive"`
	Status      string         `json:"status"`
}

// OrderList список заказов с прозрачно переданной пагинацией
type OrderList struct {
	Orders     []Order `json:"orders"`
	Pagination any     `json:"pagination,omitempty"`
}
