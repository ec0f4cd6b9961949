package domain

// Customer клиент в выходной схеме шлюза
type Customer struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName,omitempty"`
	LastName  string  `json:"lastName,omitempty"`
	Email     string  `json:"email,omitempty"`
	Phones    []Phone `json:"phones,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// CustomerCreate запрос на создание клиента
type CustomerCreate struct {
	FirstName string       `json:"firstName" binding:"required"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email" binding:"required,email"`
	Phones    []PhoneInput `json:"phones"`
}

// CustomerFilter фильтры списка клиентов
type CustomerFilter struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	Limit    int    `form:"limit,default=20" binding:"gte=1,lte=100"`
	Page     int    `form:"page,default=1" binding:"gte=1"`
}

// CustomerList список клиентов с прозрачно переданной пагинацией
type CustomerList struct {
	Customers  []Customer `json:"customers"`
	Pagination any        `json:"pagination,omitempty"`
}
