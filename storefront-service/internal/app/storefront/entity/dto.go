package entity

// PreviewRequest - запрос на открытие предпросмотра товара
type PreviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// ToggleBasketRequest - запрос на добавление/удаление товара из корзины
type ToggleBasketRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Included  *bool  `json:"included" validate:"required"`
}

// OrderFieldRequest - запрос на изменение одного поля черновика заказа
type OrderFieldRequest struct {
	Field string `json:"field" validate:"required,oneof=payment email phone address"`
	Value string `json:"value"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// FragmentsResponse - ответ на intent-запрос: перерисованные фрагменты
// и производные значения состояния для шапки страницы
type FragmentsResponse struct {
	Fragments map[string]string `json:"fragments"`
	Counter   int               `json:"counter"`
	Total     int               `json:"total"`
	Stage     CheckoutStage     `json:"stage"`
	Valid     bool              `json:"valid,omitempty"`
}
