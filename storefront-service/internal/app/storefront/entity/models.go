package entity

import "time"

// Product представляет товар витрины
// Загружается из commerce API и не изменяется до полной перезагрузки каталога
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Price       *int   `json:"price"` // nil означает "Бесценно" - товар не продается
}

// Priceless сообщает, что у товара нет цены
func (p *Product) Priceless() bool {
	return p.Price == nil
}

// PriceValue возвращает цену товара, для бесценных товаров 0
func (p *Product) PriceValue() int {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// ProductListResponse - ответ commerce API на запрос списка товаров
type ProductListResponse struct {
	Total int       `json:"total"`
	Items []Product `json:"items"`
}

// PaymentMethod представляет способ оплаты заказа
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online" // Онлайн оплата
	PaymentCash   PaymentMethod = "cash"   // Оплата при получении
)

// Valid проверяет, что значение входит в перечисление способов оплаты
func (p PaymentMethod) Valid() bool {
	return p == PaymentOnline || p == PaymentCash
}

// OrderField - имя редактируемого поля черновика заказа
type OrderField string

const (
	FieldPayment OrderField = "payment"
	FieldEmail   OrderField = "email"
	FieldPhone   OrderField = "phone"
	FieldAddress OrderField = "address"
)

// OrderDraft - черновик заказа, заполняемый в два шага
// Total и Items производные: снимаются с корзины в момент чтения, не хранятся
type OrderDraft struct {
	Payment PaymentMethod `json:"payment"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Address string        `json:"address"`
	Total   int           `json:"total"`
	Items   []string      `json:"items"` // ID товаров корзины на момент отправки
}

// OrderResult - ответ commerce API на создание заказа
type OrderResult struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

// FormErrors - ошибки валидации по именам полей
// Отсутствие ключа означает, что поле валидно
type FormErrors map[OrderField]string

// CheckoutStage - этап оформления заказа
type CheckoutStage string

const (
	StageBrowsing        CheckoutStage = "browsing"         // Просмотр каталога
	StagePreviewing      CheckoutStage = "previewing"       // Открыт предпросмотр товара
	StageEditingDelivery CheckoutStage = "editing_delivery" // Шаг 1: способ оплаты и адрес
	StageEditingContact  CheckoutStage = "editing_contact"  // Шаг 2: email и телефон
	StageSubmitting      CheckoutStage = "submitting"       // Заказ отправляется в API
	StageSuccess         CheckoutStage = "success"          // Заказ оформлен
	StageSubmitError     CheckoutStage = "submit_error"     // Ошибка отправки, можно повторить
)

// CategoryStyle - отображение категории: подпись и цвет фона
type CategoryStyle struct {
	Label string
	Color string
}

// CategoryConfig - справочник отображения категорий, только для чтения
type CategoryConfig map[string]CategoryStyle

// DefaultCategoryConfig возвращает справочник категорий витрины
func DefaultCategoryConfig() CategoryConfig {
	return CategoryConfig{
		"soft": {
			Label: "софт-скил",
			Color: "#F0F0F0",
		},
		"hard": {
			Label: "хард-скил",
			Color: "#A0A0A0",
		},
		"other": {
			Label: "другое",
			Color: "#D0D0D0",
		},
		"additional": {
			Label: "дополнительное",
			Color: "#C0C0C0",
		},
		"button": {
			Label: "кнопка",
			Color: "#B0B0B0",
		},
	}
}

// OrderPlacedEvent представляет событие оформленного заказа для Kafka
type OrderPlacedEvent struct {
	EventType  string        `json:"event_type"` // ORDER_PLACED
	OrderID    string        `json:"order_id"`
	Total      int           `json:"total"`
	ItemsCount int           `json:"items_count"`
	Payment    PaymentMethod `json:"payment"`
	Timestamp  time.Time     `json:"timestamp"`
}
