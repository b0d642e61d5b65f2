package state

import (
	"regexp"

	"weblarek/pkg/logger"
	"weblarek/pkg/metrics"
	"weblarek/storefront-service/internal/app/storefront/entity"
	"weblarek/storefront-service/internal/app/storefront/events"
)

// Регулярные выражения валидации формы заказа
// Контракт точный: телефон строго в формате +7 (XXX) XXX-XX-XX
var (
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phonePattern = regexp.MustCompile(`^\+7\s\(\d{3}\)\s\d{3}-\d{2}-\d{2}$`)
)

// Сообщения об ошибках полей формы
const (
	MsgInvalidEmail   = "Неверный формат Email"
	MsgInvalidPhone   = "Неверный формат телефона"
	MsgAddressMissing = "Адрес доставки не указан"
)

// AppState - единственный владелец каталога, корзины, черновика заказа,
// ошибок валидации и выбранного для предпросмотра товара.
// Наружу отдаются только копии; мутации возможны только через методы.
// Каждый мутатор сам публикует событие изменения: владение моментом
// публикации принадлежит состоянию, а не оркестратору.
//
// Экземпляр принадлежит одной сессии и не синхронизирован: сериализацию
// обращений обеспечивает слой сессий (одна логическая нить исполнения)
type AppState struct {
	catalog        []entity.Product
	basket         []string // Порядок отображения = порядок добавления
	order          entity.OrderDraft
	formErrors     entity.FormErrors
	preview        string // Пустая строка - предпросмотр закрыт
	stage          entity.CheckoutStage
	categoryConfig entity.CategoryConfig

	bus *events.Bus
}

// NewAppState создает состояние сессии с пустым каталогом и корзиной
func NewAppState(bus *events.Bus) *AppState {
	return &AppState{
		basket: []string{},
		order: entity.OrderDraft{
			Payment: entity.PaymentOnline,
			Items:   []string{},
		},
		formErrors:     entity.FormErrors{},
		stage:          entity.StageBrowsing,
		categoryConfig: entity.DefaultCategoryConfig(),
		bus:            bus,
	}
}

// === КАТАЛОГ ===

// SetCatalog заменяет каталог целиком и всегда публикует catalog:changed.
// Корзина не затрагивается: ссылки на исчезнувшие товары остаются,
// их пропуск при отображении - обязанность потребителей
func (s *AppState) SetCatalog(products []entity.Product) {
	s.catalog = make([]entity.Product, len(products))
	copy(s.catalog, products)
	s.bus.Emit(events.CatalogChanged{})
}

// Catalog возвращает копию каталога в порядке отображения
func (s *AppState) Catalog() []entity.Product {
	out := make([]entity.Product, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Product находит товар каталога по идентификатору
func (s *AppState) Product(id string) (entity.Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// CategoryStyle возвращает отображение категории по тегу
// Для неизвестного тега подпись - сам тег без цвета
func (s *AppState) CategoryStyle(tag string) entity.CategoryStyle {
	if style, ok := s.categoryConfig[tag]; ok {
		return style
	}
	return entity.CategoryStyle{Label: tag}
}

// === ПРЕДПРОСМОТР ===

// SetPreview выбирает товар для предпросмотра и публикует preview:changed.
// Существование товара не проверяется: неразрешимый предпросмотр
// просто ничего не отрисует
func (s *AppState) SetPreview(productID string) {
	s.preview = productID
	if s.stage == entity.StageBrowsing {
		s.setStage(entity.StagePreviewing)
	}
	s.bus.Emit(events.PreviewChanged{ProductID: productID})
}

// ClearPreview закрывает предпросмотр
func (s *AppState) ClearPreview() {
	s.preview = ""
	if s.stage == entity.StagePreviewing {
		s.setStage(entity.StageBrowsing)
	}
	s.bus.Emit(events.PreviewChanged{})
}

// Preview возвращает идентификатор товара в предпросмотре, если он открыт
func (s *AppState) Preview() (string, bool) {
	return s.preview, s.preview != ""
}

// === КОРЗИНА ===

// ToggleBasketItem добавляет или убирает товар из корзины.
// Обе операции идемпотентны. basket:changed публикуется всегда,
// даже если состав не изменился: подписчики безусловно пересчитывают
// сумму и состояние выбора, это дешевле отслеживания dirty-флага
func (s *AppState) ToggleBasketItem(productID string, included bool) {
	if included {
		if !s.InBasket(productID) {
			s.basket = append(s.basket, productID)
		}
		metrics.BasketOperations.WithLabelValues("add").Inc()
	} else {
		filtered := s.basket[:0]
		for _, id := range s.basket {
			if id != productID {
				filtered = append(filtered, id)
			}
		}
		s.basket = filtered
		metrics.BasketOperations.WithLabelValues("remove").Inc()
	}

	// Переключение из предпросмотра возвращает к каталогу
	if s.stage == entity.StagePreviewing {
		s.setStage(entity.StageBrowsing)
	}

	s.bus.Emit(events.BasketChanged{})
}

// ClearBasket опустошает корзину и публикует basket:changed
func (s *AppState) ClearBasket() {
	s.basket = []string{}
	metrics.BasketOperations.WithLabelValues("clear").Inc()
	s.bus.Emit(events.BasketChanged{})
}

// Basket возвращает копию корзины в порядке добавления
func (s *AppState) Basket() []string {
	out := make([]string, len(s.basket))
	copy(out, s.basket)
	return out
}

// InBasket сообщает, лежит ли товар в корзине
func (s *AppState) InBasket(productID string) bool {
	for _, id := range s.basket {
		if id == productID {
			return true
		}
	}
	return false
}

// BasketCount возвращает число товаров в корзине для счетчика на странице
func (s *AppState) BasketCount() int {
	return len(s.basket)
}

// GetTotal вычисляет сумму заказа: цены товаров каталога, лежащих
// в корзине; бесценные товары считаются за 0. Значение никогда
// не кешируется - каталог и корзина могли измениться с прошлого чтения
func (s *AppState) GetTotal() int {
	total := 0
	for _, p := range s.catalog {
		if s.InBasket(p.ID) {
			total += p.PriceValue()
		}
	}
	return total
}

// === ЧЕРНОВИК ЗАКАЗА ===

// SetOrderField изменяет одно поле черновика заказа.
// Для payment принимаются только значения перечисления: иное значение
// логируется и игнорируется - это дефект проводки UI, а не ошибка
// пользователя, поэтому наружу она не выводится
func (s *AppState) SetOrderField(field entity.OrderField, value string) {
	switch field {
	case entity.FieldPayment:
		payment := entity.PaymentMethod(value)
		if !payment.Valid() {
			logger.Error().
				Str("value", value).
				Msg("Неверное обозначение способа оплаты")
			return
		}
		s.order.Payment = payment
	case entity.FieldEmail:
		s.order.Email = value
	case entity.FieldPhone:
		s.order.Phone = value
	case entity.FieldAddress:
		s.order.Address = value
	default:
		logger.Error().
			Str("field", string(field)).
			Msg("Неизвестное поле формы заказа")
	}
}

// Order возвращает снимок черновика: поля формы плюс производные
// Total и Items, снятые с корзины в момент вызова
func (s *AppState) Order() entity.OrderDraft {
	draft := s.order
	draft.Total = s.GetTotal()
	draft.Items = s.Basket()
	return draft
}

// ValidateOrder целиком пересчитывает ошибки валидации по текущему
// черновику и возвращает, валиден ли он полностью.
// Поля проверяются независимо; пустое поле невалидно
func (s *AppState) ValidateOrder() bool {
	errs := entity.FormErrors{}

	if !emailPattern.MatchString(s.order.Email) {
		errs[entity.FieldEmail] = MsgInvalidEmail
	}
	if !phonePattern.MatchString(s.order.Phone) {
		errs[entity.FieldPhone] = MsgInvalidPhone
	}
	if s.order.Address == "" {
		errs[entity.FieldAddress] = MsgAddressMissing
	}

	s.formErrors = errs
	s.bus.Emit(events.FormErrorsChanged{})
	return len(errs) == 0
}

// FormErrors возвращает копию текущих ошибок валидации
func (s *AppState) FormErrors() entity.FormErrors {
	out := make(entity.FormErrors, len(s.formErrors))
	for k, v := range s.formErrors {
		out[k] = v
	}
	return out
}

// === МАШИНА СОСТОЯНИЙ ОФОРМЛЕНИЯ ===

// Stage возвращает текущий этап оформления
func (s *AppState) Stage() entity.CheckoutStage {
	return s.stage
}

// StartCheckout открывает первый шаг оформления (доставка)
func (s *AppState) StartCheckout() {
	s.preview = ""
	s.setStage(entity.StageEditingDelivery)
}

// AdvanceToContacts переводит оформление на шаг контактов.
// Ошибки пересчитываются целиком; переход разрешен, только если поля
// шага доставки (payment и address) валидны - email и телефон
// заполняются на следующем шаге
func (s *AppState) AdvanceToContacts() bool {
	if s.stage != entity.StageEditingDelivery {
		return false
	}

	s.ValidateOrder()
	if _, bad := s.formErrors[entity.FieldAddress]; bad {
		return false
	}

	s.setStage(entity.StageEditingContact)
	return true
}

// BeginSubmit переводит оформление в отправку.
// Переход возможен только при полностью валидном черновике;
// повторная попытка после ошибки отправки разрешена
func (s *AppState) BeginSubmit() bool {
	if s.stage != entity.StageEditingContact && s.stage != entity.StageSubmitError {
		return false
	}
	if !s.ValidateOrder() {
		return false
	}

	s.setStage(entity.StageSubmitting)
	return true
}

// SubmitSucceeded фиксирует успешное оформление: корзина очищается,
// поля черновика намеренно остаются заполненными
func (s *AppState) SubmitSucceeded() {
	s.setStage(entity.StageSuccess)
	s.ClearBasket()
}

// SubmitFailed фиксирует ошибку отправки; черновик сохраняется,
// пользователь может повторить без повторного ввода
func (s *AppState) SubmitFailed() {
	s.setStage(entity.StageSubmitError)
}

// FinishCheckout возвращает витрину к каталогу после закрытия
// окна успешного заказа
func (s *AppState) FinishCheckout() {
	s.setStage(entity.StageBrowsing)
}

func (s *AppState) setStage(stage entity.CheckoutStage) {
	if s.stage == stage {
		return
	}
	s.stage = stage
	s.bus.Emit(events.StageChanged{Stage: stage})
}
