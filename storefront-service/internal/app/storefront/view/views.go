package view

import (
	"html/template"
	"strings"

	"weblarek/storefront-service/internal/app/storefront/entity"
)

// View-компоненты витрины. Каждый владеет одним фрагментом,
// принимает плоский снимок данных через типизированные сеттеры
// и никогда не держит ссылку внутрь состояния приложения

// CardData - снимок товара для отрисовки карточки
type CardData struct {
	ID            string
	Title         string
	Description   string
	Image         string
	Price         string
	Priceless     bool
	CategoryLabel string
	CategoryColor string
	InBasket      bool
}

// NewCardData собирает снимок карточки из товара и стиля категории
func NewCardData(p entity.Product, style entity.CategoryStyle, inBasket bool) CardData {
	return CardData{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Image:         p.Image,
		Price:         FormatPrice(p.Price),
		Priceless:     p.Priceless(),
		CategoryLabel: style.Label,
		CategoryColor: style.Color,
		InBasket:      inBasket,
	}
}

// === КАТАЛОГ ===

// CatalogList отображает галерею карточек в порядке каталога
type CatalogList struct {
	items []CardData
}

func NewCatalogList() *CatalogList {
	return &CatalogList{}
}

// SetItems заменяет карточки галереи
func (v *CatalogList) SetItems(items []CardData) {
	v.items = items
}

func (v *CatalogList) Render() (string, error) {
	return renderFragment("catalog", catalogTpl, struct {
		Items []CardData
	}{Items: v.items})
}

// === КАРТОЧКА ===

// Card отображает одну карточку каталога
type Card struct {
	data CardData
}

func NewCard() *Card {
	return &Card{}
}

func (v *Card) SetData(data CardData) {
	v.data = data
}

func (v *Card) Render() (string, error) {
	return renderFragment("card", cardTpl, v.data)
}

// === ПРЕДПРОСМОТР ===

type previewData struct {
	CardData
	ButtonText string
}

// Preview отображает подробную карточку товара в модальном окне
type Preview struct {
	data previewData
}

func NewPreview() *Preview {
	return &Preview{}
}

// SetData задает товар предпросмотра; подпись кнопки зависит от того,
// лежит ли товар уже в корзине
func (v *Preview) SetData(data CardData) {
	v.data = previewData{CardData: data}
	if data.InBasket {
		v.data.ButtonText = "Убрать из корзины"
	} else {
		v.data.ButtonText = "В корзину"
	}
}

func (v *Preview) Render() (string, error) {
	return renderFragment("preview", previewTpl, v.data)
}

// === КОРЗИНА ===

// BasketItemData - снимок одной позиции корзины
type BasketItemData struct {
	Index int
	ID    string
	Title string
	Price string
}

// Basket отображает содержимое корзины и итоговую сумму
type Basket struct {
	items []BasketItemData
	total string
}

func NewBasket() *Basket {
	return &Basket{total: FormatTotal(0)}
}

func (v *Basket) SetItems(items []BasketItemData) {
	v.items = items
}

func (v *Basket) SetTotal(total int) {
	v.total = FormatTotal(total)
}

func (v *Basket) Render() (string, error) {
	return renderFragment("basket", basketTpl, struct {
		Items []BasketItemData
		Total string
		Empty bool
	}{
		Items: v.items,
		Total: v.total,
		Empty: len(v.items) == 0,
	})
}

// === ФОРМА ДОСТАВКИ (шаг 1) ===

// OrderForm отображает первый шаг оформления: способ оплаты и адрес
type OrderForm struct {
	payment entity.PaymentMethod
	address string
	errors  []string
	valid   bool
}

func NewOrderForm() *OrderForm {
	return &OrderForm{payment: entity.PaymentOnline}
}

func (v *OrderForm) SetPayment(payment entity.PaymentMethod) {
	v.payment = payment
}

func (v *OrderForm) SetAddress(address string) {
	v.address = address
}

// SetErrors задает сообщения валидации; кнопка "Далее" блокируется,
// пока поля шага не валидны
func (v *OrderForm) SetErrors(errs []string) {
	v.errors = errs
	v.valid = len(errs) == 0
}

func (v *OrderForm) Render() (string, error) {
	return renderFragment("order", orderTpl, struct {
		PaymentOnline bool
		PaymentCash   bool
		Address       string
		Errors        string
		Valid         bool
	}{
		PaymentOnline: v.payment == entity.PaymentOnline,
		PaymentCash:   v.payment == entity.PaymentCash,
		Address:       v.address,
		Errors:        strings.Join(v.errors, "; "),
		Valid:         v.valid,
	})
}

// === ФОРМА КОНТАКТОВ (шаг 2) ===

// Contacts отображает второй шаг оформления: email и телефон
type Contacts struct {
	email  string
	phone  string
	errors []string
	valid  bool
}

func NewContacts() *Contacts {
	return &Contacts{}
}

func (v *Contacts) SetEmail(email string) {
	v.email = email
}

func (v *Contacts) SetPhone(phone string) {
	v.phone = phone
}

func (v *Contacts) SetErrors(errs []string) {
	v.errors = errs
	v.valid = len(errs) == 0
}

func (v *Contacts) Render() (string, error) {
	return renderFragment("contacts", contactsTpl, struct {
		Email  string
		Phone  string
		Errors string
		Valid  bool
	}{
		Email:  v.email,
		Phone:  v.phone,
		Errors: strings.Join(v.errors, "; "),
		Valid:  v.valid,
	})
}

// === УСПЕШНЫЙ ЗАКАЗ ===

// Success отображает подтверждение заказа с подтвержденной сервером суммой
type Success struct {
	total int
}

func NewSuccess() *Success {
	return &Success{}
}

func (v *Success) SetTotal(total int) {
	v.total = total
}

func (v *Success) Render() (string, error) {
	return renderFragment("success", successTpl, struct {
		Total int
	}{Total: v.total})
}

// === ОБОЛОЧКА СТРАНИЦЫ ===

// Page отображает оболочку: шапку со счетчиком корзины, галерею
// и блок ошибки загрузки каталога с кнопкой повтора
type Page struct {
	counter int
	locked  bool
	catalog string
	err     string
}

func NewPage() *Page {
	return &Page{}
}

// SetCounter задает число товаров в корзине для шапки
func (v *Page) SetCounter(counter int) {
	v.counter = counter
}

// SetLocked блокирует страницу на время отправки заказа
// Это и есть защита от повторной отправки: она живет в UI
func (v *Page) SetLocked(locked bool) {
	v.locked = locked
}

// SetCatalog вставляет отрисованный фрагмент галереи
func (v *Page) SetCatalog(catalogHTML string) {
	v.catalog = catalogHTML
	v.err = ""
}

// SetError показывает блок ошибки загрузки каталога вместо галереи
func (v *Page) SetError(message string) {
	v.err = message
}

func (v *Page) Render() (string, error) {
	return renderFragment("page", pageTpl, struct {
		Counter int
		Locked  bool
		Catalog template.HTML
		Error   string
	}{
		Counter: v.counter,
		Locked:  v.locked,
		Catalog: template.HTML(v.catalog),
		Error:   v.err,
	})
}
