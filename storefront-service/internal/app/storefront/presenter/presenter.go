package presenter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"weblarek/pkg/logger"
	"weblarek/pkg/metrics"
	"weblarek/storefront-service/internal/app/storefront/entity"
	"weblarek/storefront-service/internal/app/storefront/events"
	"weblarek/storefront-service/internal/app/storefront/infrastructure"
	"weblarek/storefront-service/internal/app/storefront/state"
	"weblarek/storefront-service/internal/app/storefront/view"
)

// Имена фрагментов, которые presenter держит отрисованными
const (
	FragmentPage     = "page"
	FragmentCatalog  = "catalog"
	FragmentBasket   = "basket"
	FragmentPreview  = "preview"
	FragmentOrder    = "order"
	FragmentContacts = "contacts"
	FragmentSuccess  = "success"
)

// Сообщения, показываемые пользователю при сбоях
const (
	MsgSubmitFailed      = "Ошибка при отправке заказа."
	MsgCatalogLoadFailed = "Не удалось загрузить каталог. Попробуйте ещё раз."
)

// Presenter - слой оркестровки одной сессии витрины.
// Единственный код, который вызывает мутаторы AppState и толкает
// свежие снимки состояния во view-компоненты. Подписан и на
// intent-события, и на события изменения состояния; обработчик
// любого *-changed события перечитывает состояние целиком -
// события не несут диффа, это осознанное упрощение вместо
// инкрементальных патчей
type Presenter struct {
	bus      *events.Bus
	state    *state.AppState
	api      infrastructure.ShopAPI
	producer infrastructure.MessagePublisher // nil - аналитика отключена

	page         *view.Page
	catalogView  *view.CatalogList
	basketView   *view.Basket
	previewView  *view.Preview
	orderView    *view.OrderForm
	contactsView *view.Contacts
	successView  *view.Success

	fragments  map[string]string
	submitMsg  string
	catalogErr string
}

// New создает presenter сессии и подписывает его обработчики на шину
func New(
	bus *events.Bus,
	st *state.AppState,
	api infrastructure.ShopAPI,
	producer infrastructure.MessagePublisher,
) *Presenter {
	p := &Presenter{
		bus:          bus,
		state:        st,
		api:          api,
		producer:     producer,
		page:         view.NewPage(),
		catalogView:  view.NewCatalogList(),
		basketView:   view.NewBasket(),
		previewView:  view.NewPreview(),
		orderView:    view.NewOrderForm(),
		contactsView: view.NewContacts(),
		successView:  view.NewSuccess(),
		fragments:    make(map[string]string),
	}

	p.subscribe()
	p.renderAll()
	return p
}

// subscribe регистрирует обработчики intent-событий и событий
// изменения состояния. Поток однонаправленный: view -> шина ->
// presenter -> мутатор AppState -> событие изменения -> рендер
func (p *Presenter) subscribe() {
	// Intent-события: только здесь вызываются мутаторы состояния
	p.bus.On(events.EvCardSelected, events.Func(func(e events.Event) {
		p.state.SetPreview(e.(events.CardSelected).ProductID)
	}))

	p.bus.On(events.EvBasketToggled, events.Func(func(e events.Event) {
		toggle := e.(events.BasketToggled)
		p.state.ToggleBasketItem(toggle.ProductID, toggle.Included)
	}))

	p.bus.On(events.EvModalClosed, events.Func(func(e events.Event) {
		if p.state.Stage() == entity.StageSuccess {
			p.state.FinishCheckout()
		}
		p.state.ClearPreview()
	}))

	p.bus.On(events.EvCheckoutOpen, events.Func(func(e events.Event) {
		p.state.StartCheckout()
	}))

	p.bus.On(events.EvFormChanged, events.Func(func(e events.Event) {
		change := e.(events.FormChanged)
		p.state.SetOrderField(change.Field, change.Value)
		p.state.ValidateOrder()
	}))

	p.bus.On(events.EvFormNext, events.Func(func(e events.Event) {
		p.state.AdvanceToContacts()
	}))

	p.bus.On(events.EvFormSubmitted, events.Func(func(e events.Event) {
		p.submit(e.(events.FormSubmitted).Ctx)
	}))

	// События изменения состояния: перечитать состояние, перерисовать
	p.bus.On(events.EvCatalogChanged, events.Func(func(events.Event) {
		p.renderCatalog()
		p.renderPage()
	}))

	p.bus.On(events.EvBasketChanged, events.Func(func(events.Event) {
		p.renderBasket()
		p.renderCatalog() // Состояние "в корзине" на карточках
		p.renderPage()    // Счетчик в шапке
	}))

	p.bus.On(events.EvPreviewChanged, events.Func(func(events.Event) {
		p.renderPreview()
	}))

	p.bus.On(events.EvFormErrorsChanged, events.Func(func(events.Event) {
		p.renderForms()
	}))

	p.bus.On(events.EvStageChanged, events.Func(func(events.Event) {
		p.renderForms()
		p.renderPage()
	}))
}

// SetCatalog передает загруженный каталог в состояние сессии
func (p *Presenter) SetCatalog(products []entity.Product) {
	p.catalogErr = ""
	p.state.SetCatalog(products)
}

// SetCatalogError показывает на странице повторяемую ошибку загрузки
// каталога вместо молчаливо пустой галереи
func (p *Presenter) SetCatalogError() {
	p.catalogErr = MsgCatalogLoadFailed
	p.renderPage()
}

// Fragment возвращает последний отрисованный фрагмент по имени
func (p *Presenter) Fragment(name string) string {
	return p.fragments[name]
}

// Fragments собирает несколько фрагментов для ответа на intent-запрос
func (p *Presenter) Fragments(names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = p.fragments[name]
	}
	return out
}

// State открывает производные значения состояния для HTTP-слоя
// (только чтение: счетчик, сумма, этап)
func (p *Presenter) State() *state.AppState {
	return p.state
}

// submit выполняет отправку заказа. Блокировка страницы на время
// отправки рисуется по событию stage:changed(submitting); защита от
// двойной отправки принадлежит UI - заблокированной кнопке
func (p *Presenter) submit(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Невалидный черновик отклоняется синхронно, этап не меняется
	if !p.state.BeginSubmit() {
		return
	}

	draft := p.state.Order()

	result, err := p.api.PlaceOrder(ctx, &draft)
	if err != nil {
		reason := "network"
		var vErr *infrastructure.ValidationError
		if errors.As(err, &vErr) {
			reason = "validation"
		}
		metrics.OrdersFailed.WithLabelValues(reason).Inc()

		logger.Error().Err(err).Str("reason", reason).Msg("order submission failed")

		// Черновик сохраняется: пользователь повторит без повторного ввода
		p.submitMsg = MsgSubmitFailed
		p.state.SubmitFailed()
		return
	}

	p.submitMsg = ""
	metrics.OrdersPlaced.Inc()
	metrics.OrdersTotalAmount.Add(float64(result.Total))

	p.successView.SetTotal(result.Total)
	p.renderSuccess()

	// Корзина очищается, поля черновика намеренно остаются
	p.state.SubmitSucceeded()

	p.publishOrderPlaced(ctx, &draft, result)
	p.bus.Emit(events.OrderCompleted{Result: *result})

	logger.Info().
		Str("order_id", result.ID).
		Int("total", result.Total).
		Msg("order placed")
}

// publishOrderPlaced отправляет событие аналитики в Kafka
// Заказ уже оформлен: ошибки producer логируются и не прерывают поток
func (p *Presenter) publishOrderPlaced(ctx context.Context, draft *entity.OrderDraft, result *entity.OrderResult) {
	if p.producer == nil {
		return
	}

	event := entity.OrderPlacedEvent{
		EventType:  "ORDER_PLACED",
		OrderID:    result.ID,
		Total:      result.Total,
		ItemsCount: len(draft.Items),
		Payment:    draft.Payment,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal order placed event")
		return
	}

	if err := p.producer.PublishMessage(ctx, result.ID, data); err != nil {
		logger.Error().Err(err).Msg("failed to publish order placed event")
	}
}

// === РЕНДЕРИНГ ===

func (p *Presenter) renderAll() {
	p.renderCatalog()
	p.renderBasket()
	p.renderPreview()
	p.renderForms()
	p.renderSuccess()
	p.renderPage()
}

func (p *Presenter) renderCatalog() {
	products := p.state.Catalog()
	items := make([]view.CardData, 0, len(products))
	for _, product := range products {
		items = append(items, view.NewCardData(
			product,
			p.state.CategoryStyle(product.Category),
			p.state.InBasket(product.ID),
		))
	}

	p.catalogView.SetItems(items)
	p.store(FragmentCatalog, p.catalogView.Render)
}

func (p *Presenter) renderBasket() {
	items := make([]view.BasketItemData, 0, p.state.BasketCount())
	for i, id := range p.state.Basket() {
		product, ok := p.state.Product(id)
		if !ok {
			// Висячая ссылка после перезагрузки каталога: позиция
			// пропускается, а не роняет рендер
			logger.Warn().Str("product_id", id).Msg("basket references unknown product")
			continue
		}
		items = append(items, view.BasketItemData{
			Index: i + 1,
			ID:    product.ID,
			Title: product.Title,
			Price: view.FormatPrice(product.Price),
		})
	}

	p.basketView.SetItems(items)
	p.basketView.SetTotal(p.state.GetTotal())
	p.store(FragmentBasket, p.basketView.Render)
}

func (p *Presenter) renderPreview() {
	id, ok := p.state.Preview()
	if !ok {
		p.fragments[FragmentPreview] = ""
		return
	}

	product, found := p.state.Product(id)
	if !found {
		// Неразрешимый предпросмотр ничего не отрисовывает
		p.fragments[FragmentPreview] = ""
		return
	}

	p.previewView.SetData(view.NewCardData(
		product,
		p.state.CategoryStyle(product.Category),
		p.state.InBasket(product.ID),
	))
	p.store(FragmentPreview, p.previewView.Render)
}

func (p *Presenter) renderForms() {
	draft := p.state.Order()
	formErrors := p.state.FormErrors()

	var orderErrs []string
	if msg, ok := formErrors[entity.FieldAddress]; ok {
		orderErrs = append(orderErrs, msg)
	}
	p.orderView.SetPayment(draft.Payment)
	p.orderView.SetAddress(draft.Address)
	p.orderView.SetErrors(orderErrs)
	p.store(FragmentOrder, p.orderView.Render)

	var contactErrs []string
	if msg, ok := formErrors[entity.FieldEmail]; ok {
		contactErrs = append(contactErrs, msg)
	}
	if msg, ok := formErrors[entity.FieldPhone]; ok {
		contactErrs = append(contactErrs, msg)
	}
	if p.submitMsg != "" {
		contactErrs = append(contactErrs, p.submitMsg)
	}
	p.contactsView.SetEmail(draft.Email)
	p.contactsView.SetPhone(draft.Phone)
	p.contactsView.SetErrors(contactErrs)
	p.store(FragmentContacts, p.contactsView.Render)
}

func (p *Presenter) renderSuccess() {
	p.store(FragmentSuccess, p.successView.Render)
}

func (p *Presenter) renderPage() {
	p.page.SetCounter(p.state.BasketCount())
	p.page.SetLocked(p.state.Stage() == entity.StageSubmitting)
	p.page.SetCatalog(p.fragments[FragmentCatalog])
	if p.catalogErr != "" {
		p.page.SetError(p.catalogErr)
	}
	p.store(FragmentPage, p.page.Render)
}

// store перерисовывает фрагмент; при ошибке рендера остается
// предыдущая версия фрагмента
func (p *Presenter) store(name string, render func() (string, error)) {
	html, err := render()
	if err != nil {
		logger.Error().Err(err).Str("fragment", name).Msg("fragment render failed")
		return
	}
	p.fragments[name] = html
}
