package events

import (
	"context"
	"sync"

	"weblarek/pkg/logger"
	"weblarek/pkg/metrics"
	"weblarek/storefront-service/internal/app/storefront/entity"
)

// Name - имя события шины
// Совпадение только точное: шаблоны имён не поддерживаются
type Name string

const (
	// События изменения состояния. Полезная нагрузка не несет диффа:
	// подписчик обязан перечитать состояние целиком
	EvCatalogChanged    Name = "catalog:changed"
	EvBasketChanged     Name = "basket:changed"
	EvPreviewChanged    Name = "preview:changed"
	EvStageChanged      Name = "stage:changed"
	EvFormErrorsChanged Name = "formErrors:changed"

	// Intent-события от view-компонентов
	EvCardSelected  Name = "card:select"
	EvBasketToggled Name = "basket:toggle"
	EvBasketOpened  Name = "basket:open"
	EvModalClosed   Name = "modal:close"
	EvCheckoutOpen  Name = "order:open"
	EvFormChanged   Name = "form:change"
	EvFormNext      Name = "form:next"
	EvFormSubmitted Name = "form:submit"

	// Результат оформления заказа
	EvOrderCompleted Name = "order:completed"
)

// Event - закрытое объединение событий витрины
// Каждый вид события несет собственную типизированную полезную нагрузку
type Event interface {
	EventName() Name
}

type CatalogChanged struct{}

func (CatalogChanged) EventName() Name { return EvCatalogChanged }

type BasketChanged struct{}

func (BasketChanged) EventName() Name { return EvBasketChanged }

type PreviewChanged struct {
	ProductID string // Пустая строка означает закрытый предпросмотр
}

func (PreviewChanged) EventName() Name { return EvPreviewChanged }

type StageChanged struct {
	Stage entity.CheckoutStage
}

func (StageChanged) EventName() Name { return EvStageChanged }

type FormErrorsChanged struct{}

func (FormErrorsChanged) EventName() Name { return EvFormErrorsChanged }

type CardSelected struct {
	ProductID string
}

func (CardSelected) EventName() Name { return EvCardSelected }

type BasketToggled struct {
	ProductID string
	Included  bool
}

func (BasketToggled) EventName() Name { return EvBasketToggled }

type BasketOpened struct{}

func (BasketOpened) EventName() Name { return EvBasketOpened }

type ModalClosed struct{}

func (ModalClosed) EventName() Name { return EvModalClosed }

type CheckoutOpened struct{}

func (CheckoutOpened) EventName() Name { return EvCheckoutOpen }

type FormChanged struct {
	Field entity.OrderField
	Value string
}

func (FormChanged) EventName() Name { return EvFormChanged }

type FormNext struct{}

func (FormNext) EventName() Name { return EvFormNext }

// FormSubmitted несет контекст запроса: отправка заказа - сетевая операция,
// а доставка события синхронна, поэтому контекст живет весь цикл обработки
type FormSubmitted struct {
	Ctx context.Context
}

func (FormSubmitted) EventName() Name { return EvFormSubmitted }

type OrderCompleted struct {
	Result entity.OrderResult
}

func (OrderCompleted) EventName() Name { return EvOrderCompleted }

// Handler - подписчик шины событий
// Подписчики образуют множество: повторная подписка того же Handler
// на то же имя не приводит к повторному вызову
type Handler interface {
	Handle(Event)
}

type funcHandler struct {
	fn func(Event)
}

func (h *funcHandler) Handle(e Event) {
	h.fn(e)
}

// Func оборачивает функцию в Handler
// Каждый вызов возвращает новое значение: для отписки сохраняйте результат
func Func(fn func(Event)) Handler {
	return &funcHandler{fn: fn}
}

// Bus - синхронный диспетчер публикации/подписки, единственный канал
// связи между состоянием, оркестратором и view-компонентами.
// Доставка в глубину: вложенный Emit из обработчика полностью
// завершается до возврата управления внешнему обработчику
type Bus struct {
	mu   sync.Mutex
	subs map[Name]map[Handler]struct{}
}

// NewBus создает пустую шину событий
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Name]map[Handler]struct{}),
	}
}

// On регистрирует обработчик события
func (b *Bus) On(name Name, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[name]
	if !ok {
		set = make(map[Handler]struct{})
		b.subs[name] = set
	}
	set[h] = struct{}{}
}

// Off снимает один обработчик
// Пустое множество удаляется из реестра, чтобы циклы
// подписки/отписки не накапливали записи
func (b *Bus) Off(name Name, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[name]
	if !ok {
		return
	}
	delete(set, h)
	if len(set) == 0 {
		delete(b.subs, name)
	}
}

// Emit синхронно вызывает каждый зарегистрированный обработчик ровно один раз
// с одной и той же полезной нагрузкой. Порядок вызова внутри множества
// не определен. Публикация без подписчиков - не ошибка.
// Паника обработчика логируется и не прерывает доставку остальным
func (b *Bus) Emit(e Event) {
	name := e.EventName()
	metrics.EventsPublished.WithLabelValues(string(name)).Inc()

	// Снимок множества под блокировкой; вызовы вне блокировки,
	// чтобы обработчик мог публиковать вложенные события
	b.mu.Lock()
	set := b.subs[name]
	handlers := make([]Handler, 0, len(set))
	for h := range set {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		b.invoke(name, h, e)
	}
}

func (b *Bus) invoke(name Name, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			metrics.EventHandlerPanics.WithLabelValues(string(name)).Inc()
			logger.Error().
				Str("event", string(name)).
				Interface("panic", r).
				Msg("event handler panicked")
		}
	}()

	h.Handle(e)
}

// Reset снимает все подписки; используется только при завершении сессии
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[Name]map[Handler]struct{})
}
