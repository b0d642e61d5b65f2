package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"weblarek/pkg/logger"
	"weblarek/storefront-service/internal/app/storefront/entity"
	"weblarek/storefront-service/internal/app/storefront/events"
	"weblarek/storefront-service/internal/app/storefront/presenter"
)

// CatalogReloader перезагружает каталог по запросу пользователя
// (кнопка повтора на странице ошибки загрузки)
type CatalogReloader interface {
	Refresh(ctx context.Context) error
	Catalog() ([]entity.Product, bool)
}

// StorefrontHandler переводит HTTP запросы браузера в intent-события
// на шине сессии. Состояние приложения напрямую не читается и не
// мутируется: всё проходит через presenter
type StorefrontHandler struct {
	store    *SessionStore
	reloader CatalogReloader
	validate *validator.Validate
}

// NewStorefrontHandler создает обработчик витрины
func NewStorefrontHandler(store *SessionStore, reloader CatalogReloader) *StorefrontHandler {
	return &StorefrontHandler{
		store:    store,
		reloader: reloader,
		validate: validator.New(),
	}
}

// Index обрабатывает GET / - полная страница витрины
func (h *StorefrontHandler) Index(c *gin.Context) {
	session := sessionFrom(c)

	var page string
	session.Do(func() {
		page = session.Presenter.Fragment(presenter.FragmentPage)
	})

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// Fragment обрабатывает GET /fragments/:name - один отрисованный фрагмент
func (h *StorefrontHandler) Fragment(c *gin.Context) {
	session := sessionFrom(c)
	name := c.Param("name")

	var html string
	var ok bool
	session.Do(func() {
		switch name {
		case presenter.FragmentPage, presenter.FragmentCatalog, presenter.FragmentBasket,
			presenter.FragmentPreview, presenter.FragmentOrder, presenter.FragmentContacts,
			presenter.FragmentSuccess:
			html = session.Presenter.Fragment(name)
			ok = true
		}
	})

	if !ok {
		respondError(c, http.StatusNotFound, "Unknown fragment")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Preview обрабатывает POST /intent/preview - открытие предпросмотра
func (h *StorefrontHandler) Preview(c *gin.Context) {
	var req entity.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		session.Bus.Emit(events.CardSelected{ProductID: req.ProductID})
	}, presenter.FragmentPreview, presenter.FragmentPage)
}

// CloseModal обрабатывает POST /intent/modal/close
func (h *StorefrontHandler) CloseModal(c *gin.Context) {
	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		session.Bus.Emit(events.ModalClosed{})
	}, presenter.FragmentPage)
}

// ToggleBasket обрабатывает POST /intent/basket/toggle
func (h *StorefrontHandler) ToggleBasket(c *gin.Context) {
	var req entity.ToggleBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		session.Bus.Emit(events.BasketToggled{ProductID: req.ProductID, Included: *req.Included})
	}, presenter.FragmentBasket, presenter.FragmentCatalog, presenter.FragmentPage)
}

// OpenBasket обрабатывает POST /intent/basket/open
func (h *StorefrontHandler) OpenBasket(c *gin.Context) {
	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		session.Bus.Emit(events.BasketOpened{})
	}, presenter.FragmentBasket)
}

// StartCheckout обрабатывает POST /intent/checkout - шаг доставки
func (h *StorefrontHandler) StartCheckout(c *gin.Context) {
	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		session.Bus.Emit(events.CheckoutOpened{})
	}, presenter.FragmentOrder)
}

// OrderField обрабатывает POST /intent/order/field - изменение одного
// поля черновика заказа
func (h *StorefrontHandler) OrderField(c *gin.Context) {
	var req entity.OrderFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		session.Bus.Emit(events.FormChanged{
			Field: entity.OrderField(req.Field),
			Value: req.Value,
		})
	}, presenter.FragmentOrder, presenter.FragmentContacts)
}

// OrderNext обрабатывает POST /intent/order/next - переход к контактам
func (h *StorefrontHandler) OrderNext(c *gin.Context) {
	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		session.Bus.Emit(events.FormNext{})
	}, presenter.FragmentOrder, presenter.FragmentContacts)
}

// SubmitOrder обрабатывает POST /intent/order/submit
// Контекст запроса передается в полезной нагрузке события: доставка
// синхронна, контекст живет до конца обработки
func (h *StorefrontHandler) SubmitOrder(c *gin.Context) {
	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		session.Bus.Emit(events.FormSubmitted{Ctx: c.Request.Context()})
	}, presenter.FragmentSuccess, presenter.FragmentContacts, presenter.FragmentBasket,
		presenter.FragmentCatalog, presenter.FragmentPage)
}

// RetryCatalog обрабатывает POST /intent/catalog/retry - повторная
// загрузка каталога после ошибки
func (h *StorefrontHandler) RetryCatalog(c *gin.Context) {
	if err := h.reloader.Refresh(c.Request.Context()); err != nil {
		logger.Error().Err(err).Msg("catalog retry failed")
	}

	session := sessionFrom(c)
	h.respondFragments(c, session, func() {
		if products, ok := h.reloader.Catalog(); ok {
			session.Presenter.SetCatalog(products)
		} else {
			session.Presenter.SetCatalogError()
		}
	}, presenter.FragmentCatalog, presenter.FragmentPage)
}

// === HELPER FUNCTIONS ===

// respondFragments выполняет intent под мьютексом сессии и возвращает
// перерисованные фрагменты вместе с производными значениями состояния
func (h *StorefrontHandler) respondFragments(c *gin.Context, session *Session, intent func(), names ...string) {
	var resp entity.FragmentsResponse

	session.Do(func() {
		intent()
		resp = entity.FragmentsResponse{
			Fragments: session.Presenter.Fragments(names...),
			Counter:   session.State.BasketCount(),
			Total:     session.State.GetTotal(),
			Stage:     session.State.Stage(),
			Valid:     len(session.State.FormErrors()) == 0,
		}
	})

	c.JSON(http.StatusOK, resp)
}

// respondError отправляет ответ об ошибке
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			return validationErrors[0].Field() + " validation failed"
		}
	}
	return "Validation failed"
}
