package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weblarek/storefront-service/internal/app/storefront/entity"
)

func intPtr(v int) *int {
	return &v
}

// ==================== Formatting Tests ====================

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100 синапсов", FormatPrice(intPtr(100)))
	assert.Equal(t, "0 синапсов", FormatPrice(intPtr(0)))
	assert.Equal(t, "Бесценно", FormatPrice(nil))
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "750 синапсов", FormatTotal(750))
}

func TestNewCardData_FillsSnapshot(t *testing.T) {
	// Arrange
	product := entity.Product{
		ID:       "p-1",
		Title:    "Бэкенд-антистресс",
		Image:    "https://cdn.example.com/p1.svg",
		Category: "soft",
		Price:    nil,
	}
	style := entity.CategoryStyle{Label: "софт-скил", Color: "#F0F0F0"}

	// Act
	data := NewCardData(product, style, true)

	// Assert
	assert.Equal(t, "p-1", data.ID)
	assert.Equal(t, "Бесценно", data.Price)
	assert.True(t, data.Priceless)
	assert.Equal(t, "софт-скил", data.CategoryLabel)
	assert.Equal(t, "#F0F0F0", data.CategoryColor)
	assert.True(t, data.InBasket)
}

// ==================== Catalog Tests ====================

func TestCatalogList_Render_ListsCardsInOrder(t *testing.T) {
	// Arrange
	list := NewCatalogList()
	list.SetItems([]CardData{
		{ID: "a", Title: "Первый", Price: "100 синапсов"},
		{ID: "b", Title: "Второй", Price: "Бесценно"},
	})

	// Act
	html, err := list.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, `data-id="a"`)
	assert.Contains(t, html, `data-id="b"`)
	assert.Less(t, strings.Index(html, "Первый"), strings.Index(html, "Второй"))
}

func TestCatalogList_Render_EmptyCatalog(t *testing.T) {
	// Arrange
	list := NewCatalogList()

	// Act
	html, err := list.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "gallery")
	assert.NotContains(t, html, "card__title")
}

// ==================== Preview Tests ====================

func TestPreview_Render_ButtonTextDependsOnBasket(t *testing.T) {
	// Arrange
	preview := NewPreview()

	// Act / Assert
	preview.SetData(CardData{ID: "a", Title: "Товар", Price: "100 синапсов"})
	html, err := preview.Render()
	require.NoError(t, err)
	assert.Contains(t, html, "В корзину")

	preview.SetData(CardData{ID: "a", Title: "Товар", Price: "100 синапсов", InBasket: true})
	html, err = preview.Render()
	require.NoError(t, err)
	assert.Contains(t, html, "Убрать из корзины")
}

func TestPreview_Render_PricelessDisablesButton(t *testing.T) {
	// Arrange
	preview := NewPreview()
	preview.SetData(CardData{ID: "a", Title: "Товар", Price: "Бесценно", Priceless: true})

	// Act
	html, err := preview.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "disabled")
}

// ==================== Basket Tests ====================

func TestBasket_Render_EmptyDisablesCheckout(t *testing.T) {
	// Arrange
	basket := NewBasket()

	// Act
	html, err := basket.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "disabled")
	assert.Contains(t, html, "0 синапсов")
}

func TestBasket_Render_ItemsAndTotal(t *testing.T) {
	// Arrange
	basket := NewBasket()
	basket.SetItems([]BasketItemData{
		{Index: 1, ID: "a", Title: "Первый", Price: "100 синапсов"},
		{Index: 2, ID: "b", Title: "Второй", Price: "Бесценно"},
	})
	basket.SetTotal(100)

	// Act
	html, err := basket.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "Первый")
	assert.Contains(t, html, "Второй")
	assert.Contains(t, html, "100 синапсов")
	assert.NotContains(t, html, `data-intent="checkout" disabled`)
}

// ==================== Form Tests ====================

func TestOrderForm_Render_ActivePaymentHighlighted(t *testing.T) {
	// Arrange
	form := NewOrderForm()
	form.SetPayment(entity.PaymentCash)
	form.SetAddress("Москва")
	form.SetErrors(nil)

	// Act
	html, err := form.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, `name="cash" class="button button_alt button_alt-active"`)
	assert.NotContains(t, html, `name="card" class="button button_alt button_alt-active"`)
	assert.Contains(t, html, `value="Москва"`)
	assert.NotContains(t, html, "disabled")
}

func TestOrderForm_Render_ErrorsDisableNext(t *testing.T) {
	// Arrange
	form := NewOrderForm()
	form.SetErrors([]string{"Адрес доставки не указан"})

	// Act
	html, err := form.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "Адрес доставки не указан")
	assert.Contains(t, html, "disabled")
}

func TestContacts_Render_JoinsErrors(t *testing.T) {
	// Arrange
	contacts := NewContacts()
	contacts.SetEmail("bad")
	contacts.SetPhone("123")
	contacts.SetErrors([]string{"Неверный формат Email", "Неверный формат телефона"})

	// Act
	html, err := contacts.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "Неверный формат Email; Неверный формат телефона")
	assert.Contains(t, html, "disabled")
}

// ==================== Success Tests ====================

func TestSuccess_Render_ShowsConfirmedTotal(t *testing.T) {
	// Arrange
	success := NewSuccess()
	success.SetTotal(750)

	// Act
	html, err := success.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "Заказ оформлен")
	assert.Contains(t, html, "Списано 750 синапсов")
}

// ==================== Page Tests ====================

func TestPage_Render_CounterAndCatalog(t *testing.T) {
	// Arrange
	page := NewPage()
	page.SetCounter(3)
	page.SetCatalog(`<section class="gallery"></section>`)

	// Act
	html, err := page.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, `<span class="header__basket-counter">3</span>`)
	// Фрагмент галереи вставляется как готовый HTML, без экранирования
	assert.Contains(t, html, `<section class="gallery"></section>`)
}

func TestPage_Render_LockedDuringSubmit(t *testing.T) {
	// Arrange
	page := NewPage()
	page.SetLocked(true)

	// Act
	html, err := page.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "page__wrapper_locked")
}

func TestPage_Render_ErrorBlockReplacesCatalog(t *testing.T) {
	// Arrange
	page := NewPage()
	page.SetCatalog(`<section class="gallery"></section>`)
	page.SetError("Не удалось загрузить каталог. Попробуйте ещё раз.")

	// Act
	html, err := page.Render()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, html, "Не удалось загрузить каталог")
	assert.Contains(t, html, `data-intent="catalog-retry"`)
	assert.NotContains(t, html, "gallery")
}

func TestPage_SetCatalog_ClearsError(t *testing.T) {
	// Arrange
	page := NewPage()
	page.SetError("Не удалось загрузить каталог. Попробуйте ещё раз.")

	// Act
	page.SetCatalog(`<section class="gallery"></section>`)
	html, err := page.Render()

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, html, "Не удалось загрузить каталог")
	assert.Contains(t, html, "gallery")
}
