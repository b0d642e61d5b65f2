package view

// Шаблоны фрагментов витрины. Категория получает подпись и цвет
// из справочника категорий; кнопки несут data-атрибуты intent-запросов

var cardTpl = mustTemplate("card", `<article class="card" data-id="{{.ID}}">
	<span class="card__category" style="background-color: {{.CategoryColor}}">{{.CategoryLabel}}</span>
	<h3 class="card__title">{{.Title}}</h3>
	<img class="card__image" src="{{.Image}}" alt="{{.Title}}" />
	<span class="card__price">{{.Price}}</span>
	<button class="card__button" data-intent="preview" data-id="{{.ID}}">Подробнее</button>
</article>`)

var catalogTpl = mustTemplate("catalog", `<section class="gallery">
{{- range .Items}}
<article class="card" data-id="{{.ID}}">
	<span class="card__category" style="background-color: {{.CategoryColor}}">{{.CategoryLabel}}</span>
	<h3 class="card__title">{{.Title}}</h3>
	<img class="card__image" src="{{.Image}}" alt="{{.Title}}" />
	<span class="card__price">{{.Price}}</span>
	<button class="card__button" data-intent="preview" data-id="{{.ID}}">Подробнее</button>
</article>
{{- end}}
</section>`)

var previewTpl = mustTemplate("preview", `<div class="card card_full" data-id="{{.ID}}">
	<img class="card__image" src="{{.Image}}" alt="{{.Title}}" />
	<div class="card__column">
		<span class="card__category" style="background-color: {{.CategoryColor}}">{{.CategoryLabel}}</span>
		<h3 class="card__title">{{.Title}}</h3>
		<p class="card__text">{{.Description}}</p>
		<div class="card__row">
			<button class="card__button" data-intent="basket-toggle" data-id="{{.ID}}"{{if .Priceless}} disabled{{end}}>{{.ButtonText}}</button>
			<span class="card__price">{{.Price}}</span>
		</div>
	</div>
</div>`)

var basketTpl = mustTemplate("basket", `<div class="basket">
	<h2 class="modal__title">Корзина</h2>
	<ul class="basket__list">
{{- range .Items}}
	<li class="basket__item card card_compact" data-id="{{.ID}}">
		<span class="basket__item-index">{{.Index}}</span>
		<span class="card__title">{{.Title}}</span>
		<span class="card__price">{{.Price}}</span>
		<button class="basket__item-delete" data-intent="basket-toggle" data-id="{{.ID}}" aria-label="удалить"></button>
	</li>
{{- end}}
	</ul>
	<div class="modal__actions">
		<button class="basket__button" data-intent="checkout"{{if .Empty}} disabled{{end}}>Оформить</button>
		<span class="basket__price">{{.Total}}</span>
	</div>
</div>`)

var orderTpl = mustTemplate("order", `<form class="form" name="order" data-intent="order-next">
	<div class="order__field">
		<h2 class="modal__title">Способ оплаты</h2>
		<div class="order__buttons">
			<button type="button" name="card" class="button button_alt{{if .PaymentOnline}} button_alt-active{{end}}" data-intent="order-field" data-field="payment" data-value="online">Онлайн</button>
			<button type="button" name="cash" class="button button_alt{{if .PaymentCash}} button_alt-active{{end}}" data-intent="order-field" data-field="payment" data-value="cash">При получении</button>
		</div>
	</div>
	<label class="order__field">
		<span class="form__label modal__title">Адрес доставки</span>
		<input name="address" class="form__input" type="text" placeholder="Введите адрес" value="{{.Address}}" />
	</label>
	<div class="modal__actions">
		<button type="submit" class="order__button"{{if not .Valid}} disabled{{end}}>Далее</button>
		<span class="form__errors">{{.Errors}}</span>
	</div>
</form>`)

var contactsTpl = mustTemplate("contacts", `<form class="form" name="contacts" data-intent="order-submit">
	<label class="order__field">
		<span class="form__label modal__title">Email</span>
		<input name="email" class="form__input" type="text" placeholder="Введите Email" value="{{.Email}}" />
	</label>
	<label class="order__field">
		<span class="form__label modal__title">Телефон</span>
		<input name="phone" class="form__input" type="text" placeholder="+7 (" value="{{.Phone}}" />
	</label>
	<div class="modal__actions">
		<button type="submit" class="button"{{if not .Valid}} disabled{{end}}>Оплатить</button>
		<span class="form__errors">{{.Errors}}</span>
	</div>
</form>`)

var successTpl = mustTemplate("success", `<div class="order-success">
	<h2 class="order-success__title">Заказ оформлен</h2>
	<p class="order-success__description">Списано {{.Total}} синапсов</p>
	<button class="order-success__close button" data-intent="modal-close">За новыми покупками!</button>
</div>`)

var pageTpl = mustTemplate("page", `<!DOCTYPE html>
<html lang="ru">
<head>
	<meta charset="UTF-8" />
	<title>Веб-ларёк</title>
</head>
<body class="page{{if .Locked}} page__wrapper_locked{{end}}">
	<header class="header">
		<button class="header__basket" data-intent="basket-open">
			<span class="header__basket-counter">{{.Counter}}</span>
		</button>
	</header>
	<main class="page__wrapper">
{{- if .Error}}
	<div class="page__error">
		<p>{{.Error}}</p>
		<button class="button" data-intent="catalog-retry">Попробовать ещё раз</button>
	</div>
{{- else}}
	{{.Catalog}}
{{- end}}
	</main>
	<div id="modal-container" class="modal"></div>
</body>
</html>`)
