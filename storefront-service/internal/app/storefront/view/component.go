package view

import (
	"fmt"
	"html/template"
	"strings"

	"weblarek/pkg/metrics"
)

// Общие помощники рендеринга для всех view-компонентов.
// Разделяемой иерархии базовых классов нет: каждый view владеет своим
// фрагментом и собирает его из снимка данных этими свободными функциями

// FormatPrice форматирует цену товара; nil означает "Бесценно"
func FormatPrice(price *int) string {
	if price == nil {
		return "Бесценно"
	}
	return FormatTotal(*price)
}

// FormatTotal форматирует сумму в синапсах
func FormatTotal(total int) string {
	return fmt.Sprintf("%d синапсов", total)
}

// renderFragment исполняет шаблон фрагмента и снимает метрику времени рендера
func renderFragment(viewName string, tpl *template.Template, data interface{}) (string, error) {
	timer := metrics.NewRenderTimer(viewName)
	defer timer.ObserveDuration()

	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s fragment: %w", viewName, err)
	}
	return sb.String(), nil
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}
