package infrastructure

import "fmt"

// Ошибки commerce API. Валидационные отказы сервера и транспортные
// сбои различаются: первые показываются пользователю, вторые
// переводят оформление в состояние повторной попытки

// NetworkError - транспортный сбой или неожиданный статус ответа
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("commerce API network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError - ответ не соответствует ожидаемой схеме
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("commerce API response decode failure: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NotFoundError - товар с таким идентификатором не существует
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// ValidationError - сервер отклонил содержимое заказа
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("order rejected by commerce API: %s", e.Message)
}
