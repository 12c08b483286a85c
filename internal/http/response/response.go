// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Каждый ответ шлюза — успех
// или ошибка — заворачивается в единый конверт {success, message, data|errors}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
// Поле Success — признак успеха запроса.
// Поле Message — человеко-читаемое описание результата.
// Поле Data — данные ответа (только при успехе).
// Поле Errors — детали ошибки (только при неуспехе).
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"invalid request body"`
}

// OK возвращает успешный Response с сообщением и данными.
func OK(message string, data any) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}

// ErrorWithDetails возвращает Response с ошибкой и деталями
// (например, текстом ошибки внешнего API).
func ErrorWithDetails(msg string, details any) Response {
	return Response{
		Success: false,
		Message: msg,
		Errors:  details,
	}
}

// ValidationError формирует Response с ошибкой на основе нарушений валидации.
// Каждое нарушение превращается в человеко-читаемый текст.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "startswith":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has an invalid prefix", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Message: "validation failed",
		Errors:  strings.Join(errsMsgs, ", "),
	}
}
