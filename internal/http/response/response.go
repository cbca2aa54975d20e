// Package response задаёт единый JSON-конверт всех ответов API:
// статус "OK"/"Error", текст ошибки и полезные данные.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Значения поля Status в конверте ответа.
const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// Response — конверт ответа сервера. Error заполняется только при
// неуспехе, Data — только при успехе.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — форма ошибки для Swagger-аннотаций @Failure.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// StatusOKWithData возвращает успешный ответ с данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ответ с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError переводит нарушения валидатора в человеко-читаемые
// сообщения, объединённые через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, validationMessage(err))
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
	}
}

func validationMessage(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", err.Field())
	case "alphanum":
		return fmt.Sprintf("field %s can contain only numbers and letters", err.Field())
	default:
		return fmt.Sprintf("field %s is not a valid", err.Field())
	}
}
