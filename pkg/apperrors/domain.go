package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные
для ошибок бизнес-логики донорского реестра.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidCredentials - неверная пара email/пароль.
// 401, чтобы не раскрывать, какое из полей неверно.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrEmailAlreadyExists - донор с таким email уже зарегистрирован.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"donor",
	"A donor with this email already exists",
	http.StatusBadRequest,
)

// ErrDonorNotFound - донор не найден.
var ErrDonorNotFound = New(
	CodeNotFound,
	"donor",
	"Donor not found",
	http.StatusNotFound,
)

// ErrRequestNotFound - запрос крови не найден.
var ErrRequestNotFound = New(
	CodeNotFound,
	"blood_request",
	"Blood request not found",
	http.StatusNotFound,
)

// ErrNotificationNotFound - уведомление не найдено либо принадлежит
// другому донору (не различаем, чтобы не раскрывать чужие id).
var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// ErrWeakPassword - пароль не проходит проверку сложности.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)
