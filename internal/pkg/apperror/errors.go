package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden           ErrorCode = "FORBIDDEN"
	ErrCodeValidation          ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidState        ErrorCode = "INVALID_STATE"
	ErrCodeInsufficientPayment ErrorCode = "INSUFFICIENT_PAYMENT"
	ErrCodeInsufficientFunds   ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeValidation, ErrCodeInsufficientPayment:
		return http.StatusBadRequest
	case ErrCodeInvalidState:
		return http.StatusConflict
	case ErrCodeInsufficientFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeForbidden
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsInvalidState(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeInvalidState
}

var (
	ErrListingNotFound     = New(ErrCodeNotFound, "объявление не найдено")
	ErrOrderNotFound       = New(ErrCodeNotFound, "заказ не найден")
	ErrAccountNotFound     = New(ErrCodeNotFound, "аккаунт не найден")
	ErrUnauthorized        = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden           = New(ErrCodeForbidden, "недостаточно прав")
	ErrInvalidCredentials  = New(ErrCodeUnauthorized, "неверные учетные данные")
	ErrListingAlreadySold  = New(ErrCodeInvalidState, "объявление уже продано")
	ErrOrderNotOpen        = New(ErrCodeInvalidState, "заказ уже закрыт")
	ErrInsufficientPayment = New(ErrCodeInsufficientPayment, "покупатель отправил недостаточно wei")
	ErrInsufficientFunds   = New(ErrCodeInsufficientFunds, "недостаточно средств на балансе")
)
