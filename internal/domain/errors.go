package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput некорректные входные данные (нечисловые градусы, битая дата, нет обязательного поля)
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownPoint эфемерида не знает такую точку
	ErrUnknownPoint = errors.New("unknown point")
	// ErrChartNotFound натальная карта не найдена в хранилище
	ErrChartNotFound = errors.New("natal chart not found")
	// ErrChartStorageDisabled хранилище натальных карт не настроено
	ErrChartStorageDisabled = errors.New("chart storage is not configured")
	// ErrReportStorageDisabled хранилище отчётов не настроено
	ErrReportStorageDisabled = errors.New("report storage is not configured")
)

// ValidationError описывает отклонённый ввод, сообщение уходит клиенту как есть
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError создаёт ошибку валидации, совместимую с errors.Is(err, ErrInvalidInput)
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
