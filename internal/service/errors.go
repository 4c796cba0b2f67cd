package service

import (
	"errors"
	"fmt"
)

// ErrorKind класс отказа бизнес-логики, контроллер переводит его в HTTP статус
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error ожидаемый отказ с сообщением для пользователя
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation создаёт ошибку валидации с произвольным сообщением
func Validation(format string, args ...any) *Error {
	return newError(KindValidation, fmt.Sprintf(format, args...))
}

// KindOf возвращает класс ошибки. Всё, что не *Error, считается внутренней ошибкой.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Отказы при создании резервации
var (
	ErrInvalidReservationType = newError(KindValidation, "type must be onsite or online")
	ErrScheduleRequired       = newError(KindValidation, "schedule required for onsite reservation")
	ErrScheduleNotAllowed     = newError(KindValidation, "online reservation cannot reference a schedule")
	ErrDailyLimitReached      = newError(KindForbidden, fmt.Sprintf("daily onsite limit of %d reached", DailyOnsiteLimit))
	ErrScheduleNotFound       = newError(KindNotFound, "schedule not found")
	ErrSlotFull               = newError(KindConflict, "slot full")
	ErrDuplicateReservation   = newError(KindConflict, "duplicate reservation")
)

// Отказы при изменении и удалении резервации
var (
	ErrReservationNotFound = newError(KindNotFound, "reservation not found")
	ErrForbidden           = newError(KindForbidden, "not allowed to modify this reservation")
	ErrTeacherFieldsOnly   = newError(KindForbidden, "only a teacher can change status or feedback")
	ErrTeacherOnly         = newError(KindForbidden, "teacher role required")
	ErrReservationLocked   = newError(KindConflict, "reservation can no longer be edited")
	ErrReservationClosed   = newError(KindConflict, "reservation is cancelled")
	ErrInvalidTransition   = newError(KindConflict, "status transition not allowed")
	ErrFeedbackRequired    = newError(KindValidation, "teacher feedback required to answer")
	ErrEmptyUpdate         = newError(KindValidation, "nothing to update")
)

// Отказы регистрации и входа
var (
	ErrPhoneRequired        = newError(KindValidation, "phone number required")
	ErrPasswordTooShort     = newError(KindValidation, fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	ErrAlreadyRegistered    = newError(KindConflict, "already registered")
	ErrNotOnRoster          = newError(KindForbidden, "not on roster")
	ErrInvalidCredentials   = newError(KindUnauthorized, "invalid phone number or password")
	ErrUnauthenticated      = newError(KindUnauthorized, "authentication required")
	ErrAllowedStudentExists = newError(KindConflict, "phone number already on roster")
)
