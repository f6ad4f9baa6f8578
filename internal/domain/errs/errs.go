// Package errs описывает ошибки рабочего процесса, которые видит вызывающая сторона.
package errs

import (
	"errors"
	"fmt"
)

// Kind уточняет причину ошибки валидации
type Kind string

const (
	KindForbiddenRole  Kind = "forbidden_role"
	KindDuplicate      Kind = "duplicate"
	KindCrossReference Kind = "cross_reference_mismatch"
	KindInvalidInput   Kind = "invalid_input"
	KindMissingField   Kind = "missing_field"
)

// ValidationError ошибка входных данных или прав вызывающего
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Message)
}

// NotFoundError сущность не найдена или не принадлежит ожидаемому родителю
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StateError операция недопустима в текущем статусе сущности
type StateError struct {
	Entity   string
	ID       int64
	Status   string
	Expected []string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s %d is %q, expected one of %q", e.Entity, e.ID, e.Status, e.Expected)
}

// Validation создает ValidationError
func Validation(kind Kind, format string, args ...any) error {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound создает NotFoundError
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// State создает StateError
func State(entity string, id int64, status string, expected ...string) error {
	return &StateError{Entity: entity, ID: id, Status: status, Expected: expected}
}

// IsValidation сообщает, содержит ли цепочка ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound сообщает, содержит ли цепочка NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsState сообщает, содержит ли цепочка StateError
func IsState(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}

// KindOf возвращает Kind ошибки валидации или пустую строку
func KindOf(err error) Kind {
	var target *ValidationError
	if errors.As(err, &target) {
		return target.Kind
	}
	return ""
}
