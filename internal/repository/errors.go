package repository

import "errors"

var (
	// ErrNotFound запись для изменения не найдена
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate нарушено ограничение уникальности
	ErrDuplicate = errors.New("duplicate record")
)
