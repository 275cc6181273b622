package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// notFoundOr translates gorm's missing-row error into ErrNotFound and wraps
// everything else with the operation name.
func notFoundOr(err error, op string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
	}
	return fmt.Errorf("%s %d: %w", op, id, err)
}
