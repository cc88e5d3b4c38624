package persistence

import (
	"errors"
	"fmt"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// notFound maps gorm.ErrRecordNotFound to the given domain error and wraps
// anything else with the operation name.
func notFound(err error, nf error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return fmt.Errorf("%s: %w", op, err)
}

// versionConflict is returned when an update matched no row at the expected version.
func versionConflict(entity string) error {
	return shared.NewConflictError("CONCURRENT_MODIFICATION", entity+" was modified concurrently")
}
