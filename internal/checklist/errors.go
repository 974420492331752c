package checklist

import (
	"errors"
	"fmt"
)

// ValidationError marks input rejected at the mutation boundary, before any
// write reaches storage.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

var (
	ErrEmptyName         = &ValidationError{"name must not be empty"}
	ErrDuplicateCode     = &ValidationError{"another item already has this code"}
	ErrDuplicateSpecial  = &ValidationError{"this date already has a special item with that name"}
	ErrDuplicateCategory = &ValidationError{"a category with this name already exists"}
	ErrCategoryInUse     = &ValidationError{"category is still used by items"}
	ErrBadReferenceDate  = &ValidationError{`reference date must be "today" or "tomorrow"`}
)

// IsValidation reports whether err is a validation rejection rather than a
// storage failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// PartialBulkError reports a bulk mutation that continued past individual
// failures. The writes that succeeded stay written.
type PartialBulkError struct {
	Failed int
	Errs   []error
}

func (e *PartialBulkError) Error() string {
	return fmt.Sprintf("bulk operation failed for %d items: %v", e.Failed, errors.Join(e.Errs...))
}
