package validator

import (
	"time"

	apperrors "github.com/SAP-F-2025/exam-service/internal/errors"
)

// Windowed is implemented by requests that carry a [start, end] interval.
type Windowed interface {
	Window() (start, end time.Time)
}

// BusinessValidator checks cross-field rules struct tags cannot express.
type BusinessValidator struct{}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{}
}

// Validate dispatches on the interfaces s implements. Unknown types pass.
func (v *BusinessValidator) Validate(s interface{}) ValidationErrors {
	var errs ValidationErrors

	if w, ok := s.(Windowed); ok {
		start, end := w.Window()
		if err := v.ValidateTestWindow(start, end); err != nil {
			errs = append(errs, *err)
		}
	}

	return errs
}

func (v *BusinessValidator) ValidateTestWindow(start, end time.Time) *ValidationError {
	if !end.After(start) {
		return apperrors.NewValidationErrorWithRule("end_time", "end time must be after start time", "test_window", end)
	}
	return nil
}
