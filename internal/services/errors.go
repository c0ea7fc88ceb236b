package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/exam-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Identity errors
	ErrStudentNotFound      = errors.New("student not found")
	ErrStaffNotFound        = errors.New("staff not found")
	ErrStudentAlreadyExists = errors.New("student already exists")
	ErrStaffAlreadyExists   = errors.New("staff already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidUserType      = errors.New("invalid user type")

	// Content errors
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrQuestionNotFound = errors.New("question not found")

	// Test errors
	ErrTestNotFound    = errors.New("test not found or inactive")
	ErrSessionNotFound = errors.New("no open session for this test")

	// Attempt errors
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptAccessDenied = errors.New("access denied to attempt")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// EligibilityReason says why a student may not enter a test.
type EligibilityReason string

const (
	EligibilityNotFound           EligibilityReason = "not_found"
	EligibilityNotYetOpen         EligibilityReason = "not_yet_open"
	EligibilityExpired            EligibilityReason = "expired"
	EligibilityDepartmentMismatch EligibilityReason = "department_mismatch"
	EligibilityYearMismatch       EligibilityReason = "year_mismatch"
)

type EligibilityError struct {
	TestID string
	Reason EligibilityReason
}

func (ee *EligibilityError) Error() string {
	switch ee.Reason {
	case EligibilityNotFound:
		return "test not found or inactive"
	case EligibilityNotYetOpen:
		return "test is not currently active: not yet open"
	case EligibilityExpired:
		return "test is not currently active: window has closed"
	case EligibilityDepartmentMismatch:
		return "test is not available for your department"
	case EligibilityYearMismatch:
		return "test is not available for your year"
	}
	return fmt.Sprintf("not eligible for test %s", ee.TestID)
}

// Unwrap lets errors.Is(err, ErrTestNotFound) match the not-found reason.
func (ee *EligibilityError) Unwrap() error {
	if ee.Reason == EligibilityNotFound {
		return ErrTestNotFound
	}
	return nil
}

// IsMismatch reports whether the student is outside the test's audience, as opposed to outside its window.
func (ee *EligibilityError) IsMismatch() bool {
	return ee.Reason == EligibilityDepartmentMismatch || ee.Reason == EligibilityYearMismatch
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrStaffNotFound) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrTestNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrAttemptNotFound)
}

// IsUnauthorized checks if error represents a failed authentication
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials)
}

// IsForbidden checks if the caller is authenticated but not allowed
func IsForbidden(err error) bool {
	var pe *PermissionError
	if errors.As(err, &pe) {
		return true
	}
	var ee *EligibilityError
	if errors.As(err, &ee) && ee.IsMismatch() {
		return true
	}
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrAttemptAccessDenied)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrInvalidUserType) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrStudentAlreadyExists) ||
		errors.Is(err, ErrStaffAlreadyExists)
}
