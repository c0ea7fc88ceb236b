package validator

import (
	"fmt"
	"strings"

	apperrors "github.com/SAP-F-2025/exam-service/internal/errors"
	"github.com/SAP-F-2025/exam-service/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	var errs ValidationErrors

	if strings.TrimSpace(question.QuestionText) == "" {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("question_text", "is required", "required", question.QuestionText))
	}

	if err := v.ValidateOptions(question.Options, question.CorrectAnswer); err != nil {
		errs = append(errs, err...)
	}

	if err := v.ValidateUnits(question.Units); err != nil {
		errs = append(errs, err...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateOptions checks there are exactly four non-empty options and the
// correct answer indexes one of them.
func (v *QuestionValidator) ValidateOptions(options []string, correctAnswer int) ValidationErrors {
	var errs ValidationErrors

	if len(options) != models.OptionCount {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("options",
			fmt.Sprintf("must have exactly %d options", models.OptionCount), "option_count", len(options)))
	}

	for i, option := range options {
		if strings.TrimSpace(option) == "" {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(fmt.Sprintf("options[%d]", i),
				"option text cannot be empty", "required", option))
		}
	}

	if correctAnswer < 0 || correctAnswer >= len(options) || correctAnswer >= models.OptionCount {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("correct_answer",
			"must be the index of one of the options (0-3)", "correct_answer", correctAnswer))
	}

	return errs
}

// ValidateUnits checks every tag belongs to the unit enumeration.
func (v *QuestionValidator) ValidateUnits(units []string) ValidationErrors {
	var errs ValidationErrors
	for _, unit := range units {
		if !models.IsValidUnit(unit) {
			errs = append(errs, *apperrors.NewValidationErrorWithRule("units",
				fmt.Sprintf("unknown unit %q", unit), "unit_tag", unit))
		}
	}
	return errs
}
