package services

import (
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// CheckEligibility decides whether student may sit test at now. A nil or
// inactive test is reported as not found. The window is inclusive at both ends.
func CheckEligibility(test *models.Test, student *models.Student, now time.Time) error {
	if test == nil || !test.IsActive {
		id := ""
		if test != nil {
			id = test.ID
		}
		return &EligibilityError{TestID: id, Reason: EligibilityNotFound}
	}

	switch {
	case now.Before(test.StartTime):
		return &EligibilityError{TestID: test.ID, Reason: EligibilityNotYetOpen}
	case now.After(test.EndTime):
		return &EligibilityError{TestID: test.ID, Reason: EligibilityExpired}
	case student.Department != test.Department:
		return &EligibilityError{TestID: test.ID, Reason: EligibilityDepartmentMismatch}
	case student.Year != test.Year:
		return &EligibilityError{TestID: test.ID, Reason: EligibilityYearMismatch}
	}

	return nil
}
