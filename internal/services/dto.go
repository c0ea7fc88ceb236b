package services

import (
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// ===== IDENTITY DTOs =====

type RegisterStudentRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	RegisterNumber string  `json:"register_number" validate:"required,max=50"`
	RollNumber     string  `json:"roll_number" validate:"required,max=50"`
	Department     string  `json:"department" validate:"required,department"`
	Year           int     `json:"year" validate:"required,gte=1,lte=4"`
	Semester       int     `json:"semester" validate:"required,gte=1,lte=8"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       string  `json:"password" validate:"required,min=6,max=72"`
}

type RegisterStaffRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Department   string `json:"department" validate:"required,department"`
	AcademicYear string `json:"academic_year" validate:"required,max=20"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Identifier string          `json:"identifier" validate:"required"`
	Password   string          `json:"password" validate:"required"`
	UserType   models.UserRole `json:"user_type" validate:"required,user_role"`
}

type UserSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       models.UserRole `json:"type"`
	Department string          `json:"department"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        UserSummary `json:"user"`
}

// ===== CONTENT DTOs =====

type CreateSubjectRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	CourseCode string `json:"course_code" validate:"required,max=50"`
	Department string `json:"department" validate:"omitempty,department"`
}

type CreateQuestionRequest struct {
	QuestionText  string   `json:"question_text" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswer *int     `json:"correct_answer" validate:"required,gte=0,lte=3"`
	Explanation   string   `json:"explanation"`
	SubjectID     string   `json:"subject_id" validate:"required"`
	Units         []string `json:"units" validate:"omitempty,dive,unit_tag"`
}

// ===== TEST DTOs =====

type CreateTestRequest struct {
	SubjectID       string              `json:"subject_id" validate:"required"`
	Category        models.TestCategory `json:"category" validate:"required,test_category"`
	StartTime       time.Time           `json:"start_time" validate:"required"`
	EndTime         time.Time           `json:"end_time" validate:"required"`
	DurationMinutes int                 `json:"duration_minutes" validate:"omitempty,gte=1,lte=300"`
	Year            int                 `json:"year" validate:"required,gte=1,lte=4"`
	Semester        int                 `json:"semester" validate:"required,gte=1,lte=8"`
}

func (r *CreateTestRequest) Window() (time.Time, time.Time) {
	return r.StartTime, r.EndTime
}

// TestResponse is a test joined with its subject.
type TestResponse struct {
	ID              string              `json:"id"`
	SubjectID       string              `json:"subject_id"`
	SubjectName     string              `json:"subject_name"`
	CourseCode      string              `json:"course_code"`
	Category        models.TestCategory `json:"category"`
	StartTime       time.Time           `json:"start_time"`
	EndTime         time.Time           `json:"end_time"`
	DurationMinutes int                 `json:"duration_minutes"`
	Year            int                 `json:"year"`
	Semester        int                 `json:"semester"`
	Department      string              `json:"department"`
	IsActive        bool                `json:"is_active"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ===== DELIVERY DTOs =====

// AvailableTest is the student-facing summary of an open test.
type AvailableTest struct {
	ID              string              `json:"id"`
	SubjectName     string              `json:"subject_name"`
	CourseCode      string              `json:"course_code"`
	Category        models.TestCategory `json:"category"`
	DurationMinutes int                 `json:"duration_minutes"`
	StartTime       time.Time           `json:"start_time"`
	EndTime         time.Time           `json:"end_time"`
	Year            int                 `json:"year"`
	Semester        int                 `json:"semester"`
}

type DeliveredTest struct {
	TestID          string         `json:"test_id"`
	DurationMinutes int            `json:"duration_minutes"`
	EndTime         time.Time      `json:"end_time"`
	Questions       []QuestionView `json:"questions"`
}

type ProgressRequest struct {
	CurrentQuestion *int `json:"current_question" validate:"required,gte=0"`
}

type LiveStatusResponse struct {
	TestID      string               `json:"test_id"`
	ActiveCount int                  `json:"active_count"`
	Sessions    []models.LiveSession `json:"sessions"`
}

// ===== ATTEMPT DTOs =====

type SubmitTestRequest struct {
	TestID         string         `json:"test_id" validate:"required"`
	Answers        map[string]int `json:"answers"`
	TabSwitches    int            `json:"tab_switches" validate:"gte=0"`
	IsMalpractice  bool           `json:"is_malpractice"`
	CompletionTime *time.Time     `json:"completion_time"`
}

type SubmitTestResponse struct {
	Message         string        `json:"message"`
	AttemptID       string        `json:"attempt_id"`
	Score           int           `json:"score"`
	Total           int           `json:"total"`
	Percentage      float64       `json:"percentage"`
	IsMalpractice   bool          `json:"is_malpractice"`
	UnitPerformance []UnitInsight `json:"unit_performance"`
}

// QuestionReview is one answered question shown back to its student.
type QuestionReview struct {
	QuestionID    string   `json:"question_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	StudentAnswer *int     `json:"student_answer"`
	IsCorrect     bool     `json:"is_correct"`
	Explanation   string   `json:"explanation"`
	Units         []string `json:"units"`
}

type AttemptResultResponse struct {
	AttemptID     string           `json:"attempt_id"`
	TestID        string           `json:"test_id"`
	Score         int              `json:"score"`
	Total         int              `json:"total"`
	Percentage    float64          `json:"percentage"`
	IsMalpractice bool             `json:"is_malpractice"`
	TabSwitches   int              `json:"tab_switches"`
	SubmittedAt   time.Time        `json:"submitted_at"`
	Results       []QuestionReview `json:"results"`
}

type AttemptInsightsResponse struct {
	AttemptID  string        `json:"attempt_id"`
	TestID     string        `json:"test_id"`
	Score      int           `json:"score"`
	Total      int           `json:"total"`
	Percentage float64       `json:"percentage"`
	Units      []UnitInsight `json:"units"`
}

// ===== STAFF RESULT DTOs =====

type RosterEntry struct {
	AttemptID      string    `json:"attempt_id"`
	StudentID      string    `json:"student_id"`
	StudentName    string    `json:"student_name"`
	RegisterNumber string    `json:"register_number"`
	RollNumber     string    `json:"roll_number"`
	Department     string    `json:"department"`
	Score          int       `json:"score"`
	Total          int       `json:"total"`
	Percentage     float64   `json:"percentage"`
	IsMalpractice  bool      `json:"is_malpractice"`
	TabSwitches    int       `json:"tab_switches"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type TestResultsResponse struct {
	TestID  string        `json:"test_id"`
	Results []RosterEntry `json:"results"`
}

// ===== CONVERTERS =====

func toTestResponse(test *models.Test, subject *models.Subject) *TestResponse {
	resp := &TestResponse{
		ID:              test.ID,
		SubjectID:       test.SubjectID,
		Category:        test.Category,
		StartTime:       test.StartTime,
		EndTime:         test.EndTime,
		DurationMinutes: test.DurationMinutes,
		Year:            test.Year,
		Semester:        test.Semester,
		Department:      test.Department,
		IsActive:        test.IsActive,
		CreatedAt:       test.CreatedAt,
	}
	if subject != nil {
		resp.SubjectName = subject.Name
		resp.CourseCode = subject.CourseCode
	}
	return resp
}

func toAvailableTest(test *models.Test, subject *models.Subject) AvailableTest {
	summary := AvailableTest{
		ID:              test.ID,
		Category:        test.Category,
		DurationMinutes: test.DurationMinutes,
		StartTime:       test.StartTime,
		EndTime:         test.EndTime,
		Year:            test.Year,
		Semester:        test.Semester,
	}
	if subject != nil {
		summary.SubjectName = subject.Name
		summary.CourseCode = subject.CourseCode
	}
	return summary
}
