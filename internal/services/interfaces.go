package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// TokenIssuer mints bearer credentials for an authenticated principal.
type TokenIssuer interface {
	Issue(principal models.Principal) (token string, expiresAt time.Time, err error)
}

type AuthService interface {
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*RegisterResponse, error)
	RegisterStaff(ctx context.Context, req *RegisterStaffRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}

type SubjectService interface {
	Create(ctx context.Context, req *CreateSubjectRequest, staffID string) (*models.Subject, error)
	List(ctx context.Context, department string) ([]*models.Subject, error)
}

type QuestionService interface {
	Create(ctx context.Context, req *CreateQuestionRequest, staffID string) (*models.Question, error)
	ListOwn(ctx context.Context, staffID, subjectID string) ([]*models.Question, error)
}

type TestService interface {
	Create(ctx context.Context, req *CreateTestRequest, staffID string) (*TestResponse, error)
	ListOwn(ctx context.Context, staffID string) ([]*TestResponse, error)
}

// DeliveryService decides which tests a student sees and hands out their questions.
type DeliveryService interface {
	ListAvailable(ctx context.Context, studentID string) ([]AvailableTest, error)
	Start(ctx context.Context, testID, studentID string) (*DeliveredTest, error)
	UpdateProgress(ctx context.Context, testID, studentID string, currentQuestion int) error
	LiveStatus(ctx context.Context, testID string) (*LiveStatusResponse, error)
}

type AttemptService interface {
	Submit(ctx context.Context, req *SubmitTestRequest, studentID string) (*SubmitTestResponse, error)
	GetResult(ctx context.Context, attemptID, studentID string) (*AttemptResultResponse, error)
	GetInsights(ctx context.Context, attemptID, studentID string) (*AttemptInsightsResponse, error)
}

// ResultService serves staff views over all attempts of a test.
type ResultService interface {
	TestResults(ctx context.Context, testID string) (*TestResultsResponse, error)
	TestInsights(ctx context.Context, testID string) (*TestInsights, error)
	ExportResults(ctx context.Context, testID string) ([]byte, error)
}

type ServiceManager interface {
	Auth() AuthService
	Subject() SubjectService
	Question() QuestionService
	Test() TestService
	Delivery() DeliveryService
	Attempt() AttemptService
	Result() ResultService
}
