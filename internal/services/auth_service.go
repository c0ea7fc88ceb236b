package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	repo      repositories.Repository
	tokens    TokenIssuer
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
}

func NewAuthService(repo repositories.Repository, tokens TokenIssuer, validator *validator.Validator, logger *slog.Logger) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, "auth"),
	}
}

func (s *authService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (resp *RegisterResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "register_student", "")
	defer func() { op.LogResult(req.RegisterNumber, "student", err) }()

	req.RegisterNumber = strings.TrimSpace(req.RegisterNumber)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Student().ExistsByRegisterNumber(ctx, req.RegisterNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check register number: %w", err)
	}
	if exists {
		return nil, ErrStudentAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:             uuid.NewString(),
		Name:           req.Name,
		RegisterNumber: req.RegisterNumber,
		RollNumber:     req.RollNumber,
		Department:     req.Department,
		Year:           req.Year,
		Semester:       req.Semester,
		Email:          req.Email,
		PasswordHash:   hash,
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrStudentAlreadyExists
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return &RegisterResponse{Message: "Student registered successfully", UserID: student.ID}, nil
}

func (s *authService) RegisterStaff(ctx context.Context, req *RegisterStaffRequest) (resp *RegisterResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "register_staff", "")
	defer func() { op.LogResult(req.Email, "staff", err) }()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Staff().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff email: %w", err)
	}
	if exists {
		return nil, ErrStaffAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	staff := &models.Staff{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Department:   req.Department,
		AcademicYear: req.AcademicYear,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Staff().Create(ctx, staff); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrStaffAlreadyExists
		}
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	return &RegisterResponse{Message: "Staff registered successfully", UserID: staff.ID}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (resp *LoginResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "login", "")
	defer func() { op.LogResult(req.Identifier, string(req.UserType), err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var (
		summary UserSummary
		hash    string
	)

	switch req.UserType {
	case models.RoleStudent:
		student, err := s.repo.Student().GetByRegisterNumber(ctx, strings.TrimSpace(req.Identifier))
		if err != nil {
			return nil, credentialsError(err)
		}
		summary = UserSummary{ID: student.ID, Name: student.Name, Type: models.RoleStudent, Department: student.Department}
		hash = student.PasswordHash
	case models.RoleStaff:
		staff, err := s.repo.Staff().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Identifier)))
		if err != nil {
			return nil, credentialsError(err)
		}
		summary = UserSummary{ID: staff.ID, Name: staff.Name, Type: models.RoleStaff, Department: staff.Department}
		hash = staff.PasswordHash
	default:
		return nil, ErrInvalidUserType
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(models.Principal{UserID: summary.ID, Role: summary.Type, Name: summary.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        summary,
	}, nil
}

// credentialsError hides whether the identifier exists.
func credentialsError(err error) error {
	if repositories.IsNotFoundError(err) {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("failed to load user: %w", err)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", NewValidationError("password", "password is too long", nil)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
