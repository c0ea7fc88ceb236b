package postgres

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"gorm.io/gorm"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Create(student).Error
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).Where("register_number = ?", registerNumber).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}
	var students []*models.Student
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentPostgreSQL) ExistsByRegisterNumber(ctx context.Context, registerNumber string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Student{}).
		Where("register_number = ?", registerNumber).
		Count(&count).Error
	return count > 0, err
}

type StaffPostgreSQL struct {
	db *gorm.DB
}

func NewStaffPostgreSQL(db *gorm.DB) repositories.StaffRepository {
	return &StaffPostgreSQL{db: db}
}

func (s *StaffPostgreSQL) Create(ctx context.Context, staff *models.Staff) error {
	return s.db.WithContext(ctx).Create(staff).Error
}

func (s *StaffPostgreSQL) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	var staff models.Staff
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (s *StaffPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var staff models.Staff
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (s *StaffPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Staff{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}
