package postgres

import (
	"fmt"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	student  repositories.StudentRepository
	staff    repositories.StaffRepository
	subject  repositories.SubjectRepository
	question repositories.QuestionRepository
	test     repositories.TestRepository
	attempt  repositories.AttemptRepository
}

// NewRepository wires every gorm-backed repository onto the same connection.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		student:  NewStudentPostgreSQL(db),
		staff:    NewStaffPostgreSQL(db),
		subject:  NewSubjectPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		test:     NewTestPostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
	}
}

func (r *repository) Student() repositories.StudentRepository   { return r.student }
func (r *repository) Staff() repositories.StaffRepository       { return r.staff }
func (r *repository) Subject() repositories.SubjectRepository   { return r.subject }
func (r *repository) Question() repositories.QuestionRepository { return r.question }
func (r *repository) Test() repositories.TestRepository         { return r.test }
func (r *repository) Attempt() repositories.AttemptRepository   { return r.attempt }

// Migrate creates or updates the six collections.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Student{},
		&models.Staff{},
		&models.Subject{},
		&models.Question{},
		&models.Test{},
		&models.TestAttempt{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
