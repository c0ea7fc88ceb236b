package memory

import (
	"context"
	"sort"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
)

type SubjectMemory struct {
	rows *table[models.Subject]
}

func NewSubjectMemory() *SubjectMemory {
	return &SubjectMemory{rows: newTable[models.Subject]()}
}

func (s *SubjectMemory) Create(ctx context.Context, subject *models.Subject) error {
	s.rows.insert(subject.ID, *subject)
	return nil
}

func (s *SubjectMemory) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *SubjectMemory) GetByIDs(ctx context.Context, ids []string) ([]*models.Subject, error) {
	out := make([]*models.Subject, 0, len(ids))
	for _, id := range ids {
		if subject, err := s.rows.get(id); err == nil {
			out = append(out, &subject)
		}
	}
	return out, nil
}

func (s *SubjectMemory) List(ctx context.Context, filters repositories.SubjectFilters) ([]*models.Subject, error) {
	found := s.rows.find(func(sub models.Subject) bool {
		if filters.Department != nil && sub.Department != *filters.Department {
			return false
		}
		if filters.CreatedBy != nil && sub.CreatedBy != *filters.CreatedBy {
			return false
		}
		return true
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].Name < found[j].Name })

	out := make([]*models.Subject, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	return out, nil
}

type QuestionMemory struct {
	rows *table[models.Question]
}

func NewQuestionMemory() *QuestionMemory {
	return &QuestionMemory{rows: newTable[models.Question]()}
}

func (q *QuestionMemory) Create(ctx context.Context, question *models.Question) error {
	q.rows.insert(question.ID, *question)
	return nil
}

func (q *QuestionMemory) GetByID(ctx context.Context, id string) (*models.Question, error) {
	question, err := q.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *QuestionMemory) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	out := make([]*models.Question, 0, len(ids))
	for _, id := range ids {
		if question, err := q.rows.get(id); err == nil {
			out = append(out, &question)
		}
	}
	return out, nil
}

func (q *QuestionMemory) GetBySubject(ctx context.Context, subjectID string) ([]*models.Question, error) {
	return q.List(ctx, repositories.QuestionFilters{SubjectID: &subjectID})
}

func (q *QuestionMemory) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, error) {
	found := q.rows.find(func(question models.Question) bool {
		if filters.SubjectID != nil && question.SubjectID != *filters.SubjectID {
			return false
		}
		if filters.CreatedBy != nil && question.CreatedBy != *filters.CreatedBy {
			return false
		}
		return true
	})
	found = paginate(found, filters.Limit, filters.Offset)

	out := make([]*models.Question, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	return out, nil
}
