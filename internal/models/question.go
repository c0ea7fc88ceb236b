package models

import "time"

// OptionCount is the number of options every question carries.
const OptionCount = 4

type Question struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	QuestionText  string    `json:"question_text" gorm:"type:text;not null"`
	Options       []string  `json:"options" gorm:"type:jsonb;serializer:json;not null"`
	CorrectAnswer int       `json:"correct_answer" gorm:"not null"`
	Explanation   string    `json:"explanation" gorm:"type:text"`
	SubjectID     string    `json:"subject_id" gorm:"not null;size:36;index"`
	Units         []string  `json:"units" gorm:"type:jsonb;serializer:json"`
	CreatedBy     string    `json:"created_by" gorm:"not null;size:36;index"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}
