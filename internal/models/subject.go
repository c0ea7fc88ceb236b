package models

import "time"

type Subject struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Name       string    `json:"name" gorm:"not null;size:200"`
	CourseCode string    `json:"course_code" gorm:"not null;size:50"`
	Department string    `json:"department" gorm:"not null;size:100;index"`
	CreatedBy  string    `json:"created_by" gorm:"not null;size:36"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Subject) TableName() string {
	return "subjects"
}
