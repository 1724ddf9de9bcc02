// Package studentrepo persists the student roster.
package studentrepo

import (
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/student"

	"github.com/google/uuid"
)

type StudentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"not null;index"`
	SeatID  string    `gorm:"column:seat_id;not null;uniqueIndex"`
	ClassID int       `gorm:"not null;index"`
}

func (StudentDTO) TableName() string {
	return "students"
}

func fromDomain(s *student.Student) StudentDTO {
	return StudentDTO{
		ID:      s.ID().Google(),
		Name:    s.Name(),
		SeatID:  s.SeatID(),
		ClassID: s.ClassID(),
	}
}

func toDomain(dto StudentDTO) (*student.Student, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return student.NewStudent(id, dto.Name, dto.SeatID, dto.ClassID)
}
