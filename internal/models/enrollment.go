package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links a student to a group from JoinDate until LeaveDate
type Enrollment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	GroupID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"group_id"`
	JoinDate  time.Time  `gorm:"type:date;not null" json:"join_date"`
	LeaveDate *time.Time `gorm:"type:date" json:"leave_date"`
	Status    string     `gorm:"type:varchar(10);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Associations
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
	Group   Group   `gorm:"foreignKey:GroupID" json:"-"`
}

// TableName specifies the table name for Enrollment
func (Enrollment) TableName() string {
	return "enrollments"
}

// Enrollment status constants
const (
	EnrollmentStatusActive = "ACTIVE"
	EnrollmentStatusPaused = "PAUSED"
	EnrollmentStatusLeft   = "LEFT"
)

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	if e.Status == "" {
		e.Status = EnrollmentStatusActive
	}
	return nil
}

// IsValidEnrollmentStatus reports whether s is a known enrollment status
func IsValidEnrollmentStatus(s string) bool {
	switch s {
	case EnrollmentStatusActive, EnrollmentStatusPaused, EnrollmentStatusLeft:
		return true
	}
	return false
}

// EnrollmentResponse is the JSON response format for enrollments
type EnrollmentResponse struct {
	ID        uuid.UUID  `json:"id"`
	Status    string     `json:"status"`
	JoinDate  string     `json:"join_date"`
	LeaveDate *string    `json:"leave_date"`
	Group     RefSummary `json:"group"`
	Student   RefSummary `json:"student"`
}

// RefSummary is a compact id/name pair embedded in responses
type RefSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

// ToResponse converts Enrollment to EnrollmentResponse
func (e *Enrollment) ToResponse() EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:       e.ID,
		Status:   e.Status,
		JoinDate: e.JoinDate.Format(DateLayout),
		Group:    RefSummary{ID: e.GroupID, Name: e.Group.Name},
		Student:  RefSummary{ID: e.StudentID, Name: e.Student.FullName, Phone: e.Student.Phone},
	}
	if e.LeaveDate != nil {
		leave := e.LeaveDate.Format(DateLayout)
		resp.LeaveDate = &leave
	}
	return resp
}

// DateLayout is the calendar-date wire format
const DateLayout = "2006-01-02"
