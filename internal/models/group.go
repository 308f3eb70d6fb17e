package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is the upstream study group record. Billing only reads its fee and lesson-day pattern.
type Group struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	MonthlyFee  int64     `gorm:"not null;default:0" json:"monthly_fee"`
	DaysPattern string    `gorm:"type:varchar(10);not null" json:"days_pattern"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "study_groups"
}

// Lesson-day patterns
const (
	DaysPatternOdd  = "ODD"  // Mon / Wed / Fri
	DaysPatternEven = "EVEN" // Tue / Thu / Sat
)

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	ensureID(&g.ID)
	return nil
}

// Student is the upstream student profile. Billing uses it for existence checks and report labels.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
