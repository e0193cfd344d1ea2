package model

import "time"

type SprintStatus string

const (
	SprintPlanned   SprintStatus = "PLANNED"
	SprintActive    SprintStatus = "ACTIVE"
	SprintCompleted SprintStatus = "COMPLETED"
)

// ValidSprintStatus reports whether s is one of the three known statuses.
func ValidSprintStatus(s SprintStatus) bool {
	switch s {
	case SprintPlanned, SprintActive, SprintCompleted:
		return true
	}
	return false
}

type Sprint struct {
	BaseModel
	ProjectID string       `gorm:"type:uuid;not null;index" json:"project_id"`
	Name      string       `gorm:"size:100;not null" json:"name"`
	Status    SprintStatus `gorm:"size:20;not null;default:'PLANNED'" json:"status"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`

	Project Project `json:"-"`
}
